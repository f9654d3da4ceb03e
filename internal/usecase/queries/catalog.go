package queries

import (
	"context"
	"time"

	"mokka-api/internal/pkg/clock"
	"mokka-api/internal/usecase/readmodel"
	"mokka-api/internal/usecase/shared"
)

type CatalogQueries interface {
	Menu(ctx context.Context) ([]readmodel.MenuItemRM, error)
	Hours(ctx context.Context) ([]readmodel.BusinessHoursRM, error)
	// Holidays returns today's and future holidays only.
	Holidays(ctx context.Context) ([]readmodel.HolidayRM, error)
	Settings(ctx context.Context) (map[string]string, error)
}

type catalogQueriesImpl struct {
	menu     shared.MenuRepository
	hours    shared.HoursRepository
	settings shared.SettingsRepository
	clock    clock.Clock
}

func NewCatalogQueries(menu shared.MenuRepository, hours shared.HoursRepository, settings shared.SettingsRepository, clk clock.Clock) CatalogQueries {
	return &catalogQueriesImpl{
		menu:     menu,
		hours:    hours,
		settings: settings,
		clock:    clk,
	}
}

func (q *catalogQueriesImpl) Menu(ctx context.Context) ([]readmodel.MenuItemRM, error) {
	rows, err := q.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]readmodel.MenuItemRM, 0, len(rows))
	for _, row := range rows {
		out = append(out, readmodel.MenuItemRM{
			ID:          row.ID,
			Category:    row.Category,
			Name:        row.Name,
			Description: row.Description,
			PriceCents:  row.PriceCents,
			IsAvailable: row.IsAvailable,
			SortOrder:   row.SortOrder,
		})
	}
	return out, nil
}

func (q *catalogQueriesImpl) Hours(ctx context.Context) ([]readmodel.BusinessHoursRM, error) {
	rows, err := q.hours.ListWeek(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]readmodel.BusinessHoursRM, 0, len(rows))
	for _, row := range rows {
		out = append(out, readmodel.BusinessHoursRM{
			Weekday:  row.Weekday,
			OpensAt:  row.OpensAt,
			ClosesAt: row.ClosesAt,
			IsClosed: row.IsClosed,
		})
	}
	return out, nil
}

func (q *catalogQueriesImpl) Holidays(ctx context.Context) ([]readmodel.HolidayRM, error) {
	today := q.clock.Now().Truncate(24 * time.Hour)
	rows, err := q.hours.ListHolidays(ctx, today)
	if err != nil {
		return nil, err
	}
	out := make([]readmodel.HolidayRM, 0, len(rows))
	for _, row := range rows {
		out = append(out, readmodel.HolidayRM{
			ID:   row.ID,
			Date: row.Date,
			Name: row.Name,
		})
	}
	return out, nil
}

func (q *catalogQueriesImpl) Settings(ctx context.Context) (map[string]string, error) {
	return q.settings.All(ctx)
}
