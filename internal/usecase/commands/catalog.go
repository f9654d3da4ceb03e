package commands

import (
	"context"
	"strings"
	"time"

	"mokka-api/internal/infra"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrMenuItemNotFound = errs.New("menu item not found")
	ErrHolidayNotFound  = errs.New("holiday not found")
	ErrDuplicateHoliday = errs.New("a holiday already exists on this date")
	ErrInvalidSchedule  = errs.New("invalid weekly schedule")
)

type MenuItemInput struct {
	Category    string
	Name        string
	Description *string
	PriceCents  int32
	IsAvailable bool
	SortOrder   int32
}

type CatalogCommands interface {
	CreateMenuItem(ctx context.Context, in MenuItemInput) (uuid.UUID, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, in MenuItemInput) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
	// ReplaceWeek expects exactly one row per weekday 0..6.
	ReplaceWeek(ctx context.Context, rows []shared.BusinessHoursRow) error
	AddHoliday(ctx context.Context, date time.Time, name string) (uuid.UUID, error)
	RemoveHoliday(ctx context.Context, id uuid.UUID) error
	SetSetting(ctx context.Context, key, value string) error
}

type catalogUseCaseImpl struct {
	menu     shared.MenuRepository
	hours    shared.HoursRepository
	settings shared.SettingsRepository
}

func NewCatalogUseCase(menu shared.MenuRepository, hours shared.HoursRepository, settings shared.SettingsRepository) CatalogCommands {
	return &catalogUseCaseImpl{
		menu:     menu,
		hours:    hours,
		settings: settings,
	}
}

func (c *catalogUseCaseImpl) CreateMenuItem(ctx context.Context, in MenuItemInput) (uuid.UUID, error) {
	if err := validateMenuItem(in); err != nil {
		return uuid.Nil, err
	}
	row := &shared.MenuItemRow{
		ID:          uuid.New(),
		Category:    strings.TrimSpace(in.Category),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		IsAvailable: in.IsAvailable,
		SortOrder:   in.SortOrder,
	}
	if err := c.menu.Create(ctx, row); err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (c *catalogUseCaseImpl) UpdateMenuItem(ctx context.Context, id uuid.UUID, in MenuItemInput) error {
	if err := validateMenuItem(in); err != nil {
		return err
	}
	row := &shared.MenuItemRow{
		ID:          id,
		Category:    strings.TrimSpace(in.Category),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		PriceCents:  in.PriceCents,
		IsAvailable: in.IsAvailable,
		SortOrder:   in.SortOrder,
	}
	return mapCatalogNotFound(c.menu.Update(ctx, row), ErrMenuItemNotFound)
}

func (c *catalogUseCaseImpl) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return mapCatalogNotFound(c.menu.Delete(ctx, id), ErrMenuItemNotFound)
}

func (c *catalogUseCaseImpl) ReplaceWeek(ctx context.Context, rows []shared.BusinessHoursRow) error {
	if len(rows) != 7 {
		return ErrInvalidSchedule
	}
	seen := [7]bool{}
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 || seen[row.Weekday] {
			return ErrInvalidSchedule
		}
		seen[row.Weekday] = true
	}
	return c.hours.ReplaceWeek(ctx, rows)
}

func (c *catalogUseCaseImpl) AddHoliday(ctx context.Context, date time.Time, name string) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, ErrDomainValidation
	}
	row := &shared.HolidayRow{
		ID:   uuid.New(),
		Date: date,
		Name: strings.TrimSpace(name),
	}
	if err := c.hours.AddHoliday(ctx, row); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, errs.Mark(err, ErrDuplicateHoliday)
		}
		return uuid.Nil, err
	}
	return row.ID, nil
}

func (c *catalogUseCaseImpl) RemoveHoliday(ctx context.Context, id uuid.UUID) error {
	return mapCatalogNotFound(c.hours.RemoveHoliday(ctx, id), ErrHolidayNotFound)
}

func (c *catalogUseCaseImpl) SetSetting(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return ErrDomainValidation
	}
	return c.settings.Set(ctx, key, value)
}

func mapCatalogNotFound(err, sentinel error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}

func validateMenuItem(in MenuItemInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return ErrDomainValidation
	}
	if in.PriceCents < 0 {
		return ErrDomainValidation
	}
	return nil
}
