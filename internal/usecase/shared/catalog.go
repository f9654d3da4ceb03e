package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Catalog repositories run outside the unit of work; their rows carry no
// cross-table invariants, so plain pool-bound CRUD is enough.

type MenuItemRow struct {
	ID          uuid.UUID
	Category    string
	Name        string
	Description *string
	PriceCents  int32
	IsAvailable bool
	SortOrder   int32
}

type MenuRepository interface {
	Create(ctx context.Context, item *MenuItemRow) error
	Update(ctx context.Context, item *MenuItemRow) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]MenuItemRow, error)
}

type BusinessHoursRow struct {
	Weekday  int16
	OpensAt  string
	ClosesAt string
	IsClosed bool
}

type HolidayRow struct {
	ID   uuid.UUID
	Date time.Time
	Name string
}

type HoursRepository interface {
	// ReplaceWeek swaps the whole seven-day schedule in one transaction.
	ReplaceWeek(ctx context.Context, rows []BusinessHoursRow) error
	ListWeek(ctx context.Context) ([]BusinessHoursRow, error)
	AddHoliday(ctx context.Context, h *HolidayRow) error
	RemoveHoliday(ctx context.Context, id uuid.UUID) error
	ListHolidays(ctx context.Context, from time.Time) ([]HolidayRow, error)
}

type SettingsRepository interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	All(ctx context.Context) (map[string]string, error)
}

type LeadRow struct {
	ID        uuid.UUID
	Kind      string
	Name      string
	Email     string
	Phone     *string
	Message   *string
	CreatedAt time.Time
}

type LeadRepository interface {
	Create(ctx context.Context, lead *LeadRow) error
	List(ctx context.Context, kind string) ([]LeadRow, error)
}
