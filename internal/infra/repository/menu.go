package repository

import (
	"context"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const createMenuItemQuery = `
INSERT INTO menu_items (id, category, name, description, price_cents, is_available, sort_order)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const updateMenuItemQuery = `
UPDATE menu_items
SET category = $2, name = $3, description = $4, price_cents = $5, is_available = $6, sort_order = $7, updated_at = now()
WHERE id = $1`

const deleteMenuItemQuery = `
DELETE FROM menu_items WHERE id = $1`

const listMenuItemsQuery = `
SELECT id, category, name, description, price_cents, is_available, sort_order
FROM menu_items
ORDER BY category, sort_order, name`

type MenuRepository struct {
	conn db.Conn
}

func NewMenuRepository(conn db.Conn) shared.MenuRepository {
	return &MenuRepository{conn: conn}
}

func (r *MenuRepository) Create(ctx context.Context, item *shared.MenuItemRow) error {
	_, err := r.conn.Exec(ctx, createMenuItemQuery,
		item.ID, item.Category, item.Name, item.Description, item.PriceCents, item.IsAvailable, item.SortOrder)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to create menu item")
	}
	return nil
}

func (r *MenuRepository) Update(ctx context.Context, item *shared.MenuItemRow) error {
	tag, err := r.conn.Exec(ctx, updateMenuItemQuery,
		item.ID, item.Category, item.Name, item.Description, item.PriceCents, item.IsAvailable, item.SortOrder)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to update menu item")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "menu item not found", nil)
	}
	return nil
}

func (r *MenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn.Exec(ctx, deleteMenuItemQuery, id)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to delete menu item")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "menu item not found", nil)
	}
	return nil
}

func (r *MenuRepository) List(ctx context.Context) ([]shared.MenuItemRow, error) {
	rows, err := r.conn.Query(ctx, listMenuItemsQuery)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list menu items", err)
	}
	defer rows.Close()

	var out []shared.MenuItemRow
	for rows.Next() {
		var item shared.MenuItemRow
		if err := rows.Scan(&item.ID, &item.Category, &item.Name, &item.Description, &item.PriceCents, &item.IsAvailable, &item.SortOrder); err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan menu item", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read menu items", err)
	}
	return out, nil
}
