package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"canteen_service/internal/domain"

	"github.com/sirupsen/logrus"
)

type postgresMenuRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresMenuRepository(db *sql.DB, logger *logrus.Logger) domain.MenuRepository {
	return &postgresMenuRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresMenuRepository) GetMenuItemByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	query := `
        SELECT id, title, description, price, category, available
        FROM menu_items
        WHERE id = $1
    `
	item := &domain.MenuItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&item.Price,
		&item.Category,
		&item.Available,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMenuItemNotFound
		}
		r.log.Errorf("Failed to get menu item %s: %v", id, err)
		return nil, fmt.Errorf("could not retrieve menu item: %w", err)
	}
	return item, nil
}

func (r *postgresMenuRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	query := `
        SELECT id, title, description, price, category, available
        FROM menu_items
        WHERE available = TRUE
        ORDER BY category, title
    `
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.log.Errorf("Failed to list menu items: %v", err)
		return nil, fmt.Errorf("could not retrieve menu: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.Price, &item.Category, &item.Available); err != nil {
			r.log.Errorf("Failed to scan menu item row: %v", err)
			return nil, fmt.Errorf("error scanning menu item: %w", err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during menu items iteration: %v", err)
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}
