package category

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context) ([]Category, error) {
	query := `
		SELECT id, name, rate_normal, rate_special
		FROM categories
		ORDER BY id
	`

	var categories []Category
	err := r.db.SelectContext(ctx, &categories, query)
	if err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Category, error) {
	query := `
		SELECT id, name, rate_normal, rate_special
		FROM categories
		WHERE id = $1
	`

	var cat Category
	err := r.db.GetContext(ctx, &cat, query, id)
	if err != nil {
		return nil, err
	}

	return &cat, nil
}

func (r *repository) UpdateRates(ctx context.Context, id string, rateNormal, rateSpecial float64) (*Category, error) {
	query := `
		UPDATE categories
		SET rate_normal = $2, rate_special = $3
		WHERE id = $1
		RETURNING id, name, rate_normal, rate_special
	`

	var cat Category
	err := r.db.GetContext(ctx, &cat, query, id, rateNormal, rateSpecial)
	if err != nil {
		return nil, err
	}

	return &cat, nil
}
