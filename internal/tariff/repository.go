package tariff

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

func (r *repository) GetRushWindows(ctx context.Context) ([]RushWindow, error) {
	query := `
		SELECT id, week_day, from_time, to_time
		FROM rush_hours
		ORDER BY week_day, from_time
	`

	var windows []RushWindow
	err := r.db.SelectContext(ctx, &windows, query)
	if err != nil {
		return nil, err
	}

	return windows, nil
}

func (r *repository) CreateRushWindow(ctx context.Context, weekDay int, from, to string) (*RushWindow, error) {
	query := `
		INSERT INTO rush_hours (week_day, from_time, to_time)
		VALUES ($1, $2, $3)
		RETURNING id, week_day, from_time, to_time
	`

	var w RushWindow
	err := r.db.GetContext(ctx, &w, query, weekDay, from, to)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *repository) GetVacations(ctx context.Context) ([]Vacation, error) {
	query := `
		SELECT id, name, from_date, to_date
		FROM vacations
		ORDER BY from_date
	`

	var vacations []Vacation
	err := r.db.SelectContext(ctx, &vacations, query)
	if err != nil {
		return nil, err
	}

	return vacations, nil
}

func (r *repository) CreateVacation(ctx context.Context, name, from, to string) (*Vacation, error) {
	query := `
		INSERT INTO vacations (name, from_date, to_date)
		VALUES ($1, $2, $3)
		RETURNING id, name, from_date, to_date
	`

	var v Vacation
	err := r.db.GetContext(ctx, &v, query, name, from, to)
	if err != nil {
		return nil, err
	}

	return &v, nil
}
