package gate

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

func (r *repository) GetAll(ctx context.Context) ([]Gate, error) {
	query := `
		SELECT id, name, location
		FROM gates
		ORDER BY id
	`

	var gates []Gate
	err := r.db.SelectContext(ctx, &gates, query)
	if err != nil {
		return nil, err
	}

	links, err := r.zoneLinks(ctx)
	if err != nil {
		return nil, err
	}
	for i := range gates {
		gates[i].ZoneIDs = links[gates[i].ID]
	}

	return gates, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Gate, error) {
	query := `
		SELECT id, name, location
		FROM gates
		WHERE id = $1
	`

	var g Gate
	err := r.db.GetContext(ctx, &g, query, id)
	if err != nil {
		return nil, err
	}

	links, err := r.zoneLinks(ctx)
	if err != nil {
		return nil, err
	}
	g.ZoneIDs = links[g.ID]

	return &g, nil
}

func (r *repository) zoneLinks(ctx context.Context) (map[string][]string, error) {
	query := `
		SELECT gate_id, zone_id
		FROM gate_zones
		ORDER BY gate_id, zone_id
	`

	var rows []struct {
		GateID string `db:"gate_id"`
		ZoneID string `db:"zone_id"`
	}
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, err
	}

	links := make(map[string][]string)
	for _, row := range rows {
		links[row.GateID] = append(links[row.GateID], row.ZoneID)
	}
	return links, nil
}
