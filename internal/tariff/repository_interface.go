package tariff

import "context"

type Repository interface {
	GetRushWindows(ctx context.Context) ([]RushWindow, error)
	CreateRushWindow(ctx context.Context, weekDay int, from, to string) (*RushWindow, error)
	GetVacations(ctx context.Context) ([]Vacation, error)
	CreateVacation(ctx context.Context, name, from, to string) (*Vacation, error)
}
