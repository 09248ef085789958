package tariff

// RushWindow is a recurring weekly window during which the special rate
// applies. WeekDay follows time.Weekday numbering (0 = Sunday). From and To
// are "HH:MM" with From strictly before To; windows never wrap midnight.
type RushWindow struct {
	ID      int64  `db:"id" json:"id"`
	WeekDay int    `db:"week_day" json:"weekDay"`
	From    string `db:"from_time" json:"from"`
	To      string `db:"to_time" json:"to"`
}

// Vacation is a calendar date range ("YYYY-MM-DD", inclusive on both ends)
// during which the special rate applies regardless of time of day.
type Vacation struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	From string `db:"from_date" json:"from"`
	To   string `db:"to_date" json:"to"`
}

type CreateRushWindowRequest struct {
	WeekDay int    `json:"weekDay" binding:"min=0,max=6"`
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
}

type CreateVacationRequest struct {
	Name string `json:"name" binding:"required"`
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}
