package subscription

import "time"

type Car struct {
	Plate string `db:"plate" json:"plate"`
	Brand string `db:"brand" json:"brand"`
	Model string `db:"model" json:"model"`
	Color string `db:"color" json:"color"`
}

// ActiveCheckin is an open ticket held by a subscription. Derived from the
// tickets table, never stored separately.
type ActiveCheckin struct {
	TicketID  string    `db:"ticket_id" json:"ticketId"`
	ZoneID    string    `db:"zone_id" json:"zoneId"`
	CheckinAt time.Time `db:"checkin_at" json:"checkinAt"`
}

type Subscription struct {
	ID              string          `db:"id" json:"id"`
	UserName        string          `db:"user_name" json:"userName"`
	Active          bool            `db:"active" json:"active"`
	CategoryID      string          `db:"category_id" json:"category"`
	StartsAt        time.Time       `db:"starts_at" json:"startsAt"`
	ExpiresAt       time.Time       `db:"expires_at" json:"expiresAt"`
	Cars            []Car           `json:"cars"`
	CurrentCheckins []ActiveCheckin `json:"currentCheckins"`
}
