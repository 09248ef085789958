package gate

type Gate struct {
	ID       string   `db:"id" json:"id"`
	Name     string   `db:"name" json:"name"`
	Location string   `db:"location" json:"location"`
	ZoneIDs  []string `json:"zoneIds"`
}
