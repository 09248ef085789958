package zone

// Row is the persisted part of a zone. Occupancy is never stored here; it
// lives in the in-memory ledger and is reconstructed from open tickets on
// startup.
type Row struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	CategoryID      string `db:"category_id"`
	TotalSlots      int    `db:"total_slots"`
	VisitorHoldback int    `db:"visitor_holdback"`
	Open            bool   `db:"open"`
}

// GateLink joins a zone to a gate it is reachable from.
type GateLink struct {
	ZoneID string `db:"zone_id"`
	GateID string `db:"gate_id"`
}

// Zone is the wire view: static config, live occupancy counts and the
// current category rates, combined.
type Zone struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	CategoryID              string   `json:"categoryId"`
	GateIDs                 []string `json:"gateIds"`
	TotalSlots              int      `json:"totalSlots"`
	Occupied                int      `json:"occupied"`
	Free                    int      `json:"free"`
	Reserved                int      `json:"reserved"`
	AvailableForVisitors    int      `json:"availableForVisitors"`
	AvailableForSubscribers int      `json:"availableForSubscribers"`
	RateNormal              float64  `json:"rateNormal"`
	RateSpecial             float64  `json:"rateSpecial"`
	Open                    bool     `json:"open"`
}

// ReportZone is a zone as it appears in the admin parking-state report.
type ReportZone struct {
	Zone
	SubscriberCount int `json:"subscriberCount"`
}

type SetOpenRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// Availability derives the headroom counts from free slots and the zone's
// visitor holdback. Subscribers may take any free slot; visitors only see
// what remains after the holdback, so the last few slots stay reachable
// for subscription holders.
func Availability(free, holdback int) (visitors, subscribers int) {
	visitors = free - holdback
	if visitors < 0 {
		visitors = 0
	}
	return visitors, free
}
