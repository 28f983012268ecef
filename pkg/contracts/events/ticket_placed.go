package events

// TicketPlaced is published by the backend (or its simulator) whenever a
// betting ticket is accepted and the stake debited.
type TicketPlaced struct {
	TicketID    string  `json:"ticket_id"`
	UserID      string  `json:"user_id"`
	HouseID     int     `json:"house_id"`
	BetType     string  `json:"bet_type"` // "fr_direct", "sr_ending", "forecast", ...
	TotalAmount float64 `json:"total_amount"`
	Lines       int     `json:"lines"`
	TsUnixMs    int64   `json:"ts_unix_ms"`
}
