package dto

import "time"

// TicketCreate is the submission payload for POST /bet/ticket. Exactly one of
// the mode fields is populated per submission; the backend reads the payload
// shape as the mode selector.
type TicketCreate struct {
	HouseID int `json:"house_id"`

	// FR bets
	FRDirect map[string]float64 `json:"fr_direct,omitempty"`
	FRHouse  map[string]float64 `json:"fr_house,omitempty"`
	FREnding map[string]float64 `json:"fr_ending,omitempty"`

	// SR bets
	SRDirect map[string]float64 `json:"sr_direct,omitempty"`
	SRHouse  map[string]float64 `json:"sr_house,omitempty"`
	SREnding map[string]float64 `json:"sr_ending,omitempty"`

	// Forecast bets
	ForecastPairs []ForecastPair `json:"forecast_pairs,omitempty"`
	ForecastType  string         `json:"forecast_type,omitempty"` // "direct" | "house" | "ending"
}

type ForecastPair struct {
	FRNumber int     `json:"fr_number"`
	SRNumber int     `json:"sr_number"`
	Amount   float64 `json:"amount"`
}

type TicketResponse struct {
	TicketID             string    `json:"ticket_id"`
	UserID               int       `json:"user_id"`
	HouseID              int       `json:"house_id"`
	HouseName            string    `json:"house_name,omitempty"`
	TotalAmount          float64   `json:"total_amount"`
	TotalPotentialPayout float64   `json:"total_potential_payout"`
	Status               string    `json:"status"`
	CreatedAt            time.Time `json:"created_at"`
}
