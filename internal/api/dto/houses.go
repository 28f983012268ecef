package dto

import "time"

// House carries the read-only house configuration, including the per-mode
// payout multipliers the payout calculator is parameterized by.
type House struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	IsActive bool   `json:"is_active"`

	FRDirectPayoutRate float64 `json:"fr_direct_payout_rate"`
	FRHousePayoutRate  float64 `json:"fr_house_payout_rate"`
	FREndingPayoutRate float64 `json:"fr_ending_payout_rate"`

	SRDirectPayoutRate float64 `json:"sr_direct_payout_rate"`
	SRHousePayoutRate  float64 `json:"sr_house_payout_rate"`
	SREndingPayoutRate float64 `json:"sr_ending_payout_rate"`

	ForecastDirectPayoutRate float64 `json:"forecast_direct_payout_rate"`
	ForecastHousePayoutRate  float64 `json:"forecast_house_payout_rate"`
	ForecastEndingPayoutRate float64 `json:"forecast_ending_payout_rate"`
}

type Round struct {
	ID              int       `json:"id"`
	RoundType       string    `json:"round_type"` // "FR" | "SR" | "FORECAST"
	Status          string    `json:"status"`
	ScheduledTime   time.Time `json:"scheduled_time"`
	BettingClosesAt time.Time `json:"betting_closes_at"`
}

type GameType struct {
	Available bool `json:"available"`
}

// HouseWithRounds is one element of the GET /bet/houses-with-rounds response.
// Rounds and GameTypes are keyed by "FR", "SR" and "FORECAST".
type HouseWithRounds struct {
	House     House               `json:"house"`
	Rounds    map[string]*Round   `json:"rounds"`
	GameTypes map[string]GameType `json:"game_types"`
}
