package simulator

import (
	"time"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// Fixed house catalog with the customary Teer payout multipliers.
var houseCatalog = []dto.House{
	{
		ID: 1, Name: "Shillong", Location: "Meghalaya", IsActive: true,
		FRDirectPayoutRate: 70, FRHousePayoutRate: 7, FREndingPayoutRate: 7,
		SRDirectPayoutRate: 60, SRHousePayoutRate: 6, SREndingPayoutRate: 6,
		ForecastDirectPayoutRate: 400, ForecastHousePayoutRate: 40, ForecastEndingPayoutRate: 40,
	},
	{
		ID: 2, Name: "Khanapara", Location: "Assam", IsActive: true,
		FRDirectPayoutRate: 80, FRHousePayoutRate: 8, FREndingPayoutRate: 8,
		SRDirectPayoutRate: 70, SRHousePayoutRate: 7, SREndingPayoutRate: 7,
		ForecastDirectPayoutRate: 450, ForecastHousePayoutRate: 45, ForecastEndingPayoutRate: 45,
	},
}

// Daily schedule (UTC): FR result at 15:30, SR at 16:30; betting closes 30
// minutes before each result. Forecast closes with FR.
var roundSchedule = []struct {
	roundType string
	scheduled time.Duration
	closes    time.Duration
}{
	{"FR", 15*time.Hour + 30*time.Minute, 15 * time.Hour},
	{"SR", 16*time.Hour + 30*time.Minute, 16 * time.Hour},
	{"FORECAST", 15*time.Hour + 30*time.Minute, 15 * time.Hour},
}

// catalogFor builds the houses-with-rounds response for the given instant.
// Rounds whose close time has passed roll over to the next day.
func catalogFor(now time.Time) []dto.HouseWithRounds {
	day := now.UTC().Truncate(24 * time.Hour)

	out := make([]dto.HouseWithRounds, 0, len(houseCatalog))
	for _, h := range houseCatalog {
		rounds := make(map[string]*dto.Round, len(roundSchedule))
		gameTypes := make(map[string]dto.GameType, len(roundSchedule))
		for i, rs := range roundSchedule {
			d := day
			if !now.Before(d.Add(rs.closes)) {
				d = d.Add(24 * time.Hour)
			}
			rounds[rs.roundType] = &dto.Round{
				ID:              h.ID*100000 + d.YearDay()*10 + i,
				RoundType:       rs.roundType,
				Status:          "scheduled",
				ScheduledTime:   d.Add(rs.scheduled),
				BettingClosesAt: d.Add(rs.closes),
			}
			gameTypes[rs.roundType] = dto.GameType{Available: true}
		}
		out = append(out, dto.HouseWithRounds{House: h, Rounds: rounds, GameTypes: gameTypes})
	}
	return out
}

// houseByID returns the fixture house, or nil.
func houseByID(id int) *dto.House {
	for i := range houseCatalog {
		if houseCatalog[i].ID == id {
			return &houseCatalog[i]
		}
	}
	return nil
}

// payoutRateFor resolves the fixture multiplier for a validated bet type.
func payoutRateFor(h *dto.House, betType string) float64 {
	switch betType {
	case "fr_direct":
		return h.FRDirectPayoutRate
	case "fr_house":
		return h.FRHousePayoutRate
	case "fr_ending":
		return h.FREndingPayoutRate
	case "sr_direct":
		return h.SRDirectPayoutRate
	case "sr_house":
		return h.SRHousePayoutRate
	case "sr_ending":
		return h.SREndingPayoutRate
	case "forecast_direct":
		return h.ForecastDirectPayoutRate
	case "forecast_house":
		return h.ForecastHousePayoutRate
	case "forecast_ending":
		return h.ForecastEndingPayoutRate
	}
	return 0
}
