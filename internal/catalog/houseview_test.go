package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/teerhub/teer-core/internal/api/dto"
	"github.com/teerhub/teer-core/internal/betslip"
)

func testHouse(closesAt time.Time) dto.HouseWithRounds {
	return dto.HouseWithRounds{
		House: dto.House{
			ID:       1,
			Name:     "Shillong",
			IsActive: true,

			FRDirectPayoutRate: 70,
			FRHousePayoutRate:  7,
			FREndingPayoutRate: 7,
			SRDirectPayoutRate: 60,
			SRHousePayoutRate:  6,
			SREndingPayoutRate: 6,

			ForecastDirectPayoutRate: 400,
			ForecastHousePayoutRate:  40,
			ForecastEndingPayoutRate: 40,
		},
		Rounds: map[string]*dto.Round{
			"FR":       {ID: 101, RoundType: "FR", Status: "scheduled", BettingClosesAt: closesAt},
			"FORECAST": {ID: 103, RoundType: "FR", Status: "scheduled", BettingClosesAt: closesAt},
		},
		GameTypes: map[string]dto.GameType{
			"FR":       {Available: true},
			"SR":       {Available: true},
			"FORECAST": {Available: true},
		},
	}
}

func TestHouseViewPayoutRates(t *testing.T) {
	v := NewHouseView(testHouse(time.Now()))

	cases := []struct {
		mode  betslip.Mode
		round betslip.Round
		want  float64
	}{
		{betslip.Direct, betslip.RoundFR, 70},
		{betslip.Direct, betslip.RoundSR, 60},
		{betslip.House, betslip.RoundFR, 7},
		{betslip.House, betslip.RoundSR, 6},
		{betslip.Ending, betslip.RoundFR, 7},
		{betslip.Ending, betslip.RoundSR, 6},
		{betslip.ForecastDirect, betslip.RoundFR, 400},
		{betslip.ForecastHouse, betslip.RoundFR, 40},
		{betslip.ForecastEnding, betslip.RoundSR, 40},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, v.PayoutRate(tc.mode, tc.round), "%s/%s", tc.mode, tc.round)
	}
}

func TestHouseViewAvailability(t *testing.T) {
	v := NewHouseView(testHouse(time.Now()))

	require.True(t, v.Available(betslip.Direct, betslip.RoundFR))
	// forecast modes resolve through the shared FORECAST round
	require.True(t, v.Available(betslip.ForecastHouse, betslip.RoundSR))
	// game type open but no round scheduled
	require.False(t, v.Available(betslip.Direct, betslip.RoundSR))
}

func TestHouseViewTimeUntilClose(t *testing.T) {
	now := time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)
	v := NewHouseView(testHouse(now.Add(30 * time.Minute)))

	d, ok := v.TimeUntilClose(betslip.Direct, betslip.RoundFR, now)
	require.True(t, ok)
	require.Equal(t, 30*time.Minute, d)

	// past close: still a round, but the remaining window is negative
	d, ok = v.TimeUntilClose(betslip.Direct, betslip.RoundFR, now.Add(time.Hour))
	require.True(t, ok)
	require.Negative(t, d)

	_, ok = v.TimeUntilClose(betslip.Direct, betslip.RoundSR, now)
	require.False(t, ok)
}
