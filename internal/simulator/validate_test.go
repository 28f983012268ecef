package simulator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teerhub/teer-core/internal/api/dto"
)

func TestValidateTicketSingleField(t *testing.T) {
	sum, err := validateTicket(dto.TicketCreate{
		HouseID:  1,
		FRDirect: map[string]float64{"07": 50, "45": 80},
	})
	require.NoError(t, err)
	require.Equal(t, "fr_direct", sum.BetType)
	require.Equal(t, 2, sum.Lines)
	require.Equal(t, 130.0, sum.Total)
	require.Equal(t, 80.0, sum.MaxLine)
}

func TestValidateTicketRejectsMultipleFields(t *testing.T) {
	_, err := validateTicket(dto.TicketCreate{
		HouseID:  1,
		FRDirect: map[string]float64{"07": 50},
		SRHouse:  map[string]float64{"3": 10},
	})
	require.Error(t, err)
}

func TestValidateTicketRejectsEmpty(t *testing.T) {
	_, err := validateTicket(dto.TicketCreate{HouseID: 1})
	require.Error(t, err)
}

func TestValidateTicketRanges(t *testing.T) {
	_, err := validateTicket(dto.TicketCreate{FRDirect: map[string]float64{"100": 10}})
	require.Error(t, err)

	// house/ending are single-digit games
	_, err = validateTicket(dto.TicketCreate{SRHouse: map[string]float64{"10": 10}})
	require.Error(t, err)

	sum, err := validateTicket(dto.TicketCreate{SREnding: map[string]float64{"9": 10}})
	require.NoError(t, err)
	require.Equal(t, "sr_ending", sum.BetType)
}

func TestValidateTicketRejectsNonPositiveAmounts(t *testing.T) {
	_, err := validateTicket(dto.TicketCreate{FRDirect: map[string]float64{"07": 0}})
	require.Error(t, err)

	_, err = validateTicket(dto.TicketCreate{ForecastPairs: []dto.ForecastPair{{FRNumber: 1, SRNumber: 2, Amount: -5}}, ForecastType: "house"})
	require.Error(t, err)
}

func TestValidateTicketForecast(t *testing.T) {
	sum, err := validateTicket(dto.TicketCreate{
		ForecastPairs: []dto.ForecastPair{
			{FRNumber: 3, SRNumber: 45, Amount: 10},
			{FRNumber: 12, SRNumber: 7, Amount: 25},
		},
		ForecastType: "direct",
	})
	require.NoError(t, err)
	require.Equal(t, "forecast_direct", sum.BetType)
	require.Equal(t, 35.0, sum.Total)
	require.Equal(t, 25.0, sum.MaxLine)

	// two-digit numbers only fit the direct variant
	_, err = validateTicket(dto.TicketCreate{
		ForecastPairs: []dto.ForecastPair{{FRNumber: 12, SRNumber: 7, Amount: 10}},
		ForecastType:  "ending",
	})
	require.Error(t, err)

	_, err = validateTicket(dto.TicketCreate{
		ForecastPairs: []dto.ForecastPair{{FRNumber: 1, SRNumber: 2, Amount: 10}},
		ForecastType:  "jackpot",
	})
	require.Error(t, err)
}
