package betslip

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// BuildTicket maps a slip's lines into the submission payload for its mode.
// Only the single mode's field is populated; the backend reads the payload
// shape as the mode selector.
func BuildTicket(houseID int, m Mode, r Round, lines []Line) (dto.TicketCreate, error) {
	t := dto.TicketCreate{HouseID: houseID}

	if m.IsForecast() {
		pairs := make([]dto.ForecastPair, 0, len(lines))
		for _, ln := range lines {
			fr, sr, ok := strings.Cut(ln.Key, "-")
			if !ok {
				return dto.TicketCreate{}, fmt.Errorf("malformed forecast key %q", ln.Key)
			}
			frN, err := strconv.Atoi(fr)
			if err != nil {
				return dto.TicketCreate{}, fmt.Errorf("malformed forecast key %q", ln.Key)
			}
			srN, err := strconv.Atoi(sr)
			if err != nil {
				return dto.TicketCreate{}, fmt.Errorf("malformed forecast key %q", ln.Key)
			}
			pairs = append(pairs, dto.ForecastPair{FRNumber: frN, SRNumber: srN, Amount: ln.Amount})
		}
		t.ForecastPairs = pairs
		t.ForecastType = m.ForecastType()
		return t, nil
	}

	numbers := make(map[string]float64, len(lines))
	for _, ln := range lines {
		numbers[ln.Key] = ln.Amount
	}

	switch {
	case m == Direct && r == RoundFR:
		t.FRDirect = numbers
	case m == Direct && r == RoundSR:
		t.SRDirect = numbers
	case m == House && r == RoundFR:
		t.FRHouse = numbers
	case m == House && r == RoundSR:
		t.SRHouse = numbers
	case m == Ending && r == RoundFR:
		t.FREnding = numbers
	case m == Ending && r == RoundSR:
		t.SREnding = numbers
	default:
		return dto.TicketCreate{}, fmt.Errorf("no wire field for mode %s round %s", m, r)
	}
	return t, nil
}
