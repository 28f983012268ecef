package simulator

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/teerhub/teer-core/internal/api/dto"
)

// ticketSummary describes the single populated mode of a validated payload.
type ticketSummary struct {
	BetType string // "fr_direct", ..., "forecast_ending"
	Lines   int
	Total   float64
	MaxLine float64
}

// validateTicket enforces the submission contract: exactly one mode field
// populated, numbers within the mode's range, amounts positive.
func validateTicket(t dto.TicketCreate) (ticketSummary, error) {
	var s ticketSummary

	type numberField struct {
		name     string
		rangeMax int
		numbers  map[string]float64
	}
	fields := []numberField{
		{"fr_direct", 99, t.FRDirect},
		{"fr_house", 9, t.FRHouse},
		{"fr_ending", 9, t.FREnding},
		{"sr_direct", 99, t.SRDirect},
		{"sr_house", 9, t.SRHouse},
		{"sr_ending", 9, t.SREnding},
	}

	populated := 0
	for _, f := range fields {
		if len(f.numbers) == 0 {
			continue
		}
		populated++
		s.BetType = f.name
		s.Lines = len(f.numbers)
		for num, amount := range f.numbers {
			v, err := strconv.Atoi(num)
			if err != nil || v < 0 || v > f.rangeMax {
				return s, fmt.Errorf("%s: number %q must be between 0 and %d", f.name, num, f.rangeMax)
			}
			if amount <= 0 {
				return s, fmt.Errorf("%s: amount must be positive for number %s", f.name, num)
			}
			s.Total += amount
			if amount > s.MaxLine {
				s.MaxLine = amount
			}
		}
	}

	if len(t.ForecastPairs) > 0 {
		populated++
		rangeMax := 9
		switch t.ForecastType {
		case "direct":
			rangeMax = 99
		case "house", "ending":
		default:
			return s, errors.New("forecast_type must be direct, house, or ending")
		}
		s.BetType = "forecast_" + t.ForecastType
		s.Lines = len(t.ForecastPairs)
		for _, p := range t.ForecastPairs {
			if p.FRNumber < 0 || p.FRNumber > rangeMax || p.SRNumber < 0 || p.SRNumber > rangeMax {
				return s, fmt.Errorf("forecast numbers must be between 0 and %d", rangeMax)
			}
			if p.Amount <= 0 {
				return s, errors.New("forecast amounts must be positive")
			}
			s.Total += p.Amount
			if p.Amount > s.MaxLine {
				s.MaxLine = p.Amount
			}
		}
	}

	switch populated {
	case 0:
		return s, errors.New("at least one bet field is required")
	case 1:
		return s, nil
	default:
		return s, errors.New("only one bet field may be populated per ticket")
	}
}
