package catalog

import (
	"time"

	"github.com/teerhub/teer-core/internal/api/dto"
	"github.com/teerhub/teer-core/internal/betslip"
)

// HouseView is a read-only view over one house's configuration and open
// rounds. It implements betslip.HouseContext.
type HouseView struct {
	data dto.HouseWithRounds
}

func NewHouseView(d dto.HouseWithRounds) *HouseView { return &HouseView{data: d} }

func (v *HouseView) HouseID() int { return v.data.House.ID }
func (v *HouseView) Name() string { return v.data.House.Name }

// PayoutRate resolves the house's multiplier for a mode/round combination.
func (v *HouseView) PayoutRate(m betslip.Mode, r betslip.Round) float64 {
	h := v.data.House
	switch m {
	case betslip.Direct:
		if r == betslip.RoundSR {
			return h.SRDirectPayoutRate
		}
		return h.FRDirectPayoutRate
	case betslip.House:
		if r == betslip.RoundSR {
			return h.SRHousePayoutRate
		}
		return h.FRHousePayoutRate
	case betslip.Ending:
		if r == betslip.RoundSR {
			return h.SREndingPayoutRate
		}
		return h.FREndingPayoutRate
	case betslip.ForecastDirect:
		return h.ForecastDirectPayoutRate
	case betslip.ForecastHouse:
		return h.ForecastHousePayoutRate
	case betslip.ForecastEnding:
		return h.ForecastEndingPayoutRate
	}
	return 0
}

// Available reports whether the game type is open and an active round exists.
// Close timestamps are enforced server-side; TimeUntilClose is for display.
func (v *HouseView) Available(m betslip.Mode, r betslip.Round) bool {
	key := m.RoundKey(r)
	gt, ok := v.data.GameTypes[key]
	if !ok || !gt.Available {
		return false
	}
	rd, ok := v.data.Rounds[key]
	return ok && rd != nil
}

// Round returns the open round for the mode, or nil.
func (v *HouseView) Round(m betslip.Mode, r betslip.Round) *dto.Round {
	return v.data.Rounds[m.RoundKey(r)]
}

// TimeUntilClose returns the remaining betting window. ok is false when no
// round is open; a non-positive duration means betting has closed.
func (v *HouseView) TimeUntilClose(m betslip.Mode, r betslip.Round, now time.Time) (time.Duration, bool) {
	rd := v.Round(m, r)
	if rd == nil {
		return 0, false
	}
	return rd.BettingClosesAt.Sub(now), true
}
