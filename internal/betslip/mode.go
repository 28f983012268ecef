package betslip

// Round identifies which daily round a number bet targets.
type Round string

const (
	RoundFR Round = "FR"
	RoundSR Round = "SR"
)

// Mode enumerates the game modes a slip can be opened for. Direct, House and
// Ending are further parameterized by Round; the forecast modes always span
// both rounds.
type Mode int

const (
	Direct Mode = iota
	House
	Ending
	ForecastDirect
	ForecastHouse
	ForecastEnding
)

type modeConfig struct {
	name     string
	arity    int // digits per wagered number
	rangeMax int
	pad      bool // single-digit input is left-padded ("7" -> "07")
	forecast bool
	fcType   string // forecast_type discriminator on the wire
}

var modeTable = [...]modeConfig{
	Direct:         {name: "direct", arity: 2, rangeMax: 99, pad: true},
	House:          {name: "house", arity: 1, rangeMax: 9},
	Ending:         {name: "ending", arity: 1, rangeMax: 9},
	ForecastDirect: {name: "forecast_direct", arity: 2, rangeMax: 99, pad: true, forecast: true, fcType: "direct"},
	ForecastHouse:  {name: "forecast_house", arity: 1, rangeMax: 9, forecast: true, fcType: "house"},
	ForecastEnding: {name: "forecast_ending", arity: 1, rangeMax: 9, forecast: true, fcType: "ending"},
}

func (m Mode) cfg() modeConfig { return modeTable[m] }

func (m Mode) String() string { return m.cfg().name }

// IsForecast reports whether the mode wagers FR/SR pairs.
func (m Mode) IsForecast() bool { return m.cfg().forecast }

// ForecastType returns the wire discriminator ("direct", "house", "ending"),
// or "" for non-forecast modes.
func (m Mode) ForecastType() string { return m.cfg().fcType }

// RangeMax is the highest wagerable value for the mode.
func (m Mode) RangeMax() int { return m.cfg().rangeMax }

// RoundKey maps the mode to the key used by the catalog's rounds/game_types
// maps: "FR", "SR" or "FORECAST".
func (m Mode) RoundKey(r Round) string {
	if m.IsForecast() {
		return "FORECAST"
	}
	return string(r)
}
