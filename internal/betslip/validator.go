package betslip

import (
	"fmt"
	"math"
	"strconv"
)

// NormalizeNumber validates raw input for the mode and returns the canonical
// key. Direct-style modes accept one or two digits and left-pad to two
// ("7" -> "07"); House/Ending accept exactly one digit and are never padded.
func NormalizeNumber(m Mode, raw string) (string, error) {
	cfg := m.cfg()

	if raw == "" {
		return "", fmt.Errorf("number required: %w", ErrOutOfRange)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return "", fmt.Errorf("number %q is not numeric: %w", raw, ErrOutOfRange)
		}
	}

	if cfg.pad {
		if len(raw) > cfg.arity {
			return "", fmt.Errorf("number %q must have at most %d digits: %w", raw, cfg.arity, ErrOutOfRange)
		}
	} else if len(raw) != cfg.arity {
		return "", fmt.Errorf("number %q must have exactly %d digit(s): %w", raw, cfg.arity, ErrOutOfRange)
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 || v > cfg.rangeMax {
		return "", fmt.Errorf("number %q must be between 0 and %d: %w", raw, cfg.rangeMax, ErrOutOfRange)
	}

	for cfg.pad && len(raw) < cfg.arity {
		raw = "0" + raw
	}
	return raw, nil
}

// CheckAmount rejects non-positive or non-finite stake amounts.
func CheckAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return fmt.Errorf("amount must be a positive number: %w", ErrInvalidAmount)
	}
	return nil
}

// CheckBalance is the per-line check applied at insertion time: each line is
// validated against the current balance alone, not against the running slip
// total. The aggregate total is checked only at submission.
func CheckBalance(amount, balance float64) error {
	if amount > balance {
		return fmt.Errorf("amount %.2f exceeds balance %.2f: %w", amount, balance, ErrInsufficientFunds)
	}
	return nil
}

// ForecastKey builds the composite store key for a forecast pair.
func ForecastKey(fr, sr string) string { return fr + "-" + sr }
