package betslip

// Totals is the derived view of a slip, recomputed from the lines on every
// call rather than cached.
type Totals struct {
	TotalStake         float64
	MaxPotentialPayout float64
}

// ComputeTotals sums the stake and derives the worst-case exposure. Exactly
// one wagered combination can match the published result in a round, so only
// the single highest-amount line can ever pay out: the exposure is
// max(line amount) x rate, not the sum of all potential payouts.
func ComputeTotals(lines []Line, payoutRate float64) Totals {
	var t Totals
	var maxAmount float64
	for _, ln := range lines {
		t.TotalStake += ln.Amount
		if ln.Amount > maxAmount {
			maxAmount = ln.Amount
		}
	}
	t.MaxPotentialPayout = maxAmount * payoutRate
	return t
}
