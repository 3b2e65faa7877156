package regret

// Params are the configuration options for how a Player accumulates regret.
// An empty Params struct is valid: each round's counterfactual regrets are
// clamped at zero before they are accumulated, so cumulative regret never
// decreases.
type Params struct {
	// AccumulateRawRegret adds counterfactual regrets unclamped, so negative
	// regret is only dropped when the next strategy is derived.
	AccumulateRawRegret bool
	// UseRegretMatchingPlus floors the cumulative regret at zero after
	// every accrual (RM+).
	UseRegretMatchingPlus bool
}
