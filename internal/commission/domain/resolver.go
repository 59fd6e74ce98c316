package domain

import (
	"math"
	"sort"
)

type Result struct {
	AttainmentPct float64 `json:"percentual_atingido"`
	Multiplier    float64 `json:"multiplicador"`
	Payout        float64 `json:"valor"`
}

// Resolve picks the multiplier for a floored attainment percentage. Tiers
// are scanned by descending percentual_minimo; the first band containing
// the percentage wins, an open-ended maximum accepts anything at or above
// its minimum. No matching band resolves to 0.
func Resolve(attainmentPct float64, tiers []CommissionTier) float64 {
	floored := int(math.Floor(attainmentPct))

	ordered := make([]CommissionTier, len(tiers))
	copy(ordered, tiers)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].PercentualMinimo > ordered[b].PercentualMinimo
	})

	for _, tier := range ordered {
		if floored < tier.PercentualMinimo {
			continue
		}
		if tier.PercentualMaximo >= MaximoAberto || floored <= tier.PercentualMaximo {
			return tier.Multiplicador
		}
	}
	return 0
}

// Compute derives the payable commission for points earned against a goal.
// A zero goal short-circuits to a zero result instead of propagating a
// division by zero. Empty tier tables fall back to DefaultTiers.
func Compute(points, goal, weeklyVariable float64, tiers []CommissionTier) Result {
	if goal <= 0 {
		return Result{}
	}
	if len(tiers) == 0 {
		tiers = DefaultTiers
	}

	attainment := points / goal * 100
	multiplier := Resolve(attainment, tiers)
	return Result{
		AttainmentPct: attainment,
		Multiplier:    multiplier,
		Payout:        weeklyVariable * multiplier,
	}
}
