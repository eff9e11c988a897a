package service

// DailyBudgets splits a total budget into one figure per day using floor
// division. The remainder is deliberately not distributed, so the sum of
// the allocations never exceeds the total.
func DailyBudgets(total, days int) []int {
	if days <= 0 {
		return nil
	}
	per := total / days
	out := make([]int, days)
	for i := range out {
		out[i] = per
	}
	return out
}
