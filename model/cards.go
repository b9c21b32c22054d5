package model

import "math"

// Cards holds the dashboard summary tiles computed from the latest run and
// the currently loaded case list.
type Cards struct {
	Total int `json:"total"`
	Pass  int `json:"pass"`
	Fail  int `json:"fail"`
	New   int `json:"new"`
	Rate  int `json:"rate"`
}

// ComputeCards derives the dashboard tiles. Rate is the pass percentage of
// the latest run — rounded half to even, so 12.5% reads as 12 — and 0 when
// the run is empty or absent. New is currently defined as Total: a
// placeholder with no recency rule attached, kept as-is until one is
// specified.
func ComputeCards(latest *RunRecord, cases []TestCase) Cards {
	c := Cards{Total: len(cases)}
	if latest != nil {
		c.Pass = latest.Summary.Pass
		c.Fail = latest.Summary.Fail
		if denom := latest.Summary.Pass + latest.Summary.Fail + latest.Summary.Error; denom > 0 {
			c.Rate = int(math.RoundToEven(float64(latest.Summary.Pass) / float64(denom) * 100))
		}
	}
	c.New = c.Total
	return c
}
