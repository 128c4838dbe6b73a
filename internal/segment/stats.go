package segment

import (
	"github.com/sells-group/leads-cli/internal/model"
)

// Stats are the dashboard summary aggregates over a (usually filtered)
// lead collection. Pure reductions, recomputed per query.
type Stats struct {
	Total      int                  `json:"total"`
	ByStatus   map[model.Status]int `json:"by_status"`
	TotalValue float64              `json:"total_value"`
}

// Summarize counts leads per normalized status and sums deal value.
func Summarize(leads []model.Lead) Stats {
	s := Stats{ByStatus: make(map[model.Status]int, len(model.AllStatuses))}
	for _, status := range model.AllStatuses {
		s.ByStatus[status] = 0
	}
	for _, l := range leads {
		s.Total++
		s.ByStatus[model.NormalizeStatus(l.Status)]++
		s.TotalValue += l.Value
	}
	return s
}
