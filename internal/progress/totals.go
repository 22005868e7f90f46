package progress

import "coachtrack/internal/model"

// BuildTotals folds per-user grid rows into the synthetic totals row.
// User rows carry plain per-week counts, so week N is first summed across
// users, then a second pass turns the summed weeks into a running cumulative
// total. Pipeline count and revenue are point-in-time snapshots and stay
// simple sums.
func BuildTotals(rows []model.UserRow) model.UserRow {
	totals := model.UserRow{
		ID:        model.TotalsRowID,
		FirstName: "—",
		LastName:  "TOTAL",
	}
	for _, r := range rows {
		for w := 0; w < model.CourseWeeks; w++ {
			totals.Weeks[w] += r.Weeks[w]
		}
		totals.PipelineCount += r.PipelineCount
		totals.PipelineRevenue += r.PipelineRevenue
	}
	cumulative := 0
	for w := 0; w < model.CourseWeeks; w++ {
		cumulative += totals.Weeks[w]
		totals.Weeks[w] = cumulative
	}
	return totals
}
