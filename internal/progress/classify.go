package progress

import "coachtrack/internal/model"

// Classify assigns the activity status for one user and task type.
// recentTotal is the task's logged amount over the trailing 7 days,
// hasRecentActivity reports whether any task of any type was logged in the
// trailing 3 days. Inactivity is the stronger signal and short-circuits the
// volume tiers: a big 7-day total outside the 3-day window is still inactive.
func Classify(recentTotal float64, hasRecentActivity bool, minimal float64) model.Status {
	if minimal <= 0 {
		minimal = 1
	}
	switch {
	case !hasRecentActivity:
		return model.StatusInactive
	case recentTotal >= 2*minimal:
		return model.StatusExcellent
	case recentTotal <= 0.5*minimal:
		return model.StatusPoor
	default:
		return model.StatusNormal
	}
}
