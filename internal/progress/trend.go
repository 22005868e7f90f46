package progress

import (
	"fmt"

	"coachtrack/internal/model"
)

// ScalingFactors computes the per-task ratios that rescale each series onto
// the asks unit: factor(T) = minimal(asks)/minimal(T), with asks pinned to 1.
// A missing or non-positive minimal is a data-quality error, not something
// to coerce: the factors (and the baseline, which needs minimal(asks)) would
// be garbage.
func ScalingFactors(minimals map[model.TaskKey]float64) (map[model.TaskKey]float64, error) {
	anchor := minimals[model.KeyAsks]
	if anchor <= 0 {
		return nil, fmt.Errorf("task type %q has no minimal amount configured", model.KeyAsks)
	}
	factors := make(map[model.TaskKey]float64, len(model.TaskKeys))
	for _, k := range model.TaskKeys {
		if k == model.KeyAsks {
			factors[k] = 1
			continue
		}
		m := minimals[k]
		if m <= 0 {
			return nil, fmt.Errorf("task type %q has no minimal amount configured", k)
		}
		factors[k] = anchor / m
	}
	return factors, nil
}

// BuildTrend turns raw daily counts into the cumulative trend series: per
// task type a running sum rescaled by its factor, a running gross-revenue
// sum, and the linear on-pace baseline minimal(asks)/7 per day. The input
// must be in chronological order; every output series is non-decreasing.
func BuildTrend(days []model.DailyCounts, minimals map[model.TaskKey]float64) ([]model.DailyTrendPoint, error) {
	factors, err := ScalingFactors(minimals)
	if err != nil {
		return nil, err
	}
	baselineDaily := minimals[model.KeyAsks] / 7

	var running model.TaskCounts
	revenue := 0.0
	points := make([]model.DailyTrendPoint, 0, len(days))
	for i, d := range days {
		for _, k := range model.TaskKeys {
			running.Add(k, d.Get(k))
		}
		revenue += d.GrossRevenue

		p := model.DailyTrendPoint{
			Day:          d.Day,
			GrossRevenue: revenue,
			Baseline:     baselineDaily * float64(i+1),
		}
		for _, k := range model.TaskKeys {
			p.SetMetric(k, float64(running.Get(k))*factors[k])
		}
		points = append(points, p)
	}
	return points, nil
}
