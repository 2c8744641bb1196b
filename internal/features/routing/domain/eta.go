package domain

import "time"

// Propagate shifts ETA and ExpectedArrival of every stop after nodeIndex by delay.
// Stops at or before nodeIndex are untouched. A negative delay is treated as zero,
// so timestamps never move backward. The input route is not modified.
func Propagate(route []RouteNode, nodeIndex int, delay time.Duration) []RouteNode {
	out := CloneRoute(route)
	if delay <= 0 {
		return out
	}

	start := nodeIndex + 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(out); i++ {
		if out[i].ETA != nil {
			shifted := out[i].ETA.Add(delay)
			out[i].ETA = &shifted
		}
		if out[i].ExpectedArrival != nil {
			shifted := out[i].ExpectedArrival.Add(delay)
			out[i].ExpectedArrival = &shifted
		}
	}
	return out
}

// HoursToDuration converts fractional hours to a duration.
func HoursToDuration(hours float64) time.Duration {
	return hoursToDuration(hours)
}
