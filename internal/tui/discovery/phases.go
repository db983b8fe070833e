package discovery

import (
	"math"
	"time"
)

// Phase is one timed stage of the discovery animation.
type Phase struct {
	Title       string
	Description string
	Duration    time.Duration
}

// Phases run in order, each filling an equal share of the progress bar.
var Phases = []Phase{
	{
		Title:       "Scanning Social Platforms",
		Description: "Searching Instagram and YouTube for relevant influencers...",
		Duration:    2 * time.Second,
	},
	{
		Title:       "Analyzing Brand Fit",
		Description: "Evaluating content alignment with your brand values...",
		Duration:    3 * time.Second,
	},
	{
		Title:       "Checking Audience Match",
		Description: "Analyzing follower demographics and engagement patterns...",
		Duration:    2500 * time.Millisecond,
	},
	{
		Title:       "Calculating Match Scores",
		Description: "Ranking influencers by compatibility...",
		Duration:    2 * time.Second,
	},
}

const (
	// TickInterval is how often progress advances.
	TickInterval = 50 * time.Millisecond
	// HoldDuration is how long the finished screen stays up.
	HoldDuration = time.Second
)

// ticksFor returns how many ticks a phase lasts at speed. Faster speeds
// shorten phases but every phase takes at least one tick.
func ticksFor(p Phase, speed float64) int {
	if speed <= 0 {
		speed = 1
	}
	scaled := float64(p.Duration) / speed
	return max(int(math.Ceil(scaled/float64(TickInterval))), 1)
}

// holdFor scales the completion hold by speed.
func holdFor(speed float64) time.Duration {
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(HoldDuration) / speed)
}
