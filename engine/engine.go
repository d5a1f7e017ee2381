package engine

import "isolation/experiments/metrics"

type Engine interface {
	// Run plays a game until there's a winner or the turn cap is reached
	Run() (winner string, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
