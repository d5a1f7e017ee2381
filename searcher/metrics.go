package searcher

import "time"

// Stats describes the most recent search. CacheHits and CacheMisses count
// tree reuse attempts since the engine was created or last Reset.
type Stats struct {
	Simulations  int
	FullPlayouts int
	Iterations   int
	AverageDepth float64
	MaxDepth     int
	RootVisits   int
	CacheHits    int
	CacheMisses  int
	Duration     time.Duration
	TreeReused   bool

	depthSum int
}

func (s *Stats) observeDepth(depth int) {
	s.Iterations++
	s.depthSum += depth
	s.AverageDepth = float64(s.depthSum) / float64(s.Iterations)
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
}
