package descriptions

import "sync/atomic"

// statistics holds the process-lifetime resolution counters. Increments are
// atomic so concurrent page renders never corrupt the counts; the struct is
// owned by one service instance, never package-global.
type statistics struct {
	remoteHits      atomic.Int64
	localHits       atomic.Int64
	misses          atomic.Int64
	errors          atomic.Int64
	remoteAvailable atomic.Bool
}

func newStatistics() *statistics {
	stats := &statistics{}
	stats.remoteAvailable.Store(true)
	return stats
}

func (s *statistics) recordRemoteHit() {
	s.remoteHits.Add(1)
	s.remoteAvailable.Store(true)
}

func (s *statistics) recordRemoteMiss() {
	s.remoteAvailable.Store(true)
}

func (s *statistics) recordRemoteError() {
	s.errors.Add(1)
	s.remoteAvailable.Store(false)
}

func (s *statistics) recordLocalHit() {
	s.localHits.Add(1)
}

func (s *statistics) recordMiss() {
	s.misses.Add(1)
}

// snapshot returns a value copy for callers.
func (s *statistics) snapshot() Stats {
	return Stats{
		RemoteHits:      s.remoteHits.Load(),
		LocalHits:       s.localHits.Load(),
		Misses:          s.misses.Load(),
		Errors:          s.errors.Load(),
		RemoteAvailable: s.remoteAvailable.Load(),
	}
}
