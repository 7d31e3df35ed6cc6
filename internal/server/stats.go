// internal/server/stats.go
package server

import "sync/atomic"

// Stats counts wire-level events. Fields are written with atomic adds
// while Serve runs; read them through Snapshot.
type Stats struct {
	Requests   int64 // well-formed requests addressed to this slave
	Replies    int64 // reply frames written
	Silent     int64 // requests deliberately answered with nothing
	Exceptions int64 // exception frames written
	IDDrops    int64 // frames for other slave ids
	CrcErrors  int64 // bursts dropped on checksum
	Framing    int64 // bursts dropped on framing
}

// Snapshot returns a consistent copy of the counters for shutdown
// reporting.
func (s *Server) Snapshot() Stats {
	return Stats{
		Requests:   atomic.LoadInt64(&s.stats.Requests),
		Replies:    atomic.LoadInt64(&s.stats.Replies),
		Silent:     atomic.LoadInt64(&s.stats.Silent),
		Exceptions: atomic.LoadInt64(&s.stats.Exceptions),
		IDDrops:    atomic.LoadInt64(&s.stats.IDDrops),
		CrcErrors:  atomic.LoadInt64(&s.stats.CrcErrors),
		Framing:    atomic.LoadInt64(&s.stats.Framing),
	}
}
