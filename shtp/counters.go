package shtp

import "sync"

// Counters holds the endpoint's diagnostic statistics. They are not part
// of the wire protocol; they exist for observability (see the metrics
// package).
type Counters struct {
	RxBadChannel           uint64
	RxShortFragments       uint64
	RxTooLargePayloads     uint64
	RxInterruptedPayloads  uint64
	TxBadChannel           uint64
	TxDiscards             uint64
	TxTooLargePayloads     uint64
}

// counterSet is the mutable half of Counters, guarded by its own mutex so
// a metrics goroutine can poll it without coordinating with the owning
// goroutine's Send/Service calls.
type counterSet struct {
	mutex sync.Mutex
	c     Counters
}

func (s *counterSet) incRxBadChannel()          { s.mutex.Lock(); s.c.RxBadChannel++; s.mutex.Unlock() }
func (s *counterSet) incRxShortFragments()       { s.mutex.Lock(); s.c.RxShortFragments++; s.mutex.Unlock() }
func (s *counterSet) incRxTooLargePayloads()     { s.mutex.Lock(); s.c.RxTooLargePayloads++; s.mutex.Unlock() }
func (s *counterSet) incRxInterruptedPayloads()  { s.mutex.Lock(); s.c.RxInterruptedPayloads++; s.mutex.Unlock() }
func (s *counterSet) incTxBadChannel()           { s.mutex.Lock(); s.c.TxBadChannel++; s.mutex.Unlock() }
func (s *counterSet) incTxDiscards()             { s.mutex.Lock(); s.c.TxDiscards++; s.mutex.Unlock() }
func (s *counterSet) incTxTooLargePayloads()     { s.mutex.Lock(); s.c.TxTooLargePayloads++; s.mutex.Unlock() }

// snapshot returns a value copy of the counters, safe to call from any
// goroutine.
func (s *counterSet) snapshot() Counters {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.c
}

// Counters returns a snapshot of the endpoint's diagnostic statistics.
// Safe to call concurrently with Send/Service from another goroutine —
// this is the one read-only exception to the endpoint's single-threaded
// cooperative model.
func (e *Endpoint) Counters() Counters {
	return e.counters.snapshot()
}
