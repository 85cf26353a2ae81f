// Package memory holds in-process implementations of the repository interfaces.
// They back the service and handler tests and mirror the MongoDB semantics the
// services rely on: unique review per booking, guarded state writes and the
// per-sitter acceptance lock.
package memory

import (
	"sync"
)

// Store is one in-memory database shared by all repositories built from it.
type Store struct {
	mu sync.RWMutex

	bookings       map[string]bookingRow
	reviews        map[string]reviewRow // keyed by booking id
	petTypes       map[string]petTypeRow
	serviceTypes   map[string]serviceTypeRow
	sitterServices map[string]sitterServiceRow
	paymentMethods map[string]paymentMethodRow
	accounts       map[string]accountRow

	locksMu     sync.Mutex
	sitterLocks map[string]*sync.Mutex

	seq int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		bookings:       map[string]bookingRow{},
		reviews:        map[string]reviewRow{},
		petTypes:       map[string]petTypeRow{},
		serviceTypes:   map[string]serviceTypeRow{},
		sitterServices: map[string]sitterServiceRow{},
		paymentMethods: map[string]paymentMethodRow{},
		accounts:       map[string]accountRow{},
		sitterLocks:    map[string]*sync.Mutex{},
	}
}

// next returns an insertion sequence number, used to break ordering ties.
func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func (s *Store) sitterLock(sitterID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.sitterLocks[sitterID]
	if !ok {
		l = &sync.Mutex{}
		s.sitterLocks[sitterID] = l
	}
	return l
}
