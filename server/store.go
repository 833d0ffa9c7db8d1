package server

import (
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/rs/xid"
)

const defaultResultTTL = time.Hour

// Store keeps finished plans retrievable for a bounded time.
type Store struct {
	results *cache.Cache
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultResultTTL
	}
	return &Store{results: cache.New(ttl, ttl)}
}

// Put stores a finished plan and returns its id.
func (s *Store) Put(res *PlanResponse) string {
	id := xid.New().String()
	res.PlanID = id
	s.results.SetDefault(id, res)
	return id
}

// Get recalls a stored plan.
func (s *Store) Get(id string) (*PlanResponse, bool) {
	v, ok := s.results.Get(id)
	if !ok {
		return nil, false
	}
	return v.(*PlanResponse), true
}

// Len returns the number of plans currently retrievable.
func (s *Store) Len() int {
	return s.results.ItemCount()
}
