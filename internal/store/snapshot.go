package store

import "github.com/heartmarshall/nivara-backend/internal/domain"

// Snapshot is a consistent copy of a profile's state plus derived values.
type Snapshot struct {
	Profile     string                 `json:"profile"`
	Preferences domain.Preferences     `json:"preferences"`
	Theme       domain.Theme           `json:"theme"`
	History     []domain.HistoryRecord `json:"history"`
	Tracker     []domain.TrackerItem   `json:"tracker"`
	Community   []domain.CommunityPost `json:"community"`
	Cart        []int                  `json:"cart"`
	CartTotal   int                    `json:"cartTotal"`
	Products    []domain.Product       `json:"products"`
}

// Snapshot returns every collection as of one instant.
func (s *Store) Snapshot() Snapshot {
	s.mustBeReady()
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]domain.HistoryRecord, len(s.history))
	for i, r := range s.history {
		history[i] = cloneRecord(r)
	}
	posts := make([]domain.CommunityPost, len(s.posts))
	for i, p := range s.posts {
		if p.ExpertReply != nil {
			reply := *p.ExpertReply
			p.ExpertReply = &reply
		}
		posts[i] = p
	}
	cart := make([]int, len(s.cart))
	copy(cart, s.cart)
	tracker := make([]domain.TrackerItem, len(s.tracker))
	copy(tracker, s.tracker)
	products := make([]domain.Product, len(s.catalog))
	copy(products, s.catalog)

	return Snapshot{
		Profile:     s.profile,
		Preferences: s.prefs,
		Theme:       domain.ThemeFor(s.prefs.DarkMode),
		History:     history,
		Tracker:     tracker,
		Community:   posts,
		Cart:        cart,
		CartTotal:   s.catalog.Total(s.cart),
		Products:    products,
	}
}
