package cart

// Store keeps one in-memory cart per user session. The defined transitions
// are the only way to mutate a cart, and they run to completion under the
// lock, so two requests for the same user can never interleave half-applied
// updates. Carts live for the process lifetime only; checkout or an explicit
// clear resets them.

import "sync"

type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Get returns a snapshot of the user's cart, or an empty cart if none
// exists yet. Callers never see the live struct.
func (s *Store) Get(userID string) Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[userID]
	if !ok {
		return Cart{UserID: userID, Items: []Item{}}
	}
	return snapshot(c)
}

func (s *Store) AddItem(userID string, p Product) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = &Cart{UserID: userID}
		s.carts[userID] = c
	}
	c.AddItem(p)
	return snapshot(c)
}

func (s *Store) RemoveItem(userID, productID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return Cart{UserID: userID, Items: []Item{}}
	}
	c.RemoveItem(productID)
	return snapshot(c)
}

func (s *Store) UpdateQuantity(userID, productID string, quantity int) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		return Cart{UserID: userID, Items: []Item{}}
	}
	c.UpdateQuantity(productID, quantity)
	return snapshot(c)
}

// Clear drops the user's cart entirely.
func (s *Store) Clear(userID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return Cart{UserID: userID, Items: []Item{}}
}

func snapshot(c *Cart) Cart {
	out := *c
	out.Items = make([]Item, len(c.Items))
	copy(out.Items, c.Items)
	return out
}
