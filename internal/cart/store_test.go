package cart

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetUnknownUserReturnsEmptyCart(t *testing.T) {
	s := NewStore()

	c := s.Get("u1")

	assert.Equal(t, "u1", c.UserID)
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.ItemCount)
	assert.Equal(t, 0.0, c.Total)
}

func TestStore_CartsAreIsolatedPerUser(t *testing.T) {
	s := NewStore()

	s.AddItem("u1", Product{ID: "p1", Price: 10})
	s.AddItem("u2", Product{ID: "p2", Price: 5})

	c1 := s.Get("u1")
	c2 := s.Get("u2")

	require.Len(t, c1.Items, 1)
	require.Len(t, c2.Items, 1)
	assert.Equal(t, "p1", c1.Items[0].ProductID)
	assert.Equal(t, "p2", c2.Items[0].ProductID)
}

func TestStore_SnapshotIsDetached(t *testing.T) {
	s := NewStore()
	s.AddItem("u1", Product{ID: "p1", Price: 10})

	snap := s.Get("u1")
	snap.Items[0].Quantity = 99

	assert.Equal(t, 1, s.Get("u1").Items[0].Quantity)
}

func TestStore_RemoveAndUpdateOnUnknownUser(t *testing.T) {
	s := NewStore()

	c := s.RemoveItem("ghost", "p1")
	assert.Empty(t, c.Items)

	c = s.UpdateQuantity("ghost", "p1", 3)
	assert.Empty(t, c.Items)
}

func TestStore_ClearDropsCart(t *testing.T) {
	s := NewStore()
	s.AddItem("u1", Product{ID: "p1", Price: 10})
	s.AddItem("u1", Product{ID: "p2", Price: 5})

	c := s.Clear("u1")

	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.ItemCount)
	assert.Equal(t, 0.0, c.Total)
	assert.Empty(t, s.Get("u1").Items)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore()

	const adds = 50
	var wg sync.WaitGroup
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem("u1", Product{ID: "p1", Price: 2})
		}()
	}
	wg.Wait()

	c := s.Get("u1")
	require.Len(t, c.Items, 1)
	assert.Equal(t, adds, c.Items[0].Quantity)
	assert.Equal(t, adds, c.ItemCount)
	assert.Equal(t, float64(adds)*2, c.Total)
}
