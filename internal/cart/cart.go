package cart

import "time"

// Transitions over a Cart. All of them are total: bad input is defined
// away (unknown id is a no-op, quantity <= 0 removes the line) rather
// than returned as an error.

// AddItem increments the quantity of an existing line by one, or appends
// a new line with quantity 1. The product's price and display fields are
// captured only when the line is created.
func (c *Cart) AddItem(p Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			c.recompute()
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		Quantity:  1,
	})
	c.recompute()
}

// RemoveItem deletes the line with the given product id. Removing an
// absent id is a no-op, so applying it twice equals applying it once.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			break
		}
	}
	c.recompute()
}

// UpdateQuantity sets the line's quantity when quantity > 0 and removes
// the line otherwise. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			break
		}
	}
	c.recompute()
}

// Clear empties the cart; derived fields drop to zero.
func (c *Cart) Clear() {
	c.Items = nil
	c.recompute()
}

func (c *Cart) recompute() {
	count := 0
	total := 0.0
	for _, it := range c.Items {
		count += it.Quantity
		total += float64(it.Quantity) * it.Price
	}
	c.ItemCount = count
	c.Total = total
	c.UpdatedAt = time.Now()
}
