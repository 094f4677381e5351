package domain

import "strconv"

const (
	DefaultSlots      = 4
	DefaultMaxRecipes = 3
)

// Catalog is a fixed array of recipe slots. A nil slot is empty. Slots are
// never compacted, so a recipe keeps its index until it is deleted.
type Catalog struct {
	slots      []*Recipe
	maxRecipes int
}

func NewCatalog() *Catalog {
	return NewCatalogWithLimits(DefaultSlots, DefaultMaxRecipes)
}

// NewCatalogWithLimits builds a catalog with the given slot count, of which at
// most maxRecipes may be occupied at once.
func NewCatalogWithLimits(slots, maxRecipes int) *Catalog {
	if slots < 0 {
		slots = 0
	}
	if maxRecipes < 0 || maxRecipes > slots {
		maxRecipes = slots
	}
	return &Catalog{
		slots:      make([]*Recipe, slots),
		maxRecipes: maxRecipes,
	}
}

func (c *Catalog) Capacity() int { return len(c.slots) }

func (c *Catalog) MaxRecipes() int { return c.maxRecipes }

// Len returns the number of occupied slots.
func (c *Catalog) Len() int {
	n := 0
	for _, r := range c.slots {
		if r != nil {
			n++
		}
	}
	return n
}

// Add stores r in the first empty slot. It returns false, leaving the catalog
// unchanged, when the catalog is full or a recipe with the same name exists.
func (c *Catalog) Add(r *Recipe) bool {
	if r == nil || c.Len() >= c.maxRecipes {
		return false
	}

	empty := -1
	for i, existing := range c.slots {
		if existing == nil {
			if empty < 0 {
				empty = i
			}
			continue
		}
		if existing.name == r.name {
			return false
		}
	}
	if empty < 0 {
		return false
	}

	c.slots[empty] = r
	return true
}

func (c *Catalog) checkIndex(index int) error {
	if index < 0 || index >= len(c.slots) {
		return &IndexError{Index: index, Capacity: len(c.slots)}
	}
	return nil
}

// Get returns the recipe in a slot, nil when the slot is empty.
func (c *Catalog) Get(index int) (*Recipe, error) {
	if err := c.checkIndex(index); err != nil {
		return nil, err
	}
	return c.slots[index], nil
}

// Delete empties a slot and returns the name of the recipe it held.
// Deleting an empty slot returns "" and changes nothing.
func (c *Catalog) Delete(index int) (string, error) {
	if err := c.checkIndex(index); err != nil {
		return "", err
	}

	r := c.slots[index]
	if r == nil {
		return "", nil
	}
	c.slots[index] = nil
	return r.name, nil
}

// Edit replaces the price and amounts of the recipe in a slot. Every field is
// parsed first; on any error the recipe is left exactly as it was.
func (c *Catalog) Edit(index int, price, coffee, milk, sugar, chocolate string) (string, error) {
	if err := c.checkIndex(index); err != nil {
		return "", err
	}

	r := c.slots[index]
	if r == nil {
		return "", &RecipeError{Field: "slot", Value: strconv.Itoa(index), Err: ErrEmptySlot}
	}

	u, err := ParseRecipeUpdate(price, coffee, milk, sugar, chocolate)
	if err != nil {
		return "", err
	}
	r.apply(u)
	return r.name, nil
}

// Snapshot returns a copy of the slot array. Empty slots are nil.
// The recipes themselves are shared with the catalog.
func (c *Catalog) Snapshot() []*Recipe {
	out := make([]*Recipe, len(c.slots))
	copy(out, c.slots)
	return out
}

// Views returns detached copies of the occupied slots. Empty slots are nil.
func (c *Catalog) Views() []*Recipe {
	out := make([]*Recipe, len(c.slots))
	for i, r := range c.slots {
		if r != nil {
			out[i] = r.Clone()
		}
	}
	return out
}
