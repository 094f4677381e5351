package domain

import (
	"fmt"
	"math"
	"strings"
)

const DefaultStock = 15

// Inventory is the ingredient ledger of one machine. No level is ever negative.
type Inventory struct {
	stock Stock
}

func NewInventory() *Inventory {
	return &Inventory{stock: Stock{
		Coffee:    DefaultStock,
		Milk:      DefaultStock,
		Sugar:     DefaultStock,
		Chocolate: DefaultStock,
	}}
}

func NewInventoryWith(s Stock) (*Inventory, error) {
	if i, neg := s.firstNegative(); neg {
		return nil, &InventoryError{Field: i.String(), Value: fmt.Sprint(s.Get(i)), Err: ErrInvalidQuantity}
	}
	return &Inventory{stock: s}, nil
}

func (inv *Inventory) Stock() Stock { return inv.stock }

func (inv *Inventory) Level(i Ingredient) int { return inv.stock.Get(i) }

// Set overwrites a single level.
func (inv *Inventory) Set(i Ingredient, n int) error {
	if n < 0 {
		return &InventoryError{Field: i.String(), Value: fmt.Sprint(n), Err: ErrInvalidQuantity}
	}
	inv.stock.set(i, n)
	return nil
}

// Restock adds the four parsed amounts. All values are parsed and checked
// before any level changes; on error the inventory is untouched.
func (inv *Inventory) Restock(coffee, milk, sugar, chocolate string) error {
	var delta Stock
	for i, text := range [...]string{coffee, milk, sugar, chocolate} {
		ing := Ingredients[i]
		n, err := ParseQuantity(text)
		if err != nil {
			return &InventoryError{Field: ing.String(), Value: text, Err: err}
		}
		if n > math.MaxInt-inv.stock.Get(ing) {
			return &InventoryError{
				Field: ing.String(),
				Value: text,
				Err:   fmt.Errorf("%w: level %d would overflow", ErrInvalidQuantity, inv.stock.Get(ing)),
			}
		}
		delta.set(ing, n)
	}

	inv.stock = inv.stock.plus(delta)
	return nil
}

func (inv *Inventory) HasEnough(r *Recipe) bool {
	return inv.stock.Covers(r.amounts)
}

// Debit removes the recipe's amounts, or nothing at all if any level would go negative.
func (inv *Inventory) Debit(r *Recipe) error {
	if !inv.HasEnough(r) {
		return fmt.Errorf("%w for %q", ErrInsufficientInventory, r.name)
	}
	inv.stock = inv.stock.minus(r.amounts)
	return nil
}

func (inv *Inventory) Describe() string {
	return DescribeStock(inv.stock)
}

// DescribeStock renders levels as "Coffee: n\nMilk: n\nSugar: n\nChocolate: n\n".
func DescribeStock(s Stock) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Coffee: %d\n", s.Coffee)
	fmt.Fprintf(&b, "Milk: %d\n", s.Milk)
	fmt.Fprintf(&b, "Sugar: %d\n", s.Sugar)
	fmt.Fprintf(&b, "Chocolate: %d\n", s.Chocolate)
	return b.String()
}
