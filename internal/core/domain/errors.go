package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidQuantity       = errors.New("invalid quantity")
	ErrRecipe                = errors.New("invalid recipe")
	ErrInventory             = errors.New("invalid inventory")
	ErrIndex                 = errors.New("index out of range")
	ErrSelection             = errors.New("invalid selection")
	ErrEmptySlot             = errors.New("no such recipe")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInsufficientInventory = errors.New("insufficient inventory")
)

// RecipeError reports a recipe field that could not be set.
type RecipeError struct {
	Field string
	Value string
	Err   error
}

func (e *RecipeError) Error() string {
	return fmt.Sprintf("recipe %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *RecipeError) Is(target error) bool { return target == ErrRecipe }

func (e *RecipeError) Unwrap() error { return e.Err }

// InventoryError reports a restock field that could not be parsed.
type InventoryError struct {
	Field string
	Value string
	Err   error
}

func (e *InventoryError) Error() string {
	return fmt.Sprintf("units of %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *InventoryError) Is(target error) bool { return target == ErrInventory }

func (e *InventoryError) Unwrap() error { return e.Err }

// IndexError reports a slot reference outside [0, Capacity).
type IndexError struct {
	Index    int
	Capacity int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("slot %d out of range [0, %d)", e.Index, e.Capacity)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// SelectionError reports a purchase against a slot that is out of range or empty.
type SelectionError struct {
	Selection int
	Err       error
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selection %d: %v", e.Selection, e.Err)
}

func (e *SelectionError) Is(target error) bool { return target == ErrSelection }

func (e *SelectionError) Unwrap() error { return e.Err }

// InsufficientFundsError reports a payment below the recipe price.
type InsufficientFundsError struct {
	Price int
	Paid  int
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: price %d, paid %d", e.Price, e.Paid)
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }
