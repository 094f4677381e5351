package domain

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latte(t *testing.T) *Recipe {
	t.Helper()
	r, err := NewRecipe("Latte", 100, Stock{Coffee: 3, Milk: 3, Sugar: 1, Chocolate: 0})
	require.NoError(t, err)
	return r
}

func TestInventory_Default(t *testing.T) {
	inv := NewInventory()
	assert.Equal(t, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n", inv.Describe())
}

func TestInventory_DescribeIsStable(t *testing.T) {
	inv := NewInventory()
	assert.Equal(t, inv.Describe(), inv.Describe())
}

func TestInventory_Restock(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Restock("5", "5", "5", "5"))
	assert.Equal(t, "Coffee: 20\nMilk: 20\nSugar: 20\nChocolate: 20\n", inv.Describe())

	require.NoError(t, inv.Restock("0", "1", "2", "3"))
	assert.Equal(t, Stock{Coffee: 20, Milk: 21, Sugar: 22, Chocolate: 23}, inv.Stock())
}

func TestInventory_RestockIsAllOrNothing(t *testing.T) {
	tests := []struct {
		name      string
		args      [4]string
		wantField string
	}{
		{name: "negative milk", args: [4]string{"4", "-1", "asdf", "3"}, wantField: "milk"},
		{name: "bad sugar", args: [4]string{"4", "1", "asdf", "3"}, wantField: "sugar"},
		{name: "bad chocolate", args: [4]string{"1", "1", "1", "1.0"}, wantField: "chocolate"},
		{name: "bad coffee", args: [4]string{"", "1", "1", "1"}, wantField: "coffee"},
		{name: "negative zero", args: [4]string{"1", "1", "-0", "1"}, wantField: "sugar"},
		{name: "coffee overflow", args: [4]string{strconv.Itoa(math.MaxInt), "1", "1", "1"}, wantField: "coffee"},
		{name: "chocolate overflow", args: [4]string{"1", "1", "1", strconv.Itoa(math.MaxInt - 14)}, wantField: "chocolate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInventory()
			before := inv.Describe()

			err := inv.Restock(tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInventory))
			assert.True(t, errors.Is(err, ErrInvalidQuantity))

			var invErr *InventoryError
			require.True(t, errors.As(err, &invErr))
			assert.Equal(t, tt.wantField, invErr.Field)
			assert.Equal(t, before, inv.Describe())
		})
	}
}

func TestInventory_RestockToMaxInt(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Restock(strconv.Itoa(math.MaxInt-DefaultStock), "0", "0", "0"))
	assert.Equal(t, math.MaxInt, inv.Level(Coffee))

	err := inv.Restock("1", "0", "0", "0")
	require.Error(t, err)
	assert.Equal(t, math.MaxInt, inv.Level(Coffee))
	for _, ing := range Ingredients {
		assert.GreaterOrEqual(t, inv.Level(ing), 0)
	}
}

func TestInventory_Debit(t *testing.T) {
	inv := NewInventory()
	r := latte(t)

	require.True(t, inv.HasEnough(r))
	require.NoError(t, inv.Debit(r))
	assert.Equal(t, "Coffee: 12\nMilk: 12\nSugar: 14\nChocolate: 15\n", inv.Describe())
}

func TestInventory_DebitInsufficientChangesNothing(t *testing.T) {
	inv, err := NewInventoryWith(Stock{Coffee: 10, Milk: 2, Sugar: 10, Chocolate: 10})
	require.NoError(t, err)
	r := latte(t)

	assert.False(t, inv.HasEnough(r))
	err = inv.Debit(r)
	assert.True(t, errors.Is(err, ErrInsufficientInventory))
	assert.Equal(t, Stock{Coffee: 10, Milk: 2, Sugar: 10, Chocolate: 10}, inv.Stock())
}

func TestInventory_ExactAmountIsEnough(t *testing.T) {
	inv, err := NewInventoryWith(Stock{Coffee: 3, Milk: 3, Sugar: 1})
	require.NoError(t, err)
	r := latte(t)

	require.NoError(t, inv.Debit(r))
	assert.Equal(t, Stock{}, inv.Stock())
}

func TestInventory_Set(t *testing.T) {
	inv := NewInventory()
	require.NoError(t, inv.Set(Sugar, 4))
	assert.Equal(t, 4, inv.Level(Sugar))

	err := inv.Set(Sugar, -1)
	assert.True(t, errors.Is(err, ErrInventory))
	assert.Equal(t, 4, inv.Level(Sugar))

	_, err = NewInventoryWith(Stock{Chocolate: -1})
	assert.True(t, errors.Is(err, ErrInventory))
}
