package domain

import "fmt"

// Recipe is a named purchasable item. Catalogs hold the *Recipe the caller
// added, so later setter calls on that pointer are visible through the catalog.
type Recipe struct {
	name    string
	price   int
	amounts Stock
}

// NewRecipe builds a recipe from already-numeric values.
func NewRecipe(name string, price int, amounts Stock) (*Recipe, error) {
	if price < 0 {
		return nil, &RecipeError{Field: "price", Value: fmt.Sprint(price), Err: ErrInvalidQuantity}
	}
	if i, neg := amounts.firstNegative(); neg {
		return nil, &RecipeError{Field: i.String(), Value: fmt.Sprint(amounts.Get(i)), Err: ErrInvalidQuantity}
	}
	return &Recipe{name: name, price: price, amounts: amounts}, nil
}

func (r *Recipe) Name() string { return r.name }

func (r *Recipe) Price() int { return r.price }

func (r *Recipe) Amount(i Ingredient) int { return r.amounts.Get(i) }

func (r *Recipe) Amounts() Stock { return r.amounts }

func (r *Recipe) Coffee() int { return r.amounts.Coffee }

func (r *Recipe) Milk() int { return r.amounts.Milk }

func (r *Recipe) Sugar() int { return r.amounts.Sugar }

func (r *Recipe) Chocolate() int { return r.amounts.Chocolate }

func (r *Recipe) String() string { return r.name }

// Clone returns a detached copy. Setter calls on either side do not affect the other.
func (r *Recipe) Clone() *Recipe {
	c := *r
	return &c
}

func (r *Recipe) SetName(name string) { r.name = name }

func (r *Recipe) SetPrice(text string) error {
	n, err := ParseQuantity(text)
	if err != nil {
		return &RecipeError{Field: "price", Value: text, Err: err}
	}
	r.price = n
	return nil
}

// SetAmount parses text and stores it as the amount of i. The previous amount
// is kept when parsing fails.
func (r *Recipe) SetAmount(i Ingredient, text string) error {
	n, err := ParseQuantity(text)
	if err != nil {
		return &RecipeError{Field: i.String(), Value: text, Err: err}
	}
	r.amounts.set(i, n)
	return nil
}

func (r *Recipe) SetAmtCoffee(text string) error { return r.SetAmount(Coffee, text) }

func (r *Recipe) SetAmtMilk(text string) error { return r.SetAmount(Milk, text) }

func (r *Recipe) SetAmtSugar(text string) error { return r.SetAmount(Sugar, text) }

func (r *Recipe) SetAmtChocolate(text string) error { return r.SetAmount(Chocolate, text) }

// RecipeUpdate holds a fully parsed price and amounts, ready to be applied
// to a recipe in one step.
type RecipeUpdate struct {
	Price   int
	Amounts Stock
}

// ParseRecipeUpdate parses every field before returning, so a failure never
// leaves a half-applied update behind.
func ParseRecipeUpdate(price, coffee, milk, sugar, chocolate string) (RecipeUpdate, error) {
	var u RecipeUpdate

	p, err := ParseQuantity(price)
	if err != nil {
		return RecipeUpdate{}, &RecipeError{Field: "price", Value: price, Err: err}
	}
	u.Price = p

	for i, text := range [...]string{coffee, milk, sugar, chocolate} {
		ing := Ingredients[i]
		n, err := ParseQuantity(text)
		if err != nil {
			return RecipeUpdate{}, &RecipeError{Field: ing.String(), Value: text, Err: err}
		}
		u.Amounts.set(ing, n)
	}

	return u, nil
}

func (r *Recipe) apply(u RecipeUpdate) {
	r.price = u.Price
	r.amounts = u.Amounts
}
