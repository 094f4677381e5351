// Package menu loads the recipes a machine starts with from a YAML file.
//
//	recipes:
//	  - name: Coffee
//	    price: 50
//	    coffee: 3
//	    milk: 1
//	    sugar: 1
//	    chocolate: 0
//
// Quantities go through the same parser as any other text input, so a file
// with a negative or fractional amount is rejected as a whole.
package menu

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

type Item struct {
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	Coffee    string `yaml:"coffee"`
	Milk      string `yaml:"milk"`
	Sugar     string `yaml:"sugar"`
	Chocolate string `yaml:"chocolate"`
}

type Menu struct {
	Recipes []Item `yaml:"recipes"`
}

func LoadFile(path string) ([]*domain.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open menu: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) ([]*domain.Recipe, error) {
	var m Menu
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	recipes := make([]*domain.Recipe, 0, len(m.Recipes))
	for i, item := range m.Recipes {
		rec, err := item.Recipe()
		if err != nil {
			return nil, fmt.Errorf("menu item %d (%s): %w", i, item.Name, err)
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Recipe converts the item. Empty quantities default to zero.
func (it Item) Recipe() (*domain.Recipe, error) {
	u, err := domain.ParseRecipeUpdate(
		orZero(it.Price), orZero(it.Coffee), orZero(it.Milk), orZero(it.Sugar), orZero(it.Chocolate),
	)
	if err != nil {
		return nil, err
	}
	return domain.NewRecipe(it.Name, u.Price, u.Amounts)
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
