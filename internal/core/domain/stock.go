package domain

type Ingredient int

const (
	Coffee Ingredient = iota
	Milk
	Sugar
	Chocolate
)

// Ingredients lists every ingredient in display order.
var Ingredients = []Ingredient{Coffee, Milk, Sugar, Chocolate}

func (i Ingredient) String() string {
	switch i {
	case Coffee:
		return "coffee"
	case Milk:
		return "milk"
	case Sugar:
		return "sugar"
	case Chocolate:
		return "chocolate"
	default:
		return "unknown"
	}
}

// Stock is a set of ingredient quantities, used both for inventory levels and
// for the amounts a recipe consumes.
type Stock struct {
	Coffee    int `json:"coffee" yaml:"coffee"`
	Milk      int `json:"milk" yaml:"milk"`
	Sugar     int `json:"sugar" yaml:"sugar"`
	Chocolate int `json:"chocolate" yaml:"chocolate"`
}

func (s Stock) Get(i Ingredient) int {
	switch i {
	case Coffee:
		return s.Coffee
	case Milk:
		return s.Milk
	case Sugar:
		return s.Sugar
	case Chocolate:
		return s.Chocolate
	default:
		return 0
	}
}

func (s *Stock) set(i Ingredient, n int) {
	switch i {
	case Coffee:
		s.Coffee = n
	case Milk:
		s.Milk = n
	case Sugar:
		s.Sugar = n
	case Chocolate:
		s.Chocolate = n
	}
}

// Covers reports whether every level in s is at least the matching level in need.
func (s Stock) Covers(need Stock) bool {
	for _, i := range Ingredients {
		if s.Get(i) < need.Get(i) {
			return false
		}
	}
	return true
}

func (s Stock) plus(o Stock) Stock {
	return Stock{
		Coffee:    s.Coffee + o.Coffee,
		Milk:      s.Milk + o.Milk,
		Sugar:     s.Sugar + o.Sugar,
		Chocolate: s.Chocolate + o.Chocolate,
	}
}

func (s Stock) minus(o Stock) Stock {
	return Stock{
		Coffee:    s.Coffee - o.Coffee,
		Milk:      s.Milk - o.Milk,
		Sugar:     s.Sugar - o.Sugar,
		Chocolate: s.Chocolate - o.Chocolate,
	}
}

func (s Stock) firstNegative() (Ingredient, bool) {
	for _, i := range Ingredients {
		if s.Get(i) < 0 {
			return i, true
		}
	}
	return 0, false
}
