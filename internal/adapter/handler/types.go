package handler

import (
	"bytes"
	"encoding/json"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

// quantityText carries a quantity as the caller wrote it. JSON strings and
// number literals are both accepted and handed to the domain parser unchanged.
type quantityText string

func (q *quantityText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*q = quantityText(s)
		return nil
	}
	*q = quantityText(bytes.TrimSpace(b))
	return nil
}

type RecipeHTTP struct {
	Slot      int    `json:"slot"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	Coffee    int    `json:"coffee"`
	Milk      int    `json:"milk"`
	Sugar     int    `json:"sugar"`
	Chocolate int    `json:"chocolate"`
}

func toRecipeHTTP(slot int, r *domain.Recipe) *RecipeHTTP {
	if r == nil {
		return nil
	}
	return &RecipeHTTP{
		Slot:      slot,
		Name:      r.Name(),
		Price:     r.Price(),
		Coffee:    r.Coffee(),
		Milk:      r.Milk(),
		Sugar:     r.Sugar(),
		Chocolate: r.Chocolate(),
	}
}

// AddRecipeHTTPRequest fields left out of the body keep the recipe defaults.
type AddRecipeHTTPRequest struct {
	Name      *string       `json:"name"`
	Price     *quantityText `json:"price"`
	Coffee    *quantityText `json:"coffee"`
	Milk      *quantityText `json:"milk"`
	Sugar     *quantityText `json:"sugar"`
	Chocolate *quantityText `json:"chocolate"`
}

type EditRecipeHTTPRequest struct {
	Price     quantityText `json:"price"`
	Coffee    quantityText `json:"coffee"`
	Milk      quantityText `json:"milk"`
	Sugar     quantityText `json:"sugar"`
	Chocolate quantityText `json:"chocolate"`
}

type RecipeHTTPResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Recipe  *RecipeHTTP `json:"recipe,omitempty"`
	Name    string      `json:"name,omitempty"`
}

type RestockHTTPRequest struct {
	Coffee    quantityText `json:"coffee"`
	Milk      quantityText `json:"milk"`
	Sugar     quantityText `json:"sugar"`
	Chocolate quantityText `json:"chocolate"`
}

type InventoryHTTPResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Stock   domain.Stock `json:"stock"`
	Report  string       `json:"report"`
}

type PurchaseHTTPRequest struct {
	RequestID string `json:"request_id"`
	Selection *int   `json:"selection"`
	Paid      *int   `json:"paid"`
}

type PurchaseHTTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Change  int    `json:"change"`
	Recipe  string `json:"recipe,omitempty"`
	SaleID  string `json:"sale_id,omitempty"`
}
