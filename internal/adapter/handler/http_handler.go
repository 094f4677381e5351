package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/rl1809/coffee-maker/internal/core/domain"
	"github.com/rl1809/coffee-maker/internal/core/service"
)

type HTTPHandler struct {
	coffeeMaker *service.CoffeeMaker
	logger      *zap.Logger
}

func NewHTTPHandler(coffeeMaker *service.CoffeeMaker, logger *zap.Logger) *HTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPHandler{coffeeMaker: coffeeMaker, logger: logger}
}

func (h *HTTPHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	slots := h.coffeeMaker.Menu()
	out := make([]*RecipeHTTP, len(slots))
	for i, rec := range slots {
		out[i] = toRecipeHTTP(i, rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) AddRecipe(w http.ResponseWriter, r *http.Request) {
	var req AddRecipeHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, RecipeHTTPResponse{Message: "invalid request body"})
		return
	}

	recipe, err := buildRecipe(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, RecipeHTTPResponse{Message: err.Error()})
		return
	}

	if !h.coffeeMaker.AddRecipe(recipe) {
		writeJSON(w, http.StatusConflict, RecipeHTTPResponse{
			Message: "recipe not added: catalog full or name already used",
		})
		return
	}

	// Names are unique within the catalog.
	var added *RecipeHTTP
	for i, rec := range h.coffeeMaker.Menu() {
		if rec != nil && rec.Name() == recipe.Name() {
			added = toRecipeHTTP(i, rec)
			break
		}
	}

	writeJSON(w, http.StatusCreated, RecipeHTTPResponse{
		Success: true,
		Message: "recipe added",
		Recipe:  added,
	})
}

func buildRecipe(req AddRecipeHTTPRequest) (*domain.Recipe, error) {
	recipe := &domain.Recipe{}
	if req.Name != nil {
		recipe.SetName(*req.Name)
	}
	if req.Price != nil {
		if err := recipe.SetPrice(string(*req.Price)); err != nil {
			return nil, err
		}
	}

	amounts := [...]*quantityText{req.Coffee, req.Milk, req.Sugar, req.Chocolate}
	for i, q := range amounts {
		if q == nil {
			continue
		}
		if err := recipe.SetAmount(domain.Ingredients[i], string(*q)); err != nil {
			return nil, err
		}
	}
	return recipe, nil
}

func (h *HTTPHandler) EditRecipe(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, RecipeHTTPResponse{Message: "invalid recipe index"})
		return
	}

	var req EditRecipeHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, RecipeHTTPResponse{Message: "invalid request body"})
		return
	}

	name, err := h.coffeeMaker.EditRecipe(index, string(req.Price), string(req.Coffee),
		string(req.Milk), string(req.Sugar), string(req.Chocolate))
	if err != nil {
		writeJSON(w, statusFor(err), RecipeHTTPResponse{Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, RecipeHTTPResponse{
		Success: true,
		Message: "recipe updated",
		Name:    name,
	})
}

func (h *HTTPHandler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, RecipeHTTPResponse{Message: "invalid recipe index"})
		return
	}

	name, err := h.coffeeMaker.DeleteRecipe(index)
	if err != nil {
		writeJSON(w, statusFor(err), RecipeHTTPResponse{Message: err.Error()})
		return
	}
	if name == "" {
		writeJSON(w, http.StatusOK, RecipeHTTPResponse{Message: "slot already empty"})
		return
	}

	writeJSON(w, http.StatusOK, RecipeHTTPResponse{
		Success: true,
		Message: "recipe deleted",
		Name:    name,
	})
}

func (h *HTTPHandler) CheckInventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.inventoryResponse(""))
}

func (h *HTTPHandler) AddInventory(w http.ResponseWriter, r *http.Request) {
	var req RestockHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, InventoryHTTPResponse{Message: "invalid request body"})
		return
	}

	err := h.coffeeMaker.AddInventory(r.Context(), string(req.Coffee), string(req.Milk),
		string(req.Sugar), string(req.Chocolate))
	if err != nil {
		resp := h.inventoryResponse(err.Error())
		resp.Success = false
		writeJSON(w, statusFor(err), resp)
		return
	}

	writeJSON(w, http.StatusOK, h.inventoryResponse("inventory added"))
}

func (h *HTTPHandler) inventoryResponse(message string) InventoryHTTPResponse {
	stock := h.coffeeMaker.Stock()
	return InventoryHTTPResponse{
		Success: true,
		Message: message,
		Stock:   stock,
		Report:  domain.DescribeStock(stock),
	}
}

func (h *HTTPHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req PurchaseHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, PurchaseHTTPResponse{
			Success: false,
			Message: "invalid request body",
		})
		return
	}

	if req.Selection == nil || req.Paid == nil {
		change := 0
		if req.Paid != nil && *req.Paid > 0 {
			change = *req.Paid
		}
		writeJSON(w, http.StatusBadRequest, PurchaseHTTPResponse{
			Success: false,
			Message: "missing required fields",
			Change:  change,
		})
		return
	}

	receipt, err := h.coffeeMaker.MakeCoffeeOnce(r.Context(), req.RequestID, *req.Selection, *req.Paid)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("purchase failed", zap.Error(err))
		}
		writeJSON(w, status, PurchaseHTTPResponse{
			Success: false,
			Message: purchaseMessage(err),
			Change:  receipt.Change,
			Recipe:  receipt.RecipeName,
		})
		return
	}

	writeJSON(w, http.StatusOK, PurchaseHTTPResponse{
		Success: true,
		Message: "enjoy your " + receipt.RecipeName,
		Change:  receipt.Change,
		Recipe:  receipt.RecipeName,
		SaleID:  receipt.SaleID,
	})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, domain.ErrSelection),
		errors.Is(err, domain.ErrIndex),
		errors.Is(err, domain.ErrEmptySlot):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrInsufficientInventory):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRecipe),
		errors.Is(err, domain.ErrInventory),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func purchaseMessage(err error) string {
	var fundsErr *domain.InsufficientFundsError
	switch {
	case errors.Is(err, service.ErrDuplicateRequest):
		return "duplicate request"
	case errors.Is(err, domain.ErrSelection):
		return "no such recipe"
	case errors.As(err, &fundsErr):
		return "not enough money paid, price is " + strconv.Itoa(fundsErr.Price)
	case errors.Is(err, domain.ErrInsufficientInventory):
		return "not enough inventory"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid payment"
	default:
		return "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
