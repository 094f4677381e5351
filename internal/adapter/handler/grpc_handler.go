package handler

import (
	"context"
	"errors"

	"github.com/rl1809/coffee-maker/internal/adapter/handler/rpc"
	"github.com/rl1809/coffee-maker/internal/core/domain"
	"github.com/rl1809/coffee-maker/internal/core/service"
)

type GRPCHandler struct {
	coffeeMaker *service.CoffeeMaker
}

func NewGRPCHandler(coffeeMaker *service.CoffeeMaker) *GRPCHandler {
	return &GRPCHandler{coffeeMaker: coffeeMaker}
}

func (h *GRPCHandler) MakeCoffee(ctx context.Context, req *rpc.MakeCoffeeRequest) (*rpc.MakeCoffeeResponse, error) {
	receipt, err := h.coffeeMaker.MakeCoffeeOnce(ctx, req.RequestID, int(req.Selection), int(req.Paid))
	if err != nil {
		return &rpc.MakeCoffeeResponse{
			Success: false,
			Message: purchaseMessage(err),
			Change:  int64(receipt.Change),
			Recipe:  receipt.RecipeName,
		}, nil
	}

	return &rpc.MakeCoffeeResponse{
		Success: true,
		Message: "enjoy your " + receipt.RecipeName,
		Change:  int64(receipt.Change),
		Recipe:  receipt.RecipeName,
		SaleID:  receipt.SaleID,
	}, nil
}

func (h *GRPCHandler) CheckInventory(ctx context.Context, req *rpc.CheckInventoryRequest) (*rpc.InventoryResponse, error) {
	return inventoryRPC(h.coffeeMaker.Stock(), true, ""), nil
}

func (h *GRPCHandler) AddInventory(ctx context.Context, req *rpc.AddInventoryRequest) (*rpc.InventoryResponse, error) {
	err := h.coffeeMaker.AddInventory(ctx, req.Coffee, req.Milk, req.Sugar, req.Chocolate)
	if err != nil {
		message := "internal error"
		if errors.Is(err, domain.ErrInventory) {
			message = err.Error()
		}
		return inventoryRPC(h.coffeeMaker.Stock(), false, message), nil
	}
	return inventoryRPC(h.coffeeMaker.Stock(), true, "inventory added"), nil
}

func inventoryRPC(s domain.Stock, ok bool, message string) *rpc.InventoryResponse {
	return &rpc.InventoryResponse{
		Success:   ok,
		Message:   message,
		Coffee:    int64(s.Coffee),
		Milk:      int64(s.Milk),
		Sugar:     int64(s.Sugar),
		Chocolate: int64(s.Chocolate),
		Report:    domain.DescribeStock(s),
	}
}
