package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rl1809/coffee-maker/internal/core/domain"
	"github.com/rl1809/coffee-maker/internal/metrics"
	"github.com/rl1809/coffee-maker/internal/port"
)

var ErrDuplicateRequest = errors.New("duplicate request")

const DefaultMachineID = "default"

// Receipt describes the result of a purchase attempt. Change is set on every
// path: the full payment comes back when the purchase fails.
type Receipt struct {
	SaleID     string
	Selection  int
	RecipeName string
	Price      int
	Paid       int
	Change     int
}

type Option func(*CoffeeMaker)

func WithMachineID(id string) Option {
	return func(s *CoffeeMaker) { s.machineID = id }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *CoffeeMaker) { s.logger = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *CoffeeMaker) { s.metrics = m }
}

// WithCache mirrors stock into cache after each change and enables request
// de-duplication in MakeCoffeeOnce.
func WithCache(c port.CacheRepository) Option {
	return func(s *CoffeeMaker) { s.cache = c }
}

// WithSaleQueue buffers completed sales for Sales consumers. Without it no
// sales are emitted.
func WithSaleQueue(size int) Option {
	return func(s *CoffeeMaker) { s.saleQueue = make(chan domain.Sale, size) }
}

func WithInventory(inv *domain.Inventory) Option {
	return func(s *CoffeeMaker) { s.inventory = inv }
}

func WithCatalog(c *domain.Catalog) Option {
	return func(s *CoffeeMaker) { s.catalog = c }
}

// CoffeeMaker owns one catalog and one inventory. A single mutex guards both,
// so the check and the debit of a purchase happen in one critical section.
type CoffeeMaker struct {
	mu        sync.Mutex
	catalog   *domain.Catalog
	inventory *domain.Inventory

	machineID string
	cache     port.CacheRepository
	logger    *zap.Logger
	metrics   *metrics.Metrics
	now       func() time.Time

	queueMu   sync.RWMutex
	saleQueue chan domain.Sale
	closed    bool
}

func NewCoffeeMaker(opts ...Option) *CoffeeMaker {
	s := &CoffeeMaker{
		machineID: DefaultMachineID,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = domain.NewCatalog()
	}
	if s.inventory == nil {
		s.inventory = domain.NewInventory()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	s.logger = s.logger.With(zap.String("machine_id", s.machineID))
	return s
}

func (s *CoffeeMaker) MachineID() string { return s.machineID }

// AddRecipe stores r in the first free slot. The catalog keeps the pointer,
// so later changes made through r show up in GetRecipes.
func (s *CoffeeMaker) AddRecipe(r *domain.Recipe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.catalog.Add(r)
	if ok {
		s.logger.Debug("recipe added", zap.String("recipe", r.Name()))
	}
	return ok
}

func (s *CoffeeMaker) DeleteRecipe(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := s.catalog.Delete(index)
	if err != nil {
		return "", err
	}
	if name != "" {
		s.logger.Debug("recipe deleted", zap.String("recipe", name), zap.Int("slot", index))
	}
	return name, nil
}

func (s *CoffeeMaker) EditRecipe(index int, price, coffee, milk, sugar, chocolate string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.Edit(index, price, coffee, milk, sugar, chocolate)
}

func (s *CoffeeMaker) GetRecipes() []*domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.Snapshot()
}

// Menu returns copies of the slots taken under the lock. Unlike GetRecipes the
// result is safe to read while recipes are being edited.
func (s *CoffeeMaker) Menu() []*domain.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.catalog.Views()
}

func (s *CoffeeMaker) AddInventory(ctx context.Context, coffee, milk, sugar, chocolate string) error {
	s.mu.Lock()
	err := s.inventory.Restock(coffee, milk, sugar, chocolate)
	stock := s.inventory.Stock()
	s.mu.Unlock()

	if err != nil {
		return err
	}

	s.publishStock(ctx, stock)
	return nil
}

func (s *CoffeeMaker) CheckInventory() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inventory.Describe()
}

func (s *CoffeeMaker) Stock() domain.Stock {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inventory.Stock()
}

// SyncStock pushes the current levels to the cache and metrics.
func (s *CoffeeMaker) SyncStock(ctx context.Context) {
	s.publishStock(ctx, s.Stock())
}

// MakeCoffee sells the recipe in slot selection for paid. Funds are checked
// before stock and nothing is debited unless both checks pass.
func (s *CoffeeMaker) MakeCoffee(ctx context.Context, selection, paid int) (Receipt, error) {
	receipt := Receipt{Selection: selection, Paid: paid, Change: paid}

	if paid < 0 {
		receipt.Change = 0
		err := fmt.Errorf("payment: %w: %d is negative", domain.ErrInvalidQuantity, paid)
		s.observe(receipt, err)
		return receipt, err
	}

	name, price, stock, err := s.commitPurchase(selection, paid)
	receipt.RecipeName = name
	receipt.Price = price
	if err != nil {
		s.observe(receipt, err)
		return receipt, err
	}

	receipt.Change = paid - price
	sale := domain.Sale{
		ID:         uuid.NewString(),
		MachineID:  s.machineID,
		Selection:  selection,
		RecipeName: name,
		Price:      price,
		Paid:       paid,
		Change:     receipt.Change,
		Status:     domain.SaleStatusCompleted,
		CreatedAt:  s.now(),
	}
	receipt.SaleID = sale.ID

	s.observe(receipt, nil)
	s.publishStock(ctx, stock)
	s.enqueue(ctx, sale)

	return receipt, nil
}

func (s *CoffeeMaker) commitPurchase(selection, paid int) (string, int, domain.Stock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, err := s.catalog.Get(selection)
	if err != nil {
		return "", 0, domain.Stock{}, &domain.SelectionError{Selection: selection, Err: err}
	}
	if recipe == nil {
		return "", 0, domain.Stock{}, &domain.SelectionError{Selection: selection, Err: domain.ErrEmptySlot}
	}

	name, price := recipe.Name(), recipe.Price()
	if paid < price {
		return name, price, domain.Stock{}, &domain.InsufficientFundsError{Price: price, Paid: paid}
	}
	if !s.inventory.HasEnough(recipe) {
		return name, price, domain.Stock{}, fmt.Errorf("%w for %q", domain.ErrInsufficientInventory, name)
	}
	if err := s.inventory.Debit(recipe); err != nil {
		return name, price, domain.Stock{}, err
	}

	return name, price, s.inventory.Stock(), nil
}

// MakeCoffeeOnce is MakeCoffee keyed by a client request id. A request id that
// already bought something returns ErrDuplicateRequest with the payment as
// change. A failed purchase releases its id so the client can retry with it.
// Without a cache or request id it behaves like MakeCoffee.
func (s *CoffeeMaker) MakeCoffeeOnce(ctx context.Context, requestID string, selection, paid int) (Receipt, error) {
	if requestID == "" || s.cache == nil {
		return s.MakeCoffee(ctx, selection, paid)
	}

	receipt := Receipt{Selection: selection, Paid: paid, Change: paid}
	key := fmt.Sprintf("purchase:%s:%s", s.machineID, requestID)

	ok, err := s.cache.SetIdempotency(ctx, key)
	if err != nil {
		return receipt, fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		s.observe(receipt, ErrDuplicateRequest)
		return receipt, ErrDuplicateRequest
	}

	receipt, err = s.MakeCoffee(ctx, selection, paid)
	if err != nil {
		if relErr := s.cache.ReleaseIdempotency(ctx, key); relErr != nil {
			s.logger.Warn("failed to release request id",
				zap.String("request_id", requestID),
				zap.Error(relErr),
			)
		}
	}
	return receipt, err
}

// Sales returns the queue of completed sales. It is nil unless WithSaleQueue was used.
func (s *CoffeeMaker) Sales() <-chan domain.Sale {
	return s.saleQueue
}

func (s *CoffeeMaker) Close() {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.saleQueue != nil {
		close(s.saleQueue)
	}
}

func (s *CoffeeMaker) enqueue(ctx context.Context, sale domain.Sale) {
	s.queueMu.RLock()
	defer s.queueMu.RUnlock()

	if s.saleQueue == nil || s.closed {
		return
	}

	select {
	case s.saleQueue <- sale:
	case <-ctx.Done():
		s.logger.Warn("sale dropped from queue",
			zap.String("sale_id", sale.ID),
			zap.Error(ctx.Err()),
		)
	}
}

func (s *CoffeeMaker) publishStock(ctx context.Context, stock domain.Stock) {
	s.metrics.SetStock(stock)
	if s.cache == nil {
		return
	}
	if err := s.cache.SetStock(ctx, s.machineID, stock); err != nil {
		s.logger.Warn("stock mirror update failed", zap.Error(err))
	}
}

func (s *CoffeeMaker) observe(r Receipt, err error) {
	out := Outcome(err)
	price := 0
	if err == nil {
		price = r.Price
	}
	s.metrics.ObservePurchase(out, price, r.Change)

	fields := []zap.Field{
		zap.String("outcome", out),
		zap.Int("selection", r.Selection),
		zap.Int("paid", r.Paid),
		zap.Int("change", r.Change),
	}
	if r.RecipeName != "" {
		fields = append(fields, zap.String("recipe", r.RecipeName))
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	s.logger.Debug("purchase", fields...)
}

// Outcome classifies a purchase error for metrics and logs.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrDuplicateRequest):
		return "duplicate"
	case errors.Is(err, domain.ErrSelection):
		return "invalid_selection"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInsufficientInventory):
		return "insufficient_inventory"
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "invalid_payment"
	default:
		return "error"
	}
}
