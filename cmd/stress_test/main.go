package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/coffee-maker/internal/adapter/storage"
	"github.com/rl1809/coffee-maker/internal/core/domain"
	"github.com/rl1809/coffee-maker/internal/core/service"
	"github.com/rl1809/coffee-maker/internal/port"
)

const (
	initialCoffee = 20
	totalRequests = 50
	price         = 10
)

func main() {
	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()

	ctx := context.Background()

	var cache port.CacheRepository = storage.NewMemoryAdapter()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		defer rdb.Close()
		cache = storage.NewRedisAdapter(rdb)
	}

	inventory, err := domain.NewInventoryWith(domain.Stock{Coffee: initialCoffee, Milk: 100, Sugar: 100, Chocolate: 100})
	if err != nil {
		logger.Fatal("failed to build inventory", zap.Error(err))
	}
	espresso, err := domain.NewRecipe("Espresso", price, domain.Stock{Coffee: 1})
	if err != nil {
		logger.Fatal("failed to build recipe", zap.Error(err))
	}

	coffeeMaker := service.NewCoffeeMaker(
		service.WithInventory(inventory),
		service.WithCache(cache),
		service.WithMachineID("stress-"+uuid.NewString()[:8]),
	)
	coffeeMaker.AddRecipe(espresso)

	// Counters
	var successCount atomic.Int32
	var failCount atomic.Int32
	var changeTotal atomic.Int64

	// Spawn concurrent requests
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(customer int) {
			defer wg.Done()

			paid := price + customer%3
			receipt, err := coffeeMaker.MakeCoffeeOnce(ctx, uuid.NewString(), 0, paid)
			changeTotal.Add(int64(receipt.Change))
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(i)
	}

	wg.Wait()
	elapsed := time.Since(start)

	remaining := coffeeMaker.Stock().Coffee

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Total requests:    %d\n", totalRequests)
	fmt.Printf("Initial coffee:    %d\n", initialCoffee)
	fmt.Printf("Successful sales:  %d\n", successCount.Load())
	fmt.Printf("Refused sales:     %d\n", failCount.Load())
	fmt.Printf("Remaining coffee:  %d\n", remaining)
	fmt.Printf("Change handed out: %d\n", changeTotal.Load())
	fmt.Printf("Elapsed time:      %v\n", elapsed)
	fmt.Println("=========================================")

	if int(successCount.Load()) != initialCoffee || remaining != 0 {
		fmt.Println("FAIL: stock accounting mismatch")
		os.Exit(1)
	}
	fmt.Println("PASS: no overselling detected")
}
