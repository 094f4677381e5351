package handler

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/rl1809/coffee-maker/internal/adapter/handler/rpc"
	"github.com/rl1809/coffee-maker/internal/adapter/storage"
	"github.com/rl1809/coffee-maker/internal/core/domain"
	"github.com/rl1809/coffee-maker/internal/core/service"
)

func newRPCClient(t *testing.T) (*service.CoffeeMaker, *rpc.Client) {
	t.Helper()
	cm := service.NewCoffeeMaker(service.WithCache(storage.NewMemoryAdapter()))
	r, err := domain.NewRecipe("Coffee", 50, domain.Stock{Coffee: 3, Milk: 1, Sugar: 1})
	require.NoError(t, err)
	require.True(t, cm.AddRecipe(r))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	rpc.RegisterCoffeeMakerServer(srv, NewGRPCHandler(cm))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return cm, rpc.NewClient(conn)
}

func TestGRPC_MakeCoffee(t *testing.T) {
	cm, client := newRPCClient(t)
	ctx := context.Background()

	resp, err := client.MakeCoffee(ctx, &rpc.MakeCoffeeRequest{Selection: 0, Paid: 75})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(25), resp.Change)
	assert.Equal(t, "Coffee", resp.Recipe)
	assert.Equal(t, 12, cm.Stock().Coffee)

	resp, err = client.MakeCoffee(ctx, &rpc.MakeCoffeeRequest{Selection: 4, Paid: 30})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "no such recipe", resp.Message)
	assert.Equal(t, int64(30), resp.Change)
}

func TestGRPC_MakeCoffeeDuplicate(t *testing.T) {
	_, client := newRPCClient(t)
	ctx := context.Background()

	req := &rpc.MakeCoffeeRequest{RequestID: "r-1", Selection: 0, Paid: 50}
	resp, err := client.MakeCoffee(ctx, req)
	require.NoError(t, err)
	require.True(t, resp.Success)

	resp, err = client.MakeCoffee(ctx, req)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "duplicate request", resp.Message)
}

func TestGRPC_Inventory(t *testing.T) {
	_, client := newRPCClient(t)
	ctx := context.Background()

	resp, err := client.CheckInventory(ctx, &rpc.CheckInventoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Coffee: 15\nMilk: 15\nSugar: 15\nChocolate: 15\n", resp.Report)

	resp, err = client.AddInventory(ctx, &rpc.AddInventoryRequest{Coffee: "5", Milk: "5", Sugar: "5", Chocolate: "5"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(20), resp.Chocolate)

	resp, err = client.AddInventory(ctx, &rpc.AddInventoryRequest{Coffee: "4", Milk: "-1", Sugar: "asdf", Chocolate: "3"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "milk")
	assert.Equal(t, int64(20), resp.Coffee)
}
