package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "coffeemaker.v1.CoffeeMaker"

	makeCoffeeMethod     = "/" + ServiceName + "/MakeCoffee"
	checkInventoryMethod = "/" + ServiceName + "/CheckInventory"
	addInventoryMethod   = "/" + ServiceName + "/AddInventory"
)

type MakeCoffeeRequest struct {
	RequestID string `json:"request_id"`
	Selection int32  `json:"selection"`
	Paid      int64  `json:"paid"`
}

type MakeCoffeeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Change  int64  `json:"change"`
	Recipe  string `json:"recipe,omitempty"`
	SaleID  string `json:"sale_id,omitempty"`
}

type CheckInventoryRequest struct{}

type InventoryResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Coffee    int64  `json:"coffee"`
	Milk      int64  `json:"milk"`
	Sugar     int64  `json:"sugar"`
	Chocolate int64  `json:"chocolate"`
	Report    string `json:"report"`
}

type AddInventoryRequest struct {
	Coffee    string `json:"coffee"`
	Milk      string `json:"milk"`
	Sugar     string `json:"sugar"`
	Chocolate string `json:"chocolate"`
}

type CoffeeMakerServer interface {
	MakeCoffee(context.Context, *MakeCoffeeRequest) (*MakeCoffeeResponse, error)
	CheckInventory(context.Context, *CheckInventoryRequest) (*InventoryResponse, error)
	AddInventory(context.Context, *AddInventoryRequest) (*InventoryResponse, error)
}

func RegisterCoffeeMakerServer(s grpc.ServiceRegistrar, srv CoffeeMakerServer) {
	s.RegisterService(&serviceDesc, srv)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CoffeeMakerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "MakeCoffee", Handler: makeCoffeeHandler},
		{MethodName: "CheckInventory", Handler: checkInventoryHandler},
		{MethodName: "AddInventory", Handler: addInventoryHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "coffeemaker/v1/coffeemaker.proto",
}

func makeCoffeeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(MakeCoffeeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoffeeMakerServer).MakeCoffee(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: makeCoffeeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CoffeeMakerServer).MakeCoffee(ctx, req.(*MakeCoffeeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func checkInventoryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckInventoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoffeeMakerServer).CheckInventory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: checkInventoryMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CoffeeMakerServer).CheckInventory(ctx, req.(*CheckInventoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func addInventoryHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(AddInventoryRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CoffeeMakerServer).AddInventory(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: addInventoryMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CoffeeMakerServer).AddInventory(ctx, req.(*AddInventoryRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the CoffeeMaker service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) MakeCoffee(ctx context.Context, in *MakeCoffeeRequest, opts ...grpc.CallOption) (*MakeCoffeeResponse, error) {
	out := new(MakeCoffeeResponse)
	if err := c.cc.Invoke(ctx, makeCoffeeMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CheckInventory(ctx context.Context, in *CheckInventoryRequest, opts ...grpc.CallOption) (*InventoryResponse, error) {
	out := new(InventoryResponse)
	if err := c.cc.Invoke(ctx, checkInventoryMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddInventory(ctx context.Context, in *AddInventoryRequest, opts ...grpc.CallOption) (*InventoryResponse, error) {
	out := new(InventoryResponse)
	if err := c.cc.Invoke(ctx, addInventoryMethod, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}
