package busrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// This file is intentionally handwritten to avoid protoc.
// It defines a tiny gRPC contract that exposes a host's object bus (mapper
// lookups and property reads) to remote clients. Messages travel as JSON, see Codec.

type ObjectOwner struct {
	Service    string   `json:"service"`
	Interfaces []string `json:"interfaces,omitempty"`
}

type GetObjectRequest struct {
	Path       string   `json:"path"`
	Interfaces []string `json:"interfaces,omitempty"`
}

type GetObjectResponse struct {
	Owners []ObjectOwner `json:"owners"`
}

type GetPropertyRequest struct {
	Service   string `json:"service"`
	Path      string `json:"path"`
	Interface string `json:"interface"`
	Property  string `json:"property"`
}

// GetPropertyResponse carries one value; Kind selects the populated field.
// Doubles travel as IEEE-754 bits since JSON numbers cannot hold NaN or ±Inf.
type GetPropertyResponse struct {
	Kind       string `json:"kind"`
	String     string `json:"string,omitempty"`
	Bool       bool   `json:"bool,omitempty"`
	Int64      int64  `json:"int64,omitempty"`
	Uint64     uint64 `json:"uint64,omitempty"`
	DoubleBits uint64 `json:"double_bits,omitempty"`
}

const (
	ObjectMapperServiceName = "nx.bus.ObjectMapper"
	PropertiesServiceName   = "nx.bus.Properties"

	getObjectMethod   = "/nx.bus.ObjectMapper/GetObject"
	getPropertyMethod = "/nx.bus.Properties/Get"
)

// ObjectMapper: remote mapper lookups.
type ObjectMapperClient interface {
	GetObject(ctx context.Context, in *GetObjectRequest, opts ...grpc.CallOption) (*GetObjectResponse, error)
}

type objectMapperClient struct{ cc grpc.ClientConnInterface }

func NewObjectMapperClient(cc grpc.ClientConnInterface) ObjectMapperClient {
	return &objectMapperClient{cc}
}

func (c *objectMapperClient) GetObject(ctx context.Context, in *GetObjectRequest, opts ...grpc.CallOption) (*GetObjectResponse, error) {
	out := new(GetObjectResponse)
	err := c.cc.Invoke(ctx, getObjectMethod, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type ObjectMapperServer interface {
	GetObject(context.Context, *GetObjectRequest) (*GetObjectResponse, error)
	mustEmbedUnimplementedObjectMapperServer()
}

type UnimplementedObjectMapperServer struct{}

func (UnimplementedObjectMapperServer) GetObject(context.Context, *GetObjectRequest) (*GetObjectResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetObject not implemented")
}
func (UnimplementedObjectMapperServer) mustEmbedUnimplementedObjectMapperServer() {}

func RegisterObjectMapperServer(s grpc.ServiceRegistrar, srv ObjectMapperServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: ObjectMapperServiceName,
		HandlerType: (*ObjectMapperServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetObject",
				Handler: func(_ any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := new(GetObjectRequest)
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return srv.GetObject(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getObjectMethod}
					return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
						return srv.GetObject(ctx, req.(*GetObjectRequest))
					})
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "nx_bus.proto",
	}, srv)
}

// Properties: remote property reads.
type PropertiesClient interface {
	Get(ctx context.Context, in *GetPropertyRequest, opts ...grpc.CallOption) (*GetPropertyResponse, error)
}

type propertiesClient struct{ cc grpc.ClientConnInterface }

func NewPropertiesClient(cc grpc.ClientConnInterface) PropertiesClient {
	return &propertiesClient{cc}
}

func (c *propertiesClient) Get(ctx context.Context, in *GetPropertyRequest, opts ...grpc.CallOption) (*GetPropertyResponse, error) {
	out := new(GetPropertyResponse)
	err := c.cc.Invoke(ctx, getPropertyMethod, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type PropertiesServer interface {
	Get(context.Context, *GetPropertyRequest) (*GetPropertyResponse, error)
	mustEmbedUnimplementedPropertiesServer()
}

type UnimplementedPropertiesServer struct{}

func (UnimplementedPropertiesServer) Get(context.Context, *GetPropertyRequest) (*GetPropertyResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedPropertiesServer) mustEmbedUnimplementedPropertiesServer() {}

func RegisterPropertiesServer(s grpc.ServiceRegistrar, srv PropertiesServer) {
	s.RegisterService(&grpc.ServiceDesc{
		ServiceName: PropertiesServiceName,
		HandlerType: (*PropertiesServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "Get",
				Handler: func(_ any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
					in := new(GetPropertyRequest)
					if err := dec(in); err != nil {
						return nil, err
					}
					if interceptor == nil {
						return srv.Get(ctx, in)
					}
					info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getPropertyMethod}
					return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
						return srv.Get(ctx, req.(*GetPropertyRequest))
					})
				},
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "nx_bus.proto",
	}, srv)
}
