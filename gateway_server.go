package psuutils

import (
	"context"

	"github.com/NotrixInc/nx-psu-utils/busrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GatewayServer exposes a Bus to GatewayClients over gRPC.
type GatewayServer struct {
	busrpc.UnimplementedObjectMapperServer
	busrpc.UnimplementedPropertiesServer

	bus    Bus
	logger Logger
}

func NewGatewayServer(bus Bus, logger Logger) *GatewayServer {
	if logger == nil {
		logger = NopLogger()
	}
	return &GatewayServer{bus: bus, logger: logger}
}

// Register installs both gateway services on s. s must be created with
// busrpc.ServerOptions.
func (s *GatewayServer) Register(r grpc.ServiceRegistrar) {
	busrpc.RegisterObjectMapperServer(r, s)
	busrpc.RegisterPropertiesServer(r, s)
}

func (s *GatewayServer) GetObject(ctx context.Context, in *busrpc.GetObjectRequest) (*busrpc.GetObjectResponse, error) {
	owners, err := s.bus.GetObject(ctx, ObjectPath(in.Path), in.Interfaces)
	if err != nil {
		s.logger.Error("mapper call failed", "request_id", requestIDFrom(ctx), "path", in.Path, "err", err)
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	out := &busrpc.GetObjectResponse{Owners: make([]busrpc.ObjectOwner, 0, len(owners))}
	for _, o := range owners {
		out.Owners = append(out.Owners, busrpc.ObjectOwner{Service: string(o.Service), Interfaces: o.Interfaces})
	}
	return out, nil
}

func (s *GatewayServer) Get(ctx context.Context, in *busrpc.GetPropertyRequest) (*busrpc.GetPropertyResponse, error) {
	v, err := s.bus.GetProperty(ctx, ServiceName(in.Service), ObjectPath(in.Path), in.Interface, in.Property)
	if err != nil {
		s.logger.Error("get property call failed", "request_id", requestIDFrom(ctx),
			"path", in.Path, "interface", in.Interface, "property", in.Property, "err", err)
		return nil, status.Error(codes.Unavailable, err.Error())
	}
	out, err := valueToWire(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
