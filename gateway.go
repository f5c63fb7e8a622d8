package psuutils

import (
	"context"
	"fmt"
	"math"

	"github.com/NotrixInc/nx-psu-utils/busrpc"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// RequestIDKey is the metadata key carrying the per-call request id.
const RequestIDKey = "x-request-id"

// GatewayClient is a Bus that reaches a remote host's object bus through a
// bus gateway (see GatewayServer).
type GatewayClient struct {
	cc     *grpc.ClientConn
	mapper busrpc.ObjectMapperClient
	props  busrpc.PropertiesClient
	logger Logger
}

var _ Bus = (*GatewayClient)(nil)

// DialBusGateway connects to a bus gateway.
// addr format: unix:///run/nx-bus-gateway.sock or host:port
func DialBusGateway(addr string, logger Logger, opts ...grpc.DialOption) (*GatewayClient, error) {
	if logger == nil {
		logger = NopLogger()
	}
	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, busrpc.DialOptions()...)
	dialOpts = append(dialOpts, opts...)
	conn, err := grpc.Dial(addr, dialOpts...)
	if err != nil {
		return nil, err
	}
	return &GatewayClient{
		cc:     conn,
		mapper: busrpc.NewObjectMapperClient(conn),
		props:  busrpc.NewPropertiesClient(conn),
		logger: logger,
	}, nil
}

func (g *GatewayClient) Close() error { return g.cc.Close() }

func (g *GatewayClient) GetObject(ctx context.Context, path ObjectPath, interfaces []string) ([]ObjectOwner, error) {
	ctx, requestID := withRequestID(ctx)
	resp, err := g.mapper.GetObject(ctx, &busrpc.GetObjectRequest{
		Path:       string(path),
		Interfaces: interfaces,
	})
	if err != nil {
		g.logger.Debug("gateway GetObject failed", "request_id", requestID, "path", path, "err", err)
		return nil, err
	}
	owners := make([]ObjectOwner, 0, len(resp.Owners))
	for _, o := range resp.Owners {
		owners = append(owners, ObjectOwner{Service: ServiceName(o.Service), Interfaces: o.Interfaces})
	}
	return owners, nil
}

func (g *GatewayClient) GetProperty(ctx context.Context, service ServiceName, path ObjectPath, iface, property string) (Value, error) {
	ctx, requestID := withRequestID(ctx)
	resp, err := g.props.Get(ctx, &busrpc.GetPropertyRequest{
		Service:   string(service),
		Path:      string(path),
		Interface: iface,
		Property:  property,
	})
	if err != nil {
		g.logger.Debug("gateway Get failed", "request_id", requestID, "path", path, "property", property, "err", err)
		return Value{}, err
	}
	return valueFromWire(resp)
}

// GatewayAddrFromEnv reads the gateway address from NX_BUS_GATEWAY_ADDR.
func GatewayAddrFromEnv(getenv func(string) string) (string, error) {
	addr := getenv("NX_BUS_GATEWAY_ADDR")
	if addr == "" {
		return "", fmt.Errorf("NX_BUS_GATEWAY_ADDR is required")
	}
	return addr, nil
}

func withRequestID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return metadata.AppendToOutgoingContext(ctx, RequestIDKey, id), id
}

func requestIDFrom(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if ids := md.Get(RequestIDKey); len(ids) > 0 {
		return ids[0]
	}
	return ""
}

func valueToWire(v Value) (*busrpc.GetPropertyResponse, error) {
	out := &busrpc.GetPropertyResponse{Kind: v.Kind().String()}
	switch t := v.Interface().(type) {
	case string:
		out.String = t
	case bool:
		out.Bool = t
	case int64:
		out.Int64 = t
	case uint64:
		out.Uint64 = t
	case float64:
		out.DoubleBits = math.Float64bits(t)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, v.Kind())
	}
	return out, nil
}

func valueFromWire(resp *busrpc.GetPropertyResponse) (Value, error) {
	kind, err := ParseKind(resp.Kind)
	if err != nil {
		return Value{}, err
	}
	switch kind {
	case KindString:
		return StringValue(resp.String), nil
	case KindBool:
		return BoolValue(resp.Bool), nil
	case KindInt64:
		return Int64Value(resp.Int64), nil
	case KindUint64:
		return Uint64Value(resp.Uint64), nil
	default:
		return DoubleValue(math.Float64frombits(resp.DoubleBits)), nil
	}
}
