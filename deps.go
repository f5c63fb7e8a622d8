package psuutils

import "context"

// Bus is the transport the utilities talk through. Implementations must not
// cache: every call is one round trip to the bus.
type Bus interface {
	// GetObject asks the mapper which services implement any of interfaces at path.
	GetObject(ctx context.Context, path ObjectPath, interfaces []string) ([]ObjectOwner, error)
	// GetProperty reads one property of interface iface at path from service.
	GetProperty(ctx context.Context, service ServiceName, path ObjectPath, iface, property string) (Value, error)
}

// Host-provided dependencies
type Dependencies struct {
	Bus    Bus
	Logger Logger

	// ConfigPath overrides DefaultConfigPath.
	ConfigPath string
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}
