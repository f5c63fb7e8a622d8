package psuutils

import (
	"context"
	"fmt"
)

// Utils is the set of bus helpers firmware-update code depends on.
// Client is the live implementation; psutest.FakeUtils is the test double.
type Utils interface {
	// InventoryPaths returns the PSU inventory paths from configuration.
	InventoryPaths() []ObjectPath

	// Service returns the service owning iface at path, or "" when there is no
	// owner yet. With several owners the first one the Bus reports wins; over
	// D-Bus that is the lexically smallest service name, since the mapper reply
	// is unordered. Transport failures wrap ErrResolutionFailed.
	Service(ctx context.Context, path ObjectPath, iface string) (ServiceName, error)

	// PropertyValue reads a property as a dynamically typed Value.
	// Transport failures wrap ErrPropertyFetchFailed.
	PropertyValue(ctx context.Context, service ServiceName, path ObjectPath, iface, property string) (Value, error)

	// VersionID fingerprints a version string.
	VersionID(version string) string
}

// Client implements Utils on top of a Bus.
type Client struct {
	bus        Bus
	logger     Logger
	configPath string
}

var _ Utils = (*Client)(nil)

// NewClient creates a Client. deps.Bus is required.
func NewClient(deps Dependencies) (*Client, error) {
	if deps.Bus == nil {
		return nil, fmt.Errorf("bus is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = NopLogger()
	}
	configPath := deps.ConfigPath
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	return &Client{bus: deps.Bus, logger: logger, configPath: configPath}, nil
}

// InventoryPaths re-reads the configuration on every call.
func (c *Client) InventoryPaths() []ObjectPath {
	return LoadInventoryPaths(c.configPath, c.logger)
}

func (c *Client) Service(ctx context.Context, path ObjectPath, iface string) (ServiceName, error) {
	owners, err := c.bus.GetObject(ctx, path, []string{iface})
	if err != nil {
		c.logger.Error("mapper call failed", "method", MapperGetObject, "path", path, "interface", iface, "err", err)
		return "", fmt.Errorf("%w: %s %s: %w", ErrResolutionFailed, path, iface, err)
	}
	if len(owners) == 0 {
		c.logger.Debug("no owner for interface", "path", path, "interface", iface)
		return "", nil
	}
	return owners[0].Service, nil
}

func (c *Client) PropertyValue(ctx context.Context, service ServiceName, path ObjectPath, iface, property string) (Value, error) {
	v, err := c.bus.GetProperty(ctx, service, path, iface, property)
	if err != nil {
		c.logger.Error("get property call failed", "path", path, "interface", iface, "property", property, "err", err)
		return Value{}, fmt.Errorf("%w: %s %s.%s: %w", ErrPropertyFetchFailed, path, iface, property, err)
	}
	return v, nil
}

func (c *Client) VersionID(version string) string {
	if version == "" {
		c.logger.Error("version is empty")
		return ""
	}
	return VersionID(version)
}

// Property reads a property and narrows it to T. A fetch failure wraps
// ErrPropertyFetchFailed; a kind mismatch returns a *TypeMismatchError.
func Property[T Primitive](ctx context.Context, u Utils, service ServiceName, path ObjectPath, iface, property string) (T, error) {
	v, err := u.PropertyValue(ctx, service, path, iface, property)
	if err != nil {
		var zero T
		return zero, err
	}
	t, err := As[T](v)
	if err != nil {
		return t, fmt.Errorf("%s %s.%s: %w", path, iface, property, err)
	}
	return t, nil
}
