// Package psuutils locates services on the object bus, reads their properties
// and fingerprints firmware version strings for PSU update code.
//
// Typical use:
//
//	bus, _ := psuutils.ConnectSystemBus()
//	c, _ := psuutils.NewClient(psuutils.Dependencies{Bus: bus, Logger: psuutils.NewLogger(os.Stderr, "info")})
//	for _, p := range c.InventoryPaths() {
//	    svc, err := c.Service(ctx, p, psuutils.InventoryItemInterface)
//	    ...
//	    present, err := psuutils.Property[bool](ctx, c, svc, p, psuutils.InventoryItemInterface, psuutils.PresentProperty)
//	}
//
// Host-side contract notes:
//
// A host without local bus access can run a bus gateway (GatewayServer, or
// `psuutil gateway`) next to the bus and hand clients a GatewayClient from
// DialBusGateway instead of a DBus. Both satisfy Bus, so Client code is the same.
//
// Error classes stay distinct end to end: an empty ServiceName means nobody owns
// the interface yet, ErrResolutionFailed and ErrPropertyFetchFailed mean the bus
// call itself failed, and ErrTypeMismatch means the caller asked for the wrong type.
package psuutils
