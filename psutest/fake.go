// Package psutest provides in-memory doubles for psuutils.Bus and psuutils.Utils.
package psutest

import (
	"context"
	"fmt"
	"sync"

	psuutils "github.com/NotrixInc/nx-psu-utils"
)

type propertyKey struct {
	service  psuutils.ServiceName
	path     psuutils.ObjectPath
	iface    string
	property string
}

type objectKey struct {
	path  psuutils.ObjectPath
	iface string
}

// FakeBus is a psuutils.Bus backed by in-memory tables.
// Unknown properties fail the way a real bus does; unknown objects have no owners.
type FakeBus struct {
	mu         sync.Mutex
	owners     map[objectKey][]psuutils.ObjectOwner
	properties map[propertyKey]psuutils.Value

	// GetObjectErr and GetPropertyErr, when set, fail every call.
	GetObjectErr   error
	GetPropertyErr error

	GetObjectCalls   int
	GetPropertyCalls int
}

var _ psuutils.Bus = (*FakeBus)(nil)

func NewFakeBus() *FakeBus {
	return &FakeBus{
		owners:     make(map[objectKey][]psuutils.ObjectOwner),
		properties: make(map[propertyKey]psuutils.Value),
	}
}

// AddOwner registers service as an implementer of iface at path.
func (b *FakeBus) AddOwner(path psuutils.ObjectPath, iface string, service psuutils.ServiceName, ifaces ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	k := objectKey{path: path, iface: iface}
	b.owners[k] = append(b.owners[k], psuutils.ObjectOwner{Service: service, Interfaces: ifaces})
}

func (b *FakeBus) SetProperty(service psuutils.ServiceName, path psuutils.ObjectPath, iface, property string, v psuutils.Value) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.properties[propertyKey{service, path, iface, property}] = v
}

func (b *FakeBus) GetObject(ctx context.Context, path psuutils.ObjectPath, interfaces []string) ([]psuutils.ObjectOwner, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.GetObjectCalls++
	if b.GetObjectErr != nil {
		return nil, b.GetObjectErr
	}
	var out []psuutils.ObjectOwner
	for _, iface := range interfaces {
		out = append(out, b.owners[objectKey{path: path, iface: iface}]...)
	}
	return out, nil
}

func (b *FakeBus) GetProperty(ctx context.Context, service psuutils.ServiceName, path psuutils.ObjectPath, iface, property string) (psuutils.Value, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.GetPropertyCalls++
	if b.GetPropertyErr != nil {
		return psuutils.Value{}, b.GetPropertyErr
	}
	v, ok := b.properties[propertyKey{service, path, iface, property}]
	if !ok {
		return psuutils.Value{}, fmt.Errorf("unknown property %s.%s at %s on %s", iface, property, path, service)
	}
	return v, nil
}

// PropertyCall records one FakeUtils.PropertyValue call.
type PropertyCall struct {
	Service  psuutils.ServiceName
	Path     psuutils.ObjectPath
	Iface    string
	Property string
}

// FakeUtils is a psuutils.Utils with canned answers and recorded calls.
// Nil funcs fall back to empty results.
type FakeUtils struct {
	InventoryPathsFunc func() []psuutils.ObjectPath
	ServiceFunc        func(path psuutils.ObjectPath, iface string) (psuutils.ServiceName, error)
	PropertyValueFunc  func(service psuutils.ServiceName, path psuutils.ObjectPath, iface, property string) (psuutils.Value, error)
	VersionIDFunc      func(version string) string

	mu            sync.Mutex
	ServiceCalls  []psuutils.ObjectPath
	PropertyCalls []PropertyCall
}

var _ psuutils.Utils = (*FakeUtils)(nil)

func (f *FakeUtils) InventoryPaths() []psuutils.ObjectPath {
	if f.InventoryPathsFunc == nil {
		return nil
	}
	return f.InventoryPathsFunc()
}

func (f *FakeUtils) Service(ctx context.Context, path psuutils.ObjectPath, iface string) (psuutils.ServiceName, error) {
	f.mu.Lock()
	f.ServiceCalls = append(f.ServiceCalls, path)
	f.mu.Unlock()
	if f.ServiceFunc == nil {
		return "", nil
	}
	return f.ServiceFunc(path, iface)
}

func (f *FakeUtils) PropertyValue(ctx context.Context, service psuutils.ServiceName, path psuutils.ObjectPath, iface, property string) (psuutils.Value, error) {
	f.mu.Lock()
	f.PropertyCalls = append(f.PropertyCalls, PropertyCall{service, path, iface, property})
	f.mu.Unlock()
	if f.PropertyValueFunc == nil {
		return psuutils.Value{}, fmt.Errorf("%w: no fake value", psuutils.ErrPropertyFetchFailed)
	}
	return f.PropertyValueFunc(service, path, iface, property)
}

// VersionID defaults to the real fingerprint.
func (f *FakeUtils) VersionID(version string) string {
	if f.VersionIDFunc == nil {
		return psuutils.VersionID(version)
	}
	return f.VersionIDFunc(version)
}
