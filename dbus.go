package psuutils

import (
	"context"
	"sort"

	"github.com/godbus/dbus/v5"
)

// DBus is a Bus over a godbus connection. The connection is owned by the caller
// unless it was opened by ConnectSystemBus or ConnectSessionBus.
type DBus struct {
	conn *dbus.Conn
}

var _ Bus = (*DBus)(nil)

func NewDBus(conn *dbus.Conn) *DBus { return &DBus{conn: conn} }

// ConnectSystemBus opens a private connection to the system bus.
func ConnectSystemBus() (*DBus, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, err
	}
	return NewDBus(conn), nil
}

// ConnectSessionBus opens a private connection to the session bus.
func ConnectSessionBus() (*DBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return NewDBus(conn), nil
}

func (d *DBus) Close() error { return d.conn.Close() }

// GetObject calls the object mapper. The a{sas} reply has no order on the
// wire, so owners are sorted by service name.
func (d *DBus) GetObject(ctx context.Context, path ObjectPath, interfaces []string) ([]ObjectOwner, error) {
	obj := d.conn.Object(MapperBusName, dbus.ObjectPath(MapperPath))
	var reply map[string][]string
	err := obj.CallWithContext(ctx, MapperInterface+"."+MapperGetObject, 0, string(path), interfaces).Store(&reply)
	if err != nil {
		return nil, err
	}
	return ownersFromMap(reply), nil
}

func ownersFromMap(reply map[string][]string) []ObjectOwner {
	owners := make([]ObjectOwner, 0, len(reply))
	for service, ifaces := range reply {
		owners = append(owners, ObjectOwner{Service: ServiceName(service), Interfaces: ifaces})
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].Service < owners[j].Service })
	return owners
}

func (d *DBus) GetProperty(ctx context.Context, service ServiceName, path ObjectPath, iface, property string) (Value, error) {
	obj := d.conn.Object(string(service), dbus.ObjectPath(path))
	var variant dbus.Variant
	err := obj.CallWithContext(ctx, PropertiesInterface+"."+PropertiesGet, 0, iface, property).Store(&variant)
	if err != nil {
		return Value{}, err
	}
	return ValueOf(variant.Value())
}
