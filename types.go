package psuutils

// ObjectPath identifies a remote object on the bus, e.g. "/xyz/openbmc_project/inventory/psu0".
type ObjectPath string

// ServiceName identifies the bus connection that currently owns a path+interface pair.
// An empty ServiceName means no owner is registered yet.
type ServiceName string

// ObjectOwner is one entry of a mapper GetObject reply.
type ObjectOwner struct {
	Service    ServiceName
	Interfaces []string
}

// Well-known bus names used by the live transports.
const (
	MapperBusName   = "xyz.openbmc_project.ObjectMapper"
	MapperPath      = "/xyz/openbmc_project/object_mapper"
	MapperInterface = "xyz.openbmc_project.ObjectMapper"
	MapperGetObject = "GetObject"

	PropertiesInterface = "org.freedesktop.DBus.Properties"
	PropertiesGet       = "Get"
)

// Interfaces and properties read by firmware-update consumers.
const (
	InventoryItemInterface   = "xyz.openbmc_project.Inventory.Item"
	SoftwareVersionInterface = "xyz.openbmc_project.Software.Version"

	PresentProperty = "Present"
	VersionProperty = "Version"
)

// InventoryPathKey is the configuration key holding the PSU inventory paths.
const InventoryPathKey = "PSU_INVENTORY_PATH"

// DefaultConfigPath is where the PSU configuration document is read from
// unless Dependencies.ConfigPath overrides it.
const DefaultConfigPath = "/usr/share/psu-code-mgmt/psu.json"
