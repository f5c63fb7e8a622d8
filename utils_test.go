package psuutils_test

import (
	"context"
	"errors"
	"testing"

	psuutils "github.com/NotrixInc/nx-psu-utils"
	"github.com/NotrixInc/nx-psu-utils/psutest"
)

const (
	psuPath    psuutils.ObjectPath  = "/com/example/inventory/psu0"
	psuService psuutils.ServiceName = "com.example.Software.Psu"
)

func newClient(t *testing.T, bus psuutils.Bus, log psuutils.Logger) *psuutils.Client {
	t.Helper()
	c, err := psuutils.NewClient(psuutils.Dependencies{Bus: bus, Logger: log})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewClient_RequiresBus(t *testing.T) {
	if _, err := psuutils.NewClient(psuutils.Dependencies{}); err == nil {
		t.Error("expected error without a bus")
	}
}

func TestService_NoOwner(t *testing.T) {
	c := newClient(t, psutest.NewFakeBus(), nil)
	service, err := c.Service(context.Background(), psuPath, psuutils.InventoryItemInterface)
	if err != nil {
		t.Fatalf("empty mapper reply must not be an error: %v", err)
	}
	if service != "" {
		t.Errorf("service = %q, want empty", service)
	}
}

func TestService_FirstOwnerWins(t *testing.T) {
	bus := psutest.NewFakeBus()
	bus.AddOwner(psuPath, psuutils.InventoryItemInterface, psuService,
		psuutils.InventoryItemInterface, psuutils.SoftwareVersionInterface, "org.freedesktop.DBus.Properties")
	bus.AddOwner(psuPath, psuutils.InventoryItemInterface, "com.example.Other")

	c := newClient(t, bus, nil)
	service, err := c.Service(context.Background(), psuPath, psuutils.InventoryItemInterface)
	if err != nil {
		t.Fatal(err)
	}
	if service != psuService {
		t.Errorf("service = %q, want %q", service, psuService)
	}
}

func TestService_TransportFailure(t *testing.T) {
	bus := psutest.NewFakeBus()
	bus.GetObjectErr = errors.New("connection reset")
	log := &psutest.Logger{}

	c := newClient(t, bus, log)
	service, err := c.Service(context.Background(), psuPath, psuutils.InventoryItemInterface)
	if !errors.Is(err, psuutils.ErrResolutionFailed) {
		t.Fatalf("err = %v, want ErrResolutionFailed", err)
	}
	if errors.Is(err, psuutils.ErrPropertyFetchFailed) {
		t.Error("resolution failure must not look like a property failure")
	}
	if service != "" {
		t.Errorf("service = %q, want empty", service)
	}
	if log.Count("error") != 1 {
		t.Errorf("expected one error log, got:\n%s", log)
	}
}

func TestService_NotCached(t *testing.T) {
	bus := psutest.NewFakeBus()
	c := newClient(t, bus, nil)
	ctx := context.Background()

	if s, _ := c.Service(ctx, psuPath, psuutils.InventoryItemInterface); s != "" {
		t.Fatalf("service = %q before registration", s)
	}
	bus.AddOwner(psuPath, psuutils.InventoryItemInterface, psuService)
	if s, _ := c.Service(ctx, psuPath, psuutils.InventoryItemInterface); s != psuService {
		t.Errorf("service = %q after registration, want %q", s, psuService)
	}
	if bus.GetObjectCalls != 2 {
		t.Errorf("GetObjectCalls = %d, want 2", bus.GetObjectCalls)
	}
}

func TestProperty_BoolFalse(t *testing.T) {
	bus := psutest.NewFakeBus()
	bus.SetProperty(psuService, psuPath, psuutils.InventoryItemInterface, psuutils.PresentProperty, psuutils.BoolValue(false))

	c := newClient(t, bus, nil)
	present, err := psuutils.Property[bool](context.Background(), c, psuService, psuPath,
		psuutils.InventoryItemInterface, psuutils.PresentProperty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if present {
		t.Error("present = true, want false")
	}
}

func TestProperty_TypeMismatch(t *testing.T) {
	bus := psutest.NewFakeBus()
	bus.SetProperty(psuService, psuPath, psuutils.InventoryItemInterface, psuutils.PresentProperty, psuutils.StringValue("false"))

	c := newClient(t, bus, nil)
	_, err := psuutils.Property[bool](context.Background(), c, psuService, psuPath,
		psuutils.InventoryItemInterface, psuutils.PresentProperty)
	if !errors.Is(err, psuutils.ErrTypeMismatch) {
		t.Fatalf("err = %v, want ErrTypeMismatch", err)
	}
	if errors.Is(err, psuutils.ErrPropertyFetchFailed) {
		t.Error("type mismatch must not look like a fetch failure")
	}
}

func TestProperty_FetchFailure(t *testing.T) {
	log := &psutest.Logger{}
	c := newClient(t, psutest.NewFakeBus(), log)

	_, err := psuutils.Property[string](context.Background(), c, psuService, psuPath,
		psuutils.SoftwareVersionInterface, psuutils.VersionProperty)
	if !errors.Is(err, psuutils.ErrPropertyFetchFailed) {
		t.Fatalf("err = %v, want ErrPropertyFetchFailed", err)
	}
	if errors.Is(err, psuutils.ErrTypeMismatch) {
		t.Error("fetch failure must not look like a type mismatch")
	}
	if log.Count("error") != 1 {
		t.Errorf("expected one error log, got:\n%s", log)
	}
}

func TestPropertyValue_String(t *testing.T) {
	bus := psutest.NewFakeBus()
	bus.SetProperty(psuService, psuPath, psuutils.SoftwareVersionInterface, psuutils.VersionProperty, psuutils.StringValue("1.0"))

	c := newClient(t, bus, nil)
	v, err := c.PropertyValue(context.Background(), psuService, psuPath, psuutils.SoftwareVersionInterface, psuutils.VersionProperty)
	if err != nil {
		t.Fatal(err)
	}
	if v.Kind() != psuutils.KindString || v.String() != "1.0" {
		t.Errorf("value = %v (%s)", v, v.Kind())
	}
}

func TestClientVersionID(t *testing.T) {
	log := &psutest.Logger{}
	c := newClient(t, psutest.NewFakeBus(), log)

	if got := c.VersionID("psu-dummy-test.v0.1"); got != "82b2c6e0" {
		t.Errorf("VersionID = %q", got)
	}
	if got := c.VersionID(""); got != "" {
		t.Errorf("VersionID(\"\") = %q, want empty", got)
	}
	if log.Count("error") != 1 {
		t.Errorf("expected empty version to be logged, got:\n%s", log)
	}
}
