// Package updater turns PSU inventory into software version objects.
//
// ItemUpdater only decides which objects should exist and announces them
// through a Publisher; putting them on the bus is the Publisher's job.
package updater

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"sync"

	psuutils "github.com/NotrixInc/nx-psu-utils"
)

// SoftwareObject describes the version object for one PSU firmware version.
type SoftwareObject struct {
	ID            string
	Path          psuutils.ObjectPath
	Version       string
	InventoryPath psuutils.ObjectPath
}

// Publisher receives one ObjectAdded per newly discovered version.
type Publisher interface {
	ObjectAdded(ctx context.Context, obj SoftwareObject) error
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(ctx context.Context, obj SoftwareObject) error

func (f PublisherFunc) ObjectAdded(ctx context.Context, obj SoftwareObject) error { return f(ctx, obj) }

// ItemUpdater scans PSU inventory and publishes software objects for present PSUs.
type ItemUpdater struct {
	utils    psuutils.Utils
	pub      Publisher
	basePath string
	logger   psuutils.Logger

	mu      sync.Mutex
	objects map[string]SoftwareObject
}

func New(utils psuutils.Utils, pub Publisher, basePath string, logger psuutils.Logger) *ItemUpdater {
	if logger == nil {
		logger = psuutils.NopLogger()
	}
	return &ItemUpdater{
		utils:    utils,
		pub:      pub,
		basePath: basePath,
		logger:   logger,
		objects:  make(map[string]SoftwareObject),
	}
}

// ScanReport counts what one Scan did with each inventory path.
type ScanReport struct {
	Paths      int
	Published  int
	Known      int
	NotPresent int
	NoOwner    int
	Failed     int
}

type outcome int

const (
	outcomePublished outcome = iota
	outcomeKnown
	outcomeNotPresent
	outcomeNoOwner
	outcomeFailed
)

func (r *ScanReport) add(o outcome) {
	switch o {
	case outcomePublished:
		r.Published++
	case outcomeKnown:
		r.Known++
	case outcomeNotPresent:
		r.NotPresent++
	case outcomeNoOwner:
		r.NoOwner++
	case outcomeFailed:
		r.Failed++
	}
}

// Scan walks the configured inventory once. A failure on one PSU is logged
// and does not stop the others; all failures are returned joined.
func (u *ItemUpdater) Scan(ctx context.Context) (ScanReport, error) {
	var report ScanReport
	var errs []error
	for _, p := range u.utils.InventoryPaths() {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(append(errs, err)...)
		}
		report.Paths++
		o, err := u.scanOne(ctx, p)
		if err != nil {
			u.logger.Error("psu scan failed", "path", p, "err", err)
			errs = append(errs, err)
			o = outcomeFailed
		}
		report.add(o)
	}
	return report, errors.Join(errs...)
}

func (u *ItemUpdater) scanOne(ctx context.Context, inv psuutils.ObjectPath) (outcome, error) {
	service, err := u.utils.Service(ctx, inv, psuutils.InventoryItemInterface)
	if err != nil {
		return outcomeFailed, err
	}
	if service == "" {
		u.logger.Debug("psu has no inventory owner yet", "path", inv)
		return outcomeNoOwner, nil
	}

	present, err := psuutils.Property[bool](ctx, u.utils, service, inv, psuutils.InventoryItemInterface, psuutils.PresentProperty)
	if err != nil {
		return outcomeFailed, err
	}
	if !present {
		u.logger.Info("psu not present", "path", inv)
		return outcomeNotPresent, nil
	}

	version, err := psuutils.Property[string](ctx, u.utils, service, inv, psuutils.SoftwareVersionInterface, psuutils.VersionProperty)
	if err != nil {
		return outcomeFailed, err
	}
	id := u.utils.VersionID(version)
	if id == "" {
		return outcomeFailed, fmt.Errorf("psu %s reports an empty version", inv)
	}

	u.mu.Lock()
	_, known := u.objects[id]
	u.mu.Unlock()
	if known {
		return outcomeKnown, nil
	}

	obj := SoftwareObject{
		ID:            id,
		Path:          psuutils.ObjectPath(path.Join(u.basePath, id)),
		Version:       version,
		InventoryPath: inv,
	}
	if err := u.pub.ObjectAdded(ctx, obj); err != nil {
		return outcomeFailed, fmt.Errorf("publish %s: %w", obj.Path, err)
	}

	u.mu.Lock()
	u.objects[id] = obj
	u.mu.Unlock()
	u.logger.Info("software object added", "path", obj.Path, "version", version)
	return outcomePublished, nil
}

// Objects returns the published objects ordered by ID.
func (u *ItemUpdater) Objects() []SoftwareObject {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]SoftwareObject, 0, len(u.objects))
	for _, o := range u.objects {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
