// Package usbnet implements the USB network module: it reports whether the
// USB network interface is usable and lists the stored USB connection
// profiles. It never brings links up or down itself.
package usbnet

import (
	"errors"
	"fmt"
	"iter"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/usbnetd/internal/confstore"
	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
)

const (
	DefaultNetworkType  = "USB"
	DefaultInterface    = "usb0"
	DefaultProfilesRoot = "/system/osso/connectivity/IAP"
)

var ErrLinkDown = errors.New("usb network interface is not available")

// Config identifies the one technology/interface pair a Module governs.
type Config struct {
	NetworkType  string
	Interface    string
	ProfilesRoot string
}

// DefaultConfig returns the stock usb0 / "USB" configuration.
func DefaultConfig() Config {
	return Config{
		NetworkType:  DefaultNetworkType,
		Interface:    DefaultInterface,
		ProfilesRoot: DefaultProfilesRoot,
	}
}

func (c Config) validate() error {
	var errs []error
	if c.NetworkType == "" {
		errs = append(errs, errors.New("network type is required"))
	}
	if c.Interface == "" {
		errs = append(errs, errors.New("interface name is required"))
	}
	if c.ProfilesRoot == "" {
		errs = append(errs, errors.New("profiles root is required"))
	}
	return errors.Join(errs...)
}

// Module holds no mutable state; its methods may be called concurrently.
type Module struct {
	cfg    Config
	prober netmon.Prober
	store  confstore.Store
}

func New(cfg Config, prober netmon.Prober, store confstore.Store) (*Module, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid module config: %w", err)
	}
	if prober == nil || store == nil {
		return nil, errors.New("prober and store are required")
	}
	return &Module{cfg: cfg, prober: prober, store: store}, nil
}

func (m *Module) Config() Config { return m.cfg }

// LinkAvailable probes the governed interface. The result is never cached.
func (m *Module) LinkAvailable() bool {
	up := m.prober.Probe(m.cfg.Interface)
	log.WithFields(log.Fields{
		"interface": m.cfg.Interface,
		"available": up,
	}).Trace("Probed USB network interface")
	return up
}

// LinkUp returns the interface name to bind when the link is usable, or
// ErrLinkDown.
func (m *Module) LinkUp() (string, error) {
	if !m.LinkAvailable() {
		return "", ErrLinkDown
	}
	return m.cfg.Interface, nil
}

// Search yields one report per stored profile of the module's network type.
// Nothing is yielded when the interface is absent. Each iteration takes a
// fresh store snapshot; the sequence ends when the scan is complete.
func (m *Module) Search() iter.Seq[nwapi.Report] {
	return func(yield func(nwapi.Report) bool) {
		if !m.LinkAvailable() {
			log.WithField("interface", m.cfg.Interface).Debug("Interface absent, skipping profile scan")
			return
		}

		logger := log.WithField("root", m.cfg.ProfilesRoot)

		r, err := m.store.Snapshot()
		if err != nil {
			logger.WithError(err).Warn("Failed to open configuration store")
			return
		}

		dirs, err := r.AllDirs(m.cfg.ProfilesRoot)
		if err != nil {
			logger.WithError(err).Warn("Failed to list connection profiles")
			return
		}

		found := 0
		for _, dir := range dirs {
			report, ok := Resolve(readEntry(r, dir), m.cfg.NetworkType)
			if !ok {
				continue
			}
			found++
			if !yield(report) {
				return
			}
		}

		logger.WithFields(log.Fields{
			"profiles": len(dirs),
			"matched":  found,
			"type":     m.cfg.NetworkType,
		}).Debug("Profile scan complete")
	}
}
