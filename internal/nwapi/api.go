// Package nwapi describes the boundary between the connectivity host and a
// network module: the capability table a module fills in at registration and
// the callbacks through which it reports results.
package nwapi

import (
	"fmt"

	"github.com/Masterminds/semver"
)

// ModuleVersion is the interface version implemented by modules in this repository.
var ModuleVersion = semver.MustParse("1.0.0")

// LinkUpCallback receives the outcome of a link-up request. An empty
// interfaceName means no interface is bound.
type LinkUpCallback func(status Status, errInfo error, interfaceName string, token any)

// LinkUpFunc asks a module to bring up the link for a network. The callback
// is invoked exactly once; callers must not assume it runs before LinkUpFunc returns.
type LinkUpFunc func(networkType string, attrs Attr, networkID string, cb LinkUpCallback, token any)

// SearchCallback receives search reports. len(extra) is the data length.
type SearchCallback func(status SearchStatus, name, networkType string, attrs Attr, id string, level SignalLevel, extra []byte, token any)

// SearchFunc asks a module to list the networks it can offer. The callback is
// invoked once per candidate and exactly once more with SearchComplete.
type SearchFunc func(networkType string, scope uint, cb SearchCallback, token any)

// WatchPIDFunc lets a module ask the host to monitor a child process.
type WatchPIDFunc func(pid int, token any)

// CloseFunc lets a module ask the host to close a network connection.
type CloseFunc func(status Status, errInfo error, networkType string, attrs Attr, networkID string)

// API is the capability table filled in by a module's Init.
type API struct {
	Version     *semver.Version
	LinkUp      LinkUpFunc
	StartSearch SearchFunc

	// SearchLifetime and SearchInterval are in seconds and only steer how
	// often the host repeats a search.
	SearchLifetime int
	SearchInterval int
}

// Check verifies that the table was filled in and that its version satisfies
// the host's constraint, e.g. "^1.0".
func (a *API) Check(constraint string) error {
	if a.Version == nil {
		return fmt.Errorf("module did not set an interface version")
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	if !c.Check(a.Version) {
		return fmt.Errorf("module interface version %s does not satisfy %s", a.Version, constraint)
	}
	if a.LinkUp == nil || a.StartSearch == nil {
		return fmt.Errorf("module interface %s is missing capabilities", a.Version)
	}
	return nil
}

// Collect runs a search through the callback interface and gathers every
// report, including the terminal one.
func (a *API) Collect(networkType string, token any) []Report {
	var reports []Report
	a.StartSearch(networkType, 0, func(status SearchStatus, name, nwType string, attrs Attr, id string, level SignalLevel, extra []byte, _ any) {
		reports = append(reports, Report{
			Status: status,
			Name:   name,
			Type:   nwType,
			Attrs:  attrs,
			ID:     id,
			Level:  level,
			Extra:  extra,
		})
	}, token)
	return reports
}
