package usbnet

import (
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
)

const (
	SearchLifetime = 31
	SearchInterval = 30
)

// Init fills in the capability table. watch and closeFn are part of the
// registration contract but this module never needs them.
func (m *Module) Init(api *nwapi.API, watch nwapi.WatchPIDFunc, watchToken any, closeFn nwapi.CloseFunc) bool {
	api.Version = nwapi.ModuleVersion
	api.LinkUp = m.linkUp
	api.StartSearch = m.startSearch
	api.SearchLifetime = SearchLifetime
	api.SearchInterval = SearchInterval
	return true
}

func (m *Module) linkUp(_ string, _ nwapi.Attr, _ string, cb nwapi.LinkUpCallback, token any) {
	ifname, err := m.LinkUp()
	if err != nil {
		cb(nwapi.StatusError, nil, "", token)
		return
	}
	cb(nwapi.StatusSuccess, nil, ifname, token)
}

// startSearch ignores the requested type and scope; it always scans for the
// module's own network type and always ends with a complete report.
func (m *Module) startSearch(_ string, _ uint, cb nwapi.SearchCallback, token any) {
	for r := range m.Search() {
		cb(r.Status, r.Name, r.Type, r.Attrs, r.ID, r.Level, r.Extra, token)
	}
	done := nwapi.CompleteReport()
	cb(done.Status, done.Name, done.Type, done.Attrs, done.ID, done.Level, done.Extra, token)
}
