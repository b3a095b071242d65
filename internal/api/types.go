package api

import "github.com/dmdmdm-nz/usbnetd/internal/nwapi"

type LinkUpResponse struct {
	Status    string `json:"status"`
	Interface string `json:"interface,omitempty"`
	Token     string `json:"token"`
}

type NetworkInfo struct {
	Status      string `json:"status"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	ID          string `json:"id,omitempty"`
	Attributes  uint32 `json:"attributes"`
	Autoconnect bool   `json:"autoconnect"`
	SignalLevel int    `json:"signalLevel"`
}

type NetworksResponse struct {
	Token          string        `json:"token"`
	SearchLifetime int           `json:"searchLifetime"`
	SearchInterval int           `json:"searchInterval"`
	Networks       []NetworkInfo `json:"networks"`
}

// NewNetworkInfo converts a search report into its wire form.
func NewNetworkInfo(r nwapi.Report) NetworkInfo {
	return NetworkInfo{
		Status:      r.Status.String(),
		Name:        r.Name,
		Type:        r.Type,
		ID:          r.ID,
		Attributes:  uint32(r.Attrs),
		Autoconnect: r.Attrs.Has(nwapi.AttrAutoconnect),
		SignalLevel: int(r.Level),
	}
}
