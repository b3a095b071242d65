package main

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/usbnetd/internal/api"
	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
	"github.com/dmdmdm-nz/usbnetd/internal/usbnet"
)

type statusOutput struct {
	Interface string            `json:"interface"`
	Available bool              `json:"available"`
	Link      *netmon.LinkState `json:"link,omitempty"`
	Error     string            `json:"error,omitempty"`
}

func runLinkUp(table *nwapi.API, networkType string, out io.Writer) int {
	token := uuid.NewString()

	var resp api.LinkUpResponse
	table.LinkUp(networkType, 0, "", func(status nwapi.Status, _ error, ifname string, _ any) {
		resp = api.LinkUpResponse{Status: status.String(), Interface: ifname, Token: token}
	}, token)

	if err := writeOutput(out, resp); err != nil {
		return 1
	}
	if resp.Status != nwapi.StatusSuccess.String() {
		return 1
	}
	return 0
}

// runSearch prints one JSON line per report, the terminal report last.
func runSearch(table *nwapi.API, networkType string, out io.Writer) int {
	enc := json.NewEncoder(out)
	for _, r := range table.Collect(networkType, uuid.NewString()) {
		if err := enc.Encode(api.NewNetworkInfo(r)); err != nil {
			log.WithError(err).Error("Failed to write report")
			return 1
		}
	}
	return 0
}

func runStatus(m *usbnet.Module, out io.Writer) int {
	ifname := m.Config().Interface
	status := statusOutput{
		Interface: ifname,
		Available: m.LinkAvailable(),
	}

	state, err := netmon.Inspect(ifname)
	if err != nil {
		status.Error = err.Error()
	} else {
		status.Link = &state
	}

	if err := writeOutput(out, status); err != nil {
		return 1
	}
	return 0
}

func writeOutput(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.WithError(err).Error("Failed to write output")
		return err
	}
	return nil
}
