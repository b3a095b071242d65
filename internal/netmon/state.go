package netmon

import (
	"errors"
	"fmt"
)

// ErrInterfaceNotFound is returned by Inspect when no interface has the name.
var ErrInterfaceNotFound = errors.New("interface not found")

// LinkState is a diagnostic view of one interface. It is never cached.
type LinkState struct {
	Name         string `json:"name"`
	Index        int    `json:"index"`
	AdminUp      bool   `json:"adminUp"`
	OperState    string `json:"operState"`
	HardwareAddr string `json:"hardwareAddr,omitempty"`
	MTU          int    `json:"mtu"`
}

func (s LinkState) String() string {
	admin := "down"
	if s.AdminUp {
		admin = "up"
	}
	return fmt.Sprintf("%s (index %d, admin %s, oper %s)", s.Name, s.Index, admin, s.OperState)
}
