//go:build !linux

package netmon

import (
	"fmt"
	"net"
)

// Inspect reports what the net package knows about the named interface. The
// operational state is derived from the running flag.
func Inspect(interfaceName string) (LinkState, error) {
	iface, err := net.InterfaceByName(interfaceName)
	if err != nil {
		return LinkState{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, interfaceName)
	}

	oper := "down"
	if iface.Flags&net.FlagRunning != 0 {
		oper = "up"
	}
	state := LinkState{
		Name:      iface.Name,
		Index:     iface.Index,
		AdminUp:   iface.Flags&net.FlagUp != 0,
		OperState: oper,
		MTU:       iface.MTU,
	}
	if len(iface.HardwareAddr) > 0 {
		state.HardwareAddr = iface.HardwareAddr.String()
	}
	return state, nil
}
