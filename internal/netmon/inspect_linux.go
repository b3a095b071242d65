//go:build linux

package netmon

import (
	"errors"
	"fmt"
	"net"

	"github.com/vishvananda/netlink"
)

// Inspect reports the kernel's view of the named link.
func Inspect(interfaceName string) (LinkState, error) {
	link, err := netlink.LinkByName(interfaceName)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return LinkState{}, fmt.Errorf("%w: %s", ErrInterfaceNotFound, interfaceName)
		}
		return LinkState{}, fmt.Errorf("failed to query link %s: %w", interfaceName, err)
	}

	attrs := link.Attrs()
	state := LinkState{
		Name:      attrs.Name,
		Index:     attrs.Index,
		AdminUp:   attrs.Flags&net.FlagUp != 0,
		OperState: attrs.OperState.String(),
		MTU:       attrs.MTU,
	}
	if len(attrs.HardwareAddr) > 0 {
		state.HardwareAddr = attrs.HardwareAddr.String()
	}
	return state, nil
}
