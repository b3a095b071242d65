//go:build linux

package netmon

import (
	log "github.com/sirupsen/logrus"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

func newDefaultProber() Prober { return ioctlProber{} }

func newIoctlProber() Prober { return ioctlProber{} }

func newNetlinkProber() Prober { return netlinkProber{} }

// ioctlProber opens one short-lived datagram socket per probe and asks the
// kernel for the interface index.
type ioctlProber struct{}

func (ioctlProber) Probe(interfaceName string) bool {
	logger := log.WithField("interface", interfaceName)

	ifr, err := unix.NewIfreq(interfaceName)
	if err != nil {
		logger.WithError(err).Trace("Invalid interface name")
		return false
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		logger.WithError(err).Trace("Failed to open control socket")
		return false
	}
	defer unix.Close(fd)

	if err := unix.IoctlIfreq(fd, unix.SIOCGIFINDEX, ifr); err != nil {
		logger.WithError(err).Trace("SIOCGIFINDEX failed")
		return false
	}

	logger.WithField("index", ifr.Uint32()).Trace("Interface present")
	return true
}

type netlinkProber struct{}

func (netlinkProber) Probe(interfaceName string) bool {
	if interfaceName == "" {
		return false
	}
	link, err := netlink.LinkByName(interfaceName)
	if err != nil {
		log.WithField("interface", interfaceName).WithError(err).Trace("RTM_GETLINK failed")
		return false
	}
	return link.Attrs().Index > 0
}
