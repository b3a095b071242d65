package netmon

import (
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"
)

// Prober answers whether a named network interface currently exists and can
// be queried. It makes no distinction between an absent interface and a
// failed query; both report false.
type Prober interface {
	Probe(interfaceName string) bool
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(interfaceName string) bool

func (f ProberFunc) Probe(interfaceName string) bool { return f(interfaceName) }

// Method selects how a Prober talks to the OS.
type Method string

const (
	// MethodIoctl issues SIOCGIFINDEX on a throwaway socket.
	MethodIoctl Method = "ioctl"
	// MethodNetlink asks the kernel for the link over rtnetlink.
	MethodNetlink Method = "netlink"
	// MethodStdlib resolves the name through the net package.
	MethodStdlib Method = "stdlib"
)

// NewProber returns a Prober for the given method. An empty method selects
// the platform default.
func NewProber(method Method) (Prober, error) {
	switch method {
	case "":
		return newDefaultProber(), nil
	case MethodIoctl:
		return newIoctlProber(), nil
	case MethodNetlink:
		return newNetlinkProber(), nil
	case MethodStdlib:
		return stdlibProber{}, nil
	default:
		return nil, fmt.Errorf("unknown probe method %q", method)
	}
}

type stdlibProber struct{}

func (stdlibProber) Probe(interfaceName string) bool {
	if interfaceName == "" {
		return false
	}
	iface, err := net.InterfaceByName(interfaceName)
	if err != nil {
		log.WithField("interface", interfaceName).WithError(err).Trace("Interface lookup failed")
		return false
	}
	return iface.Index > 0
}
