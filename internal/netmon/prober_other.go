//go:build !linux

package netmon

import log "github.com/sirupsen/logrus"

func newDefaultProber() Prober { return stdlibProber{} }

// ioctl and netlink probing are Linux only; other platforms resolve the name
// through the net package with the same contract.
func newIoctlProber() Prober {
	log.Warn("ioctl probing is not supported on this platform, using stdlib")
	return stdlibProber{}
}

func newNetlinkProber() Prober {
	log.Warn("netlink probing is not supported on this platform, using stdlib")
	return stdlibProber{}
}
