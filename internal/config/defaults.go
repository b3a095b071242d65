package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
	"github.com/dmdmdm-nz/usbnetd/internal/usbnet"
)

// Default values for optional config fields.
const (
	DefaultNetworkType = usbnet.DefaultNetworkType
	DefaultInterface   = usbnet.DefaultInterface
	DefaultProbe       = netmon.MethodIoctl
	DefaultStoreRoot   = usbnet.DefaultProfilesRoot
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 60106
	DefaultLogLevel    = "info"
)

// ExampleConfig is the template written by -init.
const ExampleConfig = `# usbnetd configuration

[module]
# Network type tag matched against each profile's "type" key
network_type = "USB"

# The USB network interface brought up by the kernel driver or udev
interface = "usb0"

# How to check the interface: "ioctl", "netlink" or "stdlib"
probe = "ioctl"

[store]
# Connection profile store (.toml or .plist)
path = "/etc/usbnetd/profiles.toml"

# Directory holding one subdirectory per connection profile
root = "/system/osso/connectivity/IAP"

[api]
host = "127.0.0.1"
port = 60106

[log]
# trace, debug, info, warn or error
level = "info"
`

// GenerateExampleConfig writes the example config to the given path.
// If path is empty, it uses the default path.
// Returns the path where the file was written.
func GenerateExampleConfig(path string) (string, error) {
	if path == "" {
		path = DefaultPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(ExampleConfig), 0644); err != nil {
		return "", fmt.Errorf("cannot write config file: %w", err)
	}

	return path, nil
}
