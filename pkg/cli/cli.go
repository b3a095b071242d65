package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmdmdm-nz/usbnetd/pkg/version"
)

// Commands understood by usbnetd.
const (
	CommandServe  = "serve"
	CommandLinkUp = "link-up"
	CommandSearch = "search"
	CommandStatus = "status"
)

// Options holds the command line. Zero values mean "use the config file".
type Options struct {
	ConfigPath  string
	LogLevel    string
	Host        string
	Port        int
	InitConfig  bool
	ShowVersion bool
	Command     string
}

// ParseFlags parses command line arguments and returns the Options, exiting
// on -version or a usage error.
func ParseFlags() *Options {
	opts, err := Parse(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	if opts.ShowVersion {
		fmt.Println(VersionString())
		os.Exit(0)
	}
	return opts
}

// Parse parses args without touching the process state.
func Parse(name string, args []string, output io.Writer) (*Options, error) {
	opts := &Options{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to the config file (default $XDG_CONFIG_HOME/usbnetd/config.toml or /etc/usbnetd/config.toml)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&opts.Host, "host", "", "Host to bind the API to")
	fs.IntVar(&opts.Port, "port", 0, "Port to listen on")
	fs.BoolVar(&opts.InitConfig, "init", false, "Write an example config file and exit")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [flags] [serve|link-up|search|status]\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	switch fs.NArg() {
	case 0:
		opts.Command = CommandServe
	case 1:
		opts.Command = fs.Arg(0)
	default:
		fs.Usage()
		return nil, fmt.Errorf("too many arguments: %v", fs.Args())
	}

	switch opts.Command {
	case CommandServe, CommandLinkUp, CommandSearch, CommandStatus:
	default:
		fs.Usage()
		return nil, fmt.Errorf("unknown command %q", opts.Command)
	}

	return opts, nil
}

func VersionString() string {
	return fmt.Sprintf("usbnetd version %s (commit: %s, built at: %s)",
		version.Version,
		version.CommitHash,
		version.BuildTime)
}

// String returns a string representation of the Options
func (o *Options) String() string {
	return fmt.Sprintf("Command: %s, Config: %s, Host: %s, Port: %d, LogLevel: %s", o.Command, o.ConfigPath, o.Host, o.Port, o.LogLevel)
}
