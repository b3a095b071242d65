package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/dmdmdm-nz/usbnetd/internal/api"
	"github.com/dmdmdm-nz/usbnetd/internal/config"
	"github.com/dmdmdm-nz/usbnetd/internal/confstore"
	"github.com/dmdmdm-nz/usbnetd/internal/netmon"
	"github.com/dmdmdm-nz/usbnetd/internal/nwapi"
	"github.com/dmdmdm-nz/usbnetd/internal/runtime"
	"github.com/dmdmdm-nz/usbnetd/internal/usbnet"
	"github.com/dmdmdm-nz/usbnetd/pkg/cli"
)

// Module interface versions this binary knows how to drive.
const supportedModuleVersions = "^1.0"

func main() {
	opts := cli.ParseFlags()

	if opts.InitConfig {
		path, err := config.GenerateExampleConfig(opts.ConfigPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote example config to %s\n", path)
		return
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyOverrides(cfg, opts)

	// Configure logging
	setLogLevel(cfg.Log.Level)
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		FullTimestamp:   true,
	})
	log.SetOutput(os.Stderr)

	log.Debugf("Config: %s", cfg)

	module, err := newModule(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to create USB network module")
	}

	table := &nwapi.API{}
	if !module.Init(table, nil, nil, nil) {
		log.Fatal("USB network module refused to initialise")
	}
	if err := table.Check(supportedModuleVersions); err != nil {
		log.WithError(err).Fatal("Incompatible module interface")
	}

	switch opts.Command {
	case cli.CommandLinkUp:
		os.Exit(runLinkUp(table, cfg.Module.NetworkType, os.Stdout))
	case cli.CommandSearch:
		os.Exit(runSearch(table, cfg.Module.NetworkType, os.Stdout))
	case cli.CommandStatus:
		os.Exit(runStatus(module, os.Stdout))
	default:
		serve(cfg, table)
	}
}

func newModule(cfg *config.Config) (*usbnet.Module, error) {
	prober, err := netmon.NewProber(cfg.Module.Probe)
	if err != nil {
		return nil, err
	}

	var store confstore.Store
	if cfg.Store.Path == "" {
		log.Warn("No profile store configured, searches will report no networks")
		store = confstore.NewTree()
	} else {
		f, err := confstore.NewFile(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		store = f
	}

	return usbnet.New(usbnet.Config{
		NetworkType:  cfg.Module.NetworkType,
		Interface:    cfg.Module.Interface,
		ProfilesRoot: cfg.Store.Root,
	}, prober, store)
}

func serve(cfg *config.Config, table *nwapi.API) {
	log.WithFields(log.Fields{
		"interface": cfg.Module.Interface,
		"type":      cfg.Module.NetworkType,
		"probe":     cfg.Module.Probe,
		"store":     cfg.Store.Path,
		"version":   table.Version,
	}).Info("USB network module registered")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	apiSvc := api.NewService(cfg.API.Host, cfg.API.Port)
	apiSvc.AttachModule(table, cfg.Module.NetworkType)

	super := runtime.NewSupervisor()
	super.Add("api", func(ctx context.Context) error { return apiSvc.Start(ctx) }, apiSvc.Close)

	if err := super.Start(ctx); err != nil {
		log.WithError(err).Error("supervisor start failed")
		os.Exit(1)
	}
	if err := super.Wait(ctx); err != nil {
		log.WithError(err).Error("supervisor wait failed")
		os.Exit(1)
	}
}

func applyOverrides(cfg *config.Config, opts *cli.Options) {
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.Host != "" {
		cfg.API.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.API.Port = opts.Port
	}
}

func setLogLevel(level string) {
	switch level {
	case "trace":
		log.SetLevel(log.TraceLevel)
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	case "warn":
		log.SetLevel(log.WarnLevel)
	case "error":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}
