package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"pms/config"
	"pms/console"
	"pms/daemon"
	"pms/list"
	"pms/logging"
	"pms/tui"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.StringP("config", "c", config.DefaultPath(), "path to config file")
		host        = flag.String("host", "", "MPD host or socket path")
		port        = flag.IntP("port", "p", 0, "MPD port")
		logFile     = flag.String("log", "", "write logs to this file")
		debug       = flag.BoolP("debug", "d", false, "enable debug logging")
		showVersion = flag.BoolP("version", "v", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("pms", version)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", *configPath, err)
	}

	con := console.New(cfg.ConsoleLines, 0)
	logging.Setup(cfg.LogFile, cfg.Debug, con)
	defer logging.RecoverPanic("main", nil)

	mode := list.ScrollNormal
	if cfg.ScrollMode == "centered" {
		mode = list.ScrollCentered
	}

	return tui.Run(tui.Options{
		Daemon:     daemon.New(cfg.Host, cfg.Port, cfg.Password, cfg.Timeout.Duration),
		Console:    con,
		ScrollMode: mode,
		ListLimit:  cfg.ListLimit,
	})
}
