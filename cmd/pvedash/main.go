package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pvedash/pvedash/internal/commands"
	"github.com/pvedash/pvedash/internal/config"
	"github.com/pvedash/pvedash/internal/logger"
	"github.com/pvedash/pvedash/internal/proxmox"
	"github.com/pvedash/pvedash/internal/ui"
	"github.com/pvedash/pvedash/internal/version"
)

func main() {
	cmd := &cobra.Command{
		Use:   "pvedash",
		Short: "Proxmox LXC dashboard backend",
		Long:  `Backend for the pvedash container dashboard: lists, starts, stops and deletes LXC containers on a single Proxmox VE node.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	v := version.Get()
	cmd.Version = fmt.Sprintf("%s (built %s, commit %s)", v.Version, v.BuildDate, v.GitCommit)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	serverLogger := logger.InitServerLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		serverLogger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	httpLogger := logger.InitHTTPLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)

	serverLogger.Info().Msgf("Starting pvedash (version: %s)", version.Get().Version)

	// A failed client init leaves the façade serving not_initialized
	// instead of aborting the process - the UI still comes up and shows
	// the configuration problem.
	var api commands.ContainerAPI
	client, err := proxmox.New(proxmox.Config{
		Host:        cfg.ProxmoxHost,
		Node:        cfg.ProxmoxNode,
		TokenID:     cfg.ProxmoxTokenID,
		TokenSecret: cfg.ProxmoxTokenSecret,
	}, httpLogger)
	if err != nil {
		serverLogger.Warn().Err(err).Msg("Proxmox client not initialized - check the PROXMOX_* environment variables")
	} else {
		serverLogger.Info().Msgf("using Proxmox node %s at %s", cfg.ProxmoxNode, cfg.ProxmoxHost)
		api = client
	}

	cmds := commands.New(api, commands.ConfigInfo{
		Host: cfg.ProxmoxHost,
		Node: cfg.ProxmoxNode,
	})

	server := ui.NewServer(cfg, cmds, serverLogger, httpLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		serverLogger.Error().Msgf("dashboard server error: %v", err)
		return err
	}

	serverLogger.Info().Msg("server shutdown complete")
	return nil
}
