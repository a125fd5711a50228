// Package main provides a CLI for running Lua group scripts against a stored world.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	groupscriptcmd "github.com/louisbranch/partybind/internal/cmd/groupscript"
	platformcmd "github.com/louisbranch/partybind/internal/platform/cmd"
)

func main() {
	cfg, err := groupscriptcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		platformcmd.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceGroupScript, cfg.OTel, func(ctx context.Context) error {
		return groupscriptcmd.Run(ctx, cfg, os.Stdout, os.Stderr)
	})
	if err != nil {
		platformcmd.Exitf("Error: %v", err)
	}
}
