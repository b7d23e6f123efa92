package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mchmarny/sidenav/pkg/config"
	"github.com/mchmarny/sidenav/pkg/logger"
)

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "unknown" // Set at build time via -ldflags "-X main.commit=sha"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=timestamp"
)

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	// env-only until the root command loads the config
	logger.SetDefaultLogger(config.DefaultName, version)

	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(versionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
