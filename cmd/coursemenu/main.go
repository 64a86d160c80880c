package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mchmarny/coursemenu/pkg/catalog"
	"github.com/mchmarny/coursemenu/pkg/logger"
	"github.com/spf13/cobra"
)

const (
	appName = "coursemenu"

	// envVarPort overrides the default --port value.
	envVarPort = "PORT"

	// envVarCatalog overrides the default --catalog value.
	envVarCatalog = "COURSEMENU_CATALOG"
)

var (
	version = "v0.0.0"  // Set at build time via -ldflags "-X main.version=version"
	commit  = "none"    // Set at build time via -ldflags "-X main.commit=commit"
	date    = "unknown" // Set at build time via -ldflags "-X main.date=date"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Serve a read-only course menu catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.SetDefaultLogger(appName, version)
		},
	}

	root.AddCommand(newServeCmd(), newShowCmd(), newVersionCmd())

	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit: %s, built: %s)\n", appName, version, commit, date)
		},
	}
}

// loadCatalog returns the embedded catalog, or the one at path when set.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(path)
}

func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envIntOrDefault(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
