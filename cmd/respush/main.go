// Package main provides the respush command: it samples a spreadsheet resource catalog
// and pushes one message per resource type to a group robot webhook.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "respush",
	Short:         "Push randomly sampled catalog resources to a chat webhook",
	Long:          "respush reads a spreadsheet of (type, name, link) rows, groups them by type, samples up to N links per type and posts one text message per type to a WeCom group robot webhook.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPush,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a config file (default: ./config.yaml or ./config/config.yaml if present)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
