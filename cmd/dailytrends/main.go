package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dailytrends",
		Short: "Collect and serve trending items from six platforms",
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	root.AddCommand(collectCmd())
	root.AddCommand(topCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(runCmd())

	return root
}

func collectCmd() *cobra.Command {
	var platforms []string

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run a collection cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCollect(platforms)
		},
	}

	cmd.Flags().StringSliceVar(&platforms, "platform", nil, "specific platforms to collect (e.g., reddit,news)")
	return cmd
}

func topCmd() *cobra.Command {
	var (
		platformName string
		jsonOutput   bool
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show a platform's top 10 trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(platformName, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&platformName, "platform", "news", "platform to read")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}

func runCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start daemon with periodic collection and HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "server port (default: from config)")
	return cmd
}
