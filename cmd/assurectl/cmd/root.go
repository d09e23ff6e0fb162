// Package cmd implements the assurectl CLI commands.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

var (
	version string

	// Global flags
	flagAPIURL  string
	flagOutput  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "assurectl",
	Short: "Asset inventory administration CLI",
	Long: `assurectl is a kubectl-style CLI for the asset inventory service.

It provides commands to browse the confirmed inventory, review discovered
candidates, confirm or ignore them, and manage dependency edges.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the CLI version from build flags.
func SetVersion(v string) {
	version = v
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Override API URL (env: ASSUREOPS_API_URL)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(confirmCmd)
	rootCmd.AddCommand(ignoreCmd)
	rootCmd.AddCommand(confirmAllCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
	rootCmd.AddCommand(statsCmd)
}

func initConfig() {
	if flagAPIURL == "" {
		flagAPIURL = os.Getenv("ASSUREOPS_API_URL")
	}
	if flagAPIURL == "" {
		flagAPIURL = "http://localhost:8080"
	}
}

func apiClient() *Client {
	return NewClient(flagAPIURL, flagVerbose)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("assurectl %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	},
}
