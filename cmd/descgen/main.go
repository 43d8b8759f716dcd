// Package main is the descgen command-line client. It talks to the backend
// over the JSON API and drives the generate / correct / save workflow from
// the terminal.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"descgen/internal/api"
	"descgen/internal/workflow"
)

var (
	serverURL string
	verbose   bool
	assumeYes bool

	logger *slog.Logger
	client *api.Client
	flow   *workflow.Workflow
)

var rootCmd = &cobra.Command{
	Use:   "descgen",
	Short: "Generate, correct and curate product descriptions",
	Long: `descgen is a client for the description-generation backend.

It generates guitar and company descriptions, records corrections that feed
back into future generations, and manages the saved library, example pool and
prompt templates.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		client = api.New(serverURL, logger)
		flow = workflow.New(client, terminalConfirmer(), logger)
	},
}

// terminalConfirmer gates destructive commands. --yes answers everything
// true; otherwise the user is asked on the terminal and anything but an
// explicit yes declines.
func terminalConfirmer() workflow.Confirmer {
	return workflow.ConfirmerFunc(func(prompt string) bool {
		if assumeYes {
			return true
		}
		fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "backend base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "answer yes to confirmation prompts")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
