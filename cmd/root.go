package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Alijeyrad/health_companion/cmd/http"
	notescmd "github.com/Alijeyrad/health_companion/cmd/notes"
	systemcmd "github.com/Alijeyrad/health_companion/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "healthcompanion",
	Short: "Health Companion clinical notes assistant.",
	Long: `Health Companion turns free-text clinical notes into structured summaries,
generates follow-up actions, tracks treatment efficacy across visits and
ships a few patient-facing tools: a lipid profile calculator, a symptom
checker, a health chatbot and audio transcription.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Root exposes the command tree, mainly for doc generation and tests.
func Root() *cobra.Command {
	return rootCmd
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(notescmd.NewNotesCommand())
}
