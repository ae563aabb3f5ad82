package http

import "github.com/spf13/cobra"

func NewHTTPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "HTTP API server commands",
		Long:  "Serve the notes, patient and tool endpoints under /api/v1 together with health probes and metrics.",
	}

	cmd.AddCommand(NewStartCommand())

	return cmd
}
