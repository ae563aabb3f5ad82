package notes

import "github.com/spf13/cobra"

func NewNotesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Offline clinical note tools",
	}

	cmd.AddCommand(NewExtractCommand())

	return cmd
}
