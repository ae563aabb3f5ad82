package notes

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/health_companion/config"
	"github.com/Alijeyrad/health_companion/internal/service/extraction"
	"github.com/Alijeyrad/health_companion/pkg/gemini"
)

func NewExtractCommand() *cobra.Command {
	var (
		file  string
		useAI bool
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the structured summary of a clinical note",
		Long: `Extract reads a clinical note from --file (or stdin when omitted) and
prints its summary as JSON. Nothing is stored.

With --ai the configured Gemini backend is tried first; the pattern tables
are used when it is disabled or fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readNote(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			var gen extraction.Generator
			if useAI {
				cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
				if err != nil {
					return err
				}
				cfg, err := config.ReadConfig(filepath.Dir(cfgPath))
				if err != nil {
					return fmt.Errorf("failed to read config: %w", err)
				}
				client, err := gemini.New(cmd.Context(), cfg.Gemini)
				if err != nil {
					return fmt.Errorf("failed to create gemini client: %w", err)
				}
				if client == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "gemini is disabled, using pattern extraction")
				} else {
					gen = client
				}
			}

			summary := extraction.Extract(cmd.Context(), text, gen)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the note text file (default stdin)")
	cmd.Flags().BoolVar(&useAI, "ai", false, "Use the configured Gemini backend when available")

	return cmd
}

func readNote(stdin io.Reader, file string) (string, error) {
	var (
		raw []byte
		err error
	)
	if file == "" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read note: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return "", errors.New("note text is empty")
	}
	return text, nil
}
