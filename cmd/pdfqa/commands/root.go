// Package commands implements the pdfqa command line client for the REST server.
package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	noColor   bool
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pdfqa",
		Short: "Ask questions about a PDF",
		Long: `pdfqa talks to a running pdf-qa-be server.

Upload a PDF to make it the active document, then ask questions about it or
generate a summary, flashcards or multiple choice questions.

Examples:
  pdfqa upload notes.pdf
  pdfqa ask "What is the main argument?"
  pdfqa artifact summary
  pdfqa download mcq mcqs.pdf`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8000", "Base URL of the pdf-qa-be server")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(
		NewUploadCmd(),
		NewAskCmd(),
		NewHistoryCmd(),
		NewArtifactCmd(),
		NewDownloadCmd(),
		NewEventsCmd(),
	)

	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}
