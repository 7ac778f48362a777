package commands

import (
	"fmt"
	"os"

	"pdf-qa-be/pkg/rag/artifact"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// routes maps a CLI kind name to its view route, download route and response field.
var routes = map[string]struct {
	kind     artifact.Kind
	view     string
	download string
	field    string
}{
	"summary":    {artifact.Summary, "/summary", "/download_summary", "summary"},
	"flashcards": {artifact.Flashcards, "/flashcards", "/download_flashcards", "flashcards"},
	"mcq":        {artifact.MCQs, "/mcq", "/download_mcq", "mcqs"},
}

func kindNames() []string {
	return []string{"summary", "flashcards", "mcq"}
}

func NewArtifactCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "artifact <summary|flashcards|mcq>",
		Short:     "Generate or show a study artifact for the active document",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: kindNames(),
		RunE:      runArtifact,
	}
}

func runArtifact(cmd *cobra.Command, args []string) error {
	r := routes[args[0]]

	value, err := newClient(serverURL).artifact(r.view, r.field)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	color.New(color.FgCyan, color.Bold).Fprintf(out, "%s:\n", args[0])
	fmt.Fprintln(out, value)
	return nil
}

func NewDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "download <summary|flashcards|mcq> [output.pdf]",
		Short:     "Download a generated artifact as PDF",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: kindNames(),
		RunE:      runDownload,
	}
}

func runDownload(cmd *cobra.Command, args []string) error {
	r, ok := routes[args[0]]
	if !ok {
		return fmt.Errorf("unknown artifact kind %q", args[0])
	}

	target := r.kind.FileName()
	if len(args) == 2 {
		target = args[1]
	}

	content, err := newClient(serverURL).download(r.download)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", target, len(content))
	return nil
}
