package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse [input]",
	Short: "Interactively browse the compiled forwards",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(args)
	if err != nil {
		return err
	}

	doc, err := loadDocument(settings.Input)
	if err != nil {
		return err
	}

	result, err := compileDocument(doc)
	if err != nil {
		return err
	}

	choice, err := tui.RunBrowser(result.report)
	if err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}

	switch choice.Action {
	case tui.ActionNone:
		logInfo("No forwards compiled from %s", settings.Input)
	case tui.ActionSelect:
		fmt.Fprintln(cmd.OutOrStdout(), choice.Entry.Forward.Line())
	}
	return nil
}
