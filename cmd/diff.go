package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff [input]",
	Short: "Show how freshly generated rules differ from the output file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(args)
	if err != nil {
		return err
	}
	if output.IsStdout(settings.Output) {
		return errors.ValidationError("diff needs an output file, not stdout")
	}

	doc, err := loadDocument(settings.Input)
	if err != nil {
		return err
	}

	result, err := compileDocument(doc)
	if err != nil {
		return err
	}

	path, err := output.Resolve(settings.Root, settings.Output)
	if err != nil {
		return errors.OutputError("resolve", err)
	}

	current, exists, err := output.Read(path)
	if err != nil {
		return errors.OutputError("read", err)
	}
	if !exists {
		logInfo("%s does not exist yet", path)
	}

	text, err := output.Diff(current, result.text, path, "generated")
	if err != nil {
		return errors.OutputError("diff", err)
	}
	if text == "" {
		logSuccess("%s is up to date", path)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	return errors.Drift(path)
}
