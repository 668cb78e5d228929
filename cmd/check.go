package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check [input]",
	Short: "Compile the port document and summarize findings without writing",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	fmt.Fprint(cmd.OutOrStdout(), tui.Summary(result.report))

	totals := result.report.Totals()
	if totals.Findings() {
		reportFindings(totals)
		return errors.Findings(totals.Disabled(), totals.FailedInterfaces+totals.FailedContainers)
	}

	logSuccess("%s: %d rules, no findings", settings.Input, totals.Active)
	return nil
}
