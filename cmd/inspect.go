package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/output"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/rules"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [generated-file]",
	Short: "List the rules in a generated file",
	Long: `Read a previously generated rules file and list its forwards.

Defaults to the configured output file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// inspection is what a generated file contains.
type inspection struct {
	rules  []rules.Rule
	errors []string
}

func runInspect(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(nil)
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		if output.IsStdout(settings.Output) {
			return errors.ValidationError("inspect needs a file, not stdout")
		}
		if path, err = output.Resolve(settings.Root, settings.Output); err != nil {
			return errors.OutputError("resolve", err)
		}
	}

	data, exists, err := output.Read(path)
	if err != nil {
		return errors.OutputError("read", err)
	}
	if !exists {
		return errors.InputNotFound(path)
	}

	found := inspectRules(data)

	out := cmd.OutOrStdout()
	if len(found.rules) == 0 {
		logInfo("No rules in %s", path)
	} else {
		fmt.Fprint(out, tui.RuleTable(found.rules))
	}

	for _, msg := range found.errors {
		logWarning("%s", msg)
	}

	disabled := 0
	for _, r := range found.rules {
		if r.Disabled {
			disabled++
		}
	}
	fmt.Fprintf(out, "%d rules (%d disabled), %d error markers\n", len(found.rules), disabled, len(found.errors))
	return nil
}

// inspectRules parses every rule line and error marker in data.
// Unparseable rule lines are reported as errors.
func inspectRules(data []byte) inspection {
	var found inspection

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		line := scanner.Text()
		if msg, ok := strings.CutPrefix(line, rules.ErrorPrefix); ok {
			found.errors = append(found.errors, msg)
			continue
		}

		r, ok, err := rules.ParseLine(line)
		switch {
		case err != nil:
			found.errors = append(found.errors, fmt.Sprintf("line %d: %v", n, err))
		case ok:
			found.rules = append(found.rules, r)
		}
	}
	return found
}
