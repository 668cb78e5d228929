package cmd

import (
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/metrics"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/output"
)

var (
	verbose      bool
	jsonOutput   bool
	settingsPath string
	outputPath   string
	rootDir      string
	metricsFile  string
	strict       bool

	// logOutput receives structured logs.
	logOutput io.Writer = os.Stderr
)

var rootCmd = &cobra.Command{
	Use:   "forage-portfwd [input]",
	Short: "Generate DNAT port forwards for forage containers",
	Long: `forage-portfwd compiles a YAML port document into iptables DNAT rules
for an ifupdown interfaces.d snippet.

Each interface block names a bridge and a subnet. Containers are addressed
by id inside the subnet and may forward:
  - ssh: host port id*100+22 to the container's port 22
  - tcp, udp: a port, a comma separated list, or a source: destination mapping
  - tcpudp: the same, forwarded for both protocols

Conflicting or out-of-range ports are written commented out and logged.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(verbose, jsonOutput, logOutput)
	},
	RunE: runGenerate,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Settings file (default "+defaultSettingsPath+")")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Generated rules file, - for stdout")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Resolve the output path under this directory")

	rootCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write run statistics to this .prom file")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when rules are disabled or blocks fail")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func runGenerate(cmd *cobra.Command, args []string) error {
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

	path, err := output.Resolve(settings.Root, settings.Output)
	if err != nil {
		return errors.OutputError("resolve", err)
	}
	if err := output.Write(path, result.text); err != nil {
		return errors.OutputError("write", err)
	}

	if settings.MetricsFile != "" {
		reg := metrics.FromReport(result.report, result.reservations, time.Now())
		if err := reg.WriteTextfile(settings.MetricsFile); err != nil {
			return errors.OutputError("metrics", err)
		}
		logging.Debug("wrote metrics", "path", settings.MetricsFile)
	}

	totals := result.report.Totals()
	if !output.IsStdout(path) {
		logSuccess("Wrote %d rules for %d interfaces to %s", totals.Active, totals.Interfaces, path)
	}
	reportFindings(totals)

	if settings.Strict && totals.Findings() {
		return errors.Findings(totals.Disabled(), totals.FailedInterfaces+totals.FailedContainers)
	}
	return nil
}
