package cmd

import (
	"bytes"
	"io/fs"

	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/generator"
	"github.com/firefly-engineering/firefly-forage/packages/forage-portfwd/internal/logging"
)

const defaultSettingsPath = config.DefaultSettingsPath

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)

// loadSettings reads the settings file and applies command-line overrides.
// An explicit --config file must exist; the default one is optional.
func loadSettings(args []string) (*config.Settings, error) {
	path, required := defaultSettingsPath, false
	if settingsPath != "" {
		path, required = settingsPath, true
	}

	settings, err := config.LoadSettings(path, required)
	if err != nil {
		return nil, errors.SettingsError("failed to load settings", err)
	}

	if len(args) > 0 {
		settings.Input = args[0]
	}
	if outputPath != "" {
		settings.Output = outputPath
	}
	if rootDir != "" {
		settings.Root = rootDir
	}
	if metricsFile != "" {
		settings.MetricsFile = metricsFile
	}
	if strict {
		settings.Strict = true
	}
	if err := settings.Validate(); err != nil {
		return nil, errors.SettingsError("invalid settings", err)
	}

	if settings.JSON && !jsonOutput {
		logging.Setup(verbose, true, logOutput)
	}

	return settings, nil
}

// loadDocument loads the port document or returns an InputNotFound or
// DocumentError error.
func loadDocument(path string) (*config.Document, error) {
	doc, err := config.LoadDocument(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.InputNotFound(path)
		}
		return nil, errors.DocumentError(path, err)
	}
	logging.Debug("loaded port document", "path", path, "interfaces", len(doc.Interfaces))
	return doc, nil
}

// compiled is the in-memory result of a compile.
type compiled struct {
	text         []byte
	report       *generator.Report
	reservations int
}

// compileDocument compiles doc into memory. Nothing is written until the
// whole document has compiled.
func compileDocument(doc *config.Document) (*compiled, error) {
	var buf bytes.Buffer
	c := generator.NewCompiler()
	report, err := c.Compile(doc, &buf)
	if err != nil {
		return nil, errors.OutputError("render", err)
	}
	return &compiled{
		text:         buf.Bytes(),
		report:       report,
		reservations: c.Ledger().Len(),
	}, nil
}

// reportFindings warns about disabled rules and failed blocks, and points
// at the log when the compile produced diagnostics.
func reportFindings(t generator.Totals) {
	if warnings, errs := logging.Counts(); warnings+errs > 0 {
		logWarning("%d warnings and %d errors logged while compiling", warnings, errs)
	}
	if t.Conflicts > 0 {
		logWarning("%d rules disabled by port conflicts", t.Conflicts)
	}
	if t.OutOfBounds > 0 {
		logWarning("%d rules disabled by out-of-range ports", t.OutOfBounds)
	}
	if t.FailedInterfaces > 0 {
		logWarning("%d interfaces skipped", t.FailedInterfaces)
	}
	if t.FailedContainers > 0 {
		logWarning("%d containers skipped", t.FailedContainers)
	}
}
