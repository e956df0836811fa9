// Package cli wires the osmclean commands together.
package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"osmclean/internal/config"
	"osmclean/internal/logger"
	"osmclean/internal/normalizer"
	"osmclean/pkg/metadata"
)

// App is what the commands need from the outside world.
type App struct {
	Fs     afero.Fs
	Stdout io.Writer
	Stderr io.Writer
}

// env is the state shared by the root command and its subcommands.
type env struct {
	app *App

	configPath   string
	logLevel     string
	logJSON      bool
	postcodeMode string

	cfg *config.Config
	log *logger.Logger
}

// RootCmd returns the osmclean command tree.
func RootCmd(app *App) *cobra.Command {
	e := &env{app: app}

	root := &cobra.Command{
		Use:           "osmclean",
		Short:         "Clean, reshape, audit and sample OpenStreetMap XML exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return e.setup(cmd)
		},
	}

	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&e.configPath, "config", "", "Path to YAML config file")
	pf.StringVar(&e.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.BoolVar(&e.logJSON, "log-json", false, "Write logs as JSON lines")
	pf.StringVar(&e.postcodeMode, "postcode-mode", "", "Postcode handling: extract or preserve")

	root.AddCommand(
		cleanCmd(e),
		shapeCmd(e),
		auditCmd(e),
		sampleCmd(e),
	)

	return root
}

// setup loads the configuration, applies flag overrides and creates the run logger.
func (e *env) setup(cmd *cobra.Command) error {
	cfg := config.Default()

	if e.configPath != "" {
		loaded, err := config.LoadConfig(e.app.Fs, e.configPath)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = e.logLevel
	}

	if flags.Changed("log-json") {
		cfg.Logging.JSON = e.logJSON
	}

	if flags.Changed("postcode-mode") {
		cfg.Cleaning.PostcodeMode = e.postcodeMode
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	e.cfg = cfg
	e.log = logger.New(e.app.Stderr, cfg.Logging.Level, cfg.Logging.JSON).With("run", uuid.NewString())
	e.log.Debug("configuration loaded", "config", cfg.String())

	return nil
}

func (e *env) processor(reporter *logger.ChangeReporter) (*normalizer.Processor, error) {
	mode, err := normalizer.ParsePostcodeMode(e.cfg.Cleaning.PostcodeMode)
	if err != nil {
		return nil, err
	}

	return normalizer.NewProcessor(normalizer.Config{
		PostcodeMode: mode,
		Kinds:        e.cfg.Cleaning.ProcessKinds,
	}, reporter), nil
}

// withInput opens path for reading and passes it to fn.
func (e *env) withInput(path string, fn func(in io.Reader) error) error {
	in, err := e.app.Fs.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	return fn(in)
}

// withFiles opens inPath, creates outPath with its parent directories and
// passes both to fn. The returned digest covers everything fn wrote. A
// failure to close the output is returned.
func (e *env) withFiles(inPath, outPath string, fn func(in io.Reader, out io.Writer) error) (*metadata.Digest, error) {
	var digest *metadata.Digest

	err := e.withInput(inPath, func(in io.Reader) (err error) {
		if mkdirErr := e.app.Fs.MkdirAll(filepath.Dir(outPath), 0755); mkdirErr != nil {
			return fmt.Errorf("failed to create output directory: %w", mkdirErr)
		}

		out, err := e.app.Fs.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}

		defer func() {
			if closeErr := out.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("failed to close output: %w", closeErr)
			}
		}()

		digest = metadata.NewDigest(out)

		return fn(in, digest)
	})

	return digest, err
}
