package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/frudas24/monitorshape/internal/config"
	"github.com/frudas24/monitorshape/internal/logging"
	"github.com/frudas24/monitorshape/internal/monitor"
	"github.com/frudas24/monitorshape/internal/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errInvalid signals that at least one input failed validation.
var errInvalid = errors.New("invalid monitor records")

// stdinName is the argument that selects standard input.
const stdinName = "-"

// newCheckCmd validates monitor records from files or stdin.
func newCheckCmd() *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Validate monitor records from files or stdin",
		Long: `Validate monitor records read from files (or stdin when no file or "-" is given).
Each document may hold one record or a list of records.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if len(args) == 0 {
				args = []string{stdinName}
			}
			opts.format = cfg.Format
			opts.strict = cfg.Strict
			opts.hasID = cmd.Flags().Changed("id")
			results := make([]report.Result, 0, len(args))
			for _, name := range args {
				result := checkSource(cmd.InOrStdin(), name, opts)
				logger.Debug("checked source",
					zap.String("source", name),
					zap.Bool("valid", result.Valid),
					zap.Int("problems", len(result.Errors)))
				results = append(results, result)
			}

			if err := report.Write(cmd.OutOrStdout(), cfg.Output, results); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !report.AllValid(results) {
				return errInvalid
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringP("format", "f", monitor.FormatAuto, "Input format: auto, json or yaml")
	flags.StringP("output", "o", report.FormatText, "Report format: text, json or yaml")
	flags.Bool("strict", false, "Also check value constraints (non-empty name, positive scale, ...)")
	flags.BoolVar(&opts.list, "list", false, "Require every document to be a list of records")
	flags.StringVar(&opts.name, "name", "", "Only report the monitor with this connector name")
	flags.IntVar(&opts.id, "id", 0, "Only report the monitor with this id")
	flags.BoolVar(&opts.focused, "focused", false, "Only report the focused monitor")
	cmd.MarkFlagsMutuallyExclusive("name", "id", "focused")
	return cmd
}

// checkOptions controls how one source is validated.
type checkOptions struct {
	format  string
	strict  bool
	list    bool
	name    string
	id      int
	hasID   bool
	focused bool
}

// selectMonitors narrows validated monitors to the one the options ask for.
func selectMonitors(monitors []monitor.Monitor, opts checkOptions) ([]monitor.Monitor, error) {
	var (
		m     monitor.Monitor
		found bool
	)
	switch {
	case opts.name != "":
		if m, found = monitor.GetMonitorByName(monitors, opts.name); !found {
			return nil, fmt.Errorf("no monitor named %q", opts.name)
		}
	case opts.hasID:
		if m, found = monitor.GetMonitorByID(monitors, opts.id); !found {
			return nil, fmt.Errorf("no monitor with id %d", opts.id)
		}
	case opts.focused:
		if m, found = monitor.Focused(monitors); !found {
			return nil, errors.New("no focused monitor")
		}
	default:
		return monitors, nil
	}
	return []monitor.Monitor{m}, nil
}

// checkSource reads, decodes and validates one named source.
func checkSource(stdin io.Reader, name string, opts checkOptions) report.Result {
	data, err := readSource(stdin, name)
	if err != nil {
		return report.FromValidation(name, nil, err)
	}
	input, err := monitor.Decode(data, opts.format)
	if err != nil {
		return report.FromValidation(name, nil, err)
	}

	var monitors []monitor.Monitor
	if opts.list {
		monitors, err = monitor.ValidateList(input)
	} else {
		monitors, err = monitor.ValidateAny(input)
	}
	if err == nil && opts.strict {
		if err = monitor.CheckAny(input, monitors); err != nil {
			monitors = nil
		}
	}
	if err == nil {
		monitors, err = selectMonitors(monitors, opts)
	}
	return report.FromValidation(name, monitors, err)
}

// readSource returns the bytes of a file, or of stdin for "-".
func readSource(stdin io.Reader, name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// loadConfig loads configuration with the command's flags bound.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// exitCode maps command errors onto process exit codes.
func exitCode(err error) int {
	if errors.Is(err, errInvalid) {
		return 1
	}
	return 2
}
