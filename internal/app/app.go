package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aurceive/vtm-dice-mapping/internal/config"
	"github.com/aurceive/vtm-dice-mapping/internal/domain"
	"github.com/aurceive/vtm-dice-mapping/internal/engine"
	"github.com/aurceive/vtm-dice-mapping/internal/output"
)

const helpDescription = `description:
	Converts a VTM V20 roll into a V5 roll. Returns the V5 difficulty whose
	success chance is closest to the V20 roll for the given number of dice.
	With --export, writes the V20 and V5 distributions and the mapping table.`

type Options struct {
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

func Run(args []string) int {
	return RunWithOptions(Options{Args: args, Stdout: os.Stdout, Stderr: os.Stderr})
}

func RunWithOptions(opts Options) int {
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Stderr == nil {
		opts.Stderr = io.Discard
	}

	cmd := newRootCommand(opts)
	cmd.SetArgs(opts.Args)
	if err := cmd.Execute(); err != nil {
		if ee, ok := asExitError(err); ok {
			if ee.Err != nil && ee.Code != 0 {
				fmt.Fprintln(opts.Stderr, ee.Err)
			}
			return ee.Code
		}
		fmt.Fprintln(opts.Stderr, err)
		return 1
	}
	return 0
}

type flags struct {
	export     bool
	maxDice    int
	outputDir  string
	formats    []string
	configPath string
	logLevel   string
}

func newRootCommand(opts Options) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "vtm_mapping [flags] <number of dice> <successes required> <difficulty>",
		Short:         "Map VTM V20 rolls to V5 difficulties",
		Long:          helpDescription,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f, opts)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	// Malformed flags print the help text instead of failing.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, _ error) error {
		return c.Help()
	})

	fl := cmd.Flags()
	fl.BoolVarP(&f.export, "export", "e", false, "write the distribution and mapping tables instead of converting one roll")
	fl.IntVarP(&f.maxDice, "max-dice", "m", 0, "largest dice pool the tables cover (default from config, 20)")
	fl.StringVarP(&f.outputDir, "out", "o", "", "output directory for --export (default from config, output)")
	fl.StringSliceVarP(&f.formats, "format", "f", nil, "export formats: csv, xlsx, json (default from config, csv)")
	fl.StringVarP(&f.configPath, "config", "c", "", "config file (default: "+config.FileName+" in this directory or any parent)")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	return cmd
}

func run(cmd *cobra.Command, args []string, f flags, opts Options) error {
	if f.export && len(args) != 0 || !f.export && len(args) != 3 {
		return cmd.Help()
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return ExitWithError(1, err)
	}
	fl := cmd.Flags()
	if fl.Changed("max-dice") {
		cfg.MaxDice = f.maxDice
	}
	if fl.Changed("out") {
		cfg.OutputDir = f.outputDir
	}
	if fl.Changed("format") {
		cfg.Formats = f.formats
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	// Out-of-range settings, from flags or config, print the help text.
	if err := cfg.Validate(); err != nil {
		return cmd.Help()
	}

	log := newLogger(opts.Stderr, cfg.LogLevel)
	if f.export {
		return runExport(cfg, log, opts.Stdout)
	}

	q, ok := parseQuery(args)
	if !ok {
		return cmd.Help()
	}
	res, err := runQuery(cfg.Limits(), q, log)
	if errors.Is(err, domain.ErrInvalidArgument) {
		log.Debug().Err(err).Msg("invalid query")
		return cmd.Help()
	}
	if err != nil {
		return ExitWithError(1, err)
	}
	return output.PrintQuery(opts.Stdout, res)
}

func parseQuery(args []string) (domain.Query, bool) {
	var vals [3]int
	for i, a := range args {
		v, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return domain.Query{}, false
		}
		vals[i] = v
	}
	return domain.Query{Dice: vals[0], Successes: vals[1], Difficulty: vals[2]}, true
}

func runQuery(limits domain.Limits, q domain.Query, log zerolog.Logger) (domain.QueryResult, error) {
	if err := q.Validate(); err != nil {
		return domain.QueryResult{}, err
	}
	if q.Dice > limits.MaxDice {
		log.Debug().Int("dice", q.Dice).Int("max_dice", limits.MaxDice).Msg("pool beyond the tables, computing it directly")
	}
	start := time.Now()
	tables, err := engine.Build(limits)
	if err != nil {
		return domain.QueryResult{}, err
	}
	log.Debug().Int("max_dice", limits.MaxDice).Dur("elapsed", time.Since(start)).Msg("built probability tables")
	return tables.Query(q)
}

func runExport(cfg config.Config, log zerolog.Logger, stdout io.Writer) error {
	totalStart := time.Now()

	tables, err := engine.Build(cfg.Limits())
	if err != nil {
		return ExitWithError(1, err)
	}
	buildElapsed := time.Since(totalStart)
	log.Info().
		Int("max_dice", cfg.MaxDice).
		Int("v20_rows", tables.Legacy.Len()).
		Int("v5_rows", tables.Simplified.Len()).
		Int("mapping_rows", tables.Mapping.Len()).
		Dur("elapsed", buildElapsed).
		Msg("built probability tables")

	paths, err := output.Export(cfg.OutputDir, cfg.Formats, output.BuildReport(tables))
	for _, p := range paths {
		fmt.Fprintln(stdout, "Exported results to", p)
	}
	if err != nil {
		return ExitWithError(1, err)
	}

	totalElapsed := time.Since(totalStart)
	log.Info().
		Dur("total", totalElapsed).
		Dur("build", buildElapsed).
		Dur("export", totalElapsed-buildElapsed).
		Msg("timing")
	return nil
}
