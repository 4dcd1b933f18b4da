package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/contract"
	chorerrors "github.com/standardbeagle/chorus/internal/errors"
	"github.com/standardbeagle/chorus/internal/store"
	"github.com/standardbeagle/chorus/internal/version"
	"github.com/standardbeagle/chorus/pkg/chorus"

	"github.com/urfave/cli/v2"
)

var Version = version.Version

// exitCode maps a returned error to the process exit status the command
// table names: 0 success, 1 cancelled, 2 invalid configuration, 3 store
// write failure, 4 parse-error threshold exceeded, 1 for anything else
// uncategorized (mirrors the cancellation bucket since both mean "this
// run did not produce a usable result").
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var cancel *chorerrors.CancellationError
	var cfgErr *chorerrors.ConfigError
	var storErr *chorerrors.StorageError
	var multi *chorerrors.MultiError
	switch {
	case stderrors.As(err, &cancel):
		return 1
	case stderrors.As(err, &cfgErr):
		return 2
	case stderrors.As(err, &storErr):
		return 3
	case stderrors.As(err, &multi):
		return 4
	default:
		return 1
	}
}

func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	configPath := c.String("config")
	if rootFlag := c.String("root"); rootFlag != "" && configPath == ".chorus.kdl" {
		configPath = filepath.Join(rootFlag, ".chorus.kdl")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, chorerrors.NewConfigError("config", configPath, err)
	}

	if includeFlags := c.StringSlice("include"); len(includeFlags) > 0 {
		cfg.Include = includeFlags
	}
	if excludeFlags := c.StringSlice("exclude"); len(excludeFlags) > 0 {
		cfg.Exclude = append(cfg.Exclude, excludeFlags...)
	}
	if rootFlag := c.String("root"); rootFlag != "" {
		absRoot, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, chorerrors.NewConfigError("root", rootFlag, err)
		}
		cfg.Project.Root = absRoot
	}
	return cfg, nil
}

func openEngine(c *cli.Context) (*chorus.Engine, error) {
	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return nil, err
	}
	return chorus.Open(cfg, nil)
}

func filterFromFlags(c *cli.Context) store.Filter {
	return store.Filter{
		Categories: c.StringSlice("category"),
		Paradigms:  c.StringSlice("paradigm"),
		Severities: c.StringSlice("severity"),
		PathGlob:   c.String("path-glob"),
		Cursor:     c.String("cursor"),
		Limit:      c.Int("limit"),
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	app := &cli.App{
		Name:                   "chorus",
		Usage:                  "Static analysis core: patterns, conventions, contracts, confidence",
		Version:                Version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Config file path", Value: ".chorus.kdl"},
			&cli.StringSliceFlag{Name: "include", Usage: "Include files matching glob patterns"},
			&cli.StringSliceFlag{Name: "exclude", Usage: "Exclude files matching glob patterns"},
			&cli.StringFlag{Name: "root", Aliases: []string{"r"}, Usage: "Project root directory (overrides config)"},
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Run a full analysis of the project root",
				Action: func(c *cli.Context) error {
					engine, err := openEngine(c)
					if err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					defer engine.Close()

					ctx, cancel := signalContext()
					defer cancel()
					result, err := engine.Analyze(ctx)
					if err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					return printJSON(result)
				},
			},
			{
				Name:      "analyze-changed",
				Usage:     "Run an incremental analysis restricted to the given files",
				ArgsUsage: "<file> [file...]",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("analyze-changed requires at least one file argument", 2)
					}
					engine, err := openEngine(c)
					if err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					defer engine.Close()

					ctx, cancel := signalContext()
					defer cancel()
					result, err := engine.AnalyzeChanged(ctx, c.Args().Slice())
					if err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					return printJSON(result)
				},
			},
			{
				Name:  "query",
				Usage: "Query the persistent store",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{Name: "category"},
					&cli.StringSliceFlag{Name: "paradigm"},
					&cli.StringSliceFlag{Name: "severity"},
					&cli.StringFlag{Name: "path-glob"},
					&cli.StringFlag{Name: "cursor"},
					&cli.IntFlag{Name: "limit", Value: 100},
				},
				Subcommands: []*cli.Command{
					{
						Name:  "findings",
						Usage: "List persisted pattern/crypto detections",
						Action: func(c *cli.Context) error {
							engine, err := openEngine(c)
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							defer engine.Close()
							findings, cursor, err := engine.QueryFindings(filterFromFlags(c))
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							return printJSON(struct {
								Findings []store.Finding `json:"findings"`
								Cursor   string          `json:"cursor,omitempty"`
							}{findings, cursor})
						},
					},
					{
						Name:  "contracts",
						Usage: "List persisted API contracts",
						Action: func(c *cli.Context) error {
							engine, err := openEngine(c)
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							defer engine.Close()
							contracts, cursor, err := engine.QueryContracts(filterFromFlags(c))
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							return printJSON(struct {
								Contracts interface{} `json:"contracts"`
								Cursor    string      `json:"cursor,omitempty"`
							}{contracts, cursor})
						},
					},
					{
						Name:  "conventions",
						Usage: "List learned conventions",
						Action: func(c *cli.Context) error {
							engine, err := openEngine(c)
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							defer engine.Close()
							conventions, cursor, err := engine.QueryConventions(filterFromFlags(c))
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							return printJSON(struct {
								Conventions interface{} `json:"conventions"`
								Cursor      string      `json:"cursor,omitempty"`
							}{conventions, cursor})
						},
					},
					{
						Name:  "violations",
						Usage: "List enforced convention violations",
						Action: func(c *cli.Context) error {
							engine, err := openEngine(c)
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							defer engine.Close()
							violations, cursor, err := engine.QueryViolations(filterFromFlags(c))
							if err != nil {
								return cli.Exit(err.Error(), exitCode(err))
							}
							return printJSON(struct {
								Violations interface{} `json:"violations"`
								Cursor     string      `json:"cursor,omitempty"`
							}{violations, cursor})
						},
					},
				},
			},
			{
				Name:      "feedback",
				Usage:     "Record feedback against a pattern or a convention",
				ArgsUsage: "pattern|convention <action>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "pattern-id"},
					&cli.StringFlag{Name: "scope", Value: "project"},
					&cli.StringFlag{Name: "id"},
					&cli.StringFlag{Name: "detector-id"},
					&cli.StringFlag{Name: "conv-key"},
					&cli.StringFlag{Name: "value"},
					&cli.StringFlag{Name: "reason"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return cli.Exit("feedback requires a target kind and an action", 2)
					}
					kind := chorus.FeedbackTargetKind(c.Args().Get(0))
					action := c.Args().Get(1)

					engine, err := openEngine(c)
					if err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					defer engine.Close()

					target := chorus.FeedbackTarget{
						Kind:       kind,
						PatternID:  c.String("pattern-id"),
						Scope:      c.String("scope"),
						ID:         c.String("id"),
						DetectorID: c.String("detector-id"),
						ConvKey:    c.String("conv-key"),
						Value:      c.String("value"),
					}
					if err := engine.RecordFeedback(target, action, c.String("reason")); err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					return nil
				},
			},
			{
				Name:      "parse-spec",
				Usage:     "Parse a schema-first specification file and print the resulting contract",
				ArgsUsage: "<path> <spec-type>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return cli.Exit("parse-spec requires <path> and <spec-type>", 2)
					}
					path := c.Args().Get(0)
					specType := c.Args().Get(1)
					data, err := os.ReadFile(path)
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					parsed, err := chorus.ParseSpec(path, data, specType)
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					return printJSON(parsed)
				},
			},
			{
				Name:      "compare-contracts",
				Usage:     "Diff two previously-parsed contract JSON documents for breaking changes",
				ArgsUsage: "<before.json> <after.json>",
				Action: func(c *cli.Context) error {
					if c.NArg() < 2 {
						return cli.Exit("compare-contracts requires <before.json> and <after.json>", 2)
					}
					before, err := readContract(c.Args().Get(0))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					after, err := readContract(c.Args().Get(1))
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					changes := chorus.CompareContracts(*before, *after)
					return printJSON(changes)
				},
			},
			configCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// configCommand groups config init/show/validate, the teacher's three-verb
// shape for configuration management (cmd/lci's "config" command group),
// scoped to .chorus.kdl instead of .lci.kdl.
func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a starter .chorus.kdl in the current directory",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: ".chorus.kdl"},
					&cli.BoolFlag{Name: "force", Usage: "Overwrite an existing file"},
				},
				Action: func(c *cli.Context) error {
					output := c.String("output")
					if !c.Bool("force") {
						if _, err := os.Stat(output); err == nil {
							return cli.Exit(fmt.Sprintf("%s already exists (use --force to overwrite)", output), 2)
						}
					}
					return os.WriteFile(output, []byte(starterKDL), 0644)
				},
			},
			{
				Name:  "show",
				Usage: "Print the effective configuration as JSON",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfigWithOverrides(c)
					if err != nil {
						return cli.Exit(err.Error(), exitCode(err))
					}
					return printJSON(cfg)
				},
			},
			{
				Name:  "validate",
				Usage: "Load the configuration and report problems",
				Action: func(c *cli.Context) error {
					cfg, err := loadConfigWithOverrides(c)
					if err != nil {
						return cli.Exit(err.Error(), 2)
					}
					warnings := validateConfig(cfg)
					for _, w := range warnings {
						fmt.Fprintln(os.Stderr, "warning:", w)
					}
					return nil
				},
			},
		},
	}
}

func validateConfig(cfg *config.Config) []string {
	var warnings []string
	if cfg.Performance.MaxMemoryMB < 100 {
		warnings = append(warnings, "performance.max_memory_mb is very low (<100MB)")
	}
	if cfg.Index.MaxTotalSizeMB < 50 {
		warnings = append(warnings, "index.max_total_size_mb is very low (<50MB)")
	}
	if cfg.Confidence.MinObservations < 1 {
		warnings = append(warnings, "confidence.min_observations must be at least 1")
	}
	if len(cfg.Contract.EnabledParadigms) == 0 {
		warnings = append(warnings, "contract.enabled_paradigms is empty, no contract extraction will run")
	}
	return warnings
}

const starterKDL = `project {
    root "."
}

index {
    max_total_size_mb 500
    follow_symlinks false
    respect_gitignore true
}

performance {
    max_memory_mb 500
    parallel_file_workers 0
}

confidence {
    prior_alpha 1.0
    prior_beta 1.0
    credible_interval 0.95
    min_observations 5
}

contract {
    path_similarity_floor 0.75
}
`

func readContract(path string) (*contract.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc contract.Contract
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM, the same
// shutdown trigger the orchestrator's revision-bump cancellation
// protocol expects a host process to deliver.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
