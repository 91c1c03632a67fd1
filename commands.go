package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sirkon/streamtrace/internal/chain"
	"github.com/sirkon/streamtrace/internal/emit"
	"github.com/sirkon/streamtrace/internal/tracing"
)

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "streamtrace",
		Short:         "Instruments stream pipelines and resolves their traces",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML config file")
	flags.String("language", "java", "target language of the trace expression: java or kotlin")
	flags.String("log-level", "info", "log level")
	flags.String("log-format", "console", "log format: console or json")
	flags.String("chain", "", "pipeline description file")

	root.AddCommand(
		&cobra.Command{
			Use:   "expr",
			Short: "Print the trace expression of a pipeline",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, log, err := setup(cmd)
				if err != nil {
					return err
				}
				c, err := readChain(cmd)
				if err != nil {
					return err
				}

				code, err := tracing.NewExpressionBuilder(cfg.Language).Build(c)
				if err != nil {
					return fmt.Errorf("build trace expression: %w", err)
				}
				log.Debug().Str("chain", c.CompactText()).Int("size", len(code)).Msg("trace expression built")

				_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
				return err
			},
		},
		&cobra.Command{
			Use:   "chain",
			Short: "Print the pipeline source in the target language",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, _, err := setup(cmd)
				if err != nil {
					return err
				}
				c, err := readChain(cmd)
				if err != nil {
					return err
				}

				r, err := emit.New(cfg.Language)
				if err != nil {
					return fmt.Errorf("setup renderer: %w", err)
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Text(r))
				return err
			},
		},
		newResolveCommand(),
	)

	return root
}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print values correspondence of a pipeline from a recorded evaluation result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			c, err := readChain(cmd)
			if err != nil {
				return err
			}

			path, err := cmd.Flags().GetString("result")
			if err != nil {
				return fmt.Errorf("get result path: %w", err)
			}
			evaluator, err := readEvaluator(path)
			if err != nil {
				return err
			}

			var calls []int
			if cmd.Flags().Changed("at") {
				pos, err := cmd.Flags().GetInt("at")
				if err != nil {
					return fmt.Errorf("get source position: %w", err)
				}
				call, err := callAt(c, pos)
				if err != nil {
					return err
				}
				calls = []int{call}
			}

			var rep tracing.Reporter
			tracer := tracing.NewTracer(tracing.NewExpressionBuilder(cfg.Language), evaluator, &rep, log)
			resolved, err := tracer.Trace(cmd.Context(), c)
			defer rep.PrintSummary(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			return printResolved(cmd.OutOrStdout(), resolved, calls)
		},
	}
	cmd.Flags().String("result", "", "recorded evaluation result file")
	cmd.Flags().Int("at", 0, "source position, only the call covering it is printed")

	return cmd
}

// callAt returns the call covering the source position. The qualifier
// position selects the first call, which consumes its values.
func callAt(c *chain.Chain, pos int) (int, error) {
	loc, ok := tracing.NewSourceIndex(c).At(pos)
	if !ok {
		return 0, fmt.Errorf("no pipeline part at position %d", pos)
	}

	return max(loc.Call, 0), nil
}

func setup(cmd *cobra.Command) (*config, zerolog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	log, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	return cfg, log, nil
}

func readChain(cmd *cobra.Command) (*chain.Chain, error) {
	path, err := cmd.Flags().GetString("chain")
	if err != nil {
		return nil, fmt.Errorf("get chain path: %w", err)
	}
	if path == "" {
		return nil, fmt.Errorf("pipeline description file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pipeline description: %w", err)
	}
	defer f.Close()

	c, err := chain.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read pipeline description %s: %w", path, err)
	}

	return c, nil
}

func readEvaluator(path string) (*tracing.StaticEvaluator, error) {
	if path == "" {
		return nil, fmt.Errorf("recorded evaluation result file is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recorded evaluation result: %w", err)
	}
	defer f.Close()

	e, err := tracing.NewStaticEvaluator(f)
	if err != nil {
		return nil, fmt.Errorf("read recorded evaluation result %s: %w", path, err)
	}

	return e, nil
}
