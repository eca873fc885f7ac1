package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-sourcechain/internal/config"
	"github.com/askiada/go-sourcechain/internal/hoststep"
	"github.com/askiada/go-sourcechain/pkg/chain"
	"github.com/askiada/go-sourcechain/pkg/chain/drawer"
	"github.com/askiada/go-sourcechain/pkg/chain/logging"
	"github.com/askiada/go-sourcechain/pkg/chain/measure"
	"github.com/askiada/go-sourcechain/pkg/chain/model"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Build the chain described by the config file and run it",
		Long: `Run materializes every step of the config file in order, removes the steps listed
under "remove", runs the chain and prints the input and output of each remaining step.

Examples:
  # Run ./sourcechain.yaml
  sourcechain run

  # Run another config and print a YAML report
  sourcechain run -c build.yaml --format yaml

  # Also write the chain as a DOT graph
  sourcechain run --draw chain.dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgFile, _ := cmd.Flags().GetString("config")

			cfg, err := loadConfig(v, cfgFile)
			if err != nil {
				return err
			}

			return runChain(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().String("format", "", "report format: text or yaml")
	cmd.Flags().String("draw", "", "write the chain as a DOT graph to this file")

	_ = v.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = v.BindPFlag("draw", cmd.Flags().Lookup("draw"))

	return cmd
}

func loadConfig(v *viper.Viper, cfgFile string) (config.Config, error) {
	defaults := config.Defaults()
	v.SetDefault("source.name", defaults.Source.Name)
	v.SetDefault("format", defaults.Format)
	v.SetDefault("log_level", defaults.LogLevel)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return config.Config{}, errors.Wrap(err, "unable to read config")
		}
	}

	var cfg config.Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return config.Config{}, errors.Wrap(err, "unable to decode config")
	}

	err = cfg.Validate()
	if err != nil {
		return config.Config{}, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

func runChain(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	msr := measure.NewDefaultMeasure()

	c, err := buildChain(cfg, logger, msr)
	if err != nil {
		return err
	}

	err = c.Run(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to run chain")
	}

	inputs, err := c.Resolve(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to resolve chain")
	}

	return writeReport(stdout, cfg.Format, newReport(c, inputs, msr))
}

// buildChain materializes the configured steps and removes the ones listed under remove.
func buildChain(cfg config.Config, logger *slog.Logger, msr measure.Measure) (*chain.Chain, error) {
	opts := []model.ChainOption{
		logging.ChainLogger(logger),
		measure.ChainMeasure(msr),
	}
	if cfg.Draw != "" {
		opts = append(opts, drawer.ChainDrawer(
			drawer.NewDOTDrawer(cfg.Draw, drawer.GraphAttribute("label", cfg.Source.Name)),
			msr,
		))
	}

	source := model.NewStaticSourceSet(cfg.Source.Name, cfg.Source.Files...)

	c, err := chain.New(source, hoststep.NewFactory(), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create chain")
	}

	for i, step := range cfg.Steps {
		params := hoststep.Params{
			Patterns: step.Patterns,
			Dir:      step.Dir,
			Reverse:  step.Reverse,
		}

		matOpts := []chain.MaterializeOption{chain.WithConfigurator(params.Apply)}
		if step.Name != "" {
			matOpts = append(matOpts, chain.WithName(step.Name))
		}

		_, err := c.Materialize(step.Type, matOpts...)
		if err != nil {
			return nil, errors.Wrapf(err, "step %d", i)
		}
	}

	for _, name := range cfg.Remove {
		err := c.Remove(name)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

type stepReport struct {
	Name   string   `yaml:"name"`
	Input  []string `yaml:"input"`
	Output []string `yaml:"output"`
	AvgRun string   `yaml:"avg_run,omitempty"`
}

type chainReport struct {
	Chain  string       `yaml:"chain"`
	Source []string     `yaml:"source"`
	Steps  []stepReport `yaml:"steps"`
	Output []string     `yaml:"output"`
}

func newReport(c *chain.Chain, inputs map[string]model.FileSet, msr measure.Measure) chainReport {
	report := chainReport{
		Chain:  c.Name(),
		Source: c.Source().Files().Files(),
		Steps:  []stepReport{},
		Output: c.Output().Files(),
	}

	for _, step := range c.Steps() {
		sr := stepReport{
			Name:   step.Name(),
			Input:  inputs[step.Name()].Files(),
			Output: step.Output().Files(),
		}

		if mt := msr.GetMetric(step.Name()); mt != nil && mt.Runs() > 0 {
			sr.AvgRun = mt.AVGRun().String()
		}

		report.Steps = append(report.Steps, sr)
	}

	return report
}

func writeReport(wrt io.Writer, format string, report chainReport) error {
	if format == config.FormatYAML {
		enc := yaml.NewEncoder(wrt)
		defer enc.Close()

		err := enc.Encode(report)
		if err != nil {
			return errors.Wrap(err, "unable to encode report")
		}

		return nil
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "chain %s: %s\n", report.Chain, join(report.Source))

	for i, step := range report.Steps {
		fmt.Fprintf(&sb, "%d. %s: %s -> %s\n", i, step.Name, join(step.Input), join(step.Output))
	}

	fmt.Fprintf(&sb, "output: %s\n", join(report.Output))

	_, err := io.WriteString(wrt, sb.String())

	return err
}

func join(files []string) string {
	return "{" + strings.Join(files, ", ") + "}"
}
