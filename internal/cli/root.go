// Package cli implements the envcheck command-line interface.
package cli

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/config"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/deps"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

// options is shared by all subcommands and filled in before any of them run.
type options struct {
	cfg      *config.Config
	logLevel string
}

// NewRootCmd creates the root command for the envcheck CLI.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "envcheck",
		Short: "Verify the runtime environment before training jobs start",
		Long: `envcheck runs the environment sanity checks for the StreamSafe
training and tuning jobs: a baseline arithmetic check, and a check that the
tabular data, numerics and hyperparameter optimisation libraries are linked
and report a version.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error), overrides ENVCHECK_LOG_LEVEL")

	rootCmd.AddCommand(newVersionCmd(version, opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

func (o *options) init(cmd *cobra.Command) error {
	o.cfg = config.LoadConfig()

	level := o.cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())
	return nil
}

// dependencies returns the configured dependency set.
func (o *options) dependencies() ([]sanity.Dependency, error) {
	if o.cfg == nil || o.cfg.RequiredDeps == "" {
		return deps.Default(), nil
	}
	list, err := deps.Parse(o.cfg.RequiredDeps)
	if err != nil {
		return nil, errors.Wrap(err, "ENVCHECK_REQUIRED_DEPS")
	}
	if len(list) == 0 {
		return deps.Default(), nil
	}
	return list, nil
}

// checks builds fresh check instances over the configured dependencies.
func (o *options) checks(only string, source sanity.BuildInfoSource) ([]sanity.Check, error) {
	list, err := o.dependencies()
	if err != nil {
		return nil, err
	}
	return newChecks(list, source, only)
}

// newChecks restricts the set to the check named only; empty means all. A nil
// source reads the running binary.
func newChecks(list []sanity.Dependency, source sanity.BuildInfoSource, only string) ([]sanity.Check, error) {
	all := []sanity.Check{
		sanity.NewArithmeticCheck(),
		sanity.NewDependencyCheck(list, source),
	}
	if only == "" {
		return all, nil
	}
	for _, c := range all {
		if c.Name() == only {
			return []sanity.Check{c}, nil
		}
	}
	return nil, errors.Errorf("unknown check %q", only)
}
