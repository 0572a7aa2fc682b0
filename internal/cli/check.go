package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/kafka"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

// ErrChecksFailed is returned when at least one check did not pass.
var ErrChecksFailed = errors.New("environment checks failed")

var (
	passLabel = color.New(color.FgGreen, color.Bold)
	failLabel = color.New(color.FgRed, color.Bold)
)

func newCheckCmd(opts *options) *cobra.Command {
	var (
		only    string
		binary  string
		asJSON  bool
		publish bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the environment sanity checks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var source sanity.BuildInfoSource
			if binary != "" {
				source = sanity.FileBuildInfo(binary)
			}
			checks, err := opts.checks(only, source)
			if err != nil {
				return err
			}

			report := sanity.NewRunner().Run(checks...)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(cmd.OutOrStdout(), report)
			}

			if publish && opts.cfg.PublishEnabled() {
				producer := kafka.NewProducer(opts.cfg.KafkaBroker, opts.cfg.KafkaTopic)
				defer closeProducer(producer)
				if err := producer.PublishReport(cmd.Context(), report); err != nil {
					logrus.Warnf("Report %s not published: %v", report.ID, err)
				}
			}

			if !report.Passed() {
				return errors.Wrapf(ErrChecksFailed, "%d of %d", len(report.Failed()), len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&only, "only", "", "run a single check (arithmetic, dependencies)")
	cmd.Flags().StringVar(&binary, "binary", "", "check the modules linked into this Go binary instead of envcheck itself")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&publish, "publish", true, "publish the report to Kafka when ENVCHECK_KAFKA_BROKER is set")

	return cmd
}

// closeProducer flushes pending batches; a failure there loses the report.
func closeProducer(p io.Closer) {
	if err := p.Close(); err != nil {
		logrus.Warnf("Failed to close Kafka producer: %v", err)
	}
}

func printReport(w io.Writer, report *sanity.Report) {
	for _, res := range report.Results {
		if res.Passed {
			passLabel.Fprint(w, "PASS")
			fmt.Fprintf(w, " %s\n", res.Check)
		} else {
			failLabel.Fprint(w, "FAIL")
			fmt.Fprintf(w, " %s (%s): %s\n", res.Check, res.Kind, res.Error)
		}
		for _, p := range res.Probes {
			version := p.Version
			if !p.Loaded {
				version = "not linked"
			}
			fmt.Fprintf(w, "     %-10s %s %s\n", p.Name, p.Module, version)
		}
	}
}
