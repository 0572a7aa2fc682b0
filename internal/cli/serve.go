package cli

import (
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/kafka"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/metrics"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/ratelimit"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve /health, /metrics and /checks over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := opts.dependencies()
			if err != nil {
				return err
			}

			logrus.Info("Starting StreamSafe environment checker...")
			metrics.Init()

			var publisher server.Publisher
			if opts.cfg.PublishEnabled() {
				producer := kafka.NewProducer(opts.cfg.KafkaBroker, opts.cfg.KafkaTopic)
				defer closeProducer(producer)
				publisher = producer
				logrus.Infof("Publishing reports to %s on %s", opts.cfg.KafkaTopic, opts.cfg.KafkaBroker)
			}

			checks := func() []sanity.Check {
				return []sanity.Check{
					sanity.NewArithmeticCheck(),
					sanity.NewDependencyCheck(list, nil),
				}
			}
			srv := server.New(checks, ratelimit.NewPerClientLimiter(opts.cfg.ChecksRPS), publisher)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, opts.cfg.ListenAddr)
		},
	}
}
