package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/Tekno-Vex/streamsafe-rl/envcheck/internal/sanity"
)

func newVersionCmd(version string, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of envcheck and its checked dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "envcheck version %s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

			list, err := opts.dependencies()
			if err != nil {
				return err
			}
			check := sanity.NewDependencyCheck(list, nil)
			_ = check.Run() // verdict belongs to `envcheck check`
			for _, p := range check.Probes() {
				v := p.Version
				if !p.Loaded {
					v = "not linked"
				}
				fmt.Fprintf(out, "%s: %s\n", p.Name, v)
			}
			return nil
		},
	}
}
