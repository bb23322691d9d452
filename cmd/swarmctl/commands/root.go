// Пакет commands - команды swarmctl: поиск деталей тем же координатором, что и сервер.
package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/partswarm/internal/ports"
)

// Opener — поднимает координатор по глобальным флагам; close освобождает ресурсы узла.
type Opener func(ctx context.Context, opts *Options) (lookup ports.LookupService, closeFn func(), err error)

// Options — глобальные флаги.
type Options struct {
	VendorsFile string
	Mode        string
	Timeout     time.Duration
	JSON        bool
	Verbose     bool
}

// NewRootCmd — open подменяется в тестах.
func NewRootCmd(version string, open Opener) *cobra.Command {
	opts := &Options{}

	root := &cobra.Command{
		Use:   "swarmctl",
		Short: "swarmctl - electronic part lookup across distributor APIs",
		Long: `swarmctl runs the same lookup coordinator as the server in-process:
results come from the Swarm cache when present, otherwise from the configured
vendors in priority order. Configuration is read from SWARM_* variables and
.env.local; vendors are described in a YAML file.`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.VendorsFile, "vendors", "", "vendors YAML file (default: SWARM_LOOKUP_VENDORS_FILE)")
	pf.StringVar(&opts.Mode, "mode", "", "lookup mode: first|aggregate (default: SWARM_LOOKUP_MODE)")
	pf.DurationVar(&opts.Timeout, "timeout", 10*time.Second, "overall lookup timeout")
	pf.BoolVar(&opts.JSON, "json", false, "print raw JSON instead of a summary")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "log coordinator activity to stderr")

	root.AddCommand(
		newLookupCmd(opts, open),
		newDatasheetCmd(opts, open),
		newFingerprintCmd(opts),
		newVendorsCmd(opts, open),
		newValidateCmd(),
		newBatchCmd(opts, open),
	)
	return root
}

// Execute — точка входа из main.
func Execute(version string) error {
	return NewRootCmd(version, OpenCore).Execute()
}
