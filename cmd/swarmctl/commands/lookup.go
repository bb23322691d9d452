package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
)

func newPrinter(cmd *cobra.Command, opts *Options) *printer {
	return &printer{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr(), json: opts.JSON}
}

// withLookup — поднять координатор, выполнить fn с общим таймаутом и закрыть узел.
func withLookup(cmd *cobra.Command, opts *Options, open Opener, fn func(ctx context.Context, svc ports.LookupService) error) error {
	p := newPrinter(cmd, opts)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	svc, closeFn, err := open(ctx, opts)
	if err != nil {
		return p.fail("cannot start lookup", err.Error())
	}
	defer closeFn()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	return fn(ctx, svc)
}

// lookupFailure — оператору показываем причины по вендорам, в отличие от HTTP-ответа.
func lookupFailure(p *printer, subject string, err error) error {
	var all *domain.AllProvidersFailedError
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return p.fail("invalid query", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return p.fail("lookup timed out", "increase --timeout or check vendor availability")
	case errors.As(err, &all):
		lines := make([]string, 0, len(all.Failures))
		for _, f := range all.Failures {
			lines = append(lines, fmt.Sprintf("  %s: %v", f.Vendor, f.Err))
		}
		if len(lines) == 0 {
			lines = append(lines, "  no vendors configured")
		}
		return p.fail("no result found for "+subject, strings.Join(lines, "\n"))
	default:
		return p.fail("lookup failed", err.Error())
	}
}

func newLookupCmd(opts *Options, open Opener) *cobra.Command {
	var keywords []string
	var vendors []string

	cmd := &cobra.Command{
		Use:   "lookup <part-number>",
		Short: "Look up a part number across vendors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := partQuery(args[0], keywords, vendors)
			return withLookup(cmd, opts, open, func(ctx context.Context, svc ports.LookupService) error {
				p := newPrinter(cmd, opts)
				parts, err := svc.LookupPart(ctx, q)
				if err != nil {
					return lookupFailure(p, q.PartNumber, err)
				}
				return p.parts(parts)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&keywords, "keywords", "k", nil, "additional keywords (comma separated)")
	cmd.Flags().StringSliceVar(&vendors, "vendor", nil, "restrict to vendors (comma separated)")
	return cmd
}

func partQuery(pn string, keywords, vendors []string) domain.PartQuery {
	q := domain.PartQuery{PartNumber: pn, Keywords: keywords}
	for _, v := range vendors {
		q.Vendors = append(q.Vendors, domain.VendorID(v))
	}
	return q
}

func newDatasheetCmd(opts *Options, open Opener) *cobra.Command {
	var keywords []string

	cmd := &cobra.Command{
		Use:   "datasheet <url>",
		Short: "Find the part a datasheet URL belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := domain.DatasheetQuery{URL: args[0], Keywords: keywords}
			return withLookup(cmd, opts, open, func(ctx context.Context, svc ports.LookupService) error {
				p := newPrinter(cmd, opts)
				part, err := svc.LookupDatasheet(ctx, q)
				if err != nil {
					return lookupFailure(p, q.URL, err)
				}
				return p.single(part)
			})
		},
	}
	cmd.Flags().StringSliceVarP(&keywords, "keywords", "k", nil, "additional keywords (comma separated)")
	return cmd
}

func newVendorsCmd(opts *Options, open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "List configured vendors in priority order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withLookup(cmd, opts, open, func(_ context.Context, svc ports.LookupService) error {
				return newPrinter(cmd, opts).vendors(svc.Vendors())
			})
		},
	}
}

// newFingerprintCmd — ключ Swarm для запроса; узел не поднимается.
func newFingerprintCmd(opts *Options) *cobra.Command {
	var keywords []string
	var vendors []string
	var datasheet bool

	cmd := &cobra.Command{
		Use:   "fingerprint <part-number|url>",
		Short: "Print the Swarm cache key of a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd, opts)
			var fp domain.Fingerprint
			if datasheet {
				q := domain.DatasheetQuery{URL: args[0], Keywords: keywords}
				if err := q.Validate(); err != nil {
					return p.fail("invalid query", err.Error())
				}
				fp = domain.FingerprintDatasheet(q)
			} else {
				q := partQuery(args[0], keywords, vendors)
				if err := q.Validate(); err != nil {
					return p.fail("invalid query", err.Error())
				}
				fp = domain.FingerprintPart(q)
			}
			if opts.JSON {
				return p.writeJSON(map[string]string{"fingerprint": string(fp)})
			}
			fmt.Fprintln(p.out, fp)
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&keywords, "keywords", "k", nil, "additional keywords (comma separated)")
	cmd.Flags().StringSliceVar(&vendors, "vendor", nil, "vendor filter (comma separated)")
	cmd.Flags().BoolVar(&datasheet, "datasheet", false, "treat the argument as a datasheet URL")
	return cmd
}
