package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/partswarm/internal/domain"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/pkg/validate"
)

// newValidateCmd — проверка файла запросов (.json, .jsonl или BOM в .csv).
// Валидные запросы печатаются в каноническом виде.
func newValidateCmd() *cobra.Command {
	var in, format string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON/JSONL/CSV file of part queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &printer{out: cmd.OutOrStdout(), err: cmd.ErrOrStderr()}
			qv := validate.NewQueryValidator()

			var summary validate.Summary
			var err error
			if in == "" {
				// stdin без явного формата читается как JSONL
				f := validate.InputFormat(format)
				if f == validate.FormatAuto {
					f = validate.FormatJSONL
				}
				summary, err = validate.ScanQueries(cmd.Context(), qv, cmd.InOrStdin(), f, printCanonical(p.out))
			} else {
				summary, err = validate.ValidateFile(cmd.Context(), qv, in, validate.InputFormat(format), p.out)
			}
			if err != nil {
				return p.fail("validation failed", fmt.Sprintf("%v (%s)", err, summary))
			}
			if summary.Valid == 0 && summary.Invalid > 0 {
				return p.fail("validation failed", summary.String())
			}
			p.success("validation ok (%s)", summary)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "input file (.json, .jsonl or .csv); stdin when empty")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto|json|jsonl|csv")
	return cmd
}

// newBatchCmd — поиск по каждому запросу файла; невалидные записи пропускаются.
func newBatchCmd(opts *Options, open Opener) *cobra.Command {
	var in, format string
	var failFast bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Look up every query from a JSONL/JSON/CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.Reader = cmd.InOrStdin()
			f := validate.FormatJSONL
			if in != "" {
				f = validate.ResolveFormat(validate.InputFormat(format), in)
				f, err := os.Open(in)
				if err != nil {
					return newPrinter(cmd, opts).fail("cannot open input", err.Error())
				}
				defer f.Close()
				r = f
			}

			return withLookup(cmd, opts, open, func(ctx context.Context, svc ports.LookupService) error {
				p := newPrinter(cmd, opts)
				found, missed := 0, 0
				res, err := validate.ScanQueries(ctx, validate.NewQueryValidator(), r, f, func(q domain.PartQuery) error {
					parts, err := svc.LookupPart(ctx, q)
					if err != nil {
						if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
							return err
						}
						missed++
						p.warning("%s: no result (%v)", q.PartNumber, summarizeErr(err))
						if failFast {
							return err
						}
						return nil
					}
					found++
					return p.parts(parts)
				})
				if err != nil {
					return lookupFailure(p, "batch", err)
				}
				p.success("batch done: %d found / %d missed / %d invalid", found, missed, res.Invalid)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "file with part queries; stdin (JSONL) when empty")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto|json|jsonl|csv")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first query without a result")
	return cmd
}

func printCanonical(w io.Writer) func(domain.PartQuery) error {
	return func(q domain.PartQuery) error {
		return json.NewEncoder(w).Encode(q)
	}
}

func summarizeErr(err error) string {
	var all *domain.AllProvidersFailedError
	if errors.As(err, &all) {
		return fmt.Sprintf("%d vendors failed", len(all.Failures))
	}
	return err.Error()
}
