package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fairapi/internal/assess"
	"fairapi/internal/flags"
	"fairapi/internal/output"
)

type assessOptions struct {
	branch     string
	format     string
	criteria   string
	out        string
	outFormat  string
	report     string
	failedOnly bool
}

var assessOpts assessOptions

var assessCmd = &cobra.Command{
	Use:   "assess <repository>...",
	Short: "Assess repositories from the command line",
	Long: `Assess one or more repositories against the FAIR software recommendations.

Repositories are given as URLs (https://github.com/OWNER/NAME, optionally with
/tree/BRANCH/sub/dir) or as OWNER/NAME shorthand. They are assessed one after
another; results are never cached between them.

Output:
  Console output is controlled by --format (default: text).
  - text: one criteria table per repository
  - json: a single JSON array written after the last repository
  - ndjson: lifecycle events (run.started, assessment.result, run.finished)
  --out writes a JSON array or NDJSON stream to a file, --report a Markdown summary.

Exit codes:
  0 = every repository meets every criterion
  1 = at least one criterion is not met
  2 = a reference is invalid or a repository could not be assessed
  3 = fatal error (GitHub unavailable, internal error, bad configuration)

Examples:
  fairapi assess https://github.com/fair-software/howfairis
  fairapi assess acme/widget --branch develop --format json
  fairapi assess acme/a acme/b --report fair-report.md --failed-only
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssess(cmd, args, assessOpts)
	},
}

func runAssess(cmd *cobra.Command, refs []string, opts assessOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	mgr, err := newOutputManager(cmd, opts)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, _, err := newService(ctx, cfg, logger, opts.criteria)
	if err != nil {
		_ = mgr.Close()
		return err
	}

	if err := mgr.Write(output.Event{Type: "run.started", Assessments: len(refs)}); err != nil {
		_ = mgr.Close()
		return err
	}

	code := ExitCompliant
	for _, ref := range refs {
		res, err := svc.Assess(ctx, ref, opts.branch)
		rec := output.NewRecord(ref, res, err)
		if err != nil {
			logger.Debug("assessment failed", "reference", ref, "error", err)
		}
		if werr := mgr.Write(rec); werr != nil {
			_ = mgr.Close()
			return werr
		}
		code = max(code, recordExitCode(rec))
		if ctx.Err() != nil {
			break
		}
	}

	if err := mgr.Write(output.Event{Type: "run.finished", ExitCode: code}); err != nil {
		_ = mgr.Close()
		return err
	}
	if err := mgr.Close(); err != nil {
		return err
	}
	if code != ExitCompliant {
		return &ExitError{Code: code}
	}
	return nil
}

// recordExitCode maps one assessment outcome to its exit code.
func recordExitCode(rec output.Record) int {
	if !rec.Failed() {
		if rec.Result.Compliant {
			return ExitCompliant
		}
		return ExitNotCompliant
	}
	switch rec.ErrorKind {
	case assess.KindInput, assess.KindScoring:
		return ExitAssessmentError
	default:
		return ExitFatal
	}
}

func newOutputManager(cmd *cobra.Command, opts assessOptions) (*output.Manager, error) {
	mgr := output.NewManager()

	console, err := output.NewConsoleSink(cmd.OutOrStdout(), strings.ToLower(opts.format), opts.failedOnly)
	if err != nil {
		return nil, err
	}
	if err := mgr.AddSink(console); err != nil {
		return nil, err
	}

	if opts.out != "" {
		fs, err := output.NewFileSink(opts.out, strings.ToLower(opts.outFormat))
		if err != nil {
			_ = mgr.Close()
			return nil, fmt.Errorf("--%s: %w", flags.FlagOut, err)
		}
		if err := mgr.AddSink(fs); err != nil {
			_ = mgr.Close()
			return nil, err
		}
	}

	if opts.report != "" {
		rs, err := output.NewReportSink(opts.report)
		if err != nil {
			_ = mgr.Close()
			return nil, fmt.Errorf("--%s: %w", flags.FlagReport, err)
		}
		if err := mgr.AddSink(rs); err != nil {
			_ = mgr.Close()
			return nil, err
		}
	}
	return mgr, nil
}

func init() {
	rootCmd.AddCommand(assessCmd)

	assessCmd.Flags().StringVar(&assessOpts.branch, flags.FlagBranch, "", "Branch to assess (default: the repository default branch)")
	assessCmd.Flags().StringVar(&assessOpts.format, flags.FlagFormat, "text", "Console output format: text|json|ndjson")
	assessCmd.Flags().StringVar(&assessOpts.criteria, flags.FlagCriteria, "", "Comma-separated criteria to assess (empty = all)")
	assessCmd.Flags().StringVar(&assessOpts.out, flags.FlagOut, "", "Write structured output to this path")
	assessCmd.Flags().StringVar(&assessOpts.outFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	assessCmd.Flags().StringVar(&assessOpts.report, flags.FlagReport, "", "Write a Markdown report to this path")
	assessCmd.Flags().BoolVar(&assessOpts.failedOnly, flags.FlagFailedOnly, false, "Only print repositories that miss a criterion or could not be assessed")
}
