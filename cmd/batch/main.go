package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-formatter/internal/batch"
	"resume-formatter/internal/logging"
)

type options struct {
	server    string
	password  string
	inputDir  string
	outputDir string
	report    string
	timeout   time.Duration
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Format every PDF resume in a directory through a running server",
		Long: `batch logs in to a resume-formatter server, sends each *.pdf in the input
directory through parse and generate, and writes <name>_formatted.pdf to the
output directory. Files already carrying the _formatted suffix are skipped.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.password == "" {
				opts.password = os.Getenv("APP_PASSWORD")
			}
			return run(cmd.Context(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.server, "server", "s", "http://localhost:3000", "base URL of the formatter server")
	f.StringVarP(&opts.password, "password", "p", "", "shared password (defaults to $APP_PASSWORD)")
	f.StringVarP(&opts.inputDir, "input", "i", "Resumes", "directory holding the PDFs to format")
	f.StringVarP(&opts.outputDir, "output", "o", "", "output directory (default <input>/formatted)")
	f.StringVar(&opts.report, "report", "", "write a CSV report of per-file results to this path")
	f.DurationVar(&opts.timeout, "timeout", 3*time.Minute, "per-request timeout")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format (text or json)")
	return cmd
}

func run(ctx context.Context, opts options) error {
	log := logging.New(opts.logLevel, opts.logFormat, os.Stderr)

	client, err := batch.NewClient(opts.server, opts.timeout)
	if err != nil {
		return err
	}
	if opts.password == "" {
		return errors.New("no password: pass --password or set APP_PASSWORD")
	}
	if err := client.Login(ctx, opts.password); err != nil {
		return err
	}

	runner := batch.NewRunner(client, opts.inputDir, opts.outputDir, log)
	results, err := runner.Run(ctx)
	if err != nil && len(results) == 0 {
		return err
	}

	sum := batch.Summarize(results)
	fmt.Println("\n=== Summary ===")
	fmt.Printf("Successful: %d\n", sum.Successful)
	fmt.Printf("Failed: %d\n", sum.Failed)
	if sum.Failed > 0 {
		fmt.Println("\nFailed files:")
		for _, r := range results {
			if !r.Success {
				fmt.Printf("  - %s: %s\n", r.File, r.Error)
			}
		}
	}
	fmt.Printf("\nFormatted resumes saved to: %s\n", runner.OutputDir())

	if opts.report != "" {
		if rerr := batch.WriteReport(opts.report, results); rerr != nil {
			return rerr
		}
		log.WithField(logging.FieldFile, opts.report).Info("Wrote report")
	}
	return err
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
