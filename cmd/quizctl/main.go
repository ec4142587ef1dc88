// Command quizctl maintains the question bank: it imports and exports
// catalogs, seeds progress rows, purges the exam history and prints the
// study progress.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/remaimber-it/quizbank/internal/bank"
	"github.com/remaimber-it/quizbank/internal/infrastructure/config"
	"github.com/remaimber-it/quizbank/internal/infrastructure/logger"
	"github.com/remaimber-it/quizbank/internal/service"
	"github.com/remaimber-it/quizbank/internal/store"
)

const usage = `Usage: quizctl <command> [flags]

Commands:
  import -input <file.yaml|file.json>    load a catalog into the bank
  export [-output <file>] [-format yaml|json]
                                         write the bank as a catalog
  seed-progress                          create missing progress rows
  purge -yes                             delete every exam, reset progress
  progress                               print progress per category
`

var errUsage = errors.New("usage")

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain returns the exit code so deferred cleanup runs before exit.
func realMain(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.NewLoader(".").Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	// keep stdout clean for export
	cfg.Log.File = ""
	cfg.Log.Level = "warn"
	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer log.Sync()

	db, err := store.Open(cfg.Database.Driver, cfg.Database.Path, cfg.Database.DSN)
	if err != nil {
		log.Error("failed to open database", zap.Error(err))
		return 1
	}
	defer db.Close()

	if err := run(context.Background(), db, log, args, stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		fmt.Fprint(stderr, usage)
		return 1
	}
	return 0
}

func run(ctx context.Context, db store.Store, log *zap.Logger, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	loader := bank.NewLoader(db, log)
	progressSvc := service.NewProgressService(db, log, nil)

	switch cmd {
	case "import":
		input := fs.String("input", "", "catalog file to import")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if *input == "" {
			return errors.New("input file required")
		}
		return importFile(ctx, loader, *input, stdout)

	case "export":
		output := fs.String("output", "", "catalog file to write (defaults to stdout)")
		format := fs.String("format", "", "yaml or json (defaults to the output extension, else yaml)")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return exportFile(ctx, loader, *output, bank.Format(*format), stdout)

	case "seed-progress":
		if err := progressSvc.SeedAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "progress rows seeded")
		return nil

	case "purge":
		yes := fs.Bool("yes", false, "confirm deleting the exam history")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		if !*yes {
			return errors.New("purge deletes every exam; pass -yes to confirm")
		}
		if err := progressSvc.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "exam history purged, progress reset")
		return nil

	case "progress":
		return printProgress(ctx, progressSvc, stdout)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func importFile(ctx context.Context, loader *bank.Loader, path string, stdout io.Writer) error {
	format, err := bank.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read input file: %w", err)
	}
	defer f.Close()

	catalog, err := bank.Decode(f, format)
	if err != nil {
		return err
	}
	sum, err := loader.Import(ctx, catalog)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "imported %d categories, %d questions (%d already present)\n",
		sum.Categories, sum.Questions, sum.Skipped)
	return nil
}

func exportFile(ctx context.Context, loader *bank.Loader, path string, format bank.Format, stdout io.Writer) error {
	if format == "" {
		format = bank.FormatYAML
		if path != "" {
			f, err := bank.FormatFromPath(path)
			if err != nil {
				return err
			}
			format = f
		}
	}

	catalog, err := loader.Export(ctx)
	if err != nil {
		return err
	}
	if path == "" {
		return bank.Encode(stdout, format, catalog)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bank.Encode(f, format, catalog); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "exported %d questions to %s\n", catalog.QuestionCount(), path)
	return nil
}

func printProgress(ctx context.Context, ps *service.ProgressService, stdout io.Writer) error {
	snapshots, err := ps.SnapshotAll(ctx)
	if err != nil {
		return err
	}
	overview, err := ps.Overview(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SESSION\tCATEGORY\tQUESTIONS\tANSWERED\tCORRECT\tACCURACY")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.2f%%\n",
			s.SessionNumber, s.CategoryName, s.TotalQuestions, s.Answered, s.Correct, s.Accuracy)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n%d exams, average %.2f, best %.2f, overall accuracy %.2f%%\n",
		overview.TotalExams, overview.AverageScore, overview.BestScore, overview.OverallAccuracy)
	return nil
}
