package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/sky-flux/timetable"
	"github.com/sky-flux/timetable/internal/config"
	"github.com/sky-flux/timetable/internal/logger"
	"github.com/sky-flux/timetable/predictor"
	"github.com/sky-flux/timetable/render"
	"github.com/sky-flux/timetable/store"
)

var errUsage = errors.New("usage: studyplan [-config file] add|list|stats|clear|plan [flags]")

// app carries the dependencies shared by every subcommand.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	store store.Store
	out   io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	global := flag.NewFlagSet("studyplan", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	cfgPath := global.String("config", "", "path to the YAML config file")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	st, err := store.Open(cfg.Store.Driver, cfg.Store.Path, log)
	if err != nil {
		return err
	}
	defer st.Close()

	a := &app{cfg: cfg, log: log.With("cmd", rest[0]), store: st, out: out}
	switch rest[0] {
	case "add":
		return a.add(ctx, rest[1:])
	case "list":
		return a.list(ctx)
	case "stats":
		return a.stats(ctx, rest[1:])
	case "clear":
		return a.clear(ctx)
	case "plan":
		return a.plan(ctx, rest[1:])
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var r timetable.StudyRecord
	fs.StringVar(&r.Subject, "subject", "", "subject name")
	fs.Float64Var(&r.StudyHours, "hours", 0, "hours studied")
	fs.Float64Var(&r.PreviousScore, "previous", 0, "previous test score (0-100)")
	fs.IntVar(&r.DaysBeforeExam, "days", 0, "days before the exam")
	fs.IntVar(&r.Difficulty, "difficulty", 5, "subject difficulty (1-10)")
	fs.Float64Var(&r.FinalScore, "final", 0, "final exam score, 0 if not taken yet")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	r.Subject = strings.TrimSpace(r.Subject)

	if err := a.store.Add(ctx, r); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %s\n", r.Subject)
	return nil
}

func (a *app) list(ctx context.Context) error {
	records, err := a.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(store.Columns, "\t"))
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%d\t%d\t%g\n",
			r.Subject, r.StudyHours, r.PreviousScore, r.DaysBeforeExam, r.Difficulty, r.FinalScore)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d records, %d completed exams\n", len(records), len(timetable.CompletedRecords(records)))
	return nil
}

func (a *app) stats(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("format", "text", "output format: text or json")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	if err := checkFormat(*format); err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	records, err := a.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	st := timetable.Analyze(records)
	if *format == "json" {
		return render.RecordStatsJSON(a.out, st)
	}
	return render.WriteRecordStats(a.out, st)
}

func checkFormat(format string) error {
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

func (a *app) clear(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "all records cleared")
	return nil
}

func (a *app) plan(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("format", "text", "output format: text or json")
	summary := fs.Bool("summary", false, "include weekly study statistics")
	seed := fs.Int64("seed", a.cfg.Seed, "seed for the subject shuffle")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if err := checkFormat(*format); err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	trainer := &reportingTrainer{Trainer: predictor.NewTrainer(a.cfg.Trainer), log: a.log}
	res, err := timetable.Plan(ctx, a.store, trainer, timetable.PlanOptions{
		Schedule: a.cfg.Schedule,
		Seed:     *seed,
	})
	if err != nil {
		return err
	}

	for _, p := range res.Allocation.Ranked {
		a.log.Info("subject ranked",
			"subject", p.Subject,
			"predicted_score", p.PredictedScore,
			"weakness", p.WeaknessScore,
			"slots", res.Allocation.Days(p.Subject),
		)
	}
	for _, w := range res.Week.Warnings {
		a.log.Warn("degenerate schedule", "day", w.Day.String(), "kind", w.Kind.String(), "detail", w.Detail)
	}

	switch {
	case *format == "json" && *summary:
		return render.JSONWithSummary(a.out, res.Week)
	case *format == "json":
		return render.JSON(a.out, res.Week)
	}
	if err := render.Text(a.out, res.Week); err != nil {
		return err
	}
	if *summary {
		fmt.Fprintln(a.out)
		return render.WriteSummary(a.out, render.Summarize(res.Week))
	}
	return nil
}

// reportingTrainer logs which model the predictor selected.
type reportingTrainer struct {
	*predictor.Trainer
	log *logger.Logger
}

func (t *reportingTrainer) Train(ctx context.Context, records []timetable.StudyRecord) (timetable.ScorePredictor, error) {
	m, err := t.Fit(ctx, records)
	if err != nil {
		return nil, err
	}
	r := m.Report()
	t.log.Info("model trained",
		"chosen", r.Chosen.String(),
		"rmse", r.RMSE,
		"linear_rmse", r.LinearRMSE,
		"forest_rmse", r.ForestRMSE,
		"knn_rmse", r.NeighborsRMSE,
		"train", r.TrainSize,
		"test", r.TestSize,
	)
	return m, nil
}
