package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/remeenemee/pos-vodootliv/internal/config"
	"github.com/remeenemee/pos-vodootliv/internal/logging"
	"github.com/remeenemee/pos-vodootliv/internal/metrics"
	"github.com/remeenemee/pos-vodootliv/internal/server"
	"github.com/remeenemee/pos-vodootliv/pkg/inflow"
	"github.com/remeenemee/pos-vodootliv/pkg/project"
	"github.com/remeenemee/pos-vodootliv/pkg/report"
	"github.com/remeenemee/pos-vodootliv/pkg/validation"
)

// errInvalid is returned after the validation report has been printed.
var errInvalid = errors.New("pit input is invalid")

// app carries the configuration shared by all commands.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.AppConfig
	logger *slog.Logger
}

func (a *app) setup(logOut io.Writer) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// loadInput reads a pit project from a directory holding pit.yaml or from
// a YAML file.
func loadInput(projectPath string) (*project.Input, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if info.IsDir() {
		in, err := project.LoadProject(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading project: %w", err)
		}
		return in, nil
	}
	in, err := project.Load(projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}
	return in, nil
}

// loadAndEvaluate loads the project, validates it and runs the calculation.
// The result is nil when the report is invalid.
func (a *app) loadAndEvaluate(projectPath string) (project.Input, *inflow.Result, *validation.Report, error) {
	in, err := loadInput(projectPath)
	if err != nil {
		return project.Input{}, nil, nil, err
	}
	res, rep := inflow.Evaluate(*in)
	if res == nil {
		a.logger.Debug("calculation rejected", "project", projectPath, "fields", rep.Fields())
	}
	return *in, res, rep, nil
}

func (a *app) runCalculate(w io.Writer, projectPath string, asJSON bool) error {
	in, res, rep, err := a.loadAndEvaluate(projectPath)
	if err != nil {
		return err
	}
	if res == nil {
		printValidationReport(w, rep)
		return errInvalid
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"input":      in,
			"result":     res,
			"validation": rep,
		})
	}

	doc := report.Build(in, res, a.reportOptions(""))
	if err := report.WriteText(w, doc); err != nil {
		return err
	}
	printFindings(w, rep)
	return nil
}

func (a *app) runValidate(w io.Writer, projectPath string) error {
	_, _, rep, err := a.loadAndEvaluate(projectPath)
	if err != nil {
		return err
	}
	printValidationReport(w, rep)
	if !rep.Valid {
		return errInvalid
	}
	return nil
}

func (a *app) runReport(w io.Writer, projectPath, formatName, out string) error {
	format, err := report.ParseFormat(formatName)
	if err != nil {
		return err
	}
	in, res, rep, err := a.loadAndEvaluate(projectPath)
	if err != nil {
		return err
	}
	if res == nil {
		printValidationReport(w, rep)
		return errInvalid
	}

	id := uuid.NewString()
	doc := report.Build(in, res, a.reportOptions(id))

	if out == "-" {
		return report.Write(w, doc, format)
	}
	if out == "" {
		out = filepath.Join(a.cfg.Report.OutputDir, "pit-inflow."+format.Extension())
	}
	if err := writeReportFile(out, doc, format); err != nil {
		return err
	}
	a.logger.Info("report written", "path", out, "format", format, "id", id)
	fmt.Fprintf(w, "Report written to %s\n", out)
	return nil
}

func writeReportFile(path string, doc *report.Document, format report.Format) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing report file: %w", cerr)
		}
	}()
	if err := report.Write(f, doc, format); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func runMethod(w io.Writer) error {
	_, err := io.WriteString(w, report.Methodology())
	return err
}

func (a *app) runInit(w io.Writer, dir string, perfect, force bool) error {
	path := filepath.Join(dir, project.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	in := project.Default()
	if perfect {
		in.Pit = project.PerfectPit(project.DefaultAquicludeElevation)
	}
	if a.cfg.Report.Soil != "" {
		in.Soil = a.cfg.Report.Soil
	}

	written, err := project.Save(dir, in)
	if err != nil {
		return err
	}
	a.logger.Debug("project initialised", "path", written, "type", in.Pit.Kind)
	fmt.Fprintf(w, "Wrote %s\n", written)
	return nil
}

func (a *app) runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(a.cfg, a.logger, metrics.New())
	return srv.Start(ctx)
}

func (a *app) reportOptions(id string) report.Options {
	return report.Options{
		ID:    id,
		Title: a.cfg.Report.Title,
		Soil:  a.cfg.Report.Soil,
	}
}
