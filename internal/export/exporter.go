// Package export runs export units and writes their output.
//
// Every table yields a row-mode unit plus one index unit per export rule.
// Units are independent: a failing unit writes nothing and is recorded in
// the Report while the remaining units still run.
package export

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lua-exporter/internal/check"
	"lua-exporter/internal/gen"
	"lua-exporter/internal/index"
	"lua-exporter/internal/rule"
	"lua-exporter/schema"
)

// Exporter renders tables with a Generator and hands results to a Writer.
type Exporter struct {
	gen     *gen.Generator
	writer  Writer
	checker check.Checker
	log     *zap.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.log = l
		}
	}
}

// WithChecker replaces the default check.SetChecker.
func WithChecker(c check.Checker) Option {
	return func(e *Exporter) {
		if c != nil {
			e.checker = c
		}
	}
}

// New creates an Exporter.
func New(g *gen.Generator, w Writer, opts ...Option) *Exporter {
	e := &Exporter{
		gen:     g,
		writer:  w,
		checker: check.SetChecker{},
		log:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run exports every table and returns the report of all units.
func (e *Exporter) Run(tables []*schema.Table) *Report {
	report := &Report{}

	for _, t := range tables {
		e.ExportTable(t, report)
	}

	return report
}

// ExportTable runs the row unit and every rule unit of t, appending their
// outcomes to report.
func (e *Exporter) ExportTable(t *schema.Table, report *Report) {
	log := e.log.With(zap.String("table", t.Name))

	if err := t.Validate(); err != nil {
		log.Error("table rejected", zap.Error(err))
		report.add(Unit{Table: t.Name, Mode: ModeRows, Err: err})

		return
	}

	report.add(e.exportRows(log, t))

	for _, text := range t.Exports {
		report.add(e.exportRule(log.With(zap.String("rule", text)), t, text))
	}
}

func (e *Exporter) exportRows(log *zap.Logger, t *schema.Table) Unit {
	u := Unit{Table: t.Name, Mode: ModeRows}

	log.Debug("exporting rows", zap.Int("rows", t.RowCount()))

	file, err := e.gen.ExportRows(t)
	if err != nil {
		return e.fail(log, u, err)
	}

	return e.write(log, u, file)
}

func (e *Exporter) exportRule(log *zap.Logger, t *schema.Table, text string) Unit {
	u := Unit{Table: t.Name, Mode: ModeIndex, Rule: text}
	cfg := e.gen.Config()

	log.Debug("exporting index")

	r, err := rule.Parse(text, t, cfg.RowOffset)
	if err != nil {
		return e.fail(log, u, err)
	}

	if r.Diagnostics.HasWarnings() {
		u.Warnings = r.Diagnostics.Warnings
		for _, w := range u.Warnings {
			log.Warn(w.String(), zap.String("code", w.Code), zap.String("field", w.Field))
		}
	}

	root, err := index.Build(r.Text, r.KeyFields(), cfg.RowOffset)
	if err != nil {
		return e.fail(log, u, err)
	}

	if ce := log.Check(zapcore.DebugLevel, "nested index built"); ce != nil {
		ce.Write(zap.Int("groups", root.Len()), zap.String("dump", spew.Sdump(root)))
	}

	if cfg.IntegrityCheck && r.HasChecks() {
		if err := e.checker.Check(root, r.Levels()); err != nil {
			return e.fail(log, u, fmt.Errorf("table %q rule %q: %w", t.Name, text, err))
		}
	}

	file, err := e.gen.ExportIndex(r, root)
	if err != nil {
		return e.fail(log, u, err)
	}

	return e.write(log, u, file)
}

func (e *Exporter) write(log *zap.Logger, u Unit, file *gen.GeneratedFile) Unit {
	if err := e.writer.Write(file.Name, file.Content); err != nil {
		return e.fail(log, u, err)
	}

	u.File = file.Name
	u.Bytes = len(file.Content)

	log.Info("exported", zap.Stringer("mode", u.Mode), zap.String("file", u.File), zap.Int("bytes", u.Bytes))

	return u
}

func (e *Exporter) fail(log *zap.Logger, u Unit, err error) Unit {
	u.Err = err

	log.Error("export failed", zap.Stringer("mode", u.Mode), zap.Error(err))

	return u
}
