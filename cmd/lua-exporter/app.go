package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"lua-exporter/internal/diagnostic"
	"lua-exporter/internal/export"
	"lua-exporter/internal/gen"
	"lua-exporter/internal/project"
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "lua-exporter",
		Usage: "Export typed tables as Lua literal tables",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "project",
				Aliases:  []string{"p"},
				Usage:    "YAML project file declaring tables, rows and export rules",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Value:   "lua",
				Usage:   "output directory for generated .lua files",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "run integrity check expressions of export rules",
			},
			&cli.BoolFlag{
				Name:  "column-info",
				Usage: "prepend a comment header describing the fields",
			},
			&cli.BoolFlag{
				Name:  "lang-empty-string",
				Usage: `render unresolved lang cells as "" instead of nil`,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "render everything but write no files",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output including nested index dumps",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	logger, err := newLogger(c.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	proj, err := project.LoadFile(c.String("project"))
	if err != nil {
		return err
	}

	cfg := configFromFlags(c, proj.Options.Apply(gen.DefaultConfig()))

	var w export.Writer = export.NewDirWriter(c.String("out"))
	if c.Bool("dry-run") {
		w = &export.MemWriter{}
	}

	exporter := export.New(gen.NewGenerator(cfg, proj.Lang), w, export.WithLogger(logger))
	report := exporter.Run(proj.Tables)

	if err := printReport(c.App.Writer, report); err != nil {
		return err
	}

	if failed := len(report.Failed()); failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d export units failed", failed, len(report.Units)), 1)
	}

	return nil
}

// configFromFlags lets explicitly set flags override cfg.
func configFromFlags(c *cli.Context, cfg gen.Config) gen.Config {
	if c.IsSet("check") {
		cfg.IntegrityCheck = c.Bool("check")
	}

	if c.IsSet("column-info") {
		cfg.ColumnInfo = c.Bool("column-info")
	}

	if c.IsSet("lang-empty-string") {
		cfg.LangEmptyString = c.Bool("lang-empty-string")
	}

	return cfg
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func printReport(out io.Writer, report *export.Report) error {
	tw := tablewriter.NewWriter(out)
	tw.Header("table", "mode", "rule", "file", "bytes", "status")

	for _, u := range report.Units {
		status := "ok"
		if !u.OK() {
			status = "failed"
		} else if len(u.Warnings) > 0 {
			status = "ok (" + strconv.Itoa(len(u.Warnings)) + " warnings)"
		}

		if err := tw.Append(u.Table, u.Mode.String(), u.Rule, u.File, strconv.Itoa(u.Bytes), status); err != nil {
			return fmt.Errorf("report row: %w", err)
		}
	}

	if err := tw.Render(); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	d := report.Diagnostics()
	for _, list := range [][]diagnostic.Diagnostic{d.Warnings, d.Errors} {
		for _, item := range list {
			fmt.Fprintf(out, "%s: %s\n", item.Severity, item)
		}
	}

	return nil
}
