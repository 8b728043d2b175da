package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/gompdf/htmlflow"
)

func run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	input := cmd.String("input")
	if input == "" {
		return errors.New("no input file has been specified")
	}

	opts := []htmlflow.Option{htmlflow.WithTitle(cmd.String("title"))}
	if cmd.Bool("verbose") {
		log, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("unable to prepare logs: %w", err)
		}
		defer func() { _ = log.Sync() }()
		opts = append(opts, htmlflow.WithLogger(log))
	}
	if styles := cmd.String("styles"); styles != "" {
		opts = append(opts, htmlflow.WithStyleFile(styles))
	}
	if page := cmd.String("page"); page != "" {
		opt, err := htmlflow.WithPageSizeName(page)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}
	if cmd.Bool("landscape") {
		opts = append(opts, htmlflow.WithPageOrientation(htmlflow.PageOrientationLandscape))
	}
	converter := htmlflow.New(opts...)

	if cmd.Bool("dump") {
		out, err := converter.DumpFile(input)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.Root().Writer, out)
		return err
	}

	output := cmd.String("output")
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
	}
	if err := converter.ConvertFile(input, output); err != nil {
		return fmt.Errorf("unable to convert %s: %w", input, err)
	}
	if cmd.Bool("verbose") {
		fmt.Fprintf(cmd.Root().Writer, "Successfully converted %s to %s\n", input, output)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            "htmlflow",
		Usage:           "lays out rich-text HTML and renders it to PDF",
		HideHelpCommand: true,
		Action:          run,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "read HTML from `FILE`"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write PDF to `FILE` (default: input with .pdf extension)"},
			&cli.StringFlag{Name: "styles", Aliases: []string{"s"}, Usage: "load style tables from `FILE` (YAML)"},
			&cli.StringFlag{Name: "page", Aliases: []string{"p"}, Value: "A4", Usage: "page `SIZE` (A3, A4, A5, Letter, Legal)"},
			&cli.BoolFlag{Name: "landscape", Usage: "lay pages out in landscape orientation"},
			&cli.StringFlag{Name: "title", Usage: "document `TITLE` stored in PDF metadata"},
			&cli.BoolFlag{Name: "dump", Usage: "print the layout tree instead of writing a PDF"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log diagnostics to stderr"},
		},
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
