package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/form"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/tui"
	"github.com/goliatone/go-formbuilder/pkg/schema"
)

// Output modes besides the registered renderers.
const (
	modeOpenAPI = "openapi"
	modeJSON    = "json"
	modeYAML    = "yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			os.Exit(130)
		}
		log.Fatalf("formbuilder: %v", err)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("formbuilder-cli", flag.ContinueOnError)
	flags.SetOutput(stderr)
	source := flags.String("schema", "", "form schema file (JSON or YAML, - for stdin)")
	renderer := flags.String("renderer", "bootstrap", "bootstrap, markdown, tui, openapi, json or yaml")
	output := flags.String("output", "", "output file (stdout if empty)")
	variant := flags.String("theme-variant", "", "bootstrap theme variant (e.g. compact)")
	tuiFormat := flags.String("tui-format", string(tui.OutputFormatJSON), "tui answer format: json, form or pretty")
	title := flags.String("title", "", "OpenAPI document title")
	logLevel := flags.String("log-level", "warn", "debug, info, warn or error")
	logFormat := flags.String("log-format", "text", "text or json")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger, err := newLogger(stderr, *logLevel, *logFormat)
	if err != nil {
		return err
	}

	data, err := readSource(*source, stdin)
	if err != nil {
		return err
	}

	registry := render.NewRegistry()
	prompter, err := tui.New(
		tui.WithOutputFormat(tui.OutputFormat(*tuiFormat)),
		tui.WithOutput(stderr),
	)
	if err != nil {
		return err
	}
	if err := registry.Register(prompter); err != nil {
		return err
	}

	options := []form.Option{form.WithLogger(logger), form.WithRegistry(registry)}
	if *variant != "" {
		options = append(options, form.WithTheme(render.StaticSelector{}, render.BootstrapTheme, *variant))
	}
	builder := form.New(options...)
	if err := builder.ImportSchema(data); err != nil {
		return err
	}

	out, err := generate(ctx, builder, strings.ToLower(strings.TrimSpace(*renderer)), *title)
	if err != nil {
		return err
	}
	logger.Debug("form generated", "renderer", *renderer, "bytes", len(out))

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stdout, "Form written to %s\n", *output)
		return nil
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func generate(ctx context.Context, builder *form.Builder, mode, title string) ([]byte, error) {
	switch mode {
	case modeOpenAPI:
		doc := builder.ExportOpenAPI(schema.DocumentOptions{Title: title})
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("openapi document: %w", err)
		}
		return json.MarshalIndent(doc, "", "  ")
	case modeJSON:
		return builder.ExportSchema(schema.FormatJSON)
	case modeYAML:
		return builder.ExportSchema(schema.FormatYAML)
	case "", "html":
		return builder.Render(ctx)
	default:
		return builder.RenderWith(ctx, mode)
	}
}

func readSource(path string, stdin io.Reader) ([]byte, error) {
	path = strings.TrimSpace(path)
	switch path {
	case "":
		return nil, errors.New("-schema is required")
	case "-":
		return io.ReadAll(stdin)
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema: %w", err)
		}
		return data, nil
	}
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
}
