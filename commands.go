package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mcncl/bdecode/internal/analyzer"
	"github.com/mcncl/bdecode/internal/config"
	"github.com/mcncl/bdecode/internal/errors"
	"github.com/mcncl/bdecode/internal/formatter"
	"github.com/mcncl/bdecode/internal/models"
	"github.com/mcncl/bdecode/internal/parser"
)

// InputFlags selects where bencoded input comes from
type InputFlags struct {
	Value  string `arg:"" optional:"" help:"Bencoded value. When omitted, reads --input or stdin."`
	Input  string `help:"Path to bencoded input file." short:"i" type:"path"`
	Strict bool   `help:"Reject unsorted or duplicate keys, padded lengths and trailing data."`
}

// DecodeCmd decodes input and prints JSON
type DecodeCmd struct {
	In InputFlags `embed:""`

	Output   string `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Indent   string `help:"Indent string for pretty-printed output."`
	KeyOrder string `help:"Dictionary key order: input or sorted."`
	KeyCase  string `help:"Dictionary key case: original, camel, lower_camel, snake or kebab."`
	Bytes    string `help:"Byte string encoding: auto, hex or base64."`
}

// InspectCmd decodes input and prints a structural summary
type InspectCmd struct {
	In InputFlags `embed:""`
}

// Run executes the decode command
func (c *DecodeCmd) Run(ctx *Context) error {
	cfg, err := loadConfig(ctx, config.Overrides{
		Indent:   c.Indent,
		KeyOrder: c.KeyOrder,
		KeyCase:  c.KeyCase,
		Bytes:    c.Bytes,
		Strict:   c.In.Strict,
	})
	if err != nil {
		return err
	}
	logger := newLogger(ctx, cfg)

	doc, err := readInput(ctx, c.In, newParser(cfg, logger))
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatterWithConfig(cfg.Output).Format(doc.Root)
	if err != nil {
		return errors.NewOutputError("failed to render JSON", err)
	}

	return writeOutput(ctx, c.Output, out)
}

// Run executes the inspect command
func (c *InspectCmd) Run(ctx *Context) error {
	cfg, err := loadConfig(ctx, config.Overrides{Strict: c.In.Strict})
	if err != nil {
		return err
	}
	logger := newLogger(ctx, cfg)

	doc, err := readInput(ctx, c.In, newParser(cfg, logger))
	if err != nil {
		return err
	}

	summary, err := analyzer.NewAnalyzer().Analyze(doc)
	if err != nil {
		return errors.NewOutputError("failed to analyze decoded value", err)
	}

	if _, err := fmt.Fprint(ctx.Stdout, summary.String()); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	if _, err := fmt.Fprintf(ctx.Stdout, "consumed:       %d of %d bytes\n", doc.Consumed, doc.Size); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

func loadConfig(ctx *Context, overrides config.Overrides) (*config.Config, error) {
	overrides.Debug = ctx.Debug
	cfg, err := config.LoadConfigWithCLI(ctx.ConfigPath, overrides)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), errors.ErrInvalidConfig)
	}
	return cfg, nil
}

func newLogger(ctx *Context, cfg *config.Config) *log.Logger {
	if cfg.Dev.Debug && ctx.Stderr != nil {
		return log.New(ctx.Stderr, "bdecode: ", 0)
	}
	return log.New(io.Discard, "", 0)
}

func newParser(cfg *config.Config, logger *log.Logger) *parser.Parser {
	return parser.NewParser(parser.Options{
		Strict:   cfg.Decode.Strict,
		MaxDepth: cfg.Decode.MaxDepth,
	}, logger)
}

// readInput decodes the positional value, the input file or piped stdin,
// in that order of precedence
func readInput(ctx *Context, in InputFlags, p *parser.Parser) (models.Document, error) {
	if in.Value != "" {
		return p.ParseString(in.Value)
	}
	if in.Input != "" {
		return p.ParseFile(in.Input)
	}

	if ctx.Stdin == nil {
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}
	stdinInfo, err := ctx.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	return p.Parse(ctx.Stdin)
}

// writeOutput writes rendered JSON to a file or stdout
func writeOutput(ctx *Context, path, out string) error {
	if path != "" {
		if err := os.WriteFile(path, []byte(out+"\n"), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		if ctx.Stderr != nil {
			fmt.Fprintf(ctx.Stderr, "Decoded JSON written to %s\n", path)
		}
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, out); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
