package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/bdecode/internal/config"
	"github.com/mcncl/bdecode/internal/errors"
)

// CLI defines the command-line interface
var CLI struct {
	Config  string           `help:"Path to config file. Defaults to the nearest .bdecode.yml." short:"c" type:"path"`
	Debug   bool             `help:"Enable debug logging." short:"d"`
	Version kong.VersionFlag `help:"Show version information." short:"v"`

	Decode  DecodeCmd  `cmd:"" help:"Decode a bencoded value and print it as JSON."`
	Inspect InspectCmd `cmd:"" help:"Decode a bencoded value and summarize its structure."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Debug      bool
	ConfigPath string
	Stdin      *os.File
	Stdout     io.Writer
	Stderr     io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cli := kong.Must(&CLI,
		kong.Name("bdecode"),
		kong.Description("A tool to decode bencoded data into JSON"),
		kong.UsageOnError(),
		kong.Vars{"version": Version},
	)

	ctx, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.FatalIfErrorf(err)
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	err = ctx.Run(&Context{
		Debug:      CLI.Debug,
		ConfigPath: configPath,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: bdecode --help\n")
		os.Exit(1)
	}
}
