// File: envgrove/config/cli.go
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
)

// CLI exposes schema maintenance commands for applications embedding this
// package:
//
//	example   print a dotenv-style example file for the schema
//	docs      print the markdown field reference
//	check     resolve the configuration and report health
//
// The application supplies its own schema; there is no dynamic definition
// loading.
type CLI struct {
	Schema *Schema
	Out    io.Writer // defaults to os.Stdout
}

// Run dispatches a subcommand. Returns the first resolution error for
// "check" so callers can exit non-zero.
func (t *CLI) Run(args []string) error {
	out := t.Out
	if out == nil {
		out = os.Stdout
	}
	if t.Schema == nil {
		return fmt.Errorf("cli requires a schema")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: example | docs | check [--env-file path]")
	}

	switch args[0] {
	case "example":
		fmt.Fprint(out, t.Schema.Example())
		return nil

	case "docs":
		fmt.Fprint(out, t.Schema.Markdown())
		return nil

	case "check":
		fs := flag.NewFlagSet("check", flag.ContinueOnError)
		fs.SetOutput(out)
		envFile := fs.String("env-file", "", "source file to check against")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		b := NewBuilder(t.Schema)
		if *envFile != "" {
			b.WithFiles(*envFile)
		} else {
			b.WithDiscovery(DefaultDiscoveryOptions())
		}

		cfg, err := b.Build()
		if err != nil {
			fmt.Fprintf(out, "configuration check failed: %v\n", err)
			return err
		}
		fmt.Fprintln(out, "configuration loaded successfully")
		fmt.Fprintln(out, cfg.String())
		return nil

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}
