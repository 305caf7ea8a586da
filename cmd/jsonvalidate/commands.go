// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Independence-University/json-validator/internal/config"
	"github.com/Independence-University/json-validator/internal/console"
	"github.com/Independence-University/json-validator/pkg/jsonschema"
	"github.com/Independence-University/json-validator/pkg/loader"
)

// errIssues is returned by validate when a document has issues.
// The issues have already been printed.
var errIssues = errors.New("validation issues found")

// flags shared by the subcommands
type flags struct {
	verbose    bool
	configFile string
}

func newRootCmd() *cobra.Command {
	var f flags
	rootCmd := &cobra.Command{
		Use:     "jsonvalidate",
		Short:   "Validate JSON documents against draft 4 JSON schemas",
		Version: version,
		Long: `jsonvalidate validates a JSON document against a draft 4 JSON schema.

Both documents are parsed tolerantly: syntax errors are reported
together with validation errors, each at its position in the text.

Settings are read from ` + config.DefaultFile + ` in the current
directory, or from the file named by --config.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&f.configFile, "config", "", "Configuration file (default "+config.DefaultFile+")")

	rootCmd.AddCommand(newValidateCmd(&f), newRequestCmd(&f))
	return rootCmd
}

func newValidateCmd(f *flags) *cobra.Command {
	validateCmd := &cobra.Command{
		Use:   "validate --schema <schema> --instance <instance>",
		Short: "Validate an instance document against a schema",
		Long: `Validate an instance document against a schema.

The schema and the instance are file paths or http(s) URIs.

Examples:
  jsonvalidate validate --schema person.schema.json --instance alice.json
  jsonvalidate validate -s https://example.com/person.json -i alice.json --output json
  jsonvalidate validate -s person.schema.json -i alice.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, _ := cmd.Flags().GetString("schema")
			instance, _ := cmd.Flags().GetString("instance")
			output, _ := cmd.Flags().GetString("output")
			watch, _ := cmd.Flags().GetBool("watch")
			if err := validateOutput(output); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			v := &validation{
				schema:   schema,
				instance: instance,
				output:   output,
				opts:     cfg.Options(),
				printer:  console.NewPrinter(cfg.Color, outFile(cmd.OutOrStdout())),
			}
			v.opts.Logger = newLogger(cmd.ErrOrStderr(), f.verbose)

			if watch {
				v.opts.Fetcher = &loader.CachingFetcher{
					Fetcher: loader.DefaultFetcher{},
					Fresh:   remoteFresh,
				}
				return v.watch(cmd.Context(), cmd.OutOrStdout(), f.verbose)
			}
			valid, err := v.run(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !valid {
				return errIssues
			}
			return nil
		},
	}
	validateCmd.Flags().StringP("schema", "s", "", "Schema file or URI")
	validateCmd.Flags().StringP("instance", "i", "", "Instance file or URI")
	validateCmd.Flags().StringP("output", "o", "text", "Output format: text or json")
	validateCmd.Flags().BoolP("watch", "w", false, "Validate again whenever a local document changes")
	validateCmd.Flags().Bool("no-format", false, `Do not assert the "format" keyword`)
	validateCmd.Flags().String("color", "", "Color output: auto, always or never")
	validateCmd.Flags().Int("concurrency", 0, "Number of goroutines evaluating combinator branches")
	_ = validateCmd.MarkFlagRequired("schema")
	_ = validateCmd.MarkFlagRequired("instance")
	return validateCmd
}

func newRequestCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "request [file]",
		Short: "Answer a JSON validation request",
		Long: `Read a validation request and write the result as JSON.

The request names the two documents, inline or by URI:

  {"Instance": {"Kind": "Text", "Value": "{}"},
   "Schema":   {"Kind": "Uri", "Value": "https://example.com/schema.json"}}

The request is read from the named file, or from standard input.
The command succeeds whether or not the documents have issues.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				file, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer file.Close()
				in = file
			}
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			opts := cfg.Options()
			opts.Logger = newLogger(cmd.ErrOrStderr(), f.verbose)
			return answer(cmd.Context(), in, cmd.OutOrStdout(), opts)
		},
	}
}

// loadConfig reads the configuration file and applies the flags
// of cmd that override it.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
		if err := validateColor(cfg.Color); err != nil {
			return nil, err
		}
	}
	if noFormat, _ := flags.GetBool("no-format"); noFormat {
		enabled := false
		cfg.Formats = &enabled
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	return cfg, nil
}

// validateOutput validates the output flag value
func validateOutput(output string) error {
	if output != "text" && output != "json" {
		return fmt.Errorf("invalid output value '%s'. Must be 'text' or 'json'", output)
	}
	return nil
}

// validateColor validates the color flag value
func validateColor(color string) error {
	if color != "auto" && color != "always" && color != "never" {
		return fmt.Errorf("invalid color value '%s'. Must be 'auto', 'always', or 'never'", color)
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// outFile returns w as a file if it is one, for terminal detection.
func outFile(w io.Writer) *os.File {
	f, _ := w.(*os.File)
	return f
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// request is the wire form of a validation request.
type request struct {
	Instance jsonschema.Source
	Schema   jsonschema.Source
}
