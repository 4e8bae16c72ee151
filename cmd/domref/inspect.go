package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pthm/domref"
	"github.com/pthm/domref/lib/dom"
)

type inspectOptions struct {
	config string
	format string
	out    string
	key    string
}

func inspectCmd() *cobra.Command {
	var opts inspectOptions

	cmd := &cobra.Command{
		Use:   "inspect <file.html>",
		Short: "Print the references and event bindings declared in a template",
		Long: `Parse an HTML file and print its manifest: every reference name with its
mode and element count, and every event binding. The file is not modified.

Formats:
  yaml      Human-readable (default)
  msgpack   Compact binary, signed with --key when given`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.config, "config", "c", "", "YAML configuration file (attribute names)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "yaml", "Output format: yaml or msgpack")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVar(&opts.key, "key", "", "Signing key for msgpack output")

	return cmd
}

func runInspect(stdout io.Writer, path string, opts inspectOptions) error {
	cfg := domref.DefaultConfig()
	if opts.config != "" {
		var err error
		if cfg, err = domref.LoadConfig(opts.config); err != nil {
			return err
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	root, err := dom.ParseFragment(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	manifest := domref.Scan(root, cfg)

	var data []byte
	switch opts.format {
	case "yaml":
		data, err = yaml.Marshal(manifest)
	case "msgpack":
		var key []byte
		if opts.key != "" {
			key = []byte(opts.key)
		}
		data, err = domref.EncodeManifest(domref.NewEncoder(key), manifest)
	default:
		return fmt.Errorf("unknown format %q (want yaml or msgpack)", opts.format)
	}
	if err != nil {
		return err
	}

	if opts.out == "" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(opts.out, data, 0644)
}
