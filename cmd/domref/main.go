package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pthm/domref/lib/generator"
)

// Version information set at build time.
var version = "0.1.0"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domref",
		Short: "Tooling for domref element references and event bindings",
		Long: `domref generates method tables for event handlers and inspects the
reference and event declarations in HTML templates.

Examples:
  domref generate ./...                  Generate for all packages
  domref generate --dry-run ./...        Preview generation
  domref clean ./...                     Remove all generated files
  domref inspect templates/row.html      Print the template's manifest`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		generateCmd(),
		cleanCmd(),
		inspectCmd(),
		versionCmd(),
	)

	return cmd
}

func generateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "generate [packages]",
		Short: "Generate MethodTable implementations (*_ref.go)",
		Long: `Scan packages for types marked with a //domref:handler comment and write
a *_ref.go file next to each, implementing domref.MethodTable over every
method shaped func(), func() error, func(*dom.Event) or
func(*dom.Event) error. Unexported methods are included.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := generator.New(generator.Options{
				DryRun: dryRun,
				Out:    cmd.OutOrStdout(),
			})
			return gen.Generate(patternsOrDefault(args)...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be generated without writing files")

	return cmd
}

func cleanCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean [packages]",
		Short: "Remove generated files (*_ref.go)",
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := generator.New(generator.Options{
				DryRun: dryRun,
				Out:    cmd.OutOrStdout(),
			})
			return gen.Clean(patternsOrDefault(args)...)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be removed without deleting files")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "domref version %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}
}

func patternsOrDefault(args []string) []string {
	if len(args) == 0 {
		return []string{"./..."}
	}
	return args
}
