// Command tinyexpr lexes and parses source text and prints the tokens or the
// syntax tree. It is a debugging aid for the front end and evaluates nothing.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tinyexpr/pkg/syntax"
)

type options struct {
	expr     string
	verbose  bool
	maxDepth int
	format   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "tinyexpr",
		Short:         "Inspect how tinyexpr source is lexed and parsed",
		Long:          `tinyexpr prints the token stream or the abstract syntax tree for a piece of source text given with --expr or on stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.expr, "expr", "e", "", "Source text (read from stdin when empty)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().IntVar(&opts.maxDepth, "max-depth", syntax.DefaultMaxDepth, "Maximum expression nesting depth")

	tokensCmd := &cobra.Command{
		Use:   "tokens",
		Short: "Print the token stream",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			tokens, err := syntax.LexWithConfig(src, cfg)
			if err != nil {
				return fmt.Errorf("lex error: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tokens (%d)\n", len(tokens))
			for _, tok := range tokens {
				fmt.Fprintln(out, " ", tok)
			}
			return nil
		},
	}

	astCmd := &cobra.Command{
		Use:   "ast",
		Short: "Print the syntax tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			stmts, err := syntax.ParseSourceWithConfig(src, cfg)
			if err != nil {
				return describe(err)
			}

			out := cmd.OutOrStdout()
			switch opts.format {
			case "text":
				fmt.Fprintf(out, "AST (%d)\n", len(stmts))
				for _, s := range stmts {
					fmt.Fprintln(out, " ", s)
				}
				return nil
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(buildTree(stmts)); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want text or yaml)", opts.format)
			}
		},
	}
	astCmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text or yaml")

	rootCmd.AddCommand(tokensCmd, astCmd)
	return rootCmd
}

// load returns the source text and a validated config built from the flags.
func (o *options) load(cmd *cobra.Command) (string, syntax.Config, error) {
	cfg := syntax.DefaultConfig()
	cfg.SetMaxDepth(o.maxDepth)
	if err := cfg.Validate(); err != nil {
		return "", cfg, err
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	cfg.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	if o.expr != "" {
		return o.expr, cfg, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", cfg, fmt.Errorf("read stdin: %w", err)
	}
	return string(data), cfg, nil
}

// describe prefixes err with the stage that produced it.
func describe(err error) error {
	var le *syntax.LexError
	if errors.As(err, &le) {
		return fmt.Errorf("lex error: %w", err)
	}
	var pe *syntax.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("parse error: %w", err)
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
