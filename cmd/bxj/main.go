// Command bxj translates between a compact binary encoding ("Binary")
// and JSON, driven by a self-describing Schema that may be embedded at
// the head of a Binary blob.
//
// # Usage
//
//	bxj <pack|unpack|encode|decode|extract|strip|compile|describe> [flags] [input] [output]
//
// input and output are file paths; omit either (or pass "-") to read
// stdin / write stdout.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/bxj/command"
	"go.jacobcolvin.com/bxj/internal/obslog"
	"go.jacobcolvin.com/bxj/internal/obsprofile"
	"go.jacobcolvin.com/bxj/internal/obsversion"
)

// openInput resolves the positional input argument to a byte source:
// "" or "-" reads stdin, anything else opens the named file. The
// command layer only ever sees an io.Reader (§1's I/O-glue carve-out).
func openInput(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}

	f, err := os.Open(path) //nolint:gosec // path comes from a CLI positional argument.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", command.ErrIOFailure, err)
	}

	return f, nil
}

// openOutput resolves the positional output argument to a byte sink,
// mirroring [openInput].
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}

	f, err := os.Create(path) //nolint:gosec // path comes from a CLI positional argument.
	if err != nil {
		return nil, fmt.Errorf("%w: %w", command.ErrIOFailure, err)
	}

	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}

	return ""
}

// countingReader/countingWriter track bytes seen so runCommand can log
// a debug-level in/out byte count per invocation.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)

	return n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)

	return n, err
}

// runCommand opens the positional input/output arguments and runs fn
// over them, closing both on every exit path regardless of fn's
// outcome. It logs one debug-level line per invocation with the bytes
// read/written, and one error-level line naming name if fn fails.
func runCommand(name string, args []string, fn func(r io.Reader, w io.Writer) error) error {
	in, err := openInput(arg(args, 0))
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // best-effort close on the read side.

	out, err := openOutput(arg(args, 1))
	if err != nil {
		return err
	}

	cr := &countingReader{r: in}
	cw := &countingWriter{w: out}

	err = fn(cr, cw)

	slog.Default().Debug("command complete", "command", name, "bytes_in", cr.n, "bytes_out", cw.n, "error", err)

	if err != nil {
		slog.Default().Error("command failed", "command", name, "error", err)
		must(out.Close())

		return err
	}

	return out.Close()
}

func must(err error) {
	if err != nil {
		slog.Default().Warn("closing output", "error", err)
	}
}

func main() {
	logCfg := obslog.NewConfig()
	profCfg := obsprofile.NewConfig()

	var profiler *obsprofile.Profiler

	rootCmd := &cobra.Command{
		Use:           "bxj",
		Short:         "Translate between Binary and JSON via a self-describing Schema",
		Version:       obsversion.String(),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return err
			}

			slog.SetDefault(slog.New(handler))

			profiler = profCfg.NewProfiler()

			return profiler.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return profiler.Stop()
		},
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")

	logCfg.RegisterFlags(rootCmd.PersistentFlags())
	profCfg.RegisterFlags(rootCmd.PersistentFlags())

	if err := logCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	if err := profCfg.RegisterCompletions(rootCmd); err != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", err)
	}

	rootCmd.AddCommand(
		packCmd(),
		unpackCmd(),
		encodeCmd(),
		decodeCmd(),
		extractCmd(),
		stripCmd(),
		compileCmd(),
		describeCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func packCmd() *cobra.Command {
	var noSchema bool

	cmd := &cobra.Command{
		Use:   "pack [input] [output]",
		Short: "Wrap raw bytes in a length-prefixed, optionally schema-embedded Binary blob",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("pack", args, func(r io.Reader, w io.Writer) error {
				return command.Pack(r, w, noSchema)
			})
		},
	}

	cmd.Flags().BoolVarP(&noSchema, "no-schema", "n", false, "omit the embedded Sequence{elements:u8} Schema")

	return cmd
}

func unpackCmd() *cobra.Command {
	var noSchema bool

	cmd := &cobra.Command{
		Use:   "unpack [input] [output]",
		Short: "Inverse of pack: recover the raw bytes from a packed Binary blob",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("unpack", args, func(r io.Reader, w io.Writer) error {
				return command.Unpack(r, w, noSchema)
			})
		},
	}

	cmd.Flags().BoolVarP(&noSchema, "no-schema", "n", false, "input has no embedded Schema to verify")

	return cmd
}

func encodeCmd() *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "encode [input] [output]",
		Short: "Encode JSON to Binary, driven by a Schema if --schema is given",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			var schemaBytes []byte

			if schemaPath != "" {
				b, err := os.ReadFile(schemaPath) //nolint:gosec // path comes from a CLI flag.
				if err != nil {
					return fmt.Errorf("%w: %w", command.ErrIOFailure, err)
				}

				schemaBytes = b
			}

			return runCommand("encode", args, func(r io.Reader, w io.Writer) error {
				return command.Encode(r, w, schemaBytes)
			})
		},
	}

	cmd.Flags().StringVarP(&schemaPath, "schema", "s", "", "path to a canonical Binary Schema; omit for the schema-less fallback encoder")

	return cmd
}

func decodeCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "decode [input] [output]",
		Short: "Peel an embedded Schema and decode the remainder to JSON",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("decode", args, func(r io.Reader, w io.Writer) error {
				return command.Decode(r, w, pretty)
			})
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the output JSON")

	return cmd
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [input] [output]",
		Short: "Peel an embedded Schema and re-emit it in canonical Binary form",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("extract", args, command.Extract)
		},
	}

	return cmd
}

func stripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strip [input] [output]",
		Short: "Peel and discard an embedded Schema, emitting only the data bytes",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("strip", args, command.Strip)
		},
	}

	return cmd
}

func compileCmd() *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "compile [input] [output]",
		Short: "Compile a human-authored Schema document to canonical Binary",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("compile", args, func(r io.Reader, w io.Writer) error {
				return command.Compile(r, w, compact)
			})
		},
	}

	cmd.Flags().BoolVarP(&compact, "compact", "c", false, "rename user declarations to short symbols before writing")

	return cmd
}

func describeCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "describe [input] [output]",
		Short: "Render a Schema's embedded-or-bare Binary form as a JSON Schema document",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runCommand("describe", args, func(r io.Reader, w io.Writer) error {
				return command.Describe(r, w, pretty)
			})
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the output JSON Schema document")

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version, revision, and Go toolchain information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), obsversion.String())

			return err
		},
	}
}
