// Package obslog provides structured logging handler construction for
// use with [log/slog].
//
// It supports multiple output formats ([FormatJSON], [FormatLogfmt])
// and the four standard severity levels. Use [NewConfig] for CLI flag
// integration via [github.com/spf13/pflag] and shell completion
// support via [github.com/spf13/cobra]:
//
//	cfg := obslog.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//	cfg.RegisterCompletions(rootCmd)
//
//	handler, err := cfg.NewHandler(os.Stderr)
//	slog.SetDefault(slog.New(handler))
package obslog
