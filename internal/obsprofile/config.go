package obsprofile

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Config holds profiling configuration for bxj, including output
// paths and sampling rates. A zero-value Config has all profiles
// disabled.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewProfiler] to create a
// [Profiler] that executes the profiling.
type Config struct {
	// Output paths (empty = disabled).
	CPUProfile          string
	HeapProfile         string
	AllocsProfile       string
	GoroutineProfile    string
	ThreadcreateProfile string
	BlockProfile        string
	MutexProfile        string

	// Rate configuration.
	MemProfileRate       int
	BlockProfileRate     int
	MutexProfileFraction int
}

// NewConfig creates a new [Config] with all profiles disabled. Use
// [Config.RegisterFlags] to add CLI flags, or set profile paths
// directly.
func NewConfig() *Config {
	return &Config{
		MemProfileRate:       524288,
		BlockProfileRate:     1,
		MutexProfileFraction: 1,
	}
}

// profileRateFlags names the integer-valued profile flags, for
// completion registration.
var profileRateFlags = []string{"mem-profile-rate", "block-profile-rate", "mutex-profile-fraction"}

// RegisterFlags adds profiling flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.CPUProfile, "cpu-profile", "", "write CPU profile to file")
	flags.StringVar(&c.HeapProfile, "heap-profile", "", "write heap profile to file")
	flags.StringVar(&c.AllocsProfile, "allocs-profile", "", "write allocs profile to file")
	flags.StringVar(&c.GoroutineProfile, "goroutine-profile", "", "write goroutine profile to file")
	flags.StringVar(&c.ThreadcreateProfile, "threadcreate-profile", "", "write threadcreate profile to file")
	flags.StringVar(&c.BlockProfile, "block-profile", "", "write block profile to file")
	flags.StringVar(&c.MutexProfile, "mutex-profile", "", "write mutex profile to file")

	flags.IntVar(&c.MemProfileRate, "mem-profile-rate", c.MemProfileRate, "memory profile rate (bytes per sample)")
	flags.IntVar(&c.BlockProfileRate, "block-profile-rate", c.BlockProfileRate, "block profile rate (nanoseconds)")
	flags.IntVar(&c.MutexProfileFraction, "mutex-profile-fraction", c.MutexProfileFraction, "mutex profile fraction (1/N sampling)")
}

// RegisterCompletions registers shell completions for profile flags on
// cmd. The rate flags disable file completion; the path flags use
// cobra's default file completion.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	noFileComp := func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	for _, flag := range profileRateFlags {
		if err := cmd.RegisterFlagCompletionFunc(flag, noFileComp); err != nil {
			return fmt.Errorf("registering %s completion: %w", flag, err)
		}
	}

	return nil
}

// NewProfiler creates a new [Profiler] using this [Config].
func (c *Config) NewProfiler() *Profiler {
	return &Profiler{Config: *c}
}
