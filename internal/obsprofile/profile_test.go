package obsprofile_test

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/bxj/internal/obsprofile"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := obsprofile.NewConfig()

	assert.Empty(t, cfg.CPUProfile)
	assert.Empty(t, cfg.HeapProfile)
	assert.Equal(t, 524288, cfg.MemProfileRate)
	assert.Equal(t, 1, cfg.BlockProfileRate)
	assert.Equal(t, 1, cfg.MutexProfileFraction)
}

func TestRegisterFlagsBindsAllPaths(t *testing.T) {
	t.Parallel()

	cfg := obsprofile.NewConfig()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.RegisterFlags(flags)

	err := flags.Parse([]string{
		"--cpu-profile=cpu.prof",
		"--heap-profile=heap.prof",
		"--allocs-profile=allocs.prof",
		"--goroutine-profile=goroutine.prof",
		"--threadcreate-profile=threadcreate.prof",
		"--block-profile=block.prof",
		"--mutex-profile=mutex.prof",
		"--mem-profile-rate=1024",
		"--block-profile-rate=100",
		"--mutex-profile-fraction=10",
	})
	require.NoError(t, err)

	assert.Equal(t, "cpu.prof", cfg.CPUProfile)
	assert.Equal(t, "heap.prof", cfg.HeapProfile)
	assert.Equal(t, "allocs.prof", cfg.AllocsProfile)
	assert.Equal(t, "goroutine.prof", cfg.GoroutineProfile)
	assert.Equal(t, "threadcreate.prof", cfg.ThreadcreateProfile)
	assert.Equal(t, "block.prof", cfg.BlockProfile)
	assert.Equal(t, "mutex.prof", cfg.MutexProfile)
	assert.Equal(t, 1024, cfg.MemProfileRate)
	assert.Equal(t, 100, cfg.BlockProfileRate)
	assert.Equal(t, 10, cfg.MutexProfileFraction)
}

func TestRegisterCompletionsOnlyCoversRateFlags(t *testing.T) {
	t.Parallel()

	cfg := obsprofile.NewConfig()

	cmd := &cobra.Command{Use: "test"}
	cfg.RegisterFlags(cmd.Flags())

	require.NoError(t, cfg.RegisterCompletions(cmd))

	for _, flag := range []string{"mem-profile-rate", "block-profile-rate", "mutex-profile-fraction"} {
		completionFn, ok := cmd.GetFlagCompletionFunc(flag)
		require.True(t, ok, "flag %s should have a completion func", flag)

		values, directive := completionFn(cmd, nil, "")
		assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
		assert.Nil(t, values)
	}

	_, ok := cmd.GetFlagCompletionFunc("cpu-profile")
	assert.False(t, ok)
}

func TestProfilerStartStopWritesNothingWhenDisabled(t *testing.T) {
	t.Parallel()

	p := obsprofile.NewConfig().NewProfiler()

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())
}

func TestProfilerWritesCPUProfile(t *testing.T) {
	t.Parallel()

	cfg := obsprofile.NewConfig()
	cfg.CPUProfile = t.TempDir() + "/cpu.prof"

	p := cfg.NewProfiler()

	require.NoError(t, p.Start())
	require.NoError(t, p.Stop())

	info, err := os.Stat(cfg.CPUProfile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
