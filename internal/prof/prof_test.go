package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		CPUProfile: filepath.Join(dir, "cpu.pprof"),
		MemProfile: filepath.Join(dir, "mem.pprof"),
		Trace:      filepath.Join(dir, "trace.out"),
	}
	require.True(t, cfg.Enabled())

	s, err := Start(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{cfg.CPUProfile, cfg.MemProfile, cfg.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		require.NotZero(t, info.Size(), p)
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Config{CPUProfile: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	require.Error(t, err)
}

func TestDisabledSession(t *testing.T) {
	require.False(t, Config{}.Enabled())
	s, err := Start(Config{})
	require.NoError(t, err)
	require.NoError(t, s.Stop())

	var nilSession *Session
	require.NoError(t, nilSession.Stop())
}
