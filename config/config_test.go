package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jukebox.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, exists, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, nfc.DefaultRemovalThreshold, cfg.RemovalThreshold)
	assert.Equal(t, 1, cfg.Volume.Min)
	assert.Equal(t, 25, cfg.Volume.Max)
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, exists, err := Load(writeConfig(t, Sample()))
	require.NoError(t, err)
	assert.True(t, exists)

	entries, err := cfg.Entries()
	require.NoError(t, err)
	r, err := tracks.NewRouter(entries)
	require.NoError(t, err)
	assert.Equal(t, tracks.Number(6), r.Resolve("C1:98:CC:E4"))
	assert.Equal(t, "/dev/serial0", cfg.Audio.Port)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		assertion func(t *testing.T, cfg *Config, err error)
	}{
		{
			"partial file keeps defaults",
			"removal_threshold = 8\n",
			func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				assert.Equal(t, 8, cfg.RemovalThreshold)
				assert.Equal(t, DefaultPollIntervalMs, cfg.PollIntervalMs)
				assert.Equal(t, 115200, cfg.Audio.Baud)
			},
		},
		{
			"ids are normalized",
			"[[card]]\nid = \"c198cce4\"\ntrack = 6\n",
			func(t *testing.T, cfg *Config, err error) {
				require.NoError(t, err)
				entries, err := cfg.Entries()
				require.NoError(t, err)
				assert.Equal(t, []tracks.Entry{{ID: "C1:98:CC:E4", Track: 6}}, entries)
			},
		},
		{
			"bad card id",
			"[[card]]\nid = \"hello\"\ntrack = 6\n",
			func(t *testing.T, cfg *Config, err error) {
				assert.Error(t, err)
			},
		},
		{
			"zero threshold",
			"removal_threshold = 0\n",
			func(t *testing.T, cfg *Config, err error) {
				assert.Error(t, err)
			},
		},
		{
			"volume out of module range",
			"[volume]\nmax_volume = 31\n",
			func(t *testing.T, cfg *Config, err error) {
				assert.Error(t, err)
			},
		},
		{
			"inverted volume range",
			"[volume]\nmin_volume = 20\nmax_volume = 10\n",
			func(t *testing.T, cfg *Config, err error) {
				assert.Error(t, err)
			},
		},
		{
			"unknown key",
			"removal_treshold = 5\n",
			func(t *testing.T, cfg *Config, err error) {
				assert.Error(t, err)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, _, err := Load(writeConfig(t, tc.content))
			tc.assertion(t, cfg, err)
		})
	}
}

// Two spellings of the same card only collide once the ids are normalized, which the router then refuses.
func TestDuplicateCardsAreRejected(t *testing.T) {
	cfg, _, err := Load(writeConfig(t, `
[[card]]
id = "C1:98:CC:E4"
track = 6

[[card]]
id = "c1-98-cc-e4"
track = 7
`))
	require.NoError(t, err)

	entries, err := cfg.Entries()
	require.NoError(t, err)
	_, err = tracks.NewRouter(entries)
	assert.ErrorIs(t, err, tracks.ErrDuplicateCard)
}
