package main

import (
	"path/filepath"
	"testing"

	"github.com/callebjorkell/rfid-jukebox/config"
	"github.com/callebjorkell/rfid-jukebox/dfplayer"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLed struct {
	color string
}

func (l *fakeLed) Green() { l.color = "green" }
func (l *fakeLed) Red()   { l.color = "red" }
func (l *fakeLed) Blue()  { l.color = "blue" }
func (l *fakeLed) Off()   { l.color = "off" }

func TestShowAudioState(t *testing.T) {
	tests := []struct {
		name      string
		ready     bool
		assertion func(t *testing.T, l *fakeLed)
	}{
		{
			"ready",
			true,
			func(t *testing.T, l *fakeLed) {
				assert.Equal(t, "off", l.color)
			},
		},
		{
			"not ready",
			false,
			func(t *testing.T, l *fakeLed) {
				assert.Equal(t, "blue", l.color)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := &fakeLed{}
			showAudioState(tc.ready, l)
			tc.assertion(t, l)
		})
	}
}

func TestMissingModuleShowsNotReady(t *testing.T) {
	audio := dfplayer.Discard()
	audio.Initialize()

	l := &fakeLed{}
	showAudioState(audio.Ready(), l)
	assert.Equal(t, "blue", l.color)
}

func storeCards(t *testing.T, path string, entries ...tracks.Entry) {
	t.Helper()
	db, err := tracks.Open(path)
	require.NoError(t, err)
	defer db.Close()
	for _, e := range entries {
		require.NoError(t, db.StoreCard(e))
	}
}

func testConfig(t *testing.T, cards ...config.Card) *config.Config {
	cfg := config.Default()
	cfg.Database = filepath.Join(t.TempDir(), "cards.db")
	cfg.Cards = cards
	return &cfg
}

func TestLoadRouterMergesSources(t *testing.T) {
	cfg := testConfig(t, config.Card{ID: "c198cce4", Track: 6})
	storeCards(t, cfg.Database, tracks.Entry{ID: "B1:A0:CC:E4", Track: 2})

	r, err := loadRouter(cfg)
	require.NoError(t, err)
	assert.Equal(t, tracks.Number(6), r.Resolve("C1:98:CC:E4"))
	assert.Equal(t, tracks.Number(2), r.Resolve("B1:A0:CC:E4"))
	assert.Equal(t, 2, r.Len())
}

func TestLoadRouterRejectsCardInBothSources(t *testing.T) {
	cfg := testConfig(t, config.Card{ID: "C1-98-CC-E4", Track: 6})
	storeCards(t, cfg.Database, tracks.Entry{ID: "C1:98:CC:E4", Track: 7})

	_, err := loadRouter(cfg)
	assert.ErrorIs(t, err, tracks.ErrDuplicateCard)
}
