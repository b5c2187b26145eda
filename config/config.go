package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/callebjorkell/rfid-jukebox/dfplayer"
	"github.com/callebjorkell/rfid-jukebox/nfc"
	"github.com/callebjorkell/rfid-jukebox/tracks"
	"github.com/callebjorkell/rfid-jukebox/ui"
	"github.com/callebjorkell/rfid-jukebox/volume"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

const DefaultPollIntervalMs = 100

// Card maps a card to a track in the config file. The id may be written in any case, with or without separators.
type Card struct {
	ID    string `toml:"id"`
	Track int    `toml:"track"`
	Title string `toml:"title"`
}

type Config struct {
	RemovalThreshold int    `toml:"removal_threshold"`
	PollIntervalMs   int    `toml:"poll_interval_ms"`
	Database         string `toml:"database"`

	Audio  dfplayer.Config  `toml:"audio"`
	Volume volume.Config    `toml:"volume"`
	Reader nfc.ReaderConfig `toml:"reader"`
	Led    ui.LedConfig     `toml:"led"`

	Cards []Card `toml:"card"`
}

func Default() Config {
	return Config{
		RemovalThreshold: nfc.DefaultRemovalThreshold,
		PollIntervalMs:   DefaultPollIntervalMs,
		Database:         "cards.db",
		Audio:            dfplayer.DefaultConfig,
		Volume:           volume.DefaultConfig,
		Reader:           nfc.DefaultReaderConfig,
		Led:              ui.DefaultLedConfig,
	}
}

// Sample returns a commented example configuration.
func Sample() string {
	return sampleConfig
}

// Load reads the config at path on top of the defaults. A missing file is not an error; the defaults are used.
func Load(path string) (*Config, bool, error) {
	cfg := Default()

	file, err := os.Open(path)
	exists := err == nil
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, false, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return &cfg, exists, nil
}

func (c *Config) Validate() error {
	if c.RemovalThreshold < 1 {
		return fmt.Errorf("removal_threshold must be at least 1, got %d", c.RemovalThreshold)
	}
	if c.PollIntervalMs < 1 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	if c.Volume.Min < dfplayer.MinVolume || c.Volume.Max > dfplayer.MaxVolume || c.Volume.Min > c.Volume.Max {
		return fmt.Errorf("volume range %d-%d must be within %d-%d", c.Volume.Min, c.Volume.Max, dfplayer.MinVolume, dfplayer.MaxVolume)
	}
	_, err := c.Entries()
	return err
}

// Entries returns the configured cards with their ids in canonical form.
func (c *Config) Entries() ([]tracks.Entry, error) {
	entries := make([]tracks.Entry, 0, len(c.Cards))
	for i, card := range c.Cards {
		id, err := nfc.ParseCardID(card.ID)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
		entries = append(entries, tracks.Entry{ID: id, Track: tracks.Number(card.Track), Title: card.Title})
	}
	return entries, nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}
