package tracks

import (
	"errors"
	"fmt"
	"sort"

	"github.com/callebjorkell/rfid-jukebox/nfc"
)

// Number selects a file on the audio module's storage. Zero means there is nothing to play.
type Number int

const (
	Unknown  Number = 0
	MaxTrack Number = 9999

	extension = ".mp3"
)

var (
	ErrDuplicateCard = errors.New("duplicate card")
	ErrTrackRange    = fmt.Errorf("track number must be between 1 and %d", MaxTrack)
)

func (n Number) Valid() bool {
	return n > Unknown && n <= MaxTrack
}

// Filename is the four digit, zero padded name of the track, e.g. "0006".
func (n Number) Filename() string {
	return fmt.Sprintf("%04d", int(n))
}

// Path is where the audio module expects the file: in the root of its storage, no folders.
func (n Number) Path() string {
	return "/" + n.Filename() + extension
}

// Entry ties a card to a track.
type Entry struct {
	ID    nfc.CardID `json:"id" toml:"id"`
	Track Number     `json:"track" toml:"track"`
	Title string     `json:"title,omitempty" toml:"title"`
}

// Router resolves cards to tracks. It is built once and never modified afterwards.
type Router struct {
	entries map[nfc.CardID]Entry
}

// NewRouter builds the lookup table. Every card may only be mapped once and every track must be playable.
func NewRouter(entries []Entry) (*Router, error) {
	m := make(map[nfc.CardID]Entry, len(entries))
	for _, e := range entries {
		if !e.Track.Valid() {
			return nil, fmt.Errorf("card %v: %w, got %d", e.ID, ErrTrackRange, e.Track)
		}
		if prev, ok := m[e.ID]; ok {
			return nil, fmt.Errorf("%w %v: mapped to both track %d and %d", ErrDuplicateCard, e.ID, prev.Track, e.Track)
		}
		m[e.ID] = e
	}
	return &Router{entries: m}, nil
}

// Resolve returns the track for the card, or Unknown.
func (r *Router) Resolve(id nfc.CardID) Number {
	if e, ok := r.entries[id]; ok {
		return e.Track
	}
	return Unknown
}

// Lookup returns the full entry for the card.
func (r *Router) Lookup(id nfc.CardID) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

func (r *Router) Len() int {
	return len(r.entries)
}

// Entries lists the table ordered by track, then card.
func (r *Router) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Track != out[j].Track {
			return out[i].Track < out[j].Track
		}
		return out[i].ID < out[j].ID
	})
	return out
}
