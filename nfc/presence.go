package nfc

import (
	log "github.com/sirupsen/logrus"
)

const DefaultRemovalThreshold = 5

type CardState int

const (
	Arrived CardState = iota
	Changed
	Removed
)

func (s CardState) String() string {
	switch s {
	case Arrived:
		return "arrived"
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	}
	return "unknown"
}

type CardEvent struct {
	CardID CardID
	State  CardState
}

// Tracker debounces raw readings into presence events. A card is only considered gone after removalThreshold
// consecutive misses, since the RC522 regularly fails to answer for a card that is still sitting on it.
type Tracker struct {
	removalThreshold int
	current          CardID
	present          bool
	misses           int
}

func NewTracker(removalThreshold int) *Tracker {
	if removalThreshold < 1 {
		removalThreshold = 1
	}
	return &Tracker{removalThreshold: removalThreshold}
}

// Update feeds the reading of one poll cycle into the tracker. At most one event is produced per reading.
func (t *Tracker) Update(r Reading) (CardEvent, bool) {
	if r.Detected {
		t.misses = 0
		if t.present && t.current == r.Card {
			return CardEvent{}, false
		}

		state := Arrived
		if t.present {
			state = Changed
		}
		t.current, t.present = r.Card, true
		log.Debugf("Card %v %v", r.Card, state)
		return CardEvent{CardID: r.Card, State: state}, true
	}

	if !t.present {
		return CardEvent{}, false
	}

	t.misses++
	log.Debugf("Missed card %v (%d/%d)", t.current, t.misses, t.removalThreshold)
	if t.misses < t.removalThreshold {
		return CardEvent{}, false
	}

	removed := t.current
	t.current, t.present, t.misses = "", false, 0
	return CardEvent{CardID: removed, State: Removed}, true
}

// Current returns the card believed to be on the reader, if any.
func (t *Tracker) Current() (CardID, bool) {
	return t.current, t.present
}

func (t *Tracker) Misses() int {
	return t.misses
}
