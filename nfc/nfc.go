package nfc

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

var NoCardErr = errors.New("no card detected")

// CardID is the canonical form of a card UID: uppercase hex octets separated by colons, e.g. "C1:98:CC:E4".
type CardID string

const (
	MinUIDLength = 4
	MaxUIDLength = 10
)

// CardReader is anything that can be asked, once, for the UID of the card on it.
type CardReader interface {
	io.Closer
	ReadCardID() ([]byte, error)
}

// ReaderConfig describes how the RC522 is wired up.
type ReaderConfig struct {
	Bus      int `toml:"spi_bus"`
	Device   int `toml:"spi_device"`
	SpeedHz  int `toml:"speed_hz"`
	ResetPin int `toml:"reset_pin"`
	Gain     int `toml:"antenna_gain"`
}

var DefaultReaderConfig = ReaderConfig{
	Bus:      0,
	Device:   0,
	SpeedHz:  100000,
	ResetPin: 22,
	Gain:     7,
}

// EncodeCardID renders raw UID bytes in canonical form.
func EncodeCardID(raw []byte) CardID {
	var b strings.Builder
	b.Grow(len(raw) * 3)
	for i, v := range raw {
		if i > 0 {
			b.WriteByte(':')
		}
		fmt.Fprintf(&b, "%02X", v)
	}
	return CardID(b.String())
}

// ParseCardID accepts a UID typed by a human (any case, with or without ':' or '-' separators) and returns it in
// canonical form.
func ParseCardID(s string) (CardID, error) {
	clean := strings.NewReplacer(":", "", "-", "", " ", "").Replace(strings.TrimSpace(s))
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return "", fmt.Errorf("invalid card id %q: %w", s, err)
	}
	if len(raw) < MinUIDLength || len(raw) > MaxUIDLength {
		return "", fmt.Errorf("invalid card id %q: expected %d to %d bytes, got %d", s, MinUIDLength, MaxUIDLength, len(raw))
	}
	return EncodeCardID(raw), nil
}

func (c CardID) String() string {
	return string(c)
}

// Reading is the outcome of polling the reader once.
type Reading struct {
	Card     CardID
	Detected bool
}

var NotDetected = Reading{}

func Detected(id CardID) Reading {
	return Reading{Card: id, Detected: true}
}

// Poll asks the reader for a card exactly once. Anything that isn't a clean UID counts as a miss.
func Poll(r CardReader) Reading {
	raw, err := r.ReadCardID()
	if err != nil {
		if err != NoCardErr {
			log.Debugf("error when reading card ID: %v", err)
		}
		return NotDetected
	}
	if len(raw) == 0 {
		return NotDetected
	}
	return Detected(EncodeCardID(raw))
}
