//go:build !pi
// +build !pi

package nfc

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// CreateReader returns a fake reader for development off the Pi. It keeps a card on the reader for 30 seconds,
// removes it for 10 and then starts over, dropping the odd read on the way like the real thing does.
func CreateReader(cfg ReaderConfig) (CardReader, error) {
	log.Infoln("Using mock card reader")
	return &mockReader{
		uid:   []byte{0xC1, 0x98, 0xCC, 0xE4},
		start: time.Now(),
	}, nil
}

type mockReader struct {
	mu    sync.Mutex
	uid   []byte
	start time.Time
	reads int
}

func (m *mockReader) Close() error {
	return nil
}

func (m *mockReader) ReadCardID() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads++
	if time.Since(m.start)%(40*time.Second) >= 30*time.Second {
		return nil, NoCardErr
	}
	if m.reads%17 == 0 {
		return nil, NoCardErr
	}
	uid := make([]byte, len(m.uid))
	copy(uid, m.uid)
	return uid, nil
}
