package dfplayer

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

const DefaultBaud = 115200

// Config describes the UART the module hangs off.
type Config struct {
	Port string `toml:"port"`
	Baud int    `toml:"baud"`
}

var DefaultConfig = Config{
	Port: "/dev/serial0",
	Baud: DefaultBaud,
}

// Open opens the serial port and waits for the module to boot. The returned closer releases the port.
func Open(cfg Config, delays Delays) (*Player, io.Closer, error) {
	baud := cfg.Baud
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(cfg.Port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open %v: %w", cfg.Port, err)
	}
	logrus.Debugf("Opened %v at %d baud, waiting %v for the DFPlayer to boot", cfg.Port, baud, delays.Boot)
	time.Sleep(delays.Boot)

	return New(port, delays), port, nil
}

// Discard returns a player that writes nowhere but the log, for running without the module attached. It never
// reports ready.
func Discard() *Player {
	p := New(logWriter{}, Delays{})
	p.detached = true
	return p
}

type logWriter struct{}

func (logWriter) Write(b []byte) (int, error) {
	logrus.Infof("DFPlayer (not attached): %q", b)
	return len(b), nil
}
