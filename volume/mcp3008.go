//go:build pi
// +build pi

package volume

import (
	"fmt"
	"io"

	"github.com/ecc1/spi"
	"github.com/sirupsen/logrus"
)

type mcp3008 struct {
	dev     *spi.Device
	channel int
}

// OpenSensor opens the potentiometer behind an MCP3008 ADC on the given SPI device.
func OpenSensor(cfg Config) (Sensor, io.Closer, error) {
	if cfg.Channel < 0 || cfg.Channel > 7 {
		return nil, nil, fmt.Errorf("mcp3008 has channels 0-7, got %d", cfg.Channel)
	}
	dev, err := spi.Open(fmt.Sprintf("/dev/spidev%d.%d", cfg.SPIBus, cfg.SPIDevice), cfg.SpeedHz, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("open spi: %w", err)
	}
	if err := dev.SetBitsPerWord(8); err != nil {
		dev.Close()
		return nil, nil, err
	}
	logrus.Infof("Volume knob on MCP3008 channel %d", cfg.Channel)
	return &mcp3008{dev: dev, channel: cfg.Channel}, dev, nil
}

// SampleRaw does a single ended conversion and returns the 10 bit result.
func (m *mcp3008) SampleRaw() (int, error) {
	buf := []byte{0x01, byte(0x08|m.channel) << 4, 0x00}
	if err := m.dev.Transfer(buf); err != nil {
		return 0, err
	}
	return int(buf[1]&0x03)<<8 | int(buf[2]), nil
}
