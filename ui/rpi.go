//go:build pi
// +build pi

package ui

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/host"
)

// colorLed is a common anode RGB LED, so a pin is lit by pulling it low.
type colorLed struct {
	r gpio.PinIO
	g gpio.PinIO
	b gpio.PinIO
}

func (c *colorLed) Green() {
	c.Off()
	c.g.Out(gpio.Low)
}

func (c *colorLed) Blue() {
	c.Off()
	c.b.Out(gpio.Low)
}

func (c *colorLed) Red() {
	c.Off()
	c.r.Out(gpio.Low)
}

func (c *colorLed) Off() {
	c.r.Out(gpio.High)
	c.g.Out(gpio.High)
	c.b.Out(gpio.High)
}

func GetStatusLED(cfg LedConfig) (StatusLed, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("unable to initialize periph: %w", err)
	}
	logrus.Infoln("Initializing LED")

	pins := make([]gpio.PinIO, 0, 3)
	for _, name := range []string{cfg.Red, cfg.Green, cfg.Blue} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("no such pin %v", name)
		}
		pins = append(pins, p)
	}

	c := colorLed{r: pins[0], g: pins[1], b: pins[2]}
	c.Off()
	return &c, nil
}
