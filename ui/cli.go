//go:build !pi
// +build !pi

package ui

import (
	"github.com/sirupsen/logrus"
)

func GetStatusLED(cfg LedConfig) (StatusLed, error) {
	return cliLed{}, nil
}

type cliLed struct{}

func (cliLed) Red() {
	logrus.Println("LED: Red")
}

func (cliLed) Green() {
	logrus.Println("LED: Green")
}

func (cliLed) Blue() {
	logrus.Println("LED: Blue")
}

func (cliLed) Off() {
	logrus.Println("LED: Off")
}
