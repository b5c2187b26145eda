package ui

// StatusLed shows what the jukebox is up to on the RGB LED.
type StatusLed interface {
	Green()
	Red()
	Blue()
	Off()
}

type LedConfig struct {
	Red   string `toml:"red"`
	Green string `toml:"green"`
	Blue  string `toml:"blue"`
}

var DefaultLedConfig = LedConfig{
	Red:   "GPIO6",
	Green: "GPIO5",
	Blue:  "GPIO13",
}
