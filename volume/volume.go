package volume

const (
	DefaultMin = 1
	DefaultMax = 25
	// RawMax is the top of the 10 bit ADC range.
	RawMax = 1023
)

// Sensor is the potentiometer, or anything else producing a raw reading.
type Sensor interface {
	SampleRaw() (int, error)
}

type Config struct {
	Min       int `toml:"min_volume"`
	Max       int `toml:"max_volume"`
	SPIBus    int `toml:"spi_bus"`
	SPIDevice int `toml:"spi_device"`
	Channel   int `toml:"channel"`
	SpeedHz   int `toml:"speed_hz"`
}

var DefaultConfig = Config{
	Min:       DefaultMin,
	Max:       DefaultMax,
	SPIBus:    0,
	SPIDevice: 1,
	Channel:   0,
	SpeedHz:   1000000,
}

// Scale maps raw in [0, rawMax] linearly onto [min, max], using integer maths and clamping anything outside.
func Scale(raw, rawMax, min, max int) int {
	if rawMax <= 0 {
		return min
	}
	if raw < 0 {
		raw = 0
	}
	if raw > rawMax {
		raw = rawMax
	}
	return raw*(max-min)/rawMax + min
}

// Knob turns raw sensor samples into volume levels.
type Knob struct {
	Sensor Sensor
	RawMax int
	Min    int
	Max    int
}

func (k Knob) Level() (int, error) {
	raw, err := k.Sensor.SampleRaw()
	if err != nil {
		return 0, err
	}
	return Scale(raw, k.RawMax, k.Min, k.Max), nil
}
