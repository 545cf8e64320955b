package main

import (
	"github.com/BurntSushi/toml"
	"github.com/kzmdstu/tcinfo/timecode"
	"github.com/pkg/errors"
)

// Config is read from a toml file.
//
//	FrameRate = "29.97df"
//	Start = "01:00:00;00"
//
//	[[Fields]]
//	Name = "in"
//	Value = "{{.TimecodeIn}}"
type Config struct {
	Fields []Field
	// FrameRate is a name known to timecode.LookupFrameRate.
	FrameRate string
	// Rate describes a frame rate that has no name. It wins over FrameRate.
	Rate *Rate
	// Start is the timecode of frame number 0 of sequences.
	Start string
}

type Field struct {
	Name  string
	Value string
}

type Rate struct {
	Rate        float64
	RoundedRate int
	DropFrames  int
}

// defaultRate is used when neither config nor flag has a rate.
var defaultRate = timecode.FPS24

func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode config file (toml)")
	}
	return cfg, nil
}

// frameRate decides the frame rate. Non empty override comes from the -rate flag.
func (c *Config) frameRate(override string) (timecode.FrameRate, error) {
	if override != "" {
		return timecode.LookupFrameRate(override)
	}
	if r := c.Rate; r != nil {
		if r.Rate <= 0 || r.RoundedRate <= 0 || r.DropFrames < 0 {
			return timecode.FrameRate{}, errors.Wrapf(timecode.ErrInvalidArgument, "invalid rate: %+v", *r)
		}
		return timecode.FrameRate{Rate: r.Rate, RoundedRate: r.RoundedRate, DropFrames: r.DropFrames}, nil
	}
	if c.FrameRate != "" {
		return timecode.LookupFrameRate(c.FrameRate)
	}
	return defaultRate, nil
}

// origin returns the timecode of frame number 0.
func (c *Config) origin(fr timecode.FrameRate) (timecode.Timecode, error) {
	if c.Start == "" {
		return timecode.FromFrames(0, fr), nil
	}
	tc, err := timecode.Parse(c.Start, fr)
	if err != nil {
		return timecode.Timecode{}, errors.Wrap(err, "invalid start")
	}
	return tc, nil
}
