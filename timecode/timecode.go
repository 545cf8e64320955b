package timecode

import (
	"fmt"
	"math"
	"time"
)

const (
	secondsInMinute = 60
	secondsInHour   = 3600
	minutesInHour   = 60
	hoursInDay      = 24
	msInSecond      = 1000
	// every tenth minute does not drop frames.
	minutesInChunk = 10
)

// Timecode is a frame position in a 24 hour window, counted in a FrameRate.
// See introduction of drop frame timecode system at http://andrewduncan.net/timecodes/
//
// A Timecode is a value. Methods that change it return a new one.
type Timecode struct {
	rate FrameRate
	// frame is the wrapped absolute frame, the other fields derive from it.
	frame int
	h     int
	m     int
	s     int
	f     int
}

// FromFrames creates a Timecode from an absolute frame count.
// Counts outside of the 24 hour window, negative ones included, wrap around it.
// The rate must have a positive RoundedRate.
func FromFrames(n int, fr FrameRate) Timecode {
	day := fr.framesPerDay()
	n %= day
	if n < 0 {
		n += day
	}
	t := Timecode{rate: fr, frame: n}
	t.h, t.m, t.s, t.f = split(n, fr)
	return t
}

// FromComponents creates a Timecode from hours, minutes, seconds and frames.
// Out of range components carry over, ex) 90 frames at 30 fps are 3 seconds.
func FromComponents(h, m, s, f int, fr FrameRate) Timecode {
	return FromFrames(compose(h, m, s, f, fr), fr)
}

// Parse parses a timecode in HH:MM:SS:FF form. ';' and '.' are also accepted
// before the frames, but whether the timecode drops frames only depends on fr.
//
// It returns an error wrapping ErrInvalidArgument for an empty string,
// and a *FormatError for a malformed one.
func Parse(s string, fr FrameRate) (Timecode, error) {
	v, err := scan(s)
	if err != nil {
		return Timecode{}, err
	}
	return FromComponents(v.h, v.m, v.s, v.f, fr), nil
}

// FromDuration creates a Timecode at the elapsed time d.
// The fractional frame is rounded up when ceiling is true, down otherwise.
// Rounding is done on milliseconds times rate, before it is divided to frames.
func FromDuration(d time.Duration, fr FrameRate, ceiling bool) Timecode {
	ms := float64(d) / float64(time.Millisecond)
	v := ms * fr.Rate
	if ceiling {
		v = math.Ceil(v)
	} else {
		v = math.Floor(v)
	}
	return FromFrames(int(v)/msInSecond, fr)
}

// split converts an absolute frame to hours, minutes, seconds and frames.
func split(frame int, fr FrameRate) (h, m, s, f int) {
	if fr.IsDrop() {
		drop := fr.DropFrames
		perChunk := fr.framesPer(minutesInChunk * secondsInMinute)
		perMinute := fr.framesPer(secondsInMinute)
		D := frame / perChunk // number of full 10 minutes chunks
		M := frame % perChunk // remainder frames
		frame += drop * (minutesInChunk - 1) * D
		if M > drop {
			// first minute of a chunk doesn't drop frames.
			frame += drop * ((M - drop) / perMinute)
		}
	}
	base := fr.RoundedRate
	h = frame / base / secondsInHour % hoursInDay
	m = frame / base / secondsInMinute % minutesInHour
	s = frame / base % secondsInMinute
	f = frame % base
	return h, m, s, f
}

// compose converts hours, minutes, seconds and frames to an absolute frame.
func compose(h, m, s, f int, fr FrameRate) int {
	frame := (secondsInHour*h+secondsInMinute*m+s)*fr.RoundedRate + f
	if fr.IsDrop() {
		totalMinutes := minutesInHour*h + m
		frame -= fr.DropFrames * (totalMinutes - totalMinutes/minutesInChunk)
	}
	return frame
}

// FrameRate returns the rate the Timecode is counted in.
func (t Timecode) FrameRate() FrameRate { return t.rate }

// TotalFrames returns the absolute frame in the 24 hour window.
func (t Timecode) TotalFrames() int { return t.frame }

func (t Timecode) Hours() int   { return t.h }
func (t Timecode) Minutes() int { return t.m }
func (t Timecode) Seconds() int { return t.s }
func (t Timecode) Frames() int  { return t.f }

// Add returns the Timecode n frames later. n can be negative.
func (t Timecode) Add(n int) Timecode {
	return FromFrames(t.frame+n, t.rate)
}

// Sub returns the number of frames from u to t.
// Both should be counted in the same rate.
func (t Timecode) Sub(u Timecode) int {
	return t.frame - u.frame
}

// Equal reports whether t and u are the same frame in the same rate.
func (t Timecode) Equal(u Timecode) bool {
	return t.rate == u.rate && t.frame == u.frame
}

// Duration returns the elapsed time from 00:00:00:00 to t.
func (t Timecode) Duration() time.Duration {
	ms := float64(t.frame) * msInSecond / t.rate.Rate
	return time.Duration(math.Round(ms * float64(time.Millisecond)))
}

// String represents the Timecode as HH:MM:SS:FF, or HH:MM:SS;FF for a drop frame rate.
func (t Timecode) String() string {
	if t.rate.IsDrop() {
		return t.Format(";")
	}
	return t.Format(":")
}

// Format represents the Timecode with sep between seconds and frames.
func (t Timecode) Format(sep string) string {
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", t.h, t.m, t.s, sep, t.f)
}

// MarshalText implements encoding.TextMarshaler.
func (t Timecode) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
