package timecode

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// FrameRate describes how a Timecode is counted.
//
// Rate is the nominal rate, ex) 29.97.
// RoundedRate is the integer base used for hours/minutes/seconds/frames math, ex) 30.
// DropFrames is how many frame numbers are skipped at each minute that is not a
// multiple of ten. Zero means a non-drop frame rate.
type FrameRate struct {
	Rate        float64
	RoundedRate int
	DropFrames  int
}

// Common frame rates.
var (
	FPS23976   = FrameRate{Rate: 23.976, RoundedRate: 24}
	FPS24      = FrameRate{Rate: 24, RoundedRate: 24}
	FPS25      = FrameRate{Rate: 25, RoundedRate: 25}
	FPS2997DF  = FrameRate{Rate: 29.97, RoundedRate: 30, DropFrames: 2}
	FPS2997NDF = FrameRate{Rate: 29.97, RoundedRate: 30}
	FPS30      = FrameRate{Rate: 30, RoundedRate: 30}
	FPS50      = FrameRate{Rate: 50, RoundedRate: 50}
	FPS5994DF  = FrameRate{Rate: 59.94, RoundedRate: 60, DropFrames: 4}
	FPS60      = FrameRate{Rate: 60, RoundedRate: 60}
)

var namedRates = map[string]FrameRate{
	"23.976":   FPS23976,
	"23.98":    FPS23976,
	"24":       FPS24,
	"25":       FPS25,
	"29.97":    FPS2997DF,
	"29.97df":  FPS2997DF,
	"29.97ndf": FPS2997NDF,
	"30":       FPS30,
	"50":       FPS50,
	"59.94":    FPS5994DF,
	"59.94df":  FPS5994DF,
	"60":       FPS60,
}

// ntsc rates by ffprobe's r_frame_rate numerator over 1001.
var ntscRates = map[int]FrameRate{
	24000: FPS23976,
	30000: FPS2997DF,
	60000: FPS5994DF,
}

// LookupFrameRate finds a common frame rate by its name, ex) "29.97df" or "25".
// Bare "29.97" and "59.94" are drop frame rates.
func LookupFrameRate(name string) (FrameRate, error) {
	fr, ok := namedRates[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return FrameRate{}, errors.Wrapf(ErrInvalidArgument, "unknown frame rate %q", name)
	}
	return fr, nil
}

// ParseRational parses a frame rate in num/den form as ffprobe reports it in r_frame_rate.
func ParseRational(s string) (FrameRate, error) {
	i := strings.IndexByte(s, '/')
	if i < 0 {
		return FrameRate{}, errors.Wrapf(ErrInvalidArgument, "not a rational frame rate: %q", s)
	}
	num, err := strconv.Atoi(s[:i])
	if err != nil {
		return FrameRate{}, errors.Wrapf(ErrInvalidArgument, "not a rational frame rate: %q", s)
	}
	den, err := strconv.Atoi(s[i+1:])
	if err != nil || den <= 0 || num <= 0 {
		return FrameRate{}, errors.Wrapf(ErrInvalidArgument, "not a rational frame rate: %q", s)
	}
	if den == 1 {
		return FrameRate{Rate: float64(num), RoundedRate: num}, nil
	}
	if den == 1001 {
		if fr, ok := ntscRates[num]; ok {
			return fr, nil
		}
	}
	return FrameRate{}, errors.Wrapf(ErrInvalidArgument, "unsupported frame rate: %v", s)
}

// IsDrop reports whether the rate uses drop frame counting.
func (fr FrameRate) IsDrop() bool {
	return fr.DropFrames != 0
}

// String represents the rate like "29.97 DF".
func (fr FrameRate) String() string {
	s := strconv.FormatFloat(fr.Rate, 'f', -1, 64)
	if fr.IsDrop() {
		s += " DF"
	}
	return s
}

// FrameDuration is how long a single frame is shown.
func (fr FrameRate) FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / fr.Rate)
}

// framesPer returns the real number of frames shown in the given seconds,
// rounded half away from zero.
func (fr FrameRate) framesPer(seconds int) int {
	return int(math.Round(fr.Rate * float64(seconds)))
}

// framesPerDay is the size of the 24 hour window in frames.
func (fr FrameRate) framesPerDay() int {
	if fr.IsDrop() {
		return fr.framesPer(secondsInHour) * hoursInDay
	}
	return hoursInDay * secondsInHour * fr.RoundedRate
}
