package timecode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFrames(t *testing.T) {
	cases := []struct {
		frame int
		rate  FrameRate
		want  string
	}{
		{0, FPS25, "00:00:00:00"},
		{24, FPS25, "00:00:00:24"},
		{25, FPS25, "00:00:01:00"},
		{90000, FPS25, "01:00:00:00"},
		{2159999, FPS25, "23:59:59:24"},
		{86399, FPS24, "00:59:59:23"},
		{1799, FPS2997DF, "00:00:59;29"},
		{1800, FPS2997DF, "00:01:00;02"},
		{3597, FPS2997DF, "00:01:59;29"},
		{3598, FPS2997DF, "00:02:00;02"},
		{17981, FPS2997DF, "00:09:59;29"},
		{17982, FPS2997DF, "00:10:00;00"},
		{17983, FPS2997DF, "00:10:00;01"},
		{107892, FPS2997DF, "01:00:00;00"},
		{2589407, FPS2997DF, "23:59:59;29"},
		{1799, FPS2997NDF, "00:00:59:29"},
		{1800, FPS2997NDF, "00:01:00:00"},
		{3599, FPS5994DF, "00:00:59;59"},
		{3600, FPS5994DF, "00:01:00;04"},
		{35964, FPS5994DF, "00:10:00;00"},
	}
	for _, c := range cases {
		got := FromFrames(c.frame, c.rate)
		assert.Equal(t, c.want, got.String(), "frame %d at %v", c.frame, c.rate)
		assert.Equal(t, c.frame, got.TotalFrames(), "frame %d at %v", c.frame, c.rate)
	}
}

func TestFromFramesWrap(t *testing.T) {
	for _, fr := range []FrameRate{FPS24, FPS25, FPS2997DF, FPS30, FPS5994DF, FPS60} {
		day := fr.framesPerDay()
		tc := FromFrames(day, fr)
		assert.Equal(t, 0, tc.Hours(), "%v", fr)
		assert.Equal(t, 0, tc.Minutes(), "%v", fr)
		assert.Equal(t, 0, tc.Seconds(), "%v", fr)
		assert.Equal(t, 0, tc.Frames(), "%v", fr)
		assert.Equal(t, 0, tc.TotalFrames(), "%v", fr)

		assert.Equal(t, FromFrames(5, fr), FromFrames(day+5, fr), "%v", fr)
		assert.Equal(t, FromFrames(day-1, fr), FromFrames(-1, fr), "%v", fr)
		assert.Equal(t, FromFrames(7, fr), FromFrames(7-3*day, fr), "%v", fr)
	}
	assert.Equal(t, 2589408, FPS2997DF.framesPerDay())
	assert.Equal(t, 2160000, FPS25.framesPerDay())
	assert.Equal(t, "23:59:59;29", FromFrames(-1, FPS2997DF).String())
}

func TestRoundTripFramesNonDrop(t *testing.T) {
	fr := FPS25
	for n := 0; n < fr.framesPerDay(); n++ {
		tc := FromFrames(n, fr)
		if got := compose(tc.Hours(), tc.Minutes(), tc.Seconds(), tc.Frames(), fr); got != n {
			t.Fatalf("frame %d: %v composes to %d", n, tc, got)
		}
	}
}

func TestRoundTripFramesDrop(t *testing.T) {
	for _, fr := range []FrameRate{FPS2997DF, FPS5994DF} {
		for n := 0; n < fr.framesPerDay(); n++ {
			tc := FromFrames(n, fr)
			if tc.Seconds() == 0 && tc.Minutes()%10 != 0 && tc.Frames() < fr.DropFrames {
				t.Fatalf("frame %d at %v: dropped frame number %v", n, fr, tc)
			}
			if got := compose(tc.Hours(), tc.Minutes(), tc.Seconds(), tc.Frames(), fr); got != n {
				t.Fatalf("frame %d at %v: %v composes to %d", n, fr, tc, got)
			}
		}
	}
}

func TestDropFrameSkip(t *testing.T) {
	fr := FPS2997DF
	tc, err := Parse("00:00:59;29", fr)
	require.NoError(t, err)
	assert.Equal(t, "00:01:00;02", tc.Add(1).String())

	tc, err = Parse("00:09:59;29", fr)
	require.NoError(t, err)
	next := tc.Add(1)
	assert.Equal(t, "00:10:00;00", next.String())
	assert.Equal(t, "00:10:00;01", next.Add(1).String())

	tc, err = Parse("00:59:59;29", fr)
	require.NoError(t, err)
	assert.Equal(t, "01:00:00;00", tc.Add(1).String())
}

func TestFromComponents(t *testing.T) {
	assert.Equal(t, "00:00:03:00", FromComponents(0, 0, 0, 90, FPS30).String())
	assert.Equal(t, "01:00:00:00", FromComponents(0, 60, 0, 0, FPS25).String())
	assert.Equal(t, "01:00:00:00", FromComponents(25, 0, 0, 0, FPS25).String())
	// dropped frame numbers count back into the previous minute.
	assert.Equal(t, "00:00:59;28", FromComponents(0, 1, 0, 0, FPS2997DF).String())
	assert.Equal(t, 1800, FromComponents(0, 1, 0, 2, FPS2997DF).TotalFrames())
}

func TestFormat(t *testing.T) {
	drop := FromFrames(1800, FPS2997DF)
	assert.Equal(t, "00:01:00;02", drop.String())
	assert.Equal(t, "00:01:00:02", drop.Format(":"))
	assert.Equal(t, "00:01:00.02", drop.Format("."))

	nonDrop := FromFrames(1800, FPS2997NDF)
	assert.Equal(t, "00:01:00:00", nonDrop.String())
	assert.Equal(t, "00:01:00;00", nonDrop.Format(";"))

	b, err := drop.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00:01:00;02", string(b))

	assert.Equal(t, "00:00:00:00", Timecode{}.String())
}

func TestAddSub(t *testing.T) {
	a := FromFrames(100, FPS25)
	b := a.Add(50)
	assert.Equal(t, 150, b.TotalFrames())
	assert.Equal(t, 50, b.Sub(a))
	assert.Equal(t, -50, a.Sub(b))
	assert.True(t, b.Add(-50).Equal(a))
	assert.False(t, a.Equal(FromFrames(100, FPS24)))
	assert.Equal(t, "23:59:59:24", FromFrames(0, FPS25).Add(-1).String())
}

func TestFromDuration(t *testing.T) {
	cases := []struct {
		d       time.Duration
		rate    FrameRate
		ceiling bool
		want    string
	}{
		{0, FPS25, true, "00:00:00:00"},
		{10 * time.Second, FPS25, true, "00:00:10:00"},
		{time.Hour, FPS25, false, "01:00:00:00"},
		{time.Second + 20*time.Millisecond, FPS25, true, "00:00:01:00"},
		{time.Second + 40*time.Millisecond, FPS25, false, "00:00:01:01"},
		{25 * time.Hour, FPS25, true, "01:00:00:00"},
		{time.Minute, FPS2997DF, false, "00:00:59;28"},
	}
	for _, c := range cases {
		got := FromDuration(c.d, c.rate, c.ceiling)
		assert.Equal(t, c.want, got.String(), "%v at %v", c.d, c.rate)
	}
}

func TestDurationRoundTrip(t *testing.T) {
	durations := []time.Duration{
		0,
		time.Millisecond,
		333 * time.Millisecond,
		time.Second,
		59*time.Second + 999*time.Millisecond,
		10 * time.Minute,
		time.Hour + 23*time.Minute + 7*time.Second + 123*time.Millisecond,
		23*time.Hour + 59*time.Minute,
	}
	for _, fr := range []FrameRate{FPS23976, FPS24, FPS25, FPS2997DF, FPS30, FPS5994DF, FPS60} {
		frame := fr.FrameDuration()
		for _, d := range durations {
			got := FromDuration(d, fr, true).Duration()
			diff := d - got
			if diff < 0 {
				diff = -diff
			}
			assert.True(t, diff <= frame, "%v at %v: got %v, off by %v", d, fr, got, diff)
		}
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, time.Second, FromFrames(25, FPS25).Duration())
	assert.Equal(t, time.Hour, FromFrames(90000, FPS25).Duration())
	assert.Equal(t, 40*time.Millisecond, FromFrames(1, FPS25).Duration())
	assert.Equal(t, 10*time.Hour, FromFrames(1078920, FPS2997DF).Duration())
}
