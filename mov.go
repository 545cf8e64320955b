package main

import (
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/kzmdstu/tcinfo/timecode"
	"github.com/pkg/errors"
)

// Mov is a mov info that will be used by tcinfo.
type Mov struct {
	File        string
	TimecodeIn  string
	TimecodeOut string
	Duration    string
	Runtime     string
	FPS         string
	Resolution  string
	Codec       string
	Colorspace  string
}

// ffOutput is a mov info got by ffprobe.
type ffOutput struct {
	Streams []ffStream `json:"streams"`
	Format  ffFormat   `json:"format"`
}

// ffStream is a mov stream info got by ffprobe.
// There is video streams and audio streams, but we only need video info.
type ffStream struct {
	NbFrames   string       `json:"nb_frames"`
	RFrameRate string       `json:"r_frame_rate"`
	CodecName  string       `json:"codec_name"`
	Profile    string       `json:"profile"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	Tags       ffStreamTags `json:"tags"`
}

type ffStreamTags struct {
	Timecode string `json:"timecode"`
}

type ffFormat struct {
	Tags ffFormatTags `json:"tags"`
}

type ffFormatTags struct {
	FoundryColorspace string `json:"uk.co.thefoundry.Colorspace"`
}

// parseMov got a mov file path and parses its info.
// If verbose is true, it will put error message in the field when there is a missing info,
// instead of leaving it empty.
// It will only return an error, when there is a crucial error occurred while running ffprobe.
func parseMov(file string, verbose bool) (*Mov, error) {
	c := exec.Command("ffprobe", "-v", "quiet", "-show_format", "-show_streams", "-select_streams", "v:0", "-of", "json", file)
	b, err := c.CombinedOutput()
	if err != nil {
		return nil, errors.Errorf("failed to execute: %s", b)
	}
	mov, err := parseMovinfo(b, verbose)
	if err != nil {
		return nil, errors.Wrap(err, file)
	}
	mov.File = file
	return mov, nil
}

// fill fills a Mov field with the value, or with the error message when verbose.
func fill(dst *string, verbose bool, fn func() (string, error)) {
	v, err := fn()
	if err != nil {
		if verbose {
			*dst = err.Error()
		}
		return
	}
	*dst = v
}

func parseMovinfo(info []byte, verbose bool) (*Mov, error) {
	ff := ffOutput{}
	err := json.Unmarshal(info, &ff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal")
	}
	if len(ff.Streams) > 1 {
		return nil, errors.New("too many video streams")
	}
	if len(ff.Streams) == 0 {
		return nil, errors.New("no video streams")
	}
	video := ff.Streams[0]
	rate := func() (timecode.FrameRate, error) {
		if video.RFrameRate == "" {
			return timecode.FrameRate{}, errors.New("missing r_frame_rate information")
		}
		return timecode.ParseRational(video.RFrameRate)
	}
	nbFrames := func() (int, error) {
		if video.NbFrames == "" {
			return 0, errors.New("missing nb_frames information")
		}
		n, err := strconv.Atoi(video.NbFrames)
		if err != nil {
			return 0, errors.Wrap(err, "invalid nb_frames")
		}
		return n, nil
	}
	mov := &Mov{}
	fill(&mov.TimecodeIn, verbose, func() (string, error) {
		// timecode may not exists
		return video.Tags.Timecode, nil
	})
	fill(&mov.TimecodeOut, verbose, func() (string, error) {
		if video.Tags.Timecode == "" {
			return "", nil
		}
		fr, err := rate()
		if err != nil {
			return "", err
		}
		tc, err := timecode.Parse(video.Tags.Timecode, fr)
		if err != nil {
			return "", err
		}
		frames, err := nbFrames()
		if err != nil {
			return "", err
		}
		return tc.Add(frames - 1).String(), nil
	})
	fill(&mov.Duration, verbose, func() (string, error) {
		if video.NbFrames == "" {
			return "", errors.New("missing nb_frames information")
		}
		return video.NbFrames, nil
	})
	fill(&mov.Runtime, verbose, func() (string, error) {
		fr, err := rate()
		if err != nil {
			return "", err
		}
		frames, err := nbFrames()
		if err != nil {
			return "", err
		}
		return playtime(frames, fr), nil
	})
	fill(&mov.FPS, verbose, func() (string, error) {
		fr, err := rate()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(fr.Rate, 'f', -1, 64), nil
	})
	fill(&mov.Resolution, verbose, func() (string, error) {
		if video.Width == 0 {
			return "", errors.New("missing width information")
		}
		if video.Height == 0 {
			return "", errors.New("missing height information")
		}
		return strconv.Itoa(video.Width) + "*" + strconv.Itoa(video.Height), nil
	})
	fill(&mov.Codec, verbose, func() (string, error) {
		if video.CodecName == "" {
			return "", errors.New("missing codec_name information")
		}
		if video.Profile == "" {
			return "", errors.New("missing codec_profile information")
		}
		return strings.Title(strings.ToLower(video.CodecName)) + " " + video.Profile, nil
	})
	mov.Colorspace = ff.Format.Tags.FoundryColorspace
	return mov, nil
}

// playtime represents how long n frames play, to milliseconds.
func playtime(n int, fr timecode.FrameRate) string {
	if n <= 0 {
		return "0s"
	}
	return timecode.FromFrames(n, fr).Duration().Round(time.Millisecond).String()
}
