package main

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kzmdstu/tcinfo/timecode"
)

var ReSplitSeqName = regexp.MustCompile(`(.*\D)?(\d+)(.*?)$`)

// Sequence is a numbered image sequence found under the search root.
// Name has "{{$.Frame}}" in place of the frame number.
type Sequence struct {
	Name  string
	Start string
	End   string

	// origin is the timecode of frame number 0.
	origin timecode.Timecode
}

func (s *Sequence) FirstFile() string {
	return strings.Replace(s.Name, "{{$.Frame}}", s.Start, -1)
}

func (s *Sequence) LastFile() string {
	return strings.Replace(s.Name, "{{$.Frame}}", s.End, -1)
}

func (s *Sequence) Length() string {
	return strconv.Itoa(s.length())
}

func (s *Sequence) length() int {
	end, _ := strconv.Atoi(s.End)
	start, _ := strconv.Atoi(s.Start)
	return end - start + 1
}

// TimecodeIn is the timecode of the first frame.
func (s *Sequence) TimecodeIn() string {
	start, _ := strconv.Atoi(s.Start)
	return s.origin.Add(start).String()
}

// TimecodeOut is the timecode of the last frame.
func (s *Sequence) TimecodeOut() string {
	end, _ := strconv.Atoi(s.End)
	return s.origin.Add(end).String()
}

// Runtime is how long the sequence plays.
func (s *Sequence) Runtime() string {
	return playtime(s.length(), s.origin.FrameRate())
}
