package timecode

import (
	"github.com/pkg/errors"
)

// fields is a scanned HH:MM:SS:FF.
type fields struct {
	h, m, s, f int
}

// scanner reads a timecode string left to right.
type scanner struct {
	in  string
	pos int
}

func (sc *scanner) fail(reason string) error {
	return &FormatError{Input: sc.in, Pos: sc.pos, Reason: reason}
}

// digit reads one decimal digit that is not greater than max.
func (sc *scanner) digit(max byte) (int, error) {
	if sc.pos >= len(sc.in) {
		return 0, sc.fail("unexpected end")
	}
	c := sc.in[sc.pos]
	if c < '0' || c > '9' {
		return 0, sc.fail("expected digit")
	}
	if c > max {
		return 0, sc.fail("digit out of range")
	}
	sc.pos++
	return int(c - '0'), nil
}

// pair reads two digits, the first one not greater than max.
func (sc *scanner) pair(max byte) (int, error) {
	hi, err := sc.digit(max)
	if err != nil {
		return 0, err
	}
	lo, err := sc.digit('9')
	if err != nil {
		return 0, err
	}
	return hi*10 + lo, nil
}

// sep reads one of the given separator bytes.
func (sc *scanner) sep(allowed string) error {
	if sc.pos >= len(sc.in) {
		return sc.fail("unexpected end")
	}
	c := sc.in[sc.pos]
	for i := 0; i < len(allowed); i++ {
		if allowed[i] == c {
			sc.pos++
			return nil
		}
	}
	return sc.fail("expected one of " + allowed)
}

// scan parses HH:MM:SS<sep>FF where HH is 00-29, MM and SS are 00-59,
// sep is one of ":;." and FF has 2 or 3 digits.
// The separator does not change how the value is counted.
func scan(s string) (fields, error) {
	var v fields
	if s == "" {
		return v, errors.Wrap(ErrInvalidArgument, "empty timecode")
	}
	sc := &scanner{in: s}
	var err error
	if v.h, err = sc.pair('2'); err != nil {
		return v, err
	}
	if err = sc.sep(":"); err != nil {
		return v, err
	}
	if v.m, err = sc.pair('5'); err != nil {
		return v, err
	}
	if err = sc.sep(":"); err != nil {
		return v, err
	}
	if v.s, err = sc.pair('5'); err != nil {
		return v, err
	}
	if err = sc.sep(":;."); err != nil {
		return v, err
	}
	if v.f, err = sc.pair('9'); err != nil {
		return v, err
	}
	if sc.pos < len(s) {
		d, err := sc.digit('9')
		if err != nil {
			return v, err
		}
		v.f = v.f*10 + d
	}
	if sc.pos != len(s) {
		return v, sc.fail("trailing characters")
	}
	return v, nil
}
