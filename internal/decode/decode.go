// Package decode parses ISO 8601 date and date-time strings.
//
// Decoding happens in two steps. Parse matches the text against the grammar
//
//	YYYY[-MM[-DD]]
//	YYYY[-]MM[-]DD(T| )HH[[:]mm[[:]ss[.mss]]][Z|±HH[[:]mm]]
//
// and produces Components. Components.Instant then turns the wall clock
// fields into an absolute time, either in a caller supplied location or by
// subtracting the explicit UTC offset.
package decode

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedInput is returned when text is outside the accepted grammar or
// a field is out of range.
var ErrMalformedInput = errors.New("malformed input")

// Offset is an explicit UTC offset. Sign is +1 or -1; Z is {+1, 0, 0}.
type Offset struct {
	Sign    int
	Hours   int
	Minutes int
}

func (o Offset) Duration() time.Duration {
	return time.Duration(o.Sign) * (time.Duration(o.Hours)*time.Hour + time.Duration(o.Minutes)*time.Minute)
}

// Components are the fields read from a decoded string. Fields absent from
// the text are zero, except Month and Day which default to 1.
type Components struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	// Offset is nil if the text carries no offset suffix.
	Offset *Offset
}

// Validate checks that every field is in range for the calendar.
func (c Components) Validate() error {
	if c.Month < 1 || c.Month > 12 {
		return fmt.Errorf("month %d out of range", c.Month)
	}
	if days := daysIn(c.Year, time.Month(c.Month)); c.Day < 1 || c.Day > days {
		return fmt.Errorf("day %d out of range for %04d-%02d", c.Day, c.Year, c.Month)
	}
	if c.Hour > 23 {
		return fmt.Errorf("hour %d out of range", c.Hour)
	}
	if c.Minute > 59 {
		return fmt.Errorf("minute %d out of range", c.Minute)
	}
	if c.Second > 59 {
		return fmt.Errorf("second %d out of range", c.Second)
	}
	if c.Offset != nil {
		if c.Offset.Hours > 23 {
			return fmt.Errorf("offset hours %d out of range", c.Offset.Hours)
		}
		if c.Offset.Minutes > 59 {
			return fmt.Errorf("offset minutes %d out of range", c.Offset.Minutes)
		}
	}
	return nil
}

// Instant converts the components to an absolute time. Without an offset the
// fields are wall clock time in loc; with an offset the result is in UTC.
func (c Components) Instant(loc *time.Location) time.Time {
	nsec := c.Millisecond * int(time.Millisecond)
	if c.Offset == nil {
		return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, nsec, loc)
	}
	t := time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, c.Second, nsec, time.UTC)
	return t.Add(-c.Offset.Duration())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Decoder converts text to instants. Text without an offset is read as wall
// clock time in Location; a nil Location means time.Local.
type Decoder struct {
	Location *time.Location
}

// Decode parses text and returns the instant it denotes.
func (d Decoder) Decode(text string) (time.Time, error) {
	c, err := Parse(text)
	if err != nil {
		return time.Time{}, err
	}
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return c.Instant(loc), nil
}

// Parse matches text against the grammar and range checks the result. Every
// error wraps ErrMalformedInput.
func Parse(text string) (Components, error) {
	p := parser{s: text}
	c, err := p.parse()
	if err == nil {
		err = c.Validate()
	}
	if err != nil {
		return Components{}, fmt.Errorf("%w: %q: %s", ErrMalformedInput, text, err)
	}
	return c, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) parse() (Components, error) {
	c := Components{Month: 1, Day: 1}
	var err error
	if c.Year, err = p.digits("year", 4); err != nil {
		return c, err
	}
	if p.done() {
		return c, nil
	}
	hyphens := p.accept('-')
	if c.Month, err = p.digits("month", 2); err != nil {
		return c, err
	}
	if p.done() {
		if !hyphens {
			return c, errors.New("year and month without a day must be hyphenated")
		}
		return c, nil
	}
	if hyphens {
		if err := p.expect('-', "date separator"); err != nil {
			return c, err
		}
	}
	if c.Day, err = p.digits("day", 2); err != nil {
		return c, err
	}
	if p.done() {
		return c, nil
	}
	if !p.accept('T') && !p.accept('t') && !p.accept(' ') {
		return c, p.unexpected("date/time separator")
	}
	if err := p.parseTime(&c); err != nil {
		return c, err
	}
	if !p.done() {
		o, err := p.parseOffset()
		if err != nil {
			return c, err
		}
		c.Offset = &o
	}
	if !p.done() {
		return c, p.unexpected("end of input")
	}
	return c, nil
}

// parseTime reads HH[[:]mm[[:]ss[.mss]]]. The separator used between hour and
// minute must be used between minute and second too.
func (p *parser) parseTime(c *Components) error {
	var err error
	if c.Hour, err = p.digits("hour", 2); err != nil {
		return err
	}
	colons := p.accept(':')
	if !colons && !p.peekDigit() {
		return nil
	}
	if c.Minute, err = p.digits("minute", 2); err != nil {
		return err
	}
	if colons {
		if !p.accept(':') {
			return nil
		}
	} else if !p.peekDigit() {
		return nil
	}
	if c.Second, err = p.digits("second", 2); err != nil {
		return err
	}
	if p.accept('.') {
		if c.Millisecond, err = p.digits("milliseconds", 3); err != nil {
			return err
		}
		if p.peekDigit() {
			return errors.New("milliseconds must have exactly three digits")
		}
	}
	return nil
}

// parseOffset reads Z or ±HH[[:]mm].
func (p *parser) parseOffset() (Offset, error) {
	if p.accept('Z') || p.accept('z') {
		return Offset{Sign: 1}, nil
	}
	o := Offset{Sign: 1}
	switch {
	case p.accept('+'):
	case p.accept('-'):
		o.Sign = -1
	default:
		return o, p.unexpected("offset")
	}
	var err error
	if o.Hours, err = p.digits("offset hours", 2); err != nil {
		return o, err
	}
	if p.done() {
		return o, nil
	}
	p.accept(':')
	if o.Minutes, err = p.digits("offset minutes", 2); err != nil {
		return o, err
	}
	return o, nil
}

func (p *parser) done() bool {
	return p.pos >= len(p.s)
}

func (p *parser) accept(b byte) bool {
	if p.done() || p.s[p.pos] != b {
		return false
	}
	p.pos++
	return true
}

func (p *parser) expect(b byte, what string) error {
	if !p.accept(b) {
		return p.unexpected(what)
	}
	return nil
}

func (p *parser) peekDigit() bool {
	return !p.done() && isDigit(p.s[p.pos])
}

// digits reads exactly n decimal digits.
func (p *parser) digits(field string, n int) (int, error) {
	if p.pos+n > len(p.s) {
		return 0, fmt.Errorf("%s: expected %d digits at position %d", field, n, p.pos)
	}
	v := 0
	for i := 0; i < n; i++ {
		b := p.s[p.pos+i]
		if !isDigit(b) {
			return 0, fmt.Errorf("%s: expected %d digits at position %d", field, n, p.pos)
		}
		v = v*10 + int(b-'0')
	}
	p.pos += n
	return v, nil
}

func (p *parser) unexpected(what string) error {
	if p.done() {
		return fmt.Errorf("expected %s at end of input", what)
	}
	return fmt.Errorf("expected %s at position %d, found %q", what, p.pos, p.s[p.pos])
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}
