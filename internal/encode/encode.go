// Package encode renders instants as ISO 8601 strings.
package encode

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidInput is returned when an instant cannot be rendered.
var ErrInvalidInput = errors.New("invalid input")

// Options is the rendering profile used by an Encoder. Each switch is
// independent of the others.
type Options struct {
	// Hyphens separates the date fields: YYYY-MM-DD instead of YYYYMMDD.
	Hyphens bool
	// Colons separates the time fields: HH:mm:ss instead of HHmmss.
	Colons bool
	// Offset appends Z, or the local UTC offset when Local is set.
	Offset bool
	// Milliseconds appends the .mmm fractional seconds field.
	Milliseconds bool
	// Local renders the wall clock of the encoder's location instead of UTC.
	Local bool
}

// DefaultOptions returns the extended UTC profile, e.g.
// 2014-01-20T14:25:25.050Z. Strings in this profile decode back to the
// same instant.
func DefaultOptions() Options {
	return Options{
		Hyphens:      true,
		Colons:       true,
		Offset:       true,
		Milliseconds: true,
		Local:        false,
	}
}

// Patch is a partial update of Options. Nil fields are left unchanged.
type Patch struct {
	Hyphens      *bool `yaml:"hyphens,omitempty"`
	Colons       *bool `yaml:"colons,omitempty"`
	Offset       *bool `yaml:"offset,omitempty"`
	Milliseconds *bool `yaml:"milliseconds,omitempty"`
	Local        *bool `yaml:"local,omitempty"`
}

// IsEmpty reports whether the patch sets no fields.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Apply returns a copy of o with the fields set in p merged over it.
func (o Options) Apply(p Patch) Options {
	merge := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	merge(&o.Hyphens, p.Hyphens)
	merge(&o.Colons, p.Colons)
	merge(&o.Offset, p.Offset)
	merge(&o.Milliseconds, p.Milliseconds)
	merge(&o.Local, p.Local)
	return o
}

func (o Options) String() string {
	return fmt.Sprintf("hyphens=%t colons=%t offset=%t milliseconds=%t local=%t",
		o.Hyphens, o.Colons, o.Offset, o.Milliseconds, o.Local)
}

// Encoder renders instants under a fixed set of Options. The zero value
// renders every switch off in UTC.
type Encoder struct {
	Options Options
	// Location is the zone used when Options.Local is set. Nil means time.Local.
	Location *time.Location
}

// New returns an Encoder that uses time.Local for local rendering.
func New(opts Options) Encoder {
	return Encoder{Options: opts, Location: time.Local}
}

func (e Encoder) location() *time.Location {
	if !e.Options.Local {
		return time.UTC
	}
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

// Encode renders t as an ISO 8601 string.
func (e Encoder) Encode(t time.Time) (string, error) {
	t = t.In(e.location())
	if t.Year() < 0 || t.Year() > 9999 {
		return "", fmt.Errorf("%w: year %d of %s cannot be written with four digits",
			ErrInvalidInput, t.Year(), t.UTC().Format(time.RFC3339))
	}
	var b strings.Builder
	if e.Options.Hyphens {
		fmt.Fprintf(&b, "%04d-%02d-%02d", t.Year(), t.Month(), t.Day())
	} else {
		fmt.Fprintf(&b, "%04d%02d%02d", t.Year(), t.Month(), t.Day())
	}
	b.WriteByte('T')
	if e.Options.Colons {
		fmt.Fprintf(&b, "%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	} else {
		fmt.Fprintf(&b, "%02d%02d%02d", t.Hour(), t.Minute(), t.Second())
	}
	if e.Options.Milliseconds {
		fmt.Fprintf(&b, ".%03d", t.Nanosecond()/int(time.Millisecond))
	}
	if e.Options.Offset {
		if e.Options.Local {
			_, zoneOffset := t.Zone()
			b.WriteString(formatOffset(zoneOffset))
		} else {
			b.WriteByte('Z')
		}
	}
	return b.String(), nil
}

// MustEncode is like Encode but panics if the instant cannot be rendered.
func (e Encoder) MustEncode(t time.Time) string {
	s, err := e.Encode(t)
	if err != nil {
		panic(err)
	}
	return s
}

// formatOffset renders a zone offset in seconds east of UTC as ±HH:mm.
// Seconds beyond whole minutes are dropped.
func formatOffset(zoneOffset int) string {
	sign := '+'
	if zoneOffset < 0 {
		sign = '-'
		zoneOffset = -zoneOffset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, zoneOffset/3600, (zoneOffset%3600)/60)
}
