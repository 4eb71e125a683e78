// Package iso8601 converts between time.Time and ISO 8601 strings.
//
// Encoding is controlled by Options. The package keeps one process-wide set
// of options, changed with SetOpts and used by Encode; callers that need
// several profiles at once should hold their own Encoder instead. Decoding
// reads every supported form regardless of the current options.
package iso8601

import (
	"sync"
	"time"

	"github.com/jamespfennell/iso8601/internal/decode"
	"github.com/jamespfennell/iso8601/internal/encode"
)

type Options = encode.Options
type Patch = encode.Patch
type Encoder = encode.Encoder
type Decoder = decode.Decoder
type Components = decode.Components
type Offset = decode.Offset

var ErrInvalidInput = encode.ErrInvalidInput
var ErrMalformedInput = decode.ErrMalformedInput

// DefaultOptions are the options in effect at start up and after a reset:
// hyphens, colons, offset and milliseconds on, rendered in UTC.
func DefaultOptions() Options {
	return encode.DefaultOptions()
}

var opts = DefaultOptions()
var optsM sync.RWMutex

// SetOpts merges each patch, in order, over the process-wide options. Called
// with no patches, or with only empty ones, it resets the options to
// DefaultOptions.
func SetOpts(patches ...Patch) {
	optsM.Lock()
	defer optsM.Unlock()
	if allEmpty(patches) {
		opts = DefaultOptions()
		return
	}
	for _, p := range patches {
		opts = opts.Apply(p)
	}
}

func allEmpty(patches []Patch) bool {
	for _, p := range patches {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// Opts returns a snapshot of the process-wide options.
func Opts() Options {
	optsM.RLock()
	defer optsM.RUnlock()
	return opts
}

// DefaultEncoder returns an Encoder holding a snapshot of the process-wide
// options. Later calls to SetOpts do not affect it.
func DefaultEncoder() Encoder {
	return encode.New(Opts())
}

// Encode renders t using the process-wide options. Local rendering uses
// time.Local.
func Encode(t time.Time) (string, error) {
	return DefaultEncoder().Encode(t)
}

// Decode parses an ISO 8601 string. Text without an offset is read as wall
// clock time in time.Local; text with Z or an explicit offset yields a UTC
// time.
func Decode(text string) (time.Time, error) {
	return decode.Decoder{Location: time.Local}.Decode(text)
}

// Parse returns the fields of an ISO 8601 string without converting them to
// an instant.
func Parse(text string) (Components, error) {
	return decode.Parse(text)
}

// Bool returns a pointer to b, for building Patches.
func Bool(b bool) *bool {
	return &b
}
