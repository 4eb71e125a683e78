package config

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/jamespfennell/xz"
)

type CompressionFormat int

const (
	None CompressionFormat = 0
	Gzip CompressionFormat = 1
	Xz   CompressionFormat = 2
	Zstd CompressionFormat = 3
)

func AllCompressionFormats() []CompressionFormat {
	return []CompressionFormat{
		None,
		Gzip,
		Xz,
		Zstd,
	}
}

type formatImpl struct {
	id           string
	extension    string
	minLevel     int
	maxLevel     int
	defaultLevel int
	newReader    func(r io.Reader) (io.ReadCloser, error)
	newWriter    func(w io.Writer, level int) io.WriteCloser
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

var noneImpl = formatImpl{
	id: "none",
	newReader: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	},
	newWriter: func(w io.Writer, level int) io.WriteCloser {
		return nopWriteCloser{w}
	},
}

var gzipImpl = formatImpl{
	id:           "gzip",
	extension:    "gz",
	minLevel:     gzip.BestSpeed,
	maxLevel:     gzip.BestCompression,
	defaultLevel: 6, // the package uses -1 which doesn't fit well here
	newReader: func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	},
	newWriter: func(w io.Writer, level int) io.WriteCloser {
		// The level is clamped before this is called, so the error can be ignored
		z, _ := gzip.NewWriterLevel(w, level)
		return z
	},
}

var xzImpl = formatImpl{
	id:           "xz",
	extension:    "xz",
	minLevel:     xz.BestSpeed,
	maxLevel:     xz.BestCompression,
	defaultLevel: xz.DefaultCompression,
	newReader: func(r io.Reader) (io.ReadCloser, error) {
		return xz.NewReader(r), nil
	},
	newWriter: func(w io.Writer, level int) io.WriteCloser {
		return xz.NewWriterLevel(w, level)
	},
}

var zstdImpl = formatImpl{
	id:           "zstd",
	extension:    "zstd",
	minLevel:     zstd.BestSpeed,
	maxLevel:     zstd.BestCompression,
	defaultLevel: zstd.DefaultCompression,
	newReader: func(r io.Reader) (io.ReadCloser, error) {
		return zstd.NewReader(r), nil
	},
	newWriter: func(w io.Writer, level int) io.WriteCloser {
		return zstd.NewWriterLevel(w, level)
	},
}

var formatToImpl = map[CompressionFormat]formatImpl{
	None: noneImpl,
	Gzip: gzipImpl,
	Xz:   xzImpl,
	Zstd: zstdImpl,
}

func (format CompressionFormat) impl() formatImpl {
	impl, ok := formatToImpl[format]
	if ok {
		return impl
	}
	return noneImpl
}

func (format CompressionFormat) Extension() string {
	return format.impl().extension
}

func (format CompressionFormat) String() string {
	return format.impl().id
}

func (format *CompressionFormat) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var id string
	if err := unmarshal(&id); err != nil {
		return err
	}
	parsedFormat, ok := NewFormatFromId(id)
	if !ok {
		return fmt.Errorf("unknown compression format %q", id)
	}
	*format = parsedFormat
	return nil
}

func (format CompressionFormat) MarshalYAML() (interface{}, error) {
	return format.String(), nil
}

func NewFormatFromId(id string) (CompressionFormat, bool) {
	for _, format := range AllCompressionFormats() {
		if format.impl().id == id {
			return format, true
		}
	}
	return None, false
}

func NewFormatFromExtension(extension string) (CompressionFormat, bool) {
	if extension == "" {
		return None, false
	}
	for _, format := range AllCompressionFormats() {
		if format.impl().extension == extension {
			return format, true
		}
	}
	return None, false
}

// Compression specifies a compression format and, optionally, a level.
type Compression struct {
	Format CompressionFormat
	Level  *int `yaml:",omitempty"`
}

func NewCompressionWithLevel(format CompressionFormat, level int) Compression {
	return Compression{
		Format: format,
		Level:  &level,
	}
}

// ForPath returns the compression to use for the named file: the format
// implied by its extension if there is one, otherwise c itself.
func (c Compression) ForPath(path string) Compression {
	extension := strings.TrimPrefix(filepath.Ext(path), ".")
	format, ok := NewFormatFromExtension(extension)
	if !ok || format == c.Format {
		return c
	}
	return Compression{Format: format}
}

// LevelActual returns the level that will be used, clamped to the range the
// format supports.
func (c Compression) LevelActual() int {
	impl := c.Format.impl()
	if c.Level == nil {
		return impl.defaultLevel
	}
	if *c.Level < impl.minLevel {
		return impl.minLevel
	}
	if *c.Level > impl.maxLevel {
		return impl.maxLevel
	}
	return *c.Level
}

func (c Compression) Equal(other Compression) bool {
	return c.Format == other.Format && c.LevelActual() == other.LevelActual()
}

func (c Compression) NewReader(r io.Reader) (io.ReadCloser, error) {
	return c.Format.impl().newReader(r)
}

func (c Compression) NewWriter(w io.Writer) io.WriteCloser {
	return c.Format.impl().newWriter(w, c.LevelActual())
}
