// Package convert rewrites streams of ISO 8601 timestamps, one per line, into
// a different encoding profile.
package convert

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jamespfennell/iso8601/config"
	"github.com/jamespfennell/iso8601/internal/decode"
	"github.com/jamespfennell/iso8601/internal/encode"
	"github.com/jamespfennell/iso8601/internal/monitoring"
	"github.com/jamespfennell/iso8601/internal/util"
	"github.com/jamespfennell/iso8601/internal/workerpool"
	"github.com/sirupsen/logrus"
)

const batchSize = 256

// LineError is the failure to convert a single line.
type LineError struct {
	Line int
	Err  error
}

func (err LineError) Error() string {
	return fmt.Sprintf("line %d: %s", err.Line, err.Err)
}

func (err LineError) Unwrap() error {
	return err.Err
}

type Converter struct {
	Encoder encode.Encoder
	Decoder decode.Decoder
	Workers int
	Log     logrus.FieldLogger
}

func NewConverter(c *config.Config) *Converter {
	return &Converter{
		Encoder: c.Encoder(),
		Decoder: c.Decoder(),
		Workers: c.Workers,
		Log:     logrus.WithField("component", "convert"),
	}
}

// Convert reads timestamps from r, one per line, and writes them to w
// re-encoded. Blank lines are kept. Lines that fail to convert are written
// unchanged and reported in the returned error; the rest of the input is
// still converted.
func (c *Converter) Convert(r io.Reader, w io.Writer) error {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	out := make([]string, len(lines))
	pool := workerpool.NewWorkerPool(c.Workers)
	var eg workerpool.ErrorGroup
	for start := 0; start < len(lines); start += batchSize {
		start := start
		end := start + batchSize
		if end > len(lines) {
			end = len(lines)
		}
		eg.Add(1)
		pool.Run(func() {
			var errs []error
			for i := start; i < end; i++ {
				var err error
				out[i], err = c.convertLine(lines[i])
				if err != nil {
					errs = append(errs, LineError{Line: i + 1, Err: err})
				}
			}
			eg.Done(util.NewMultipleError(errs...))
		})
	}
	convertErr := eg.Wait()
	pool.Close()

	bw := bufio.NewWriter(w)
	for _, line := range out {
		if _, err := bw.WriteString(line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	c.logger().WithField("lines", len(lines)).Info("Converted timestamps")
	return convertErr
}

func (c *Converter) convertLine(line string) (string, error) {
	text := strings.TrimSpace(line)
	if text == "" {
		return line, nil
	}
	t, err := c.Decoder.Decode(text)
	monitoring.RecordDecode(monitoring.Convert, err)
	if err != nil {
		c.logger().WithError(err).Debug("Failed to decode line")
		return line, err
	}
	s, err := c.Encoder.Encode(t)
	monitoring.RecordEncode(monitoring.Convert, err)
	if err != nil {
		c.logger().WithError(err).Debug("Failed to encode line")
		return line, err
	}
	return s, nil
}

func (c *Converter) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Files converts the input file into the output file. An empty path or "-"
// means standard input or output. Compression of each file follows its
// extension; output files without a known extension use the configured
// compression.
func (c *Converter) Files(input, output string, compression config.Compression) error {
	var r io.Reader = os.Stdin
	if input != "" && input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", input, err)
		}
		defer f.Close()
		rc, err := config.Compression{}.ForPath(input).NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to decompress input file %s: %w", input, err)
		}
		defer rc.Close()
		r = rc
	}
	if output == "" || output == "-" {
		return c.Convert(r, os.Stdout)
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", output, err)
	}
	wc := compression.ForPath(output).NewWriter(f)
	convertErr := c.Convert(r, wc)
	if err := wc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to compress output file %s: %w", output, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file %s: %w", output, err)
	}
	return convertErr
}
