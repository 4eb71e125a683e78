package config

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestCompression_UnmarshalYAML(t *testing.T) {
	cases := []struct {
		input          string
		expectedOutput Compression
		roundTrip      string
	}{
		{
			"",
			Compression{
				Format: None,
			},
			"format: none",
		},
		{
			"format: xz",
			Compression{
				Format: Xz,
			},
			"format: xz",
		},
		{
			"format: gzip\nlevel: 1",
			NewCompressionWithLevel(Gzip, 1),
			"format: gzip\nlevel: 1",
		},
	}
	for i, testCase := range cases {
		t.Run(fmt.Sprintf("Case %d", i), func(t *testing.T) {
			actualOutput := Compression{}
			if err := yaml.Unmarshal([]byte(testCase.input), &actualOutput); err != nil {
				t.Errorf("Unexpected error when unmarshalling: %s", err)
			}
			if !actualOutput.Equal(testCase.expectedOutput) {
				t.Errorf("Actual != expected. \n%#v != \n%#v", actualOutput, testCase.expectedOutput)
			}
			b, err := yaml.Marshal(actualOutput)
			if err != nil {
				t.Errorf("Unexpected error when re-marshalling: %s", err)
			}
			if strings.TrimSpace(string(b)) != testCase.roundTrip {
				t.Errorf("YAML round trip not the identity: \n%q != \n%q",
					strings.TrimSpace(string(b)),
					testCase.roundTrip)
			}
		})
	}
}

func TestCompression_ForPath(t *testing.T) {
	base := NewCompressionWithLevel(Xz, 3)
	cases := map[string]Compression{
		"out.txt":        base,
		"out":            base,
		"out.xz":         base,
		"out.gz":         {Format: Gzip},
		"dir.d/out.zstd": {Format: Zstd},
	}
	for path, expected := range cases {
		if actual := base.ForPath(path); !actual.Equal(expected) {
			t.Errorf("ForPath(%q) = %#v, want %#v", path, actual, expected)
		}
	}
}

func TestCompression_LevelActualIsClamped(t *testing.T) {
	if l := NewCompressionWithLevel(Gzip, 100).LevelActual(); l != 9 {
		t.Errorf("LevelActual() = %d, want 9", l)
	}
	if l := NewCompressionWithLevel(Gzip, -5).LevelActual(); l != 1 {
		t.Errorf("LevelActual() = %d, want 1", l)
	}
	if l := (Compression{Format: Gzip}).LevelActual(); l != 6 {
		t.Errorf("LevelActual() = %d, want 6", l)
	}
}

func TestCompression_RoundTrip(t *testing.T) {
	content := []byte("2014-01-20T14:25:25.050Z\n20140120T142525Z\n")
	for _, format := range AllCompressionFormats() {
		t.Run(format.String(), func(t *testing.T) {
			c := Compression{Format: format}
			var b bytes.Buffer
			w := c.NewWriter(&b)
			if _, err := w.Write(content); err != nil {
				t.Fatalf("Failed to write: %s", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Failed to close writer: %s", err)
			}
			r, err := c.NewReader(&b)
			if err != nil {
				t.Fatalf("Failed to create reader: %s", err)
			}
			actual, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("Failed to read: %s", err)
			}
			_ = r.Close()
			if !bytes.Equal(actual, content) {
				t.Errorf("Round trip changed content: %q != %q", actual, content)
			}
		})
	}
}
