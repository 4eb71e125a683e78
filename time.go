package iso8601

import (
	"encoding/json"
	"time"
)

// Time is a time.Time that marshals to JSON and YAML as an ISO 8601 string
// using the process-wide options, and unmarshals from any string Decode
// accepts.
type Time struct {
	time.Time
}

func (t Time) String() string {
	s, err := Encode(t.Time)
	if err != nil {
		return t.Time.String()
	}
	return s
}

func (t Time) MarshalJSON() ([]byte, error) {
	s, err := Encode(t.Time)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	decoded, err := Decode(s)
	if err != nil {
		return err
	}
	*t = Time{decoded}
	return nil
}

func (t Time) MarshalYAML() (interface{}, error) {
	return Encode(t.Time)
}

func (t *Time) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	decoded, err := Decode(s)
	if err != nil {
		return err
	}
	*t = Time{decoded}
	return nil
}
