package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Source identifies where a conversion was requested.
type Source string

const (
	CLI     Source = "cli"
	HTTP    Source = "http"
	Convert Source = "convert"
)

var encodeCount *prometheus.CounterVec
var encodeFailedCount *prometheus.CounterVec
var decodeCount *prometheus.CounterVec
var decodeFailedCount *prometheus.CounterVec

func init() {
	encodeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso8601_encode_count",
			Help: "Number of instants encoded",
		},
		[]string{"source"},
	)
	encodeFailedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso8601_encode_failed_count",
			Help: "Number of instants that could not be encoded",
		},
		[]string{"source"},
	)
	decodeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso8601_decode_count",
			Help: "Number of strings decoded",
		},
		[]string{"source"},
	)
	decodeFailedCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "iso8601_decode_failed_count",
			Help: "Number of strings that could not be decoded",
		},
		[]string{"source"},
	)
}

func RecordEncode(source Source, err error) {
	if err != nil {
		encodeFailedCount.WithLabelValues(string(source)).Inc()
	} else {
		encodeCount.WithLabelValues(string(source)).Inc()
	}
}

func RecordDecode(source Source, err error) {
	if err != nil {
		decodeFailedCount.WithLabelValues(string(source)).Inc()
	} else {
		decodeCount.WithLabelValues(string(source)).Inc()
	}
}
