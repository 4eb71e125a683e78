package monitoring

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDecode(t *testing.T) {
	before := testutil.ToFloat64(decodeCount.WithLabelValues(string(CLI)))
	beforeFailed := testutil.ToFloat64(decodeFailedCount.WithLabelValues(string(CLI)))
	RecordDecode(CLI, nil)
	RecordDecode(CLI, nil)
	RecordDecode(CLI, errors.New("bad"))
	if actual := testutil.ToFloat64(decodeCount.WithLabelValues(string(CLI))); actual != before+2 {
		t.Errorf("decode count = %f, want %f", actual, before+2)
	}
	if actual := testutil.ToFloat64(decodeFailedCount.WithLabelValues(string(CLI))); actual != beforeFailed+1 {
		t.Errorf("decode failed count = %f, want %f", actual, beforeFailed+1)
	}
}

func TestRecordEncode(t *testing.T) {
	before := testutil.ToFloat64(encodeFailedCount.WithLabelValues(string(HTTP)))
	RecordEncode(HTTP, errors.New("bad"))
	if actual := testutil.ToFloat64(encodeFailedCount.WithLabelValues(string(HTTP))); actual != before+1 {
		t.Errorf("encode failed count = %f, want %f", actual, before+1)
	}
}
