package decode

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var local = time.FixedZone("ACST", 9*3600+30*60)

func localDate(year int, month time.Month, day, hour, minute, second, millisecond int) time.Time {
	return time.Date(year, month, day, hour, minute, second, millisecond*int(time.Millisecond), local)
}

func utcDate(year int, month time.Month, day, hour, minute, second, millisecond int) time.Time {
	return time.Date(year, month, day, hour, minute, second, millisecond*int(time.Millisecond), time.UTC)
}

func TestDecode(t *testing.T) {
	cases := []struct {
		input    string
		expected time.Time
	}{
		{"2014-01-20T14:25:25.050", localDate(2014, 1, 20, 14, 25, 25, 50)},
		{"2014-01-20T14:25:25", localDate(2014, 1, 20, 14, 25, 25, 0)},
		{"2014-01-20T14:25", localDate(2014, 1, 20, 14, 25, 0, 0)},
		{"2014-01-20T14", localDate(2014, 1, 20, 14, 0, 0, 0)},
		{"2014-01-20", localDate(2014, 1, 20, 0, 0, 0, 0)},
		{"2014-01", localDate(2014, 1, 1, 0, 0, 0, 0)},
		{"2014", localDate(2014, 1, 1, 0, 0, 0, 0)},
		{"20140120T14:25:25", localDate(2014, 1, 20, 14, 25, 25, 0)},
		{"20140120T142525", localDate(2014, 1, 20, 14, 25, 25, 0)},
		{"20140120T142525.050", localDate(2014, 1, 20, 14, 25, 25, 50)},
		{"20140120T1425", localDate(2014, 1, 20, 14, 25, 0, 0)},
		{"20140120", localDate(2014, 1, 20, 0, 0, 0, 0)},
		{"2014-01-20T142525", localDate(2014, 1, 20, 14, 25, 25, 0)},
		{"2014-01-20 14:25:25", localDate(2014, 1, 20, 14, 25, 25, 0)},
		{"2014-01-20t14:25:25", localDate(2014, 1, 20, 14, 25, 25, 0)},
		{"2014-01-20T14:25:25.050Z", utcDate(2014, 1, 20, 14, 25, 25, 50)},
		{"2014-01-20T14:25:25Z", utcDate(2014, 1, 20, 14, 25, 25, 0)},
		{"2014-01-20T14Z", utcDate(2014, 1, 20, 14, 0, 0, 0)},
		{"20140120T142525z", utcDate(2014, 1, 20, 14, 25, 25, 0)},
		{"2014-01-20T14:25:25.000+09:30", utcDate(2014, 1, 20, 4, 55, 25, 0)},
		{"2014-01-20T14:25:25.000+0930", utcDate(2014, 1, 20, 4, 55, 25, 0)},
		{"2014-01-20T14:25:25.000+09", utcDate(2014, 1, 20, 5, 25, 25, 0)},
		{"2014-01-20T14:25:25-05:00", utcDate(2014, 1, 20, 19, 25, 25, 0)},
		{"20140120T142525-0330", utcDate(2014, 1, 20, 17, 55, 25, 0)},
		{"2014-01-20T00:30+01:00", utcDate(2014, 1, 19, 23, 30, 0, 0)},
		{"2016-02-29", localDate(2016, 2, 29, 0, 0, 0, 0)},
	}
	d := Decoder{Location: local}
	for _, c := range cases {
		t.Run(c.input, func(t *testing.T) {
			actual, err := d.Decode(c.input)
			require.NoError(t, err)
			assert.True(t, c.expected.Equal(actual), "expected %s, got %s", c.expected, actual)
		})
	}
}

func TestDecode_ExplicitOffsetIsUTC(t *testing.T) {
	actual, err := Decoder{Location: local}.Decode("2014-01-20T14:25:25+09:30")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, actual.Location())
}

func TestDecode_NoOffsetUsesLocation(t *testing.T) {
	actual, err := Decoder{Location: local}.Decode("2014-01-20T14:25:25")
	require.NoError(t, err)
	assert.Equal(t, local, actual.Location())

	actual, err = Decoder{}.Decode("2014-01-20T14:25:25")
	require.NoError(t, err)
	assert.Equal(t, time.Local, actual.Location())
}

func TestDecode_Malformed(t *testing.T) {
	cases := []string{
		"",
		"not-a-date",
		"201",
		"201401",
		"2014-0120",
		"201401-20",
		"2014-1-20",
		"2014-13-01",
		"2014-00-01",
		"2014-02-29",
		"2014-01-32",
		"2014-01-00",
		"2014-01-20T",
		"2014-01-20X14:25",
		"2014-01-20T24:00",
		"2014-01-20T14:60",
		"2014-01-20T14:25:60",
		"2014-01-20T14:2525",
		"2014-01-20T1425:25",
		"2014-01-20T14:25:25.05",
		"2014-01-20T14:25:25.0500",
		"2014-01-20T14:25.050",
		"2014-01-20T14:25:25.",
		"2014-01-20Z",
		"2014-01-20T14:25:25+9",
		"2014-01-20T14:25:25+09:3",
		"2014-01-20T14:25:25+24:00",
		"2014-01-20T14:25:25+09:60",
		"2014-01-20T14:25:25+09:30Z",
		"2014-01-20T14:25:25ZZ",
		"2014-01-20T14:25:25 ",
		" 2014-01-20",
		"2014-01-20T14:25:25-",
		"２０１４-01-20",
	}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			_, err := Decoder{Location: local}.Decode(c)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("2014-01-20T14:25:25.050-03:30")
	require.NoError(t, err)
	assert.Equal(t, Components{
		Year:        2014,
		Month:       1,
		Day:         20,
		Hour:        14,
		Minute:      25,
		Second:      25,
		Millisecond: 50,
		Offset:      &Offset{Sign: -1, Hours: 3, Minutes: 30},
	}, c)

	c, err = Parse("20140120")
	require.NoError(t, err)
	assert.Equal(t, Components{Year: 2014, Month: 1, Day: 20}, c)
}

func TestParse_ErrorMentionsInput(t *testing.T) {
	_, err := Parse("2014-13-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"2014-13-01"`)
	assert.Contains(t, err.Error(), "month 13")
}

func TestComponents_Instant(t *testing.T) {
	c := Components{Year: 2014, Month: 1, Day: 20, Hour: 14, Minute: 25, Second: 25}
	assert.True(t, localDate(2014, 1, 20, 14, 25, 25, 0).Equal(c.Instant(local)))

	c.Offset = &Offset{Sign: 1, Hours: 9, Minutes: 30}
	assert.True(t, utcDate(2014, 1, 20, 4, 55, 25, 0).Equal(c.Instant(local)))
	assert.True(t, c.Instant(local).Equal(c.Instant(time.UTC)))
}

func TestOffset_Duration(t *testing.T) {
	assert.Equal(t, 9*time.Hour+30*time.Minute, Offset{Sign: 1, Hours: 9, Minutes: 30}.Duration())
	assert.Equal(t, -(3*time.Hour + 30*time.Minute), Offset{Sign: -1, Hours: 3, Minutes: 30}.Duration())
	assert.Equal(t, time.Duration(0), Offset{Sign: 1}.Duration())
}
