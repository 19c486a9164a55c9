package timeconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUnix(t *testing.T) {
	ts, err := ToUnix("2021-01-02 10:00:00", "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, int64(1609578000), ts)
}

func TestToUnix_DefaultZone(t *testing.T) {
	ts, err := ToUnix("2021-01-02 10:00:00", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1609578000), ts)
}

func TestToUnix_BadInput(t *testing.T) {
	_, err := ToUnix("02.01.2021", "Europe/Berlin")
	assert.Error(t, err)

	_, err = ToUnix("2021-01-02 10:00:00", "Mars/Olympus")
	assert.Error(t, err)
}

func TestFromUnix(t *testing.T) {
	s, err := FromUnix(1609578000, "Europe/Berlin")
	require.NoError(t, err)
	assert.Equal(t, "2021-01-02 10:00:00", s)
}

func TestRoundTrip(t *testing.T) {
	const ts = int64(1704067199)
	s, err := FromUnix(ts, "UTC")
	require.NoError(t, err)
	back, err := ToUnix(s, "UTC")
	require.NoError(t, err)
	assert.Equal(t, ts, back)
}
