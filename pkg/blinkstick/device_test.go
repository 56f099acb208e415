package blinkstick

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkstick/blinkstick-go/pkg/hid"
)

func newTestDevice(t *testing.T) (*Device, *hid.Mock) {
	t.Helper()
	mock := hid.NewMock()
	return New(mock, TypeBlinkStick), mock
}

func TestSetColourSingleLED(t *testing.T) {
	d, mock := newTestDevice(t)

	require.True(t, d.SetColour(0, 0, 255, 128, 0))
	require.Len(t, mock.Sent, 1)
	assert.Equal(t, []byte{0x01, 255, 128, 0}, mock.Sent[0])
}

func TestSetColourIndexed(t *testing.T) {
	d, mock := newTestDevice(t)

	require.True(t, d.SetColour(1, 5, 255, 128, 0))
	require.Len(t, mock.Sent, 1)
	assert.Equal(t, []byte{0x05, 1, 5, 255, 128, 0}, mock.Sent[0])
}

func TestOffMatchesSetColourBytes(t *testing.T) {
	pairs := []struct{ channel, index int }{
		{0, 0}, {0, 1}, {1, 0}, {2, 7},
	}
	for _, p := range pairs {
		d1, m1 := newTestDevice(t)
		d2, m2 := newTestDevice(t)

		require.True(t, d1.Off(p.channel, p.index))
		require.True(t, d2.SetColour(p.channel, p.index, 0, 0, 0))
		assert.Equal(t, m2.Sent, m1.Sent, "channel=%d index=%d", p.channel, p.index)
	}
}

func TestColourLegacyDecode(t *testing.T) {
	d, mock := newTestDevice(t)
	mock.Replies[0x01] = []byte{10, 20, 30}

	c := d.Colour(0)
	assert.Equal(t, Colour{R: 10, G: 20, B: 30}, c)
	assert.Equal(t, 1, mock.Gets)
}

func TestColourIndexedDecode(t *testing.T) {
	d, mock := newTestDevice(t)

	// LED 1 resolves to the 8-LED array report (0x06). Reply payload is
	// [channel, (G,R,B)*8]; LED 1 sits at payload offsets 4..6.
	payload := make([]byte, 25)
	payload[4], payload[5], payload[6] = 20, 10, 30
	mock.Replies[0x06] = payload

	c := d.Colour(1)
	assert.Equal(t, Colour{R: 10, G: 20, B: 30}, c)
}

func TestColourTransportFailure(t *testing.T) {
	d, mock := newTestDevice(t)
	mock.GetErr = errors.New("unplugged")

	assert.Equal(t, Colour{}, d.Colour(0))
	assert.Equal(t, Colour{}, d.Colour(3))
}

func TestLEDCountCached(t *testing.T) {
	d, mock := newTestDevice(t)
	mock.Replies[0x81] = []byte{5}

	assert.Equal(t, 5, d.LEDCount())
	assert.Equal(t, 5, d.LEDCount())
	assert.Equal(t, 1, mock.Gets, "second call must hit the cache")
}

func TestSetLEDCountSeedsCache(t *testing.T) {
	d, mock := newTestDevice(t)

	require.True(t, d.SetLEDCount(5))
	require.Len(t, mock.Sent, 1)
	assert.Equal(t, []byte{0x81, 5}, mock.Sent[0])

	assert.Equal(t, 5, d.LEDCount())
	assert.Equal(t, 0, mock.Gets, "count must come from the cache")
}

func TestSetLEDCountFailureLeavesCache(t *testing.T) {
	d, mock := newTestDevice(t)
	mock.SendErr = errors.New("unplugged")

	assert.False(t, d.SetLEDCount(5))

	mock.SendErr = nil
	mock.Replies[0x81] = []byte{8}
	assert.Equal(t, 8, d.LEDCount(), "failed set must not seed the cache")
}

func TestLEDCountFailureStillCaches(t *testing.T) {
	// A failed probe caches whatever is in the reply buffer (zero here).
	d, mock := newTestDevice(t)
	mock.GetErr = errors.New("unplugged")

	assert.Equal(t, 0, d.LEDCount())
	assert.Equal(t, 0, d.LEDCount())
	assert.Equal(t, 1, mock.Gets)
}

func TestSetMode(t *testing.T) {
	d, mock := newTestDevice(t)

	require.True(t, d.SetMode(ModeInverse))
	require.Len(t, mock.Sent, 1)
	assert.Equal(t, []byte{0x04, 1}, mock.Sent[0])
}

func TestModeProbeGoesOutAsSend(t *testing.T) {
	d, mock := newTestDevice(t)

	// The transport does not echo anything back, so the probe placeholder
	// survives and reads as unknown.
	assert.Equal(t, ModeUnknown, d.Mode())
	require.Len(t, mock.Sent, 1)
	assert.Equal(t, []byte{0x04, 0xFF}, mock.Sent[0])
	assert.Equal(t, 0, mock.Gets)
}

func TestModeTransportFailure(t *testing.T) {
	d, mock := newTestDevice(t)
	mock.SendErr = errors.New("unplugged")

	assert.Equal(t, ModeUnknown, d.Mode())
}

func TestFillExpandsToLEDCount(t *testing.T) {
	d, mock := newTestDevice(t)
	require.True(t, d.SetLEDCount(3))

	require.True(t, d.Fill(0, 255, 0, 0))
	require.Len(t, mock.Sent, 2)

	msg := mock.Sent[1]
	require.Len(t, msg, 26)
	assert.Equal(t, byte(0x06), msg[0])
	assert.Equal(t, byte(0), msg[1])
	for i := 0; i < 3; i++ {
		assert.Equal(t, []byte{0, 255, 0}, msg[2+i*3:5+i*3], "LED %d", i)
	}
	for _, b := range msg[11:] {
		assert.Equal(t, byte(0), b)
	}
}

func TestSetColoursSelectsReportFromLEDCount(t *testing.T) {
	d, mock := newTestDevice(t)
	require.True(t, d.SetLEDCount(16))

	require.True(t, d.SetColours(1, []Colour{{R: 1, G: 2, B: 3}}))
	msg := mock.Sent[len(mock.Sent)-1]
	require.Len(t, msg, 50)
	assert.Equal(t, byte(0x07), msg[0])
	assert.Equal(t, byte(1), msg[1])
	assert.Equal(t, []byte{2, 1, 3}, msg[2:5])
}

func TestUnboundDevice(t *testing.T) {
	d := New(nil, TypeUnknown)

	assert.False(t, d.IsValid())
	assert.False(t, d.SetMode(ModeNormal))
	assert.Equal(t, ModeUnknown, d.Mode())
	assert.False(t, d.SetColour(0, 0, 1, 2, 3))
	assert.False(t, d.SetColours(0, []Colour{{R: 1}}))
	assert.Equal(t, Colour{}, d.Colour(0))
	assert.False(t, d.Off(0, 0))
	assert.Equal(t, 0, d.LEDCount())
	assert.False(t, d.SetLEDCount(8))
	assert.NoError(t, d.Close())
}

func TestTypeFromSerial(t *testing.T) {
	tests := []struct {
		serial string
		want   DeviceType
	}{
		{"BS012345-1.0", TypeBlinkStick},
		{"BS012345-2.1", TypePro},
		{"BS999999-3.0", TypeSquare},
		{"BS012345-9.0", TypeUnknown},
		{"BS012345", TypeUnknown},
		{"", TypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, typeFromSerial(tt.serial), "serial %q", tt.serial)
	}
}
