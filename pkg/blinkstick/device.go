package blinkstick

import (
	"fmt"
	"log/slog"

	"github.com/blinkstick/blinkstick-go/internal/report"
	"github.com/blinkstick/blinkstick-go/pkg/hid"
)

// Device is one opened BlinkStick. It borrows its transport handle: the
// handle must stay open for as long as the Device is used, and nothing here
// closes it except Close.
//
// A Device is not safe for concurrent use. The LED-count cache is plain
// state; callers driving one device from several goroutines must serialize
// the calls themselves.
//
// Mutating operations report success as a bool and reading operations fall
// back to a safe default (ModeUnknown, black, a zero count) on failure.
// Transport errors never surface past this type; they are logged and
// swallowed.
type Device struct {
	handle hid.Device
	typ    DeviceType
	serial string

	countKnown bool
	count      byte
}

// New wraps an already-open transport handle. The handle may be nil, in
// which case every operation fails until a real one is supplied.
func New(handle hid.Device, typ DeviceType) *Device {
	return &Device{handle: handle, typ: typ}
}

// Type returns the hardware generation detected at enumeration time.
func (d *Device) Type() DeviceType { return d.typ }

// IsValid reports whether the device has a usable transport handle.
func (d *Device) IsValid() bool { return d.handle != nil }

// Describe returns a short human-readable identifier.
func (d *Device) Describe() string {
	if d.serial == "" {
		return d.typ.String()
	}
	return fmt.Sprintf("%s (%s)", d.typ, d.serial)
}

// Close releases the underlying handle.
func (d *Device) Close() error {
	if d.handle == nil {
		return nil
	}
	return d.handle.Close()
}

// SetMode switches the device operating mode.
func (d *Device) SetMode(mode Mode) bool {
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return false
	}
	if _, err := d.handle.SendFeature(report.ModeSet(byte(mode))); err != nil {
		slog.Warn("blinkstick: writing mode failed", slog.Any("error", err))
		return false
	}
	return true
}

// Mode reads the current operating mode, or ModeUnknown on failure.
// The probe goes out on the send path rather than as a feature-report get;
// the firmware treats the 0x04 report as bidirectional.
func (d *Device) Mode() Mode {
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return ModeUnknown
	}
	buf := report.ModeProbe()
	if _, err := d.handle.SendFeature(buf); err != nil {
		slog.Warn("blinkstick: reading mode failed", slog.Any("error", err))
		return ModeUnknown
	}
	return Mode(int8(report.ModeFromReply(buf)))
}

// SetColour sets one LED. Colour values are truncated to 8 bits.
func (d *Device) SetColour(channel, index, red, green, blue int) bool {
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return false
	}
	msg := report.Control(channel, index, red, green, blue)
	if _, err := d.handle.SendFeature(msg); err != nil {
		slog.Warn("blinkstick: writing colour failed", slog.Any("error", err))
		return false
	}
	return true
}

// Fill sets every LED on a channel to the same colour.
func (d *Device) Fill(channel, red, green, blue int) bool {
	total := d.LEDCount()
	colours := make([]Colour, total)
	for i := range colours {
		colours[i] = Colour{R: byte(red), G: byte(green), B: byte(blue)}
	}
	return d.SetColours(channel, colours)
}

// SetColours writes a whole channel in one report. Colours beyond the
// device's capacity are dropped; missing trailing entries turn those LEDs
// off.
func (d *Device) SetColours(channel int, colours []Colour) bool {
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return false
	}
	sel := report.Select(d.LEDCount() * 3)
	msg := report.ColourArray(channel, sel, colours)
	if _, err := d.handle.SendFeature(msg); err != nil {
		slog.Warn("blinkstick: writing colours failed", slog.Any("error", err))
		return false
	}
	return true
}

// Colour reads one LED back from the device. On any transport failure it
// returns black rather than an error.
func (d *Device) Colour(index int) Colour {
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return Colour{}
	}

	if index == 0 {
		buf := report.ColourProbeLegacy()
		if _, err := d.handle.GetFeature(buf); err != nil {
			slog.Warn("blinkstick: reading colour failed", slog.Any("error", err))
			return Colour{}
		}
		return report.ColourFromLegacyReply(buf)
	}

	sel := report.Select((index + 1) * 3)
	buf := report.ColourProbe(sel)
	if _, err := d.handle.GetFeature(buf); err != nil {
		slog.Warn("blinkstick: reading colour failed", slog.Any("error", err))
		return Colour{}
	}
	return report.ColourFromReply(buf, index)
}

// Off turns one LED off.
func (d *Device) Off(channel, index int) bool {
	return d.SetColour(channel, index, 0, 0, 0)
}

// AllOff turns off every LED on channel 0.
func (d *Device) AllOff() bool {
	return d.Fill(0, 0, 0, 0)
}

// LEDCount returns the number of addressable LEDs. The first call asks the
// device and caches the answer; later calls stay off the wire until
// SetLEDCount stores a new value. A failed probe is logged but still caches
// whatever landed in the reply buffer.
func (d *Device) LEDCount() int {
	if d.countKnown {
		return int(d.count)
	}
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return 0
	}

	buf := report.CountProbe()
	if _, err := d.handle.GetFeature(buf); err != nil {
		slog.Warn("blinkstick: reading led count failed", slog.Any("error", err))
	}
	d.count = report.CountFromReply(buf)
	d.countKnown = true
	return int(d.count)
}

// SetLEDCount stores a new LED count on the device. The cache is updated
// only when the write succeeds.
func (d *Device) SetLEDCount(count byte) bool {
	if d.handle == nil {
		slog.Warn("blinkstick: no open handle")
		return false
	}
	if _, err := d.handle.SendFeature(report.CountSet(count)); err != nil {
		slog.Warn("blinkstick: writing led count failed", slog.Any("error", err))
		return false
	}
	d.count = count
	d.countKnown = true
	return true
}
