// Package report builds and parses the feature reports understood by the
// BlinkStick family of USB LED controllers. Every report starts with an ID
// byte that selects the payload layout; the rest is fixed-offset data.
package report

const (
	// Single-LED set, [id, R, G, B]. The only colour report the original
	// one-LED sticks understand.
	LegacyColourID byte = 0x01

	// Per-LED set on multi-channel devices, [id, channel, index, R, G, B].
	ExtendedColourID byte = 0x05

	ModeID  byte = 0x04
	CountID byte = 0x81

	// Whole-channel colour arrays, one report ID per capacity tier.
	// 0x09 and 0x0A both carry 64 LEDs over different wire formats.
	ColourArray8ID   byte = 0x06
	ColourArray16ID  byte = 0x07
	ColourArray32ID  byte = 0x08
	ColourArray64ID  byte = 0x09
	ColourArray64XID byte = 0x0A

	// A mode probe goes out carrying this placeholder value.
	modeUnknown byte = 0xFF
)

// Colour is a single LED's colour. Values go on the wire as-is.
type Colour struct {
	R byte
	G byte
	B byte
}

// Control builds the report that sets one LED. LED 0 on channel 0 uses the
// short legacy layout; everything else uses the extended layout. Colour
// values are truncated to their low 8 bits. Channel and index are not
// range-checked here, the firmware rejects values it cannot address.
func Control(channel, index, red, green, blue int) []byte {
	if index == 0 && channel == 0 {
		return []byte{LegacyColourID, byte(red), byte(green), byte(blue)}
	}
	return []byte{ExtendedColourID, byte(channel), byte(index), byte(red), byte(green), byte(blue)}
}

// ModeSet builds the report that switches the device operating mode.
func ModeSet(mode byte) []byte {
	return []byte{ModeID, mode}
}

// ModeProbe builds the buffer used to ask for the current mode. The device
// answers in the same slot the placeholder was sent in.
func ModeProbe() []byte {
	return ModeSet(modeUnknown)
}

// ModeFromReply extracts the mode byte from a mode report buffer.
func ModeFromReply(buf []byte) byte {
	return buf[1]
}

// CountSet builds the report that stores a new LED count on the device.
func CountSet(count byte) []byte {
	return []byte{CountID, count}
}

// CountProbe builds the buffer used to read the LED count back.
func CountProbe() []byte {
	return CountSet(0)
}

// CountFromReply extracts the LED count from a count report buffer.
func CountFromReply(buf []byte) byte {
	return buf[1]
}

// Selection pairs a colour-array report ID with the LED capacity it carries.
type Selection struct {
	ID      byte
	MaxLEDs int
}

// Select maps a number of channel bytes (LED count * 3) onto the smallest
// array report tier that holds them. Anything beyond the largest tier uses
// the largest tier rather than failing.
func Select(totalChannelBytes int) Selection {
	switch {
	case totalChannelBytes <= 8*3:
		return Selection{ID: ColourArray8ID, MaxLEDs: 8}
	case totalChannelBytes <= 16*3:
		return Selection{ID: ColourArray16ID, MaxLEDs: 16}
	case totalChannelBytes <= 32*3:
		return Selection{ID: ColourArray32ID, MaxLEDs: 32}
	case totalChannelBytes <= 64*3:
		return Selection{ID: ColourArray64ID, MaxLEDs: 64}
	default:
		return Selection{ID: ColourArray64XID, MaxLEDs: 64}
	}
}

// ColourArray builds a whole-channel colour report. The firmware stores
// array colours green-first, so each triplet goes out as G,R,B. At most
// sel.MaxLEDs colours are consumed; slots past the supplied colours stay
// zero, which turns those LEDs off.
func ColourArray(channel int, sel Selection, colours []Colour) []byte {
	msg := make([]byte, sel.MaxLEDs*3+2)
	msg[0] = sel.ID
	msg[1] = byte(channel)

	n := len(colours)
	if n > sel.MaxLEDs {
		n = sel.MaxLEDs
	}

	idx := 2
	for i := 0; i < n; i++ {
		msg[idx] = colours[i].G
		msg[idx+1] = colours[i].R
		msg[idx+2] = colours[i].B
		idx += 3
	}
	return msg
}

// ColourProbeLegacy builds the buffer handed to the transport when reading
// LED 0 on a single-LED device.
func ColourProbeLegacy() []byte {
	buf := make([]byte, 33)
	buf[0] = LegacyColourID
	return buf
}

// ColourFromLegacyReply extracts LED 0's colour from a legacy reply.
// Unlike the array reports this layout is plain R,G,B from offset 1.
func ColourFromLegacyReply(buf []byte) Colour {
	return Colour{R: buf[1], G: buf[2], B: buf[3]}
}

// ColourProbe builds the buffer handed to the transport when reading a
// colour array back.
func ColourProbe(sel Selection) []byte {
	buf := make([]byte, sel.MaxLEDs*3+2)
	buf[0] = sel.ID
	return buf
}

// ColourFromReply picks one LED out of a colour-array reply. The offsets
// mirror the G,R,B order used on the encode side.
func ColourFromReply(buf []byte, index int) Colour {
	return Colour{
		R: buf[index*3+3],
		G: buf[index*3+2],
		B: buf[index*3+4],
	}
}
