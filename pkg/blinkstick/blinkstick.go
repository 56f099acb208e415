// Package blinkstick drives BlinkStick USB LED controllers over HID
// feature reports.
package blinkstick

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/blinkstick/blinkstick-go/internal/report"
	"github.com/blinkstick/blinkstick-go/pkg/hid"
)

const (
	VendorID  uint16 = 0x20A0
	ProductID uint16 = 0x41E5
)

// Colour is one LED's colour.
type Colour = report.Colour

// Mode is the device operating mode. ModeUnknown marks a mode that could
// not be read.
type Mode int8

const (
	ModeUnknown Mode = -1
	ModeNormal  Mode = 0
	ModeInverse Mode = 1
	ModeWS2812  Mode = 2
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInverse:
		return "inverse"
	case ModeWS2812:
		return "ws2812"
	default:
		return "unknown"
	}
}

// DeviceType identifies the hardware generation.
type DeviceType int

const (
	TypeUnknown DeviceType = iota
	TypeBlinkStick
	TypePro
	TypeSquare
)

func (t DeviceType) String() string {
	switch t {
	case TypeBlinkStick:
		return "BlinkStick"
	case TypePro:
		return "BlinkStick Pro"
	case TypeSquare:
		return "BlinkStick Square"
	default:
		return "unknown"
	}
}

// typeFromSerial derives the hardware generation from serials of the form
// "BS012345-2.0"; the major version after the dash identifies it.
func typeFromSerial(serial string) DeviceType {
	i := strings.LastIndexByte(serial, '-')
	if i < 0 || i+1 >= len(serial) {
		return TypeUnknown
	}
	switch serial[i+1] {
	case '1':
		return TypeBlinkStick
	case '2':
		return TypePro
	case '3':
		return TypeSquare
	default:
		return TypeUnknown
	}
}

// FindAll opens every BlinkStick on the bus. Devices that cannot be opened
// are logged and skipped.
func FindAll() ([]*Device, error) {
	mgr, err := hid.NewManager()
	if err != nil {
		return nil, fmt.Errorf("hid manager: %w", err)
	}

	infos, err := mgr.List()
	if err != nil {
		return nil, fmt.Errorf("hid enumerate: %w", err)
	}

	var devices []*Device
	for _, info := range infos {
		if info.VendorID != VendorID || info.ProductID != ProductID {
			continue
		}
		h, err := mgr.Open(info)
		if err != nil {
			slog.Warn("cannot open device", slog.String("path", info.Path), slog.Any("error", err))
			continue
		}
		d := New(h, typeFromSerial(info.Serial))
		d.serial = info.Serial
		devices = append(devices, d)
	}
	return devices, nil
}

// Find opens the first BlinkStick on the bus.
func Find() (*Device, error) {
	devices, err := FindAll()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no BlinkStick found (VID:0x%04X PID:0x%04X)", VendorID, ProductID)
	}
	for _, d := range devices[1:] {
		d.Close()
	}
	return devices[0], nil
}
