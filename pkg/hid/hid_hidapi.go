//go:build hidapi

package hid

import (
	"fmt"

	"github.com/sstallion/go-hid"
)

// hidapi-backed manager. Opt-in via the hidapi build tag; needs cgo but
// matches the library the BlinkStick firmware has been exercised against
// the longest.

type hidapiManager struct{}

func newManager() (Manager, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hid init: %w", err)
	}
	return &hidapiManager{}, nil
}

func (m *hidapiManager) List() ([]Info, error) {
	var out []Info
	err := hid.Enumerate(hid.VendorIDAny, hid.ProductIDAny, func(info *hid.DeviceInfo) error {
		out = append(out, Info{
			Path:         info.Path,
			VendorID:     info.VendorID,
			ProductID:    info.ProductID,
			Serial:       info.SerialNbr,
			Product:      info.ProductStr,
			Manufacturer: info.MfrStr,
			Release:      info.ReleaseNbr,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *hidapiManager) Open(info Info) (Device, error) {
	d, err := hid.OpenPath(info.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", info.Path, err)
	}
	return &hidapiDevice{d}, nil
}

func (m *hidapiManager) OpenVIDPID(vendorID, productID uint16) (Device, error) {
	d, err := hid.OpenFirst(vendorID, productID)
	if err != nil {
		return nil, fmt.Errorf("open %04x:%04x: %w", vendorID, productID, err)
	}
	return &hidapiDevice{d}, nil
}

type hidapiDevice struct{ d *hid.Device }

func (d *hidapiDevice) SendFeature(p []byte) (int, error) { return d.d.SendFeatureReport(p) }
func (d *hidapiDevice) GetFeature(p []byte) (int, error)  { return d.d.GetFeatureReport(p) }
func (d *hidapiDevice) Close() error                      { return d.d.Close() }
