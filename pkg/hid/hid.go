// Package hid abstracts feature-report I/O on an already-open HID device.
package hid

// Device is an opened HID handle capable of feature-report I/O. Both calls
// follow the hidapi convention: p[0] carries the report ID on the way in,
// and GetFeature fills the rest of p in place.
type Device interface {
	SendFeature(p []byte) (int, error)
	GetFeature(p []byte) (int, error)
	Close() error
}

// Info represents a HID device descriptor.
type Info struct {
	Path         string
	VendorID     uint16
	ProductID    uint16
	Serial       string
	Product      string
	Manufacturer string
	Release      uint16
}

// Manager enumerates and opens HID devices.
type Manager interface {
	List() ([]Info, error)
	Open(info Info) (Device, error)
	OpenVIDPID(vendorID, productID uint16) (Device, error)
}

// NewManager returns the build-selected HID manager.
func NewManager() (Manager, error) {
	return newManager()
}
