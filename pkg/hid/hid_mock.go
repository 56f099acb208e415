package hid

import "errors"

// Mock is an in-memory Device for tests. Sent feature reports are recorded
// in order; GetFeature replies are scripted per report ID.
type Mock struct {
	Sent    [][]byte
	Replies map[byte][]byte // reply payload by report ID, copied after p[0]
	Gets    int

	SendErr error
	GetErr  error
}

func NewMock() *Mock {
	return &Mock{Replies: make(map[byte][]byte)}
}

func (m *Mock) SendFeature(p []byte) (int, error) {
	if m.SendErr != nil {
		return -1, m.SendErr
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	m.Sent = append(m.Sent, cp)
	return len(p), nil
}

func (m *Mock) GetFeature(p []byte) (int, error) {
	m.Gets++
	if m.GetErr != nil {
		return -1, m.GetErr
	}
	if len(p) == 0 {
		return 0, errors.New("empty report buffer")
	}
	reply, ok := m.Replies[p[0]]
	if !ok {
		return len(p), nil
	}
	return copy(p[1:], reply) + 1, nil
}

func (m *Mock) Close() error { return nil }
