//go:build audio_stub

package output

// Device is a no-op in builds without a sound card backend.
type Device struct{}

func Open(g *Graph) (*Device, error) { return &Device{}, nil }
func (d *Device) Close() error       { return nil }
