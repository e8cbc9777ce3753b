//go:build !linux

package mpris

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ func(Transport)) (*Adapter, error) {
	return &Adapter{}, nil
}

// SetMetadata is a no-op on non-Linux platforms.
func (a *Adapter) SetMetadata(_ Metadata) error { return nil }

// SetPlayback is a no-op on non-Linux platforms.
func (a *Adapter) SetPlayback(_ Playback) error { return nil }

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
