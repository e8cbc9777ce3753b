package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	LastFile() (string, error)
	SetLastFile(path string) error
	RecordPosition(e Entry) error
	Recent(limit int) ([]Entry, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
