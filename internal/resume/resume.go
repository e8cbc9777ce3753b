// Package resume stores the resume position of a file next to it, in a
// plain-text file holding the elapsed seconds.
package resume

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
)

// Point is a stored resume position.
type Point struct {
	Position time.Duration
	SavedAt  time.Time
}

// Path returns the resume file of audioPath.
func Path(audioPath string) string {
	return audioPath + ".txt"
}

// Format renders pos as seconds without trailing zeros: 37s is "37".
func Format(pos time.Duration) string {
	return strconv.FormatFloat(pos.Seconds(), 'f', -1, 64)
}

// Parse reads a seconds value as written by Format.
func Parse(s string) (time.Duration, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("parse resume position: %w", err)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse resume position: invalid value %q", s)
	}
	return time.Duration(v * float64(time.Second)), nil
}

// Store reads and writes resume files. Margin is subtracted from every
// saved position, flooring at zero.
type Store struct {
	Margin time.Duration
}

// Save atomically writes pos minus the margin for audioPath.
func (s Store) Save(audioPath string, pos time.Duration) error {
	pos = max(pos-s.Margin, 0)
	if err := renameio.WriteFile(Path(audioPath), []byte(Format(pos)), 0o644); err != nil {
		return fmt.Errorf("save resume position: %w", err)
	}
	return nil
}

// Load returns the stored position for audioPath. A missing file yields a
// zero Point and no error.
func (s Store) Load(audioPath string) (Point, error) {
	path := Path(audioPath)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Point{}, nil
	}
	if err != nil {
		return Point{}, fmt.Errorf("read resume file: %w", err)
	}
	pos, err := Parse(string(data))
	if err != nil {
		return Point{}, err
	}
	p := Point{Position: pos}
	if info, err := os.Stat(path); err == nil {
		p.SavedAt = info.ModTime()
	}
	return p, nil
}
