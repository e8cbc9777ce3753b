// Package media recognises audiobook files and reads their tags.
package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Supported file extensions.
const (
	ExtM4B  = ".m4b"
	ExtMP3  = ".mp3"
	ExtM4A  = ".m4a"
	ExtAAC  = ".aac"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
	ExtFLAC = ".flac"
)

var audioExtensions = map[string]bool{
	ExtM4B:  true,
	ExtMP3:  true,
	ExtM4A:  true,
	ExtAAC:  true,
	ExtOGG:  true,
	ExtOPUS: true,
	ExtFLAC: true,
}

// ErrNotAudio is returned for paths that are not playable audio files.
var ErrNotAudio = errors.New("not an audio file")

// IsAudioExtension reports whether path has a supported extension.
func IsAudioExtension(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Check verifies that path is a regular file with a supported extension.
func Check(path string) error {
	if !IsAudioExtension(path) {
		return fmt.Errorf("%s: %w", path, ErrNotAudio)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotAudio)
	}
	return nil
}

// Info holds the tags used for history and display before the engine
// reports its own metadata.
type Info struct {
	Path     string
	Title    string
	Artist   string
	Album    string
	Format   tag.Format
	FileType tag.FileType
}

// Probe reads the tags of path. Files without tags still yield an Info
// titled after the file name.
func Probe(path string) (Info, error) {
	info := Info{Path: path, Title: fallbackTitle(path)}

	f, err := os.Open(path)
	if err != nil {
		return info, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return info, nil
	}
	if err != nil {
		return info, fmt.Errorf("read tags: %w", err)
	}

	if m.Title() != "" {
		info.Title = m.Title()
	}
	info.Artist = m.Artist()
	if info.Artist == "" {
		info.Artist = m.AlbumArtist()
	}
	info.Album = m.Album()
	info.Format = m.Format()
	info.FileType = m.FileType()
	return info, nil
}

func fallbackTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
