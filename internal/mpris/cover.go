package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// coverNames lists common cover filenames in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png", "front.jpeg",
}

var coverExts = []string{".jpg", ".png", ".jpeg"}

// FindAlbumArt looks for cover art next to the audiobook. An image named
// after the book ("book.jpg" for "book.m4b") wins over the generic names.
// Returns the path to the art file, or empty string if not found.
func FindAlbumArt(bookPath string) string {
	dir := filepath.Dir(bookPath)
	stem := strings.TrimSuffix(filepath.Base(bookPath), filepath.Ext(bookPath))

	candidates := make([]string, 0, len(coverExts)+len(coverNames))
	for _, ext := range coverExts {
		candidates = append(candidates, stem+ext)
	}
	candidates = append(candidates, coverNames...)

	for _, name := range candidates {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
