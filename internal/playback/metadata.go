package playback

import "time"

// NoChapter marks the absence of a current chapter.
const NoChapter = -1

// Chapter is a named start offset inside the file.
type Chapter struct {
	Title string
	Start time.Duration
}

// ChapterSpan is a chapter with its derived end.
type ChapterSpan struct {
	Chapter
	End time.Duration
}

// Metadata describes the loaded file.
// Artist and Album are empty when the file does not carry them.
type Metadata struct {
	Title    string
	Artist   string
	Album    string
	Duration time.Duration
	Volume   int

	// ChapterIndex is NoChapter when the file has no chapters.
	ChapterIndex int
	ChapterTitle string
	Chapters     []Chapter
}

// HasChapter reports whether the current chapter index points into Chapters.
func (m Metadata) HasChapter() bool {
	_, ok := ChapterAt(m.Chapters, m.ChapterIndex)
	return ok
}

// ChapterAt returns the chapter at index i.
func ChapterAt(chapters []Chapter, i int) (Chapter, bool) {
	if i < 0 || i >= len(chapters) {
		return Chapter{}, false
	}
	return chapters[i], true
}

// Spans derives each chapter's end: the start of the next chapter, or
// duration for the last one.
func Spans(chapters []Chapter, duration time.Duration) []ChapterSpan {
	spans := make([]ChapterSpan, len(chapters))
	for i, c := range chapters {
		end := duration
		if i+1 < len(chapters) {
			end = chapters[i+1].Start
		}
		spans[i] = ChapterSpan{Chapter: c, End: end}
	}
	return spans
}
