package notify

import "fmt"

// ChapterTimeout is how long a chapter announcement stays visible, in ms.
const ChapterTimeout int32 = 5000

// Chapters announces chapter changes. Each announcement replaces the
// previous one instead of stacking.
type Chapters struct {
	notifier Notifier
	book     string
	icon     string
	lastID   uint32
}

// NewChapters creates an announcer sending through n.
func NewChapters(n Notifier) *Chapters {
	return &Chapters{notifier: n}
}

// SetBook sets the title and icon shown with later announcements.
func (c *Chapters) SetBook(title, icon string) {
	c.book = title
	c.icon = icon
}

// Announce shows the chapter at index (0-based) out of total.
func (c *Chapters) Announce(title string, index, total int) error {
	body := fmt.Sprintf("Chapter %d/%d", index+1, total)
	if title != "" {
		body = fmt.Sprintf("%s: %s", body, title)
	}
	summary := c.book
	if summary == "" {
		summary = "UAP"
	}

	id, err := c.notifier.Notify(Notification{
		Summary:    summary,
		Body:       body,
		Icon:       c.icon,
		Timeout:    ChapterTimeout,
		ReplacesID: c.lastID,
	})
	if err != nil {
		return fmt.Errorf("announce chapter %d: %w", index+1, err)
	}
	if id != 0 {
		c.lastID = id
	}
	return nil
}
