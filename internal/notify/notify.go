// Package notify sends desktop notifications over D-Bus and announces
// chapter changes with them.
package notify

// Notification is one desktop notification.
type Notification struct {
	Summary    string
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 lets the server decide
	ReplacesID uint32 // 0 opens a new notification
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns the id the server gave it.
	Notify(n Notification) (uint32, error)
}
