//go:build linux

package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	busDest   = "org.freedesktop.Notifications"
	busPath   = "/org/freedesktop/Notifications"
	busNotify = "org.freedesktop.Notifications.Notify"

	appName      = "UAP"
	desktopEntry = "uap"
	urgencyLow   = byte(0)
)

type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus notification server.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}
	return busNotifier{obj: conn.Object(busDest, busPath)}, nil
}

func (b busNotifier) Notify(n Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(urgencyLow),
		"desktop-entry": dbus.MakeVariant(desktopEntry),
	}
	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
	call := b.obj.Call(busNotify, 0,
		appName, n.ReplacesID, n.Icon, n.Summary, n.Body, []string{}, hints, n.Timeout)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}
