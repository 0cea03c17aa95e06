package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

var ErrNoSessionBus = errors.New("no desktop session bus")

const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod = "org.freedesktop.Notifications.Notify"
	expireMillis = int32(5000)

	notifyTimeout = 500 * time.Millisecond
)

// Desktop raises freedesktop notifications over the D-Bus session bus.
// The bus is dialled lazily on the first notification.
type Desktop struct {
	appName string
	timeout time.Duration
	send    func(ctx context.Context, title, body string) error

	mu      sync.Mutex
	enabled bool
	conn    *dbus.Conn
}

func NewDesktop(appName string, enabled bool) *Desktop {
	d := &Desktop{appName: appName, enabled: enabled, timeout: notifyTimeout}
	d.send = d.callBus
	return d
}

func (d *Desktop) SetEnabled(enabled bool) {
	d.mu.Lock()
	d.enabled = enabled
	d.mu.Unlock()
}

func (d *Desktop) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Notify is a no-op while notifications are disabled. It gives up after the
// desktop's timeout so a stalled notification daemon cannot hold the caller.
func (d *Desktop) Notify(title, body string) error {
	if !d.Enabled() {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	if err := d.send(ctx, title, body); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func (d *Desktop) callBus(ctx context.Context, title, body string) error {
	conn, err := d.connect()
	if err != nil {
		return err
	}
	obj := conn.Object(notifyDest, notifyPath)
	call := obj.CallWithContext(ctx, notifyMethod, 0,
		d.appName,
		uint32(0),
		"",
		title,
		body,
		[]string{},
		map[string]dbus.Variant{},
		expireMillis,
	)
	return call.Err
}

func (d *Desktop) connect() (*dbus.Conn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn != nil {
		return d.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSessionBus, err)
	}
	d.conn = conn
	return conn, nil
}

func (d *Desktop) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}
