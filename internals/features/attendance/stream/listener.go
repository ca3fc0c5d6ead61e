// internals/features/attendance/stream/listener.go
package stream

import (
	"context"
	"log"
	"time"

	"github.com/lib/pq"
)

const (
	// NOTIFY channel the attendance_notify() trigger publishes on
	ChannelName = "attendance_changes"

	minReconnect = 2 * time.Second
	maxReconnect = 30 * time.Second
)

// Listener consumes the Postgres NOTIFY feed, decodes each payload and
// publishes the typed events to the broker. pq.Listener reconnects on its
// own; after a reconnect we only log, because every view re-converges from
// per-row state as events keep arriving.
type Listener struct {
	pl      *pq.Listener
	decoder *Decoder
	broker  *Broker
}

func NewListener(dsn string, broker *Broker) *Listener {
	pl := pq.NewListener(dsn, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			log.Println("✅ stream listener connected")
		case pq.ListenerEventReconnected:
			log.Println("🔄 stream listener reconnected")
		case pq.ListenerEventDisconnected:
			log.Printf("⚠️ stream listener disconnected: %v", err)
		case pq.ListenerEventConnectionAttemptFailed:
			log.Printf("⚠️ stream listener connect attempt failed: %v", err)
		}
	})
	return &Listener{
		pl:      pl,
		decoder: NewDecoder(),
		broker:  broker,
	}
}

// Run blocks consuming notifications until ctx is cancelled. Decode
// failures are logged and dropped; consumption always continues.
func (l *Listener) Run(ctx context.Context) error {
	if err := l.pl.Listen(ChannelName); err != nil {
		return err
	}
	defer l.pl.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n := <-l.pl.Notify:
			if n == nil {
				// reconnect marker; notifications sent while we were away
				// are gone, rows re-converge via later events
				continue
			}
			ev, err := l.decoder.Decode([]byte(n.Extra))
			if err != nil {
				log.Printf("[WARN] dropped stream payload: %v", err)
				continue
			}
			if ev == nil { // other table
				continue
			}
			l.broker.Publish(*ev)

		case <-time.After(90 * time.Second):
			// keep the connection honest during quiet periods
			go l.pl.Ping()
		}
	}
}
