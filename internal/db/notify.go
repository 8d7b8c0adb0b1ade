package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Alerter publishes emergency classifications on a PostgreSQL NOTIFY
// channel so an operations dashboard or paging hook can LISTEN for them
// without polling the consultations table.
type Alerter struct {
	DB      *sql.DB
	Channel string
}

// NewAlerter constructs a new Alerter.  The channel should match the
// POSTGRES_NOTIFY_CHANNEL environment variable.
func NewAlerter(db *sql.DB, channel string) *Alerter {
	return &Alerter{DB: db, Channel: channel}
}

// Notify publishes the consultation ID on the alert channel.
func (a *Alerter) Notify(ctx context.Context, consultationID string) error {
	_, err := a.DB.ExecContext(ctx, `SELECT pg_notify($1, $2)`, a.Channel, consultationID)
	return err
}

// ListenAlerts opens a dedicated listening connection and yields
// consultation IDs as they are published.  The returned channel is
// closed when ctx is cancelled.
func ListenAlerts(ctx context.Context, conninfo, channel string) (<-chan string, error) {
	listener := pq.NewListener(conninfo, time.Second, time.Minute, nil)
	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, err
	}

	ch := make(chan string)
	go func() {
		defer func() {
			_ = listener.Close()
			close(ch)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-listener.Notify:
				// nil notifications signal a connection reset; pq
				// re-establishes the LISTEN on its own.
				if n == nil {
					continue
				}
				select {
				case ch <- n.Extra:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
