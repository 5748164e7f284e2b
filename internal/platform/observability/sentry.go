// Package observability reports panics and server errors to Sentry.
package observability

import (
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

// InitSentry configures the global Sentry client. An empty dsn leaves reporting disabled.
func InitSentry(dsn, environment string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	})
}

// FlushSentry waits for buffered events to be delivered.
func FlushSentry() {
	sentry.Flush(flushTimeout)
}
