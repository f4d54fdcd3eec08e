package sentry_integration

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/tea-network/sbtmarket/config"
)

// Init configures the global hub. It is a no-op when SENTRY_DSN is unset.
func Init(cfg *config.Config, component string) error {
	sc := cfg.GetSentryConfig()
	if sc == nil {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              sc.DSN,
		Environment:      sc.Environment,
		Release:          config.Version,
		SampleRate:       sc.SampleRate,
		TracesSampleRate: sc.TracesSampleRate,
		EnableTracing:    sc.TracesSampleRate > 0,
		ServerName:       component,
	})
}

func Flush() {
	sentry.Flush(2 * time.Second)
}

func CaptureCurrentHubException(err error, level sentry.Level) {
	CaptureException(sentry.CurrentHub(), err, level)
}

func CaptureException(hub *sentry.Hub, err error, level sentry.Level) {
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		hub.CaptureException(err)
	})
}

// CaptureExceptionWithContext attaches tags such as the action key or
// contract address to the captured event.
func CaptureExceptionWithContext(err error, level sentry.Level, tags map[string]string) {
	hub := sentry.CurrentHub()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(level)
		scope.SetTags(tags)
		hub.CaptureException(err)
	})
}

func StartSentryTransaction(ctx context.Context, operation, description string) (*sentry.Span, context.Context) {
	transaction := sentry.StartTransaction(ctx, operation)
	transaction.Description = description
	return transaction, transaction.Context()
}

func StartSentrySpan(ctx context.Context, operation, description string) (*sentry.Span, context.Context) {
	span := sentry.StartSpan(ctx, operation)
	span.Description = description
	return span, span.Context()
}
