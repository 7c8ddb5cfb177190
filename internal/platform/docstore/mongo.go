// Package docstore connects to MongoDB for the document-store backend.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
)

// Collection names.
const (
	SerialsCollection  = "serials"
	ProductsCollection = "products"
)

// Connect opens a client on uri, pings the primary and returns the database.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("platform/docstore: connect: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("platform/docstore: ping: %w", err)
	}

	return client, client.Database(database), nil
}

// Disconnect closes the client within a bounded wait.
func Disconnect(ctx context.Context, client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}

var retryableCodes = map[int32]struct{}{
	6:     {}, // HostUnreachable
	7:     {}, // HostNotFound
	89:    {}, // NetworkTimeout
	91:    {}, // ShutdownInProgress
	189:   {}, // PrimarySteppedDown
	10107: {}, // NotWritablePrimary
	11600: {}, // InterruptedAtShutdown
	11602: {}, // InterruptedDueToReplStateChange
}

// Retry runs op up to attempts times, backing off linearly between transient
// failures.
func Retry(ctx context.Context, attempts int, op func(context.Context) error) error {
	if attempts <= 0 {
		attempts = 3
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = op(ctx)
		if lastErr == nil || !Retryable(lastErr) {
			return lastErr
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(100*(i+1)) * time.Millisecond):
		}
	}
	return lastErr
}

// Retryable reports whether err is a transient server or network failure.
func Retryable(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		_, ok := retryableCodes[cmdErr.Code]
		return ok
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "server selection error") || strings.Contains(msg, "connection reset")
}

// Classify marks transient failures as httpx.ErrUnavailable.
func Classify(err error) error {
	if err == nil || errors.Is(err, httpx.ErrUnavailable) || !Retryable(err) {
		return err
	}
	return fmt.Errorf("%w: %w", httpx.ErrUnavailable, err)
}
