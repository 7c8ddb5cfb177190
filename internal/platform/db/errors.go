package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/scaledesk/scaledesk/internal/platform/httpx"
)

// Classify marks connection and timeout failures as httpx.ErrUnavailable.
// Other errors pass through unchanged.
func Classify(err error) error {
	if err == nil || errors.Is(err, httpx.ErrUnavailable) {
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", httpx.ErrUnavailable, err)
	}
	return err
}
