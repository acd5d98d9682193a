package internal

import (
	"context"
	"fmt"
	"time"
)

// PostgresHealthCheck pings the database through an existing handle.
// timeout may be 0 to use a sensible default (5s).
func PostgresHealthCheck(ctx context.Context, db DB, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var one int
	if err := db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("postgres health query failed: %w", err)
	}
	return nil
}
