package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfileID returns a fresh profile id so tests sharing the container never collide.
func ProfileID() string {
	return "test-" + uuid.New().String()[:8]
}

// SeedState writes one raw JSON document for profile under key.
func SeedState(t *testing.T, pool *pgxpool.Pool, profile, key, value string) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO profile_state (profile_id, key, value, updated_at)
		 VALUES ($1, $2, $3::jsonb, now())
		 ON CONFLICT (profile_id, key) DO UPDATE SET value = EXCLUDED.value`,
		profile, key, value,
	)
	if err != nil {
		t.Fatalf("testhelper: seed state %s/%s: %v", profile, key, err)
	}
}
