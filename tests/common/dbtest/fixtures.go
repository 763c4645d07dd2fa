//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestOrganization(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	orgID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO organizations (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", orgID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", name).Scan(&orgID)
	}

	return orgID
}

func CreateTestUser(t *testing.T, db DBLike, name, email, role string, orgID *uuid.UUID) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO users (id, name, email, role, organization_id) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING",
		userID, name, email, role, orgID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestRoom(t *testing.T, db DBLike, orgID uuid.UUID, name string, capacity int, location string) uuid.UUID {
	t.Helper()

	var roomID uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO rooms (organization_id, name, capacity, location, images) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		orgID, name, capacity, location, `["/uploads/`+strings.ToLower(name)+`.png"]`).Scan(&roomID)
	require.NoError(t, err)

	return roomID
}

func CreateTestBooking(t *testing.T, db DBLike, roomID, userID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	var bookingID uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO bookings (room_id, user_id, start_time, end_time, purpose, status) VALUES ($1, $2, $3, $4, 'Meeting', $5) RETURNING id",
		roomID, userID, start, end, status).Scan(&bookingID)
	require.NoError(t, err)

	return bookingID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO organizations (id, name) VALUES
		    (gen_random_uuid(), 'Default Organization')
		ON CONFLICT (name) DO NOTHING;
	`)
	return err
}

var truncateCache struct {
	sync.Mutex
	stmt string
}

// ResetDB empties every application table and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt, err := truncateStatement(ctx, pool)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return SeedReferenceData(pool)
}

// every test database is migrated from the same schema, so the statement is
// built once per process
func truncateStatement(ctx context.Context, db DBLike) (string, error) {
	truncateCache.Lock()
	defer truncateCache.Unlock()
	if truncateCache.stmt != "" {
		return truncateCache.stmt, nil
	}

	rows, err := db.Query(ctx, `
		SELECT 'public.' || quote_ident(tablename)
		FROM pg_tables
		WHERE schemaname = 'public'
		ORDER BY tablename`)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}
	tables, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("scan tables: %w", err)
	}
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables to truncate")
	}
	truncateCache.stmt = "TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE"
	return truncateCache.stmt, nil
}

func RoomExists(t *testing.T, db DBLike, roomID uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := db.QueryRow(context.Background(), "SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)", roomID).Scan(&exists)
	require.NoError(t, err)
	return exists
}
