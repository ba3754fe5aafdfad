package persistence

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/skillsync/internal/domain/profile"
	"github.com/khoahotran/skillsync/pkg/apperror"
)

const sessionsTable = "profile_sessions"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresStore keeps session blobs in the profile_sessions table. The blob
// is stored as text so it round-trips byte for byte.
type PostgresStore struct {
	db  *pgxpool.Pool
	ttl time.Duration
	now func() time.Time
}

func NewPostgresStore(db *pgxpool.Pool, ttl time.Duration) *PostgresStore {
	return &PostgresStore{db: db, ttl: ttl, now: time.Now}
}

var _ profile.Store = (*PostgresStore)(nil)

// Load returns the blob and pushes its expiry forward. Expired rows are
// treated as absent.
func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	now := s.now().UTC()
	query, args, err := psql.Update(sessionsTable).
		Set("expires_at", now.Add(s.ttl)).
		Where(sq.Eq{"session_key": key}).
		Where(sq.Gt{"expires_at": now}).
		Suffix("RETURNING data").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build load query", err)
	}

	var data string
	if err := s.db.QueryRow(ctx, query, args...).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to load session profile", err)
	}
	return []byte(data), nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) error {
	now := s.now().UTC()
	query, args, err := psql.Insert(sessionsTable).
		Columns("session_key", "data", "updated_at", "expires_at").
		Values(key, string(data), now, now.Add(s.ttl)).
		Suffix("ON CONFLICT (session_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at, expires_at = EXCLUDED.expires_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build save query", err)
	}

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to save session profile", err)
	}
	return nil
}

// PurgeExpired deletes every expired session and reports how many went.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	query, args, err := psql.Delete(sessionsTable).
		Where(sq.LtOrEq{"expires_at": s.now().UTC()}).
		ToSql()
	if err != nil {
		return 0, apperror.NewInternal("failed to build purge query", err)
	}

	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, apperror.NewInternal("failed to purge expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
