package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session id has no live server-side record.
var ErrNotFound = errors.New("session not found")

// Session is the server-side record behind an opaque session id. The client
// only ever holds the id; all state lives in Redis and logout deletes it.
type Session struct {
	UserID    int64
	Email     string
	FullName  string
	CreatedAt time.Time
}

// Store keeps sessions in Redis under session:<id> hashes with a sliding TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func key(id string) string { return "session:" + id }

// Create stores a new session and returns its opaque id.
func (s *Store) Create(ctx context.Context, sess Session) (string, error) {
	id := uuid.NewString()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	fields := map[string]any{
		"user_id":    strconv.FormatInt(sess.UserID, 10),
		"email":      sess.Email,
		"full_name":  sess.FullName,
		"created_at": sess.CreatedAt.Format(time.RFC3339Nano),
	}
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key(id), fields)
	pipe.Expire(ctx, key(id), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads the session for id, refreshing its TTL.
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	data, err := s.rdb.HGetAll(ctx, key(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	uid, err := strconv.ParseInt(data["user_id"], 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}
	sess := &Session{UserID: uid, Email: data["email"], FullName: data["full_name"]}
	if t, err := time.Parse(time.RFC3339Nano, data["created_at"]); err == nil {
		sess.CreatedAt = t
	}
	_ = s.rdb.Expire(ctx, key(id), s.ttl).Err()
	return sess, nil
}

// Delete terminates the session server-side.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}

// Rotate replaces an existing session with a fresh id for the same user.
// Used after password changes so the old credential-bound session dies.
func (s *Store) Rotate(ctx context.Context, oldID string, sess Session) (string, error) {
	if oldID != "" {
		_ = s.rdb.Del(ctx, key(oldID)).Err()
	}
	return s.Create(ctx, sess)
}
