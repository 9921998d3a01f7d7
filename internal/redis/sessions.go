package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SergeyKozhin/event-admin-backend/internal/model"
	"github.com/gomodule/redigo/redis"
)

const (
	sessionPrefix     = "session:"
	userSessionPrefix = "user_sessions:"
	expiryIndex       = "sessions_expiry"
)

// RefreshTokenRepository stores refresh sessions. Each session is a key with
// a TTL holding the user id; expiry times are indexed globally and per user
// so that logout-all and cleanup do not need to scan keys.
type RefreshTokenRepository struct {
	pool *redis.Pool
	ttl  time.Duration
	now  func() time.Time
}

func NewRefreshTokenRepository(pool *redis.Pool, ttl time.Duration) *RefreshTokenRepository {
	return &RefreshTokenRepository{
		pool: pool,
		ttl:  ttl,
		now:  time.Now,
	}
}

func sessionKey(session string) string {
	return sessionPrefix + session
}

func userSessionsKey(userID string) string {
	return userSessionPrefix + userID
}

func expiryMember(userID, session string) string {
	return userID + ":" + session
}

func parseExpiryMember(member string) (string, string, error) {
	i := strings.Index(member, ":")
	if i < 0 {
		return "", "", fmt.Errorf("malformed session index member %q", member)
	}
	return member[:i], member[i+1:], nil
}

func (r *RefreshTokenRepository) Add(ctx context.Context, session string, userID string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	return r.add(conn, session, userID)
}

func (r *RefreshTokenRepository) add(conn redis.Conn, session, userID string) error {
	reply, err := redis.String(conn.Do("SET", sessionKey(session), userID, "NX", "PX", r.ttl.Milliseconds()))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("set session: %w", err)
	}
	if reply != "OK" {
		return fmt.Errorf("set session: unexpected reply %q", reply)
	}

	return r.index(conn, session, userID)
}

func (r *RefreshTokenRepository) index(conn redis.Conn, session, userID string) error {
	expires := r.now().Add(r.ttl).Unix()
	if err := conn.Send("ZADD", userSessionsKey(userID), expires, session); err != nil {
		return fmt.Errorf("index user session: %w", err)
	}
	if err := conn.Send("ZADD", expiryIndex, expires, expiryMember(userID, session)); err != nil {
		return fmt.Errorf("index session expiry: %w", err)
	}
	if _, err := conn.Do(""); err != nil {
		return fmt.Errorf("flush session index: %w", err)
	}

	return nil
}

func (r *RefreshTokenRepository) Get(ctx context.Context, session string) (string, error) {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return "", fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	return get(conn, session)
}

func get(conn redis.Conn, session string) (string, error) {
	id, err := redis.String(conn.Do("GET", sessionKey(session)))
	if err != nil {
		if errors.Is(err, redis.ErrNil) {
			return "", model.ErrNoRecord
		}
		return "", fmt.Errorf("get session: %w", err)
	}

	return id, nil
}

// rotateScript moves the owner of KEYS[1] to KEYS[2] in one step, so a
// refresh token can be consumed once. Replies: nil when KEYS[1] is gone,
// 0 when KEYS[2] is taken, the user id otherwise.
var rotateScript = redis.NewScript(2, `
local uid = redis.call('GET', KEYS[1])
if not uid then
	return false
end
if not redis.call('SET', KEYS[2], uid, 'NX', 'PX', ARGV[1]) then
	return 0
end
redis.call('DEL', KEYS[1])
return uid
`)

// Refresh replaces old with new keeping the owner. ErrAlreadyExists means new
// collides with a live session and the caller should pick another token.
func (r *RefreshTokenRepository) Refresh(ctx context.Context, old, new string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	reply, err := rotateScript.Do(conn, sessionKey(old), sessionKey(new), r.ttl.Milliseconds())
	if err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}

	var userID string
	switch v := reply.(type) {
	case nil:
		return model.ErrNoRecord
	case int64:
		return model.ErrAlreadyExists
	case []byte:
		userID = string(v)
	default:
		return fmt.Errorf("rotate session: unexpected reply %T", reply)
	}

	if err := r.index(conn, new, userID); err != nil {
		return err
	}

	return unindex(conn, old, userID)
}

func (r *RefreshTokenRepository) Delete(ctx context.Context, session string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	userID, err := get(conn, session)
	if err != nil {
		return err
	}

	return remove(conn, session, userID)
}

func remove(conn redis.Conn, session, userID string) error {
	if err := conn.Send("DEL", sessionKey(session)); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return unindex(conn, session, userID)
}

func unindex(conn redis.Conn, session, userID string) error {
	if err := conn.Send("ZREM", userSessionsKey(userID), session); err != nil {
		return fmt.Errorf("unindex user session: %w", err)
	}
	if err := conn.Send("ZREM", expiryIndex, expiryMember(userID, session)); err != nil {
		return fmt.Errorf("unindex session expiry: %w", err)
	}
	if _, err := conn.Do(""); err != nil {
		return fmt.Errorf("flush session delete: %w", err)
	}

	return nil
}

// DeleteExpired drops index entries of sessions whose keys already expired.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	now := r.now().Unix()
	members, err := redis.Strings(conn.Do("ZRANGEBYSCORE", expiryIndex, "-inf", now))
	if err != nil {
		return fmt.Errorf("get expired sessions: %w", err)
	}

	for _, m := range members {
		userID, session, err := parseExpiryMember(m)
		if err != nil {
			return err
		}
		if err := conn.Send("ZREM", userSessionsKey(userID), session); err != nil {
			return fmt.Errorf("unindex user session: %w", err)
		}
	}
	if err := conn.Send("ZREMRANGEBYSCORE", expiryIndex, "-inf", now); err != nil {
		return fmt.Errorf("unindex expired sessions: %w", err)
	}
	if _, err := conn.Do(""); err != nil {
		return fmt.Errorf("flush expired sessions: %w", err)
	}

	return nil
}

// DeleteByUserID ends every session of the user.
func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID string) error {
	conn, err := r.pool.GetContext(ctx)
	if err != nil {
		return fmt.Errorf("get conn: %w", err)
	}
	defer conn.Close()

	sessions, err := redis.Strings(conn.Do("ZRANGE", userSessionsKey(userID), 0, -1))
	if err != nil {
		return fmt.Errorf("get user sessions: %w", err)
	}

	for _, s := range sessions {
		if err := conn.Send("DEL", sessionKey(s)); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if err := conn.Send("ZREM", expiryIndex, expiryMember(userID, s)); err != nil {
			return fmt.Errorf("unindex session expiry: %w", err)
		}
	}
	if err := conn.Send("DEL", userSessionsKey(userID)); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	if _, err := conn.Do(""); err != nil {
		return fmt.Errorf("flush user sessions: %w", err)
	}

	return nil
}
