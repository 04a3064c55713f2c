package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "session:token:"
	userKeyPrefix  = "session:user:"
)

// RedisRepository keeps sessions in Redis. Keys never expire and are always
// written in pairs.
//
//	session:user:<user id>  -> token
//	session:token:<token>   -> session JSON
type RedisRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client, now: time.Now}
}

func tokenKey(token string) string { return tokenKeyPrefix + token }
func userKey(userID string) string { return userKeyPrefix + userID }

type redisSession struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	UserEmail string    `json:"user_email"`
	CreatedAt time.Time `json:"created_at"`
}

// createScript writes the user key and the token key together or not at all.
// Returns 1 when both were written, 0 when the user already has a session and
// -1 when the token belongs to another session.
var createScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
if redis.call("EXISTS", KEYS[2]) == 1 then
	return -1
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
return 1
`)

// Create stores session unless its user already has one. Both keys are set
// in one script run, so a concurrent reader that sees the user key can
// always resolve the token.
func (r *RedisRepository) Create(ctx context.Context, session *models.Session) (bool, error) {
	payload, err := json.Marshal(redisSession{
		Token:     session.Token,
		UserID:    session.UserID,
		UserEmail: session.UserEmail,
		CreatedAt: r.now().UTC(),
	})
	if err != nil {
		return false, err
	}

	keys := []string{userKey(session.UserID), tokenKey(session.Token)}
	res, err := createScript.Run(ctx, r.client, keys, session.Token, payload).Int()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}

	switch res {
	case 1:
		return true, nil
	case 0:
		return false, nil
	default:
		return false, common.ErrTokenCollision
	}
}

func (r *RedisRepository) FindByUserID(ctx context.Context, userID string) (*models.Session, error) {
	token, err := r.client.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}
	return r.FindByToken(ctx, token)
}

func (r *RedisRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	raw, err := r.client.Get(ctx, tokenKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	var rs redisSession
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &models.Session{
		Token:     rs.Token,
		UserID:    rs.UserID,
		UserEmail: rs.UserEmail,
		CreatedAt: rs.CreatedAt,
	}, nil
}
