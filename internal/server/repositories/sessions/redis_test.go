package sessions

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/coinkeeper/internal/common"
	"github.com/dmitrijs2005/coinkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRepository(client), mr
}

func TestRedisRepository_CreateWritesBothKeys(t *testing.T) {
	repo, mr := newMiniRedisRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &models.Session{Token: "t1", UserID: "u1", UserEmail: "a@x.com"})
	require.NoError(t, err)
	assert.True(t, created)

	got, err := mr.Get(userKey("u1"))
	require.NoError(t, err)
	assert.Equal(t, "t1", got)
	assert.True(t, mr.Exists(tokenKey("t1")))

	s, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", s.UserEmail)
}

func TestRedisRepository_ExistingUserIsNoop(t *testing.T) {
	repo, mr := newMiniRedisRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Session{Token: "t1", UserID: "u1"})
	require.NoError(t, err)

	created, err := repo.Create(ctx, &models.Session{Token: "t2", UserID: "u1"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.False(t, mr.Exists(tokenKey("t2")))
}

func TestRedisRepository_TokenCollisionWritesNothing(t *testing.T) {
	repo, mr := newMiniRedisRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &models.Session{Token: "t1", UserID: "u1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.Session{Token: "t1", UserID: "u2"})
	require.ErrorIs(t, err, common.ErrTokenCollision)
	assert.False(t, mr.Exists(userKey("u2")))

	s, err := repo.FindByToken(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", s.UserID)
}

// A user key never exists without its token key, so a losing concurrent
// login always finds the winner's session.
func TestRedisRepository_ConcurrentCreateLosersSeeWinner(t *testing.T) {
	repo, _ := newMiniRedisRepo(t)
	ctx := context.Background()

	const goroutines = 20
	var wg sync.WaitGroup
	results := make(chan error, goroutines)
	wins := make(chan string, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			token := fmt.Sprintf("t%d", idx)
			created, err := repo.Create(ctx, &models.Session{Token: token, UserID: "u1"})
			if err != nil {
				results <- err
				return
			}
			if created {
				wins <- token
				return
			}
			_, err = repo.FindByUserID(ctx, "u1")
			results <- err
		}(i)
	}

	wg.Wait()
	close(results)
	close(wins)

	for err := range results {
		assert.NoError(t, err)
	}
	require.Len(t, wins, 1)

	winner := <-wins
	s, err := repo.FindByUserID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, winner, s.Token)
}

func TestRedisRepository_StoreDown(t *testing.T) {
	repo, mr := newMiniRedisRepo(t)
	mr.Close()

	_, err := repo.Create(context.Background(), &models.Session{Token: "t1", UserID: "u1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis error")
}
