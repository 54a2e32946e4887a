package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestSessionStore(t *testing.T) {
	mr, rdb := setupRedis(t)
	store := NewSessionStore(rdb)
	ctx := context.Background()

	sess := auth.Session{Token: "mock_token_1_1", UserID: "1", Role: "super_admin", IssuedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, store.Save(ctx, "session:mock_token_1_1", sess, time.Minute))

	got, err := store.Load(ctx, "session:mock_token_1_1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "super_admin", got.Role)
	assert.True(t, sess.IssuedAt.Equal(got.IssuedAt))

	mr.FastForward(2 * time.Minute)
	got, err = store.Load(ctx, "session:mock_token_1_1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Save(ctx, "k", sess, time.Minute))
	require.NoError(t, store.Delete(ctx, "k"))
	got, _ = store.Load(ctx, "k")
	assert.Nil(t, got)
}

func TestLocker(t *testing.T) {
	mr, rdb := setupRedis(t)
	l := NewLocker(rdb)
	ctx := context.Background()

	release, ok, err := l.Acquire(ctx, "verify:TX-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Acquire(ctx, "verify:TX-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "segunda petición concurrente no obtiene el lock")

	release()
	assert.False(t, mr.Exists("lock:verify:TX-1"))

	_, ok, _ = l.Acquire(ctx, "verify:TX-1", time.Minute)
	assert.True(t, ok)
}

func TestLocker_ReleaseNoBorraLockAjeno(t *testing.T) {
	mr, rdb := setupRedis(t)
	l := NewLocker(rdb)
	ctx := context.Background()

	release, ok, _ := l.Acquire(ctx, "k", time.Second)
	require.True(t, ok)
	mr.FastForward(2 * time.Second)

	_, ok, _ = l.Acquire(ctx, "k", time.Minute)
	require.True(t, ok)
	release()
	assert.True(t, mr.Exists("lock:k"))
}

type countingLookup struct {
	fee   decimal.Decimal
	ok    bool
	calls int
}

func (c *countingLookup) LookupFee(context.Context, entity.Address) (decimal.Decimal, bool, error) {
	c.calls++
	return c.fee, c.ok, nil
}

func TestCachedFeeLookup(t *testing.T) {
	mr, rdb := setupRedis(t)
	next := &countingLookup{fee: decimal.NewFromInt(8500), ok: true}
	c := NewCachedFeeLookup(next, rdb, time.Minute, logger.Nop())
	addr := entity.Address{Country: "Nigeria", State: "Lagos", LGA: "Eti-Osa", City: "Lekki", CityRegion: "Lekki Phase 1"}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		fee, ok, err := c.LookupFee(ctx, addr)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.True(t, fee.Equal(decimal.NewFromInt(8500)))
	}
	assert.Equal(t, 1, next.calls)

	mr.FastForward(2 * time.Minute)
	_, _, _ = c.LookupFee(ctx, addr)
	assert.Equal(t, 2, next.calls)
}

func TestCachedFeeLookup_NoCacheaNoResueltas(t *testing.T) {
	_, rdb := setupRedis(t)
	next := &countingLookup{}
	c := NewCachedFeeLookup(next, rdb, time.Minute, nil)

	_, ok, _ := c.LookupFee(context.Background(), entity.Address{City: "X", CityRegion: "Y"})
	_, _, _ = c.LookupFee(context.Background(), entity.Address{City: "X", CityRegion: "Y"})
	assert.False(t, ok)
	assert.Equal(t, 2, next.calls)
}

func TestCachedFeeLookup_RedisCaidoConsultaDirecto(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()
	next := &countingLookup{fee: decimal.NewFromInt(10), ok: true}
	c := NewCachedFeeLookup(next, rdb, time.Minute, nil)

	fee, ok, err := c.LookupFee(context.Background(), entity.Address{City: "X", CityRegion: "Y"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, fee.Equal(decimal.NewFromInt(10)))
}
