package lock

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"

	"github.com/polkiloo/loanledger/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestLoanKey(t *testing.T) {
	assert.Equal(t, "loan:42", LoanKey(42))
}

func TestLocalLockerSerialisesSameKey(t *testing.T) {
	locker := NewLocalLocker()
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := locker.Lock(context.Background(), LoanKey(1))
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locker.size(), "released keys must be forgotten")
}

func TestLocalLockerIndependentKeys(t *testing.T) {
	locker := NewLocalLocker()
	unlockA, err := locker.Lock(context.Background(), LoanKey(1))
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := locker.Lock(ctx, LoanKey(2))
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerHonoursContext(t *testing.T) {
	locker := NewLocalLocker()
	unlock, err := locker.Lock(context.Background(), LoanKey(1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(ctx, LoanKey(1))
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()
	assert.Equal(t, 0, locker.size())

	again, err := locker.Lock(context.Background(), LoanKey(1))
	require.NoError(t, err)
	again()
}

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestNewRedisLockerDefaults(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	locker := NewRedisLocker(client, 0, testLogger())
	assert.Equal(t, defaultLockTTL, locker.ttl)
	assert.Equal(t, defaultRetryDelay, locker.retry)

	locker = NewRedisLocker(client, time.Second, testLogger())
	assert.Equal(t, time.Second, locker.ttl)
}

func TestRedisLockerPropagatesConnectionErrors(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	locker := NewRedisLocker(client, time.Second, testLogger())
	unlock, err := locker.Lock(context.Background(), LoanKey(7))
	assert.Error(t, err)
	assert.Nil(t, unlock)
}

func TestRedisUnlockSwallowsErrors(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	locker := NewRedisLocker(client, 100*time.Millisecond, testLogger())
	unlock := locker.unlockFunc(redisKeyPrefix+LoanKey(7), "token")
	assert.NotPanics(t, func() {
		unlock()
		unlock()
	})
}

// scriptedRedis answers SET NX and script calls in memory; other commands are not used.
type scriptedRedis struct {
	redis.Cmdable

	mu        sync.Mutex
	refreshes int
	releases  int
	lost      bool
}

func (r *scriptedRedis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	return redis.NewBoolResult(true, nil)
}

func (r *scriptedRedis) EvalSha(ctx context.Context, sha string, keys []string, args ...any) *redis.Cmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch sha {
	case refreshScript.Hash():
		r.refreshes++
		if r.lost {
			return redis.NewCmdResult(int64(0), nil)
		}
	case releaseScript.Hash():
		r.releases++
	}
	return redis.NewCmdResult(int64(1), nil)
}

func (r *scriptedRedis) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes, r.releases
}

func TestRedisLockerRefreshesHeldKey(t *testing.T) {
	client := &scriptedRedis{}
	locker := NewRedisLocker(client, 30*time.Millisecond, testLogger())

	unlock, err := locker.Lock(context.Background(), LoanKey(3))
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		refreshes, _ := client.counts()
		return refreshes >= 2
	}, time.Second, 5*time.Millisecond, "held key must outlive its ttl")

	unlock()
	unlock()
	refreshes, releases := client.counts()
	assert.Equal(t, 1, releases)

	time.Sleep(50 * time.Millisecond)
	after, _ := client.counts()
	assert.Equal(t, refreshes, after, "refresh must stop after release")
}

func TestRedisLockerStopsRefreshingLostKey(t *testing.T) {
	client := &scriptedRedis{lost: true}
	locker := NewRedisLocker(client, 15*time.Millisecond, testLogger())

	unlock, err := locker.Lock(context.Background(), LoanKey(4))
	require.NoError(t, err)
	defer unlock()

	require.Eventually(t, func() bool {
		refreshes, _ := client.counts()
		return refreshes == 1
	}, time.Second, time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	refreshes, _ := client.counts()
	assert.Equal(t, 1, refreshes)
}

func TestNewLockerSelectsImplementation(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	local := newLocker(lockerParams{Lifecycle: lc, Config: &config.Config{}, Logger: testLogger()})
	assert.IsType(t, &LocalLocker{}, local)

	remote := newLocker(lockerParams{
		Lifecycle: lc,
		Config:    &config.Config{RedisAddress: "127.0.0.1:1", LockTTL: time.Second},
		Logger:    testLogger(),
	})
	redisLocker, ok := remote.(*RedisLocker)
	require.True(t, ok, "expected redis locker, got %T", remote)
	assert.Equal(t, time.Second, redisLocker.ttl)

	lc.RequireStart().RequireStop()
}
