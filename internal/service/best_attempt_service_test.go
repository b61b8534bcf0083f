package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/schooltest/internal/cache"
	"github.com/lshigami/schooltest/internal/dto"
	"github.com/lshigami/schooltest/internal/model"
	"github.com/lshigami/schooltest/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavedCache runs beforeSet once, ahead of the next Set it sees.
type interleavedCache struct {
	cache.BestAttemptCache
	beforeSet func()
}

func (c *interleavedCache) Set(ctx context.Context, best *model.BestAttempt) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	return c.BestAttemptCache.Set(ctx, best)
}

func newRedisBestCache(t *testing.T) cache.BestAttemptCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisCache(client, time.Hour)
}

func TestGetBestFillDoesNotOverwriteNewerSubmission(t *testing.T) {
	bestCache := &interleavedCache{BestAttemptCache: newRedisBestCache(t)}
	f := newFixtureWith(t, fixtureOptions{cache: bestCache})
	testutil.SeedTest(t, f.db, "quiz-1", "quiz")
	ctx := context.Background()
	s1 := student("s1")

	_, err := f.submissions.Submit(ctx, s1, dto.SubmissionDTO{TestID: "quiz-1", Score: 40, MaxScore: 100})
	require.NoError(t, err)
	require.NoError(t, bestCache.Invalidate(ctx, "s1", "quiz-1"))

	// A submission commits between GetBest's database read and its cache fill.
	bestCache.beforeSet = func() {
		f.clock.Advance(time.Minute)
		_, err := f.submissions.Submit(ctx, s1, dto.SubmissionDTO{TestID: "quiz-1", Score: 95, MaxScore: 100})
		require.NoError(t, err)
	}
	stale, err := f.best.GetBest(ctx, s1, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, *stale.Percentage)

	got, err := f.best.GetBest(ctx, s1, "s1", "quiz-1")
	require.NoError(t, err)
	assert.Equal(t, 95.0, *got.Percentage)
	assert.Equal(t, 2, got.AttemptNumber)
}

func TestSubmitPublishesBestToCache(t *testing.T) {
	redisCache := newRedisBestCache(t)
	f := newFixtureWith(t, fixtureOptions{cache: redisCache})
	testutil.SeedTest(t, f.db, "quiz-1", "quiz")
	ctx := context.Background()

	_, err := f.submissions.Submit(ctx, student("s1"), dto.SubmissionDTO{TestID: "quiz-1", Score: 70, MaxScore: 100})
	require.NoError(t, err)

	cached, err := redisCache.Get(ctx, "s1", "quiz-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 70.0, *cached.Percentage)

	f.clock.Advance(time.Minute)
	_, err = f.submissions.Submit(ctx, student("s1"), dto.SubmissionDTO{TestID: "quiz-1", Score: 30, MaxScore: 100})
	require.NoError(t, err)

	cached, err = redisCache.Get(ctx, "s1", "quiz-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, 70.0, *cached.Percentage, "the 70 percent sitting stays best")
	assert.True(t, cached.RefreshedAt.Equal(f.clock.Now()))
}
