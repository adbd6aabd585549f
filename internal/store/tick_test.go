package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postpilot/internal/models"
)

func TestTick_PromotesDuePosts(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	due, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "due",
		ScheduledAt: now.Add(-time.Second),
	})
	require.NoError(t, err)

	future, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "future",
		ScheduledAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	result := s.Tick(now)

	require.Len(t, result.Promoted, 1)
	assert.Equal(t, due.ID, result.Promoted[0].ID)
	assert.True(t, result.Promoted[0].PostedAt.Equal(now))

	posted := s.PostedPosts()
	require.Len(t, posted, 1)
	assert.Equal(t, due.ID, posted[0].ID)

	scheduled := s.ScheduledPosts()
	require.Len(t, scheduled, 1)
	assert.Equal(t, future.ID, scheduled[0].ID)
}

func TestTick_PromotesAtExactInstant(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	post, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "on the dot",
		ScheduledAt: now,
	})
	require.NoError(t, err)

	result := s.Tick(now)
	require.Len(t, result.Promoted, 1)
	assert.Equal(t, post.ID, result.Promoted[0].ID)
}

func TestTick_ExactlyOncePromotion(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	_, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "once",
		ScheduledAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	first := s.Tick(now)
	require.Len(t, first.Promoted, 1)

	second := s.Tick(now)
	assert.Empty(t, second.Promoted)
	assert.Len(t, s.PostedPosts(), 1)
	assert.Empty(t, s.ScheduledPosts())
}

func TestTick_PromotionOrder(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	later, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "later but added first",
		ScheduledAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	earlier, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "earlier but added second",
		ScheduledAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)

	result := s.Tick(now)
	require.Len(t, result.Promoted, 2)
	assert.Equal(t, earlier.ID, result.Promoted[0].ID)
	assert.Equal(t, later.ID, result.Promoted[1].ID)
}

func TestTick_PromotionOrderTieBreaksByInsertion(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()
	when := now.Add(-time.Minute)

	first, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "first",
		ScheduledAt: when,
	})
	require.NoError(t, err)

	second, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "second",
		ScheduledAt: when,
	})
	require.NoError(t, err)

	result := s.Tick(now)
	require.Len(t, result.Promoted, 2)
	assert.Equal(t, first.ID, result.Promoted[0].ID)
	assert.Equal(t, second.ID, result.Promoted[1].ID)
}

func TestTick_SingleNowForAllPromotions(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		_, err := s.AddScheduledPost(AddScheduledPostInput{
			Platforms:   []models.Platform{models.PlatformInstagram},
			Caption:     "batch",
			ScheduledAt: now.Add(-time.Duration(i+1) * time.Minute),
		})
		require.NoError(t, err)
	}

	result := s.Tick(now)
	require.Len(t, result.Promoted, 3)
	for _, post := range result.Promoted {
		assert.True(t, post.PostedAt.Equal(now))
	}
}

func TestTick_CreatesAnalyticsAtPromotion(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	post, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "metrics",
		ScheduledAt: now.Add(-time.Second),
	})
	require.NoError(t, err)

	_, ok := s.AnalyticsFor(post.ID)
	assert.False(t, ok, "no analytics before promotion")

	s.Tick(now)

	a, ok := s.AnalyticsFor(post.ID)
	require.True(t, ok)
	assert.Equal(t, post.ID, a.PostID)
	assert.GreaterOrEqual(t, a.Likes, 0)
	assert.GreaterOrEqual(t, a.Comments, 0)
	assert.GreaterOrEqual(t, a.Shares, 0)
	assert.Len(t, s.Analytics(), 1)
}

func TestTick_NoAnalyticsForFuturePost(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	post, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "not yet",
		ScheduledAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	s.Tick(now)

	require.Len(t, s.ScheduledPosts(), 1)
	_, ok := s.AnalyticsFor(post.ID)
	assert.False(t, ok)
}

func TestTick_AnalyticsMonotonic(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	post, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "growing",
		ScheduledAt: now.Add(-time.Second),
	})
	require.NoError(t, err)

	s.Tick(now)
	prev, ok := s.AnalyticsFor(post.ID)
	require.True(t, ok)

	for i := 1; i <= 10; i++ {
		s.Tick(now.Add(time.Duration(i) * 5 * time.Second))
		cur, ok := s.AnalyticsFor(post.ID)
		require.True(t, ok)
		assert.GreaterOrEqual(t, cur.Likes, prev.Likes)
		assert.GreaterOrEqual(t, cur.Comments, prev.Comments)
		assert.GreaterOrEqual(t, cur.Shares, prev.Shares)
		prev = cur
	}
}

func TestTick_GrowthStopsPastHorizon(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	post, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "old news",
		ScheduledAt: now.Add(-time.Second),
	})
	require.NoError(t, err)

	s.Tick(now)
	s.Tick(now.Add(growthHorizon))
	stale, ok := s.AnalyticsFor(post.ID)
	require.True(t, ok)

	s.Tick(now.Add(growthHorizon + time.Minute))
	after, ok := s.AnalyticsFor(post.ID)
	require.True(t, ok)
	assert.Equal(t, stale.Likes, after.Likes)
	assert.Equal(t, stale.Comments, after.Comments)
	assert.Equal(t, stale.Shares, after.Shares)
}

func TestTick_EmptyStoreIsNoop(t *testing.T) {
	s := New()

	result := s.Tick(time.Now())
	assert.Empty(t, result.Promoted)
	assert.Zero(t, result.ScheduledCount)
	assert.Zero(t, result.PostedCount)
}

func TestTick_PromotesDespiteDeactivatedAccount(t *testing.T) {
	// The platform filter is a scheduling-time precondition only; later
	// deactivation does not block promotion.
	s := New()
	account := mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	post, err := s.AddScheduledPost(AddScheduledPostInput{
		Platforms:   []models.Platform{models.PlatformInstagram},
		Caption:     "still goes out",
		ScheduledAt: now.Add(-time.Second),
	})
	require.NoError(t, err)

	s.ToggleAccountActive(account.ID)

	result := s.Tick(now)
	require.Len(t, result.Promoted, 1)
	assert.Equal(t, post.ID, result.Promoted[0].ID)
}

func TestTick_GrowthDeterministicForSameID(t *testing.T) {
	likes1, comments1, shares1 := growthIncrements("post-abc", 10*time.Minute)
	likes2, comments2, shares2 := growthIncrements("post-abc", 10*time.Minute)
	assert.Equal(t, likes1, likes2)
	assert.Equal(t, comments1, comments2)
	assert.Equal(t, shares1, shares2)
}

func TestEngagementTotals(t *testing.T) {
	s := New()
	mustAddAccount(t, s, models.PlatformInstagram, "@ig")
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		_, err := s.AddScheduledPost(AddScheduledPostInput{
			Platforms:   []models.Platform{models.PlatformInstagram},
			Caption:     "sum me",
			ScheduledAt: now.Add(-time.Minute),
		})
		require.NoError(t, err)
	}

	s.Tick(now)

	totals := s.EngagementTotals()
	var likes, comments, shares int
	for _, a := range s.Analytics() {
		likes += a.Likes
		comments += a.Comments
		shares += a.Shares
	}
	assert.Equal(t, likes, totals.Likes)
	assert.Equal(t, comments, totals.Comments)
	assert.Equal(t, shares, totals.Shares)
}
