package store

import (
	"hash/fnv"
	"sort"
	"time"

	"postpilot/internal/models"
	"postpilot/internal/observability"
)

// growthHorizon is the post age past which engagement stops accruing, so
// long-lived dashboards stay readable.
const growthHorizon = time.Hour

// TickResult reports what a tick did. The engine's correctness never depends
// on the caller consuming it; the host uses it for events and logging.
type TickResult struct {
	Promoted       []*models.PostedPost
	ScheduledCount int
	PostedCount    int
}

// Tick runs one discrete step of the simulation with a single captured now:
// it promotes every due scheduled post (ScheduledAt <= now) in ascending
// scheduled order, creates their analytics records, and applies one
// engagement growth step to every posted post. It runs under the same write
// lock as the command operations, so no post is ever promoted twice.
func (s *Store) Tick(now time.Time) TickResult {
	start := time.Now()
	now = now.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	var due []*models.ScheduledPost
	var notDue []*models.ScheduledPost
	for _, post := range s.scheduled {
		if post.ScheduledAt.After(now) {
			notDue = append(notDue, post)
		} else {
			due = append(due, post)
		}
	}

	// Ascending scheduled time; stable sort keeps insertion order for ties.
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ScheduledAt.Before(due[j].ScheduledAt)
	})

	result := TickResult{}
	for _, post := range due {
		promoted := &models.PostedPost{
			ScheduledPost: *post,
			PostedAt:      now,
		}
		s.posted = append(s.posted, promoted)

		a := seedAnalytics(post.ID)
		s.analytics = append(s.analytics, a)
		s.analyticsByPost[post.ID] = a

		result.Promoted = append(result.Promoted, copyPosted(promoted))
	}
	s.scheduled = notDue

	for _, post := range s.posted {
		a, ok := s.analyticsByPost[post.ID]
		if !ok {
			continue
		}
		likes, comments, shares := growthIncrements(post.ID, now.Sub(post.PostedAt))
		a.RecordGrowth(likes, comments, shares)
	}

	result.ScheduledCount = len(s.scheduled)
	result.PostedCount = len(s.posted)

	observability.ObserveTick(start)
	observability.PostsPromoted.Add(float64(len(result.Promoted)))
	observability.ScheduledPosts.Set(float64(len(s.scheduled)))
	s.publishEngagementMetricsLocked()

	return result
}

func (s *Store) publishEngagementMetricsLocked() {
	var likes, comments, shares int
	for _, a := range s.analytics {
		likes += a.Likes
		comments += a.Comments
		shares += a.Shares
	}
	observability.Engagement.WithLabelValues("likes").Set(float64(likes))
	observability.Engagement.WithLabelValues("comments").Set(float64(comments))
	observability.Engagement.WithLabelValues("shares").Set(float64(shares))
}

// seedAnalytics builds the initial analytics record for a freshly promoted
// post. Seeds derive from the post id alone, so repeated simulations with the
// same ids are reproducible.
func seedAnalytics(postID string) *models.Analytics {
	h := idHash(postID)
	return &models.Analytics{
		PostID:   postID,
		Likes:    int(h % 8),
		Comments: int(h >> 3 % 4),
		Shares:   int(h >> 5 % 3),
	}
}

// growthIncrements computes the per-tick engagement deltas for a post of the
// given age. Increments decay linearly with age and reach zero at the growth
// horizon; they are never negative.
func growthIncrements(postID string, age time.Duration) (likes, comments, shares int) {
	if age < 0 {
		age = 0
	}
	if age >= growthHorizon {
		return 0, 0, 0
	}
	decay := 1 - float64(age)/float64(growthHorizon)
	h := idHash(postID)

	likes = 1 + int(float64(2+h%6)*decay)
	comments = int(float64(1+h>>4%3)*decay)
	shares = int(float64(h>>8%2) * decay)
	return likes, comments, shares
}

func idHash(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}
