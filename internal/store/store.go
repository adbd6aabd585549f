// Package store holds the in-memory state of the content pipeline: accounts,
// scheduled posts, posted posts, and engagement analytics. It is the single
// source of truth; all mutations run under one write lock so a command and a
// tick can never interleave.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"postpilot/internal/models"
	"postpilot/internal/observability"
)

// Store owns every entity collection. Collections keep insertion order for
// display; analytics are additionally indexed by post id.
type Store struct {
	mu              sync.RWMutex
	accounts        []*models.Account
	scheduled       []*models.ScheduledPost
	posted          []*models.PostedPost
	analytics       []*models.Analytics
	analyticsByPost map[string]*models.Analytics
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		analyticsByPost: make(map[string]*models.Analytics),
	}
}

// AddAccountInput carries the fields for AddAccount.
type AddAccountInput struct {
	Platform models.Platform
	Name     string
}

// AddAccount creates a new active account. The name must be non-empty after
// trimming and the platform must be supported.
func (s *Store) AddAccount(in AddAccountInput) (*models.Account, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Account name is required")
	}
	if !in.Platform.Valid() {
		return nil, models.NewValidationError("Unsupported platform: " + string(in.Platform))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	account := &models.Account{
		ID:        uuid.NewString(),
		Platform:  in.Platform,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	s.accounts = append(s.accounts, account)

	snapshot := *account
	return &snapshot, nil
}

// ToggleAccountActive flips the Active flag of the account with the given id.
// An unknown id is a benign no-op and returns nil; the UI only ever toggles
// ids it displayed itself.
func (s *Store) ToggleAccountActive(id string) *models.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.accounts {
		if account.ID == id {
			account.Active = !account.Active
			snapshot := *account
			return &snapshot
		}
	}
	return nil
}

// AddScheduledPostInput carries the fields for AddScheduledPost.
type AddScheduledPostInput struct {
	Platforms   []models.Platform
	Caption     string
	Hashtags    []string
	ImageURL    string
	ScheduledAt time.Time
}

// AddScheduledPost schedules a post for the requested platforms. Platforms
// without at least one currently-active account are filtered out; the command
// is rejected when the filtered set is empty. Past instants are accepted and
// yield an immediately-overdue post.
func (s *Store) AddScheduledPost(in AddScheduledPostInput) (*models.ScheduledPost, error) {
	if len(in.Platforms) == 0 {
		return nil, models.NewValidationError("At least one platform is required")
	}
	for _, p := range in.Platforms {
		if !p.Valid() {
			return nil, models.NewValidationError("Unsupported platform: " + string(p))
		}
	}
	if in.ScheduledAt.IsZero() {
		return nil, models.NewValidationError("A scheduled time is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	platforms := s.activeTargetsLocked(in.Platforms)
	if len(platforms) == 0 {
		return nil, models.NewValidationError("No active account for the requested platforms")
	}

	post := &models.ScheduledPost{
		ID:          uuid.NewString(),
		Platforms:   platforms,
		Caption:     in.Caption,
		Hashtags:    append([]string(nil), in.Hashtags...),
		ImageURL:    in.ImageURL,
		ScheduledAt: in.ScheduledAt.UTC(),
		CreatedAt:   time.Now().UTC(),
	}
	s.scheduled = append(s.scheduled, post)
	observability.ScheduledPosts.Set(float64(len(s.scheduled)))

	return copyScheduled(post), nil
}

// activeTargetsLocked returns the deduplicated subset of requested platforms
// that have at least one active account. Caller must hold the lock.
func (s *Store) activeTargetsLocked(requested []models.Platform) []models.Platform {
	active := make(map[models.Platform]bool)
	for _, account := range s.accounts {
		if account.Active {
			active[account.Platform] = true
		}
	}

	var out []models.Platform
	seen := make(map[models.Platform]bool)
	for _, p := range requested {
		if active[p] && !seen[p] {
			out = append(out, p)
			seen[p] = true
		}
	}
	return out
}

// Accounts returns a snapshot of all accounts in insertion order.
func (s *Store) Accounts() []*models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Account, len(s.accounts))
	for i, account := range s.accounts {
		snapshot := *account
		out[i] = &snapshot
	}
	return out
}

// ActiveAccountCount returns the number of active accounts for a platform.
func (s *Store) ActiveAccountCount(platform models.Platform) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, account := range s.accounts {
		if account.Platform == platform && account.Active {
			count++
		}
	}
	return count
}

// ScheduledPosts returns a snapshot of the scheduled collection in insertion
// order.
func (s *Store) ScheduledPosts() []*models.ScheduledPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.ScheduledPost, len(s.scheduled))
	for i, post := range s.scheduled {
		out[i] = copyScheduled(post)
	}
	return out
}

// PostedPosts returns a snapshot of the posted collection in promotion order.
func (s *Store) PostedPosts() []*models.PostedPost {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.PostedPost, len(s.posted))
	for i, post := range s.posted {
		out[i] = copyPosted(post)
	}
	return out
}

// Analytics returns a snapshot of every analytics record in creation order.
func (s *Store) Analytics() []*models.Analytics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Analytics, len(s.analytics))
	for i, a := range s.analytics {
		snapshot := *a
		out[i] = &snapshot
	}
	return out
}

// AnalyticsFor returns the analytics record for a posted post, if any.
func (s *Store) AnalyticsFor(postID string) (*models.Analytics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analyticsByPost[postID]
	if !ok {
		return nil, false
	}
	snapshot := *a
	return &snapshot, true
}

// EngagementTotals sums likes, comments, and shares across all posts.
func (s *Store) EngagementTotals() models.EngagementTotals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var totals models.EngagementTotals
	for _, a := range s.analytics {
		totals.Likes += a.Likes
		totals.Comments += a.Comments
		totals.Shares += a.Shares
	}
	return totals
}

// Timeline merges scheduled and posted posts into one calendar view ordered
// by scheduled time (insertion order breaks ties). Overdue scheduled posts
// are labeled missed until a tick promotes them.
func (s *Store) Timeline(now time.Time) []*models.TimelineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*models.TimelineEntry, 0, len(s.scheduled)+len(s.posted))
	for _, post := range s.scheduled {
		status := models.TimelineStatusScheduled
		if !post.ScheduledAt.After(now) {
			status = models.TimelineStatusMissed
		}
		entries = append(entries, &models.TimelineEntry{
			ID:          post.ID,
			Platforms:   append([]models.Platform(nil), post.Platforms...),
			Caption:     post.Caption,
			Hashtags:    append([]string(nil), post.Hashtags...),
			ImageURL:    post.ImageURL,
			ScheduledAt: post.ScheduledAt,
			Status:      status,
		})
	}
	for _, post := range s.posted {
		postedAt := post.PostedAt
		entries = append(entries, &models.TimelineEntry{
			ID:          post.ID,
			Platforms:   append([]models.Platform(nil), post.Platforms...),
			Caption:     post.Caption,
			Hashtags:    append([]string(nil), post.Hashtags...),
			ImageURL:    post.ImageURL,
			ScheduledAt: post.ScheduledAt,
			PostedAt:    &postedAt,
			Status:      models.TimelineStatusPosted,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ScheduledAt.Before(entries[j].ScheduledAt)
	})
	return entries
}

func copyScheduled(post *models.ScheduledPost) *models.ScheduledPost {
	snapshot := *post
	snapshot.Platforms = append([]models.Platform(nil), post.Platforms...)
	snapshot.Hashtags = append([]string(nil), post.Hashtags...)
	return &snapshot
}

func copyPosted(post *models.PostedPost) *models.PostedPost {
	snapshot := *post
	snapshot.Platforms = append([]models.Platform(nil), post.Platforms...)
	snapshot.Hashtags = append([]string(nil), post.Hashtags...)
	return &snapshot
}
