// Package seed populates the store with demo data for development. It is
// never run in production profiles.
package seed

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"postpilot/internal/generator"
	"postpilot/internal/models"
	"postpilot/internal/store"
)

// Options configuration for the seeder
type Options struct {
	AccountsPerPlatform int
	ScheduledPosts      int
	// OverduePosts get past scheduled times so the first ticks have work.
	OverduePosts int
}

// DefaultOptions returns a small demo data set.
func DefaultOptions() Options {
	return Options{
		AccountsPerPlatform: 1,
		ScheduledPosts:      4,
		OverduePosts:        2,
	}
}

var categories = []string{"Fitness", "Travel", "Food", "Tech", "Fashion", "Business"}

var topicsByCategory = map[string][]string{
	"Fitness":  {"Morning routine", "Home workouts", "Recovery days"},
	"Travel":   {"Hidden beaches", "City weekends", "Packing light"},
	"Food":     {"Weeknight dinners", "Sourdough basics", "Meal prep"},
	"Tech":     {"Go concurrency", "Home lab setup", "Terminal workflows"},
	"Fashion":  {"Capsule wardrobe", "Autumn layers", "Thrift finds"},
	"Business": {"Building in public", "First customers", "Pricing experiments"},
}

// Run fills the store with demo accounts and scheduled posts.
func Run(s *store.Store, logger *slog.Logger, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, platform := range models.Platforms {
		for i := 0; i < opts.AccountsPerPlatform; i++ {
			name := fmt.Sprintf("@%s", gofakeit.Username())
			if _, err := s.AddAccount(store.AddAccountInput{Platform: platform, Name: name}); err != nil {
				return fmt.Errorf("seed account: %w", err)
			}
		}
	}

	total := opts.ScheduledPosts + opts.OverduePosts
	for i := 0; i < total; i++ {
		category := categories[r.Intn(len(categories))]
		topics := topicsByCategory[category]
		topic := topics[r.Intn(len(topics))]
		content := generator.Generate(category, topic)

		scheduledAt := time.Now().Add(time.Duration(5+r.Intn(120)) * time.Minute)
		if i < opts.OverduePosts {
			scheduledAt = time.Now().Add(-time.Duration(1+r.Intn(30)) * time.Minute)
		}

		platforms := randomPlatforms(r)
		if _, err := s.AddScheduledPost(store.AddScheduledPostInput{
			Platforms:   platforms,
			Caption:     content.Caption,
			Hashtags:    content.Hashtags,
			ImageURL:    content.ImageURL,
			ScheduledAt: scheduledAt,
		}); err != nil {
			return fmt.Errorf("seed scheduled post: %w", err)
		}
	}

	logger.Info("seeded demo data",
		slog.Int("accounts", len(s.Accounts())),
		slog.Int("scheduled_posts", len(s.ScheduledPosts())),
	)
	return nil
}

// randomPlatforms picks a non-empty subset of platforms.
func randomPlatforms(r *rand.Rand) []models.Platform {
	var out []models.Platform
	for _, p := range models.Platforms {
		if r.Intn(2) == 0 {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = append(out, models.Platforms[r.Intn(len(models.Platforms))])
	}
	return out
}
