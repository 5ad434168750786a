package store

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"

	"github.com/erazemk/shutils/internal/db"
	"github.com/erazemk/shutils/internal/model"
)

var (
	versions = []string{"Red", "Crystal", "Emerald", "Platinum", "Scarlet", "Violet"}
	methods  = []string{"Soft reset", "Masuda", "Random encounter", "Chain fishing", "Outbreak"}
	places   = []string{"Route 1", "Viridian Forest", "Mt. Moon", "Safari Zone", "Victory Road"}
)

// timeEqual compares timestamps by instant, ignoring location and monotonic
// clock readings.
var timeEqual = cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })

func newTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	return New(db.NewTestDB(t)), context.Background()
}

func fakeTime(f *gofakeit.Faker) time.Time {
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return f.DateRange(from, to).UTC().Truncate(time.Second)
}

func fakeHunt(f *gofakeit.Faker) *model.Hunt {
	start := fakeTime(f)
	return &model.Hunt{
		Target:             model.SpeciesID(f.Number(1, 1025)),
		PreviousEncounters: int64(f.Number(0, 5000)),
		PhaseEncounters:    int64(f.Number(0, 500)),
		PhaseCount:         int64(f.Number(1, 6)),
		StartTime:          &start,
		Version:            model.Ptr(f.RandomString(versions)),
		Method:             model.Ptr(f.RandomString(methods)),
		Place:              model.Ptr(f.RandomString(places)),
		Notes:              model.Ptr(f.Sentence(f.Number(2, 6))),
	}
}

func fakeShiny(f *gofakeit.Faker, huntID *int64) *model.Shiny {
	found := fakeTime(f)
	gender := model.Gender(f.Number(0, 2))
	return &model.Shiny{
		Species:         model.SpeciesID(f.Number(1, 1025)),
		Gender:          &gender,
		TotalEncounters: model.Ptr(int64(f.Number(1, 8000))),
		PhaseEncounters: model.Ptr(int64(f.Number(1, 800))),
		PhaseNumber:     model.Ptr(int64(f.Number(1, 6))),
		FoundTime:       &found,
		Version:         model.Ptr(f.RandomString(versions)),
		Method:          model.Ptr(f.RandomString(methods)),
		Place:           model.Ptr(f.RandomString(places)),
		HuntID:          huntID,
	}
}

func mustUpsertHunt(t *testing.T, s *Store, h *model.Hunt) *model.Hunt {
	t.Helper()
	saved, err := s.UpsertHunt(context.Background(), h)
	if err != nil {
		t.Fatalf("UpsertHunt: %v", err)
	}
	return saved
}

func mustUpsertShiny(t *testing.T, s *Store, sh *model.Shiny) *model.Shiny {
	t.Helper()
	saved, err := s.UpsertShiny(context.Background(), sh)
	if err != nil {
		t.Fatalf("UpsertShiny: %v", err)
	}
	return saved
}
