package review

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"petsitter/database/repository/memory"
	"petsitter/models"
	"petsitter/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapCache struct {
	mu          sync.Mutex
	values      map[string]float64
	generations map[string]int64
	invalidated int
}

func newMapCache() *mapCache {
	return &mapCache{values: map[string]float64{}, generations: map[string]int64{}}
}

func (c *mapCache) Get(_ context.Context, sitterID string) (float64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[sitterID]
	return v, ok, nil
}

func (c *mapCache) Generation(_ context.Context, sitterID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[sitterID], nil
}

func (c *mapCache) SetIfGeneration(_ context.Context, sitterID string, gen int64, avg float64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[sitterID] != gen {
		return false, nil
	}
	c.values[sitterID] = avg
	return true, nil
}

func (c *mapCache) Invalidate(_ context.Context, sitterID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, sitterID)
	c.generations[sitterID]++
	c.invalidated++
	return nil
}

// pausingReviews holds AverageForSitter after it has computed its result until release is closed.
type pausingReviews struct {
	*memory.ReviewRepo
	computed chan struct{}
	release  chan struct{}
}

func (r *pausingReviews) AverageForSitter(ctx context.Context, sitterID string) (float64, int64, error) {
	avg, count, err := r.ReviewRepo.AverageForSitter(ctx, sitterID)
	close(r.computed)
	<-r.release
	return avg, count, err
}

type fixture struct {
	svc      *DefaultReviewService
	bookings *memory.BookingRepo
	cache    *mapCache
}

func newFixture() *fixture {
	store := memory.NewStore()
	f := &fixture{bookings: memory.NewBookingRepo(store), cache: newMapCache()}
	f.svc = &DefaultReviewService{
		Bookings: f.bookings,
		Reviews:  memory.NewReviewRepo(store),
		Cache:    f.cache,
		Logger:   zap.NewNop(),
	}
	return f
}

func (f *fixture) booking(t *testing.T, id string, status models.BookingStatus, payment models.PaymentStatus) {
	t.Helper()
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, f.bookings.Create(context.Background(), &models.Booking{
		ID: id, MemberID: "member-1", SitterID: "sitter-1", StartTime: start, EndTime: start.Add(2 * time.Hour),
		Status: status, PaymentStatus: payment, SlipImage: "https://res.example.com/slip",
	}))
}

func input(bookingID string, rating int) models.ReviewInput {
	return models.ReviewInput{BookingID: bookingID, MemberID: "member-1", SitterID: "sitter-1", Rating: rating, ReviewText: "Lovely"}
}

func TestAverageRatingIsZeroWithoutReviews(t *testing.T) {
	f := newFixture()
	avg, err := f.svc.AverageRating(context.Background(), "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestAverageRatingIsMean(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	for i, rating := range []int{5, 4, 2} {
		id := fmt.Sprintf("b%d", i)
		f.booking(t, id, models.BookingConfirmed, models.PaymentPaid)
		_, err := f.svc.SubmitReview(ctx, input(id, rating))
		require.NoError(t, err)
	}

	avg, err := f.svc.AverageRating(ctx, "sitter-1")
	require.NoError(t, err)
	assert.InDelta(t, 11.0/3.0, avg, 1e-9)

	list, err := f.svc.ListBySitter(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 3)
	assert.InDelta(t, 11.0/3.0, list.AverageRating, 1e-9)
}

func TestSubmitReviewInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.booking(t, "b1", models.BookingConfirmed, models.PaymentPaid)
	f.booking(t, "b2", models.BookingConfirmed, models.PaymentPaid)

	_, err := f.svc.SubmitReview(ctx, input("b1", 5))
	require.NoError(t, err)
	avg, err := f.svc.AverageRating(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
	assert.Contains(t, f.cache.values, "sitter-1")

	_, err = f.svc.SubmitReview(ctx, input("b2", 3))
	require.NoError(t, err)
	avg, err = f.svc.AverageRating(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, avg)
	assert.Equal(t, 2, f.cache.invalidated)
}

func TestSubmitReviewValidation(t *testing.T) {
	f := newFixture()
	f.booking(t, "b1", models.BookingConfirmed, models.PaymentPaid)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.SubmitReview(context.Background(), input("b1", rating))
		assert.Equal(t, utils.KindValidation, utils.KindOf(err), "rating %d", rating)
	}

	in := input("b1", 4)
	in.ReviewText = "   "
	_, err := f.svc.SubmitReview(context.Background(), in)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestSubmitReviewEligibility(t *testing.T) {
	f := newFixture()
	f.booking(t, "unpaid", models.BookingConfirmed, models.PaymentPending)
	f.booking(t, "unconfirmed", models.BookingPending, models.PaymentPaid)
	f.booking(t, "paid", models.BookingConfirmed, models.PaymentPaid)

	tests := []struct {
		name string
		in   models.ReviewInput
	}{
		{"missing booking", input("nope", 5)},
		{"not paid", input("unpaid", 5)},
		{"not confirmed", input("unconfirmed", 5)},
		{"other member", models.ReviewInput{BookingID: "paid", MemberID: "member-2", SitterID: "sitter-1", Rating: 5, ReviewText: "x"}},
		{"other sitter", models.ReviewInput{BookingID: "paid", MemberID: "member-1", SitterID: "sitter-2", Rating: 5, ReviewText: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.SubmitReview(context.Background(), tt.in)
			require.Error(t, err)
			assert.Equal(t, utils.KindNotFound, utils.KindOf(err))
		})
	}
}

func TestConcurrentSubmissionsKeepOneReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.booking(t, "b1", models.BookingConfirmed, models.PaymentPaid)

	var ok, conflicts int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, err := f.svc.SubmitReview(ctx, input("b1", rating))
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case utils.IsKind(err, utils.KindConflict):
				atomic.AddInt32(&conflicts, 1)
			}
		}(i%5 + 1)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(19), conflicts)

	list, err := f.svc.ListBySitter(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Len(t, list.Reviews, 1)
}

func TestStaleAverageIsNotCachedAfterConcurrentReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.booking(t, "b1", models.BookingConfirmed, models.PaymentPaid)

	reviews := f.svc.Reviews.(*memory.ReviewRepo)
	slow := &DefaultReviewService{
		Bookings: f.bookings,
		Reviews:  &pausingReviews{ReviewRepo: reviews, computed: make(chan struct{}), release: make(chan struct{})},
		Cache:    f.cache,
		Logger:   zap.NewNop(),
	}
	paused := slow.Reviews.(*pausingReviews)

	done := make(chan float64)
	go func() {
		avg, err := slow.AverageRating(ctx, "sitter-1")
		assert.NoError(t, err)
		done <- avg
	}()

	<-paused.computed
	_, err := f.svc.SubmitReview(ctx, input("b1", 5))
	require.NoError(t, err)
	close(paused.release)
	assert.Equal(t, 0.0, <-done)

	_, cached, _ := f.cache.Get(ctx, "sitter-1")
	assert.False(t, cached)

	avg, err := f.svc.AverageRating(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, avg)
}

// racingReviews deletes the booking right before the review is inserted.
type racingReviews struct {
	*memory.ReviewRepo
	bookings *memory.BookingRepo
}

func (r *racingReviews) Create(ctx context.Context, review *models.Review) error {
	if err := r.bookings.DeleteWithReview(ctx, review.BookingID); err != nil {
		return err
	}
	return r.ReviewRepo.Create(ctx, review)
}

func TestReviewOfBookingDeletedMeanwhileIsDropped(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.booking(t, "b1", models.BookingConfirmed, models.PaymentPaid)
	f.svc.Reviews = &racingReviews{ReviewRepo: f.svc.Reviews.(*memory.ReviewRepo), bookings: f.bookings}

	_, err := f.svc.SubmitReview(ctx, input("b1", 5))
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	avg, err := f.svc.AverageRating(ctx, "sitter-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}
