package usecase

import (
	"context"
	"testing"

	"store-ratings/internal/data/entity"
	"store-ratings/internal/dto/request"
	"store-ratings/pkg/apperr"

	"github.com/google/uuid"
)

func assertKind(t *testing.T, err error, want apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	kind, ok := apperr.KindOf(err)
	if !ok {
		t.Fatalf("expected %s error, got untyped: %v", want, err)
	}
	if kind != want {
		t.Fatalf("expected %s error, got %s: %v", want, kind, err)
	}
}

func TestSubmitRatingAcceptsFullRange(t *testing.T) {
	repo, users, stores, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	store := seedStore(stores, owner.ID, "Corner Shop")

	for value := 1; value <= 5; value++ {
		rater := seedUser(users, entity.RoleNormalUser, uuid.NewString()+"@test.dev")
		resp, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
			&request.SubmitRatingRequest{Value: value})
		if err != nil {
			t.Fatalf("value %d: unexpected error: %v", value, err)
		}
		if resp.Value != value {
			t.Fatalf("value %d: response carries %d", value, resp.Value)
		}
	}
}

func TestSubmitRatingRejectsOutOfRange(t *testing.T) {
	repo, users, stores, ratings := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")
	store := seedStore(stores, owner.ID, "Corner Shop")

	for _, value := range []int{0, 6, -1, 100} {
		_, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
			&request.SubmitRatingRequest{Value: value})
		assertKind(t, err, apperr.KindValidation)
	}

	// A rejected submission must leave no row behind
	count, _ := ratings.CountByStoreID(context.Background(), store.ID)
	if count != 0 {
		t.Fatalf("expected no ratings after rejections, got %d", count)
	}
}

func TestSubmitRatingUnknownStore(t *testing.T) {
	repo, users, _, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")

	_, err := svc.SubmitRating(context.Background(), rater.ID, uuid.NewString(),
		&request.SubmitRatingRequest{Value: 3})
	assertKind(t, err, apperr.KindNotFound)

	_, err = svc.SubmitRating(context.Background(), rater.ID, "not-a-uuid",
		&request.SubmitRatingRequest{Value: 3})
	assertKind(t, err, apperr.KindValidation)
}

func TestSubmitRatingReplacesPrevious(t *testing.T) {
	repo, users, stores, ratings := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")
	store := seedStore(stores, owner.ID, "Corner Shop")

	first, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
		&request.SubmitRatingRequest{Value: 3})
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	second, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
		&request.SubmitRatingRequest{Value: 5})
	if err != nil {
		t.Fatalf("second submission failed: %v", err)
	}

	// Same row, new value
	if second.ID != first.ID {
		t.Fatalf("resubmission created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.Value != 5 {
		t.Fatalf("expected replaced value 5, got %d", second.Value)
	}

	count, _ := ratings.CountByStoreID(context.Background(), store.ID)
	if count != 1 {
		t.Fatalf("expected exactly one rating, got %d", count)
	}

	stats, err := svc.GetStoreRatingStats(context.Background(), store.ID.String())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.AverageRating != 5 || stats.TotalRatings != 1 {
		t.Fatalf("expected average 5 over 1 rating, got %.2f over %d",
			stats.AverageRating, stats.TotalRatings)
	}
}

func TestStoreRatingStatsEmpty(t *testing.T) {
	repo, users, stores, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	store := seedStore(stores, owner.ID, "Quiet Shop")

	stats, err := svc.GetStoreRatingStats(context.Background(), store.ID.String())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.AverageRating != 0 || stats.TotalRatings != 0 {
		t.Fatalf("expected 0 average over 0 ratings, got %.2f over %d",
			stats.AverageRating, stats.TotalRatings)
	}
}

func TestStoreRatingStatsAverage(t *testing.T) {
	repo, users, stores, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	store := seedStore(stores, owner.ID, "Busy Shop")

	for _, value := range []int{5, 5, 4, 2} {
		rater := seedUser(users, entity.RoleNormalUser, uuid.NewString()+"@test.dev")
		if _, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
			&request.SubmitRatingRequest{Value: value}); err != nil {
			t.Fatalf("submission failed: %v", err)
		}
	}

	stats, err := svc.GetStoreRatingStats(context.Background(), store.ID.String())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.AverageRating != 4.0 {
		t.Fatalf("expected average 4.0, got %.2f", stats.AverageRating)
	}
	if stats.TotalRatings != 4 {
		t.Fatalf("expected 4 ratings, got %d", stats.TotalRatings)
	}
}

func TestUpdateRatingOwnerOnly(t *testing.T) {
	repo, users, stores, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")
	other := seedUser(users, entity.RoleNormalUser, "other@test.dev")
	store := seedStore(stores, owner.ID, "Corner Shop")

	submitted, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
		&request.SubmitRatingRequest{Value: 4})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	newValue := 2
	_, err = svc.UpdateRating(context.Background(), submitted.ID, other.ID,
		&request.UpdateRatingRequest{Value: &newValue})
	assertKind(t, err, apperr.KindAuthorization)

	updated, err := svc.UpdateRating(context.Background(), submitted.ID, rater.ID,
		&request.UpdateRatingRequest{Value: &newValue})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Value != 2 {
		t.Fatalf("expected updated value 2, got %d", updated.Value)
	}

	stats, _ := svc.GetStoreRatingStats(context.Background(), store.ID.String())
	if stats.AverageRating != 2 || stats.TotalRatings != 1 {
		t.Fatalf("expected average 2 over 1 rating, got %.2f over %d",
			stats.AverageRating, stats.TotalRatings)
	}
}

func TestUpdateRatingRejectsOutOfRange(t *testing.T) {
	repo, users, stores, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")
	store := seedStore(stores, owner.ID, "Corner Shop")

	submitted, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
		&request.SubmitRatingRequest{Value: 4})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	bad := 9
	_, err = svc.UpdateRating(context.Background(), submitted.ID, rater.ID,
		&request.UpdateRatingRequest{Value: &bad})
	assertKind(t, err, apperr.KindValidation)
}

func TestDeleteRatingOwnerOrAdmin(t *testing.T) {
	repo, users, stores, ratings := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")
	other := seedUser(users, entity.RoleNormalUser, "other@test.dev")
	admin := seedUser(users, entity.RoleSystemAdmin, "admin@test.dev")
	store := seedStore(stores, owner.ID, "Corner Shop")

	submitted, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
		&request.SubmitRatingRequest{Value: 4})
	if err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	// Another normal user may not delete it
	err = svc.DeleteRating(context.Background(), submitted.ID, other.ID, entity.RoleNormalUser)
	assertKind(t, err, apperr.KindAuthorization)

	// The owner may
	if err := svc.DeleteRating(context.Background(), submitted.ID, rater.ID, entity.RoleNormalUser); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	count, _ := ratings.CountByStoreID(context.Background(), store.ID)
	if count != 0 {
		t.Fatalf("expected no ratings after delete, got %d", count)
	}

	// An administrator may delete any rating
	resubmitted, err := svc.SubmitRating(context.Background(), rater.ID, store.ID.String(),
		&request.SubmitRatingRequest{Value: 1})
	if err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}
	if err := svc.DeleteRating(context.Background(), resubmitted.ID, admin.ID, entity.RoleSystemAdmin); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}

	// Deleting again reports not found
	err = svc.DeleteRating(context.Background(), resubmitted.ID, admin.ID, entity.RoleSystemAdmin)
	assertKind(t, err, apperr.KindNotFound)
}

func TestGetUserRatings(t *testing.T) {
	repo, users, stores, _ := newTestRepo()
	svc := NewRatingService(repo, testLogger())

	owner := seedUser(users, entity.RoleStoreOwner, "owner@test.dev")
	rater := seedUser(users, entity.RoleNormalUser, "rater@test.dev")
	storeA := seedStore(stores, owner.ID, "Shop A")
	storeB := seedStore(stores, owner.ID, "Shop B")

	for _, store := range []string{storeA.ID.String(), storeB.ID.String()} {
		if _, err := svc.SubmitRating(context.Background(), rater.ID, store,
			&request.SubmitRatingRequest{Value: 3}); err != nil {
			t.Fatalf("submission failed: %v", err)
		}
	}

	result, err := svc.GetUserRatings(context.Background(), rater.ID.String(),
		&request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 ratings, got %d", len(result))
	}
	for _, rating := range result {
		if rating.User == nil || rating.User.ID != rater.ID.String() {
			t.Fatalf("rating missing user summary")
		}
		if rating.Store == nil {
			t.Fatalf("rating missing store summary")
		}
	}
}
