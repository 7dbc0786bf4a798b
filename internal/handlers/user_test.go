package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/cruiseline/cruise-booking-api/internal/models"
)

func TestUserListCustomersOnly(t *testing.T) {
	db := setupDB(t)
	handler := NewUserHandler(db)

	seedUser(t, db, "Jane", "jane@example.com")
	db.Create(&models.User{Name: "admin", Email: "admin@cruise.com", Role: models.RoleAdmin})

	list, err := handler.HandleList(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 1 || list.Body[0].Email != "jane@example.com" {
		t.Errorf("expected only the customer, got %+v", list.Body)
	}
}

func TestUserCreateAndUpdate(t *testing.T) {
	db := setupDB(t)
	handler := NewUserHandler(db)
	ctx := context.Background()

	created, err := handler.HandleCreate(ctx, &UserRequest{Body: UserFields{Name: "Jane", Email: "Jane@Example.com", Phone: "0812345678"}})
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	if created.Body.Role != models.RoleCustomer || created.Body.Email != "jane@example.com" {
		t.Errorf("unexpected user %+v", created.Body)
	}

	_, err = handler.HandleCreate(ctx, &UserRequest{Body: UserFields{Name: "Copy", Email: "jane@example.com"}})
	expectError(t, err, http.StatusBadRequest, "Email already exists")

	other := seedUser(t, db, "Bob", "bob@example.com")

	_, err = handler.HandleUpdate(ctx, &UpdateUserRequest{ID: other.ID, Body: UserFields{Name: "Bob", Email: "jane@example.com"}})
	expectError(t, err, http.StatusBadRequest, "Email already exists")

	updated, err := handler.HandleUpdate(ctx, &UpdateUserRequest{ID: created.Body.ID, Body: UserFields{Name: "Jane Doe", Email: "jane@example.com"}})
	if err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if updated.Body.Name != "Jane Doe" || updated.Body.Phone != "" {
		t.Errorf("unexpected update result %+v", updated.Body)
	}

	_, err = handler.HandleUpdate(ctx, &UpdateUserRequest{ID: created.Body.ID, Body: UserFields{Name: "No email"}})
	expectError(t, err, http.StatusBadRequest, "")

	_, err = handler.HandleCreate(ctx, &UserRequest{Body: UserFields{Name: "   ", Email: "blank@example.com"}})
	expectError(t, err, http.StatusBadRequest, "name is required")
	_, err = handler.HandleUpdate(ctx, &UpdateUserRequest{ID: created.Body.ID, Body: UserFields{Name: "   ", Email: "jane@example.com"}})
	expectError(t, err, http.StatusBadRequest, "name is required")
}

func TestUserDeleteCascades(t *testing.T) {
	db := setupDB(t)
	users := NewUserHandler(db)
	bookings := NewBookingHandler(db, nil, "ticket-secret")
	reviews := NewReviewHandler(db)
	ctx := context.Background()

	jane := seedUser(t, db, "Jane", "jane@example.com")
	bob := seedUser(t, db, "Bob", "bob@example.com")
	cruise := seedCruise(t, db, "Sunset Dinner")

	for _, u := range []models.User{jane, jane, bob} {
		if _, err := bookings.HandleCreate(ctx, bookingRequest(u.ID, &cruise.ID)); err != nil {
			t.Fatalf("booking HandleCreate returned error: %v", err)
		}
	}
	if _, err := reviews.HandleCreate(ctx, reviewRequest(jane.ID, &cruise.ID, 1)); err != nil {
		t.Fatalf("review HandleCreate returned error: %v", err)
	}
	if _, err := reviews.HandleCreate(ctx, reviewRequest(bob.ID, &cruise.ID, 5)); err != nil {
		t.Fatalf("review HandleCreate returned error: %v", err)
	}

	resp, err := users.HandleDelete(ctx, &IDInput{ID: jane.ID})
	if err != nil {
		t.Fatalf("HandleDelete returned error: %v", err)
	}
	if resp.Body.Message != "User deleted successfully" {
		t.Errorf("unexpected message %q", resp.Body.Message)
	}

	var count int64
	db.Model(&models.Booking{}).Where("user_id = ?", jane.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected jane's bookings to be deleted, got %d", count)
	}
	db.Model(&models.Review{}).Where("user_id = ?", jane.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected jane's reviews to be deleted, got %d", count)
	}

	c := reloadCruise(t, db, cruise.ID)
	if c.TotalBookings != 1 {
		t.Errorf("expected totalBookings 1, got %d", c.TotalBookings)
	}
	if c.TotalReviews != 1 || c.Rating != 5 {
		t.Errorf("expected 1 review rated 5, got %d/%v", c.TotalReviews, c.Rating)
	}

	_, err = users.HandleGet(ctx, &IDInput{ID: jane.ID})
	expectError(t, err, http.StatusNotFound, "User not found")
	_, err = users.HandleDelete(ctx, &IDInput{ID: jane.ID})
	expectError(t, err, http.StatusNotFound, "User not found")
}
