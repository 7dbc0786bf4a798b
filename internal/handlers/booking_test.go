package handlers

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/resolver"
	"github.com/cruiseline/cruise-booking-api/internal/ticket"
)

type recordingNotifier struct {
	bookings []resolver.BookingView
}

func (n *recordingNotifier) NotifyBooking(b resolver.BookingView) error {
	n.bookings = append(n.bookings, b)
	return nil
}

func bookingRequest(userID string, cruiseID *string) *BookingRequest {
	return &BookingRequest{Body: BookingFields{
		UserID:         userID,
		CruiseID:       cruiseID,
		CruiseDate:     "2026-12-24",
		NumberOfGuests: 2,
		PackageType:    "Dinner Cruise",
		CruisingTime:   "18:00-20:00",
	}}
}

func TestBookingCreate(t *testing.T) {
	db := setupDB(t)
	notifier := &recordingNotifier{}
	handler := NewBookingHandler(db, notifier, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")
	cruise := seedCruise(t, db, "Sunset Dinner")

	resp, err := handler.HandleCreate(context.Background(), bookingRequest(user.ID, &cruise.ID))
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	b := resp.Body
	if b.User == nil || b.User.Email != "jane@example.com" || b.User.Phone != user.Phone {
		t.Errorf("expected embedded user, got %+v", b.User)
	}
	if b.Cruise == nil || b.Cruise.Title != "Sunset Dinner" {
		t.Errorf("expected embedded cruise, got %+v", b.Cruise)
	}
	want := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	if !b.CruiseDate.Equal(want) {
		t.Errorf("expected cruise date %v, got %v", want, b.CruiseDate)
	}

	if got := reloadCruise(t, db, cruise.ID).TotalBookings; got != 1 {
		t.Errorf("expected totalBookings 1, got %d", got)
	}
	if len(notifier.bookings) != 1 || notifier.bookings[0].ID != b.ID {
		t.Errorf("expected one notification for the booking, got %d", len(notifier.bookings))
	}
}

func TestBookingCreateWithoutCruise(t *testing.T) {
	db := setupDB(t)
	handler := NewBookingHandler(db, nil, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")

	req := bookingRequest(user.ID, ptr(""))
	req.Body.CruiseDate = "2026-12-24T18:00:00+07:00"
	resp, err := handler.HandleCreate(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}
	if resp.Body.CruiseID != nil || resp.Body.Cruise != nil {
		t.Errorf("expected no cruise reference, got %v", resp.Body.CruiseID)
	}
}

func TestBookingCreateRejects(t *testing.T) {
	db := setupDB(t)
	handler := NewBookingHandler(db, nil, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")
	cruise := seedCruise(t, db, "Sunset Dinner")

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := handler.HandleCreate(context.Background(), bookingRequest("6f1c1c7e-3c1e-4b7a-9d43-7a3f0b0d6a11", &cruise.ID))
		expectError(t, err, http.StatusNotFound, "User not found")
	})

	t.Run("UnknownCruise", func(t *testing.T) {
		_, err := handler.HandleCreate(context.Background(), bookingRequest(user.ID, ptr("6f1c1c7e-3c1e-4b7a-9d43-7a3f0b0d6a11")))
		expectError(t, err, http.StatusNotFound, "Cruise not found")
	})

	t.Run("NoGuests", func(t *testing.T) {
		req := bookingRequest(user.ID, &cruise.ID)
		req.Body.NumberOfGuests = 0
		_, err := handler.HandleCreate(context.Background(), req)
		expectError(t, err, http.StatusBadRequest, "")
	})

	t.Run("BlankUser", func(t *testing.T) {
		_, err := handler.HandleCreate(context.Background(), bookingRequest("  ", &cruise.ID))
		expectError(t, err, http.StatusBadRequest, "userId is required")
	})

	t.Run("BadDate", func(t *testing.T) {
		req := bookingRequest(user.ID, &cruise.ID)
		req.Body.CruiseDate = "next tuesday"
		_, err := handler.HandleCreate(context.Background(), req)
		expectError(t, err, http.StatusBadRequest, "")
	})

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	if count != 0 {
		t.Errorf("expected nothing persisted, got %d bookings", count)
	}
	if got := reloadCruise(t, db, cruise.ID).TotalBookings; got != 0 {
		t.Errorf("expected totalBookings 0, got %d", got)
	}
}

func TestBookingUpdateMovesCounter(t *testing.T) {
	db := setupDB(t)
	handler := NewBookingHandler(db, nil, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")
	from := seedCruise(t, db, "From")
	to := seedCruise(t, db, "To")

	created, err := handler.HandleCreate(context.Background(), bookingRequest(user.ID, &from.ID))
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	req := &UpdateBookingRequest{ID: created.Body.ID, Body: bookingRequest(user.ID, &to.ID).Body}
	req.Body.NumberOfGuests = 4
	updated, err := handler.HandleUpdate(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleUpdate returned error: %v", err)
	}
	if updated.Body.NumberOfGuests != 4 || updated.Body.Cruise == nil || updated.Body.Cruise.ID != to.ID {
		t.Errorf("unexpected update result %+v", updated.Body)
	}
	if !updated.Body.CreatedAt.Equal(created.Body.CreatedAt) {
		t.Errorf("expected createdAt to be preserved")
	}

	if got := reloadCruise(t, db, from.ID).TotalBookings; got != 0 {
		t.Errorf("expected old cruise totalBookings 0, got %d", got)
	}
	if got := reloadCruise(t, db, to.ID).TotalBookings; got != 1 {
		t.Errorf("expected new cruise totalBookings 1, got %d", got)
	}
}

func TestBookingDelete(t *testing.T) {
	db := setupDB(t)
	handler := NewBookingHandler(db, nil, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")
	cruise := seedCruise(t, db, "Sunset Dinner")

	created, err := handler.HandleCreate(context.Background(), bookingRequest(user.ID, &cruise.ID))
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	resp, err := handler.HandleDelete(context.Background(), &IDInput{ID: created.Body.ID})
	if err != nil {
		t.Fatalf("HandleDelete returned error: %v", err)
	}
	if resp.Body.Message != "Booking deleted successfully" {
		t.Errorf("unexpected message %q", resp.Body.Message)
	}
	if got := reloadCruise(t, db, cruise.ID).TotalBookings; got != 0 {
		t.Errorf("expected totalBookings 0, got %d", got)
	}

	_, err = handler.HandleGet(context.Background(), &IDInput{ID: created.Body.ID})
	expectError(t, err, http.StatusNotFound, "Booking not found")
	_, err = handler.HandleDelete(context.Background(), &IDInput{ID: "abc"})
	expectError(t, err, http.StatusBadRequest, "Invalid booking ID")
}

func TestBookingListMissingReferences(t *testing.T) {
	db := setupDB(t)
	handler := NewBookingHandler(db, nil, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")

	orphan := models.Booking{UserID: "6f1c1c7e-3c1e-4b7a-9d43-7a3f0b0d6a11", CruiseDate: time.Now(), NumberOfGuests: 1}
	if err := db.Create(&orphan).Error; err != nil {
		t.Fatalf("failed to create booking: %v", err)
	}
	if _, err := handler.HandleCreate(context.Background(), bookingRequest(user.ID, nil)); err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	list, err := handler.HandleList(context.Background(), &struct{}{})
	if err != nil {
		t.Fatalf("HandleList returned error: %v", err)
	}
	if len(list.Body) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(list.Body))
	}
	for _, b := range list.Body {
		if b.ID == orphan.ID && b.User != nil {
			t.Errorf("expected null user for dangling reference, got %+v", b.User)
		}
	}
}

func TestBookingTicket(t *testing.T) {
	db := setupDB(t)
	handler := NewBookingHandler(db, nil, "ticket-secret")
	user := seedUser(t, db, "Jane", "jane@example.com")
	cruise := seedCruise(t, db, "Sunset Dinner")

	created, err := handler.HandleCreate(context.Background(), bookingRequest(user.ID, &cruise.ID))
	if err != nil {
		t.Fatalf("HandleCreate returned error: %v", err)
	}

	pdf, err := handler.HandleTicket(context.Background(), &IDInput{ID: created.Body.ID})
	if err != nil {
		t.Fatalf("HandleTicket returned error: %v", err)
	}
	if pdf.ContentType != "application/pdf" || !bytes.HasPrefix(pdf.Body, []byte("%PDF")) {
		t.Errorf("expected a PDF document, got %s", pdf.ContentType)
	}

	verify := &VerifyTicketRequest{}
	verify.Body.Code = ticket.Payload(created.Body.ID, "ticket-secret")
	ok, err := handler.HandleVerifyTicket(context.Background(), verify)
	if err != nil {
		t.Fatalf("HandleVerifyTicket returned error: %v", err)
	}
	if !ok.Body.Valid || ok.Body.BookingID != created.Body.ID || ok.Body.Booking == nil {
		t.Errorf("expected valid ticket for booking, got %+v", ok.Body)
	}

	verify.Body.Code = ticket.Payload(created.Body.ID, "forged")
	bad, err := handler.HandleVerifyTicket(context.Background(), verify)
	if err != nil {
		t.Fatalf("HandleVerifyTicket returned error: %v", err)
	}
	if bad.Body.Valid {
		t.Error("expected forged ticket to be rejected")
	}
}
