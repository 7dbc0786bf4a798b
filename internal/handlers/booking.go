package handlers

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/notifier"
	"github.com/cruiseline/cruise-booking-api/internal/resolver"
	"github.com/cruiseline/cruise-booking-api/internal/ticket"
	"github.com/cruiseline/cruise-booking-api/internal/validation"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingHandler struct {
	db           *gorm.DB
	notifier     notifier.Notifier
	ticketSecret string
}

func NewBookingHandler(db *gorm.DB, notifier notifier.Notifier, ticketSecret string) *BookingHandler {
	return &BookingHandler{db: db, notifier: notifier, ticketSecret: ticketSecret}
}

type BookingFields struct {
	UserID         string  `json:"userId" required:"true" validate:"notblank"`
	CruiseID       *string `json:"cruiseId,omitempty" nullable:"true" doc:"Optional cruise reference"`
	CruiseDate     string  `json:"cruiseDate" required:"true" doc:"YYYY-MM-DD or RFC 3339 timestamp" validate:"notblank"`
	NumberOfGuests int     `json:"numberOfGuests" required:"true" validate:"min=1"`
	PackageType    string  `json:"packageType,omitempty" doc:"Name of the chosen package"`
	CruisingTime   string  `json:"cruisingTime,omitempty"`
}

// booking validates the body and returns the booking it describes, without id.
func (f BookingFields) booking() (models.Booking, error) {
	if err := validation.Check(f); err != nil {
		return models.Booking{}, err
	}

	date, err := parseCruiseDate(f.CruiseDate)
	if err != nil {
		return models.Booking{}, huma.Error400BadRequest("cruiseDate must be a date (YYYY-MM-DD) or an RFC 3339 timestamp")
	}

	return models.Booking{
		UserID:         f.UserID,
		CruiseID:       optionalID(f.CruiseID),
		CruiseDate:     date,
		NumberOfGuests: f.NumberOfGuests,
		PackageType:    f.PackageType,
		CruisingTime:   f.CruisingTime,
	}, nil
}

func parseCruiseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

type BookingRequest struct {
	Body BookingFields
}

type UpdateBookingRequest struct {
	ID   string `path:"id"`
	Body BookingFields
}

type BookingOutput struct {
	Body resolver.BookingView
}

type BookingListOutput struct {
	Body []resolver.BookingView
}

type TicketOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

type VerifyTicketRequest struct {
	Body struct {
		Code string `json:"code" required:"true" doc:"Payload scanned from the ticket QR code" validate:"notblank"`
	}
}

type VerifyTicketOutput struct {
	Body struct {
		Valid     bool                  `json:"valid"`
		BookingID string                `json:"bookingId,omitempty"`
		Booking   *resolver.BookingView `json:"booking,omitempty"`
	}
}

// checkReferences probes the user and, when set, the cruise of a booking.
func checkReferences(tx *gorm.DB, userID string, cruiseID *string) error {
	if err := resolver.UserExists(tx, userID); err != nil {
		return err
	}
	if cruiseID != nil {
		return resolver.CruiseExists(tx, *cruiseID)
	}
	return nil
}

func (h *BookingHandler) load(db *gorm.DB, id string) (resolver.BookingView, error) {
	var booking models.Booking
	if err := resolver.PopulateBookings(db).First(&booking, "id = ?", id).Error; err != nil {
		return resolver.BookingView{}, err
	}
	return resolver.NewBookingView(booking), nil
}

// HandleList returns all bookings, newest first, with user and cruise embedded.
func (h *BookingHandler) HandleList(ctx context.Context, input *struct{}) (*BookingListOutput, error) {
	var bookings []models.Booking
	if err := resolver.PopulateBookings(h.db.WithContext(ctx)).Order("created_at DESC").Find(&bookings).Error; err != nil {
		return nil, storeError(err, "Booking", "fetch")
	}

	views := make([]resolver.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, resolver.NewBookingView(b))
	}
	return &BookingListOutput{Body: views}, nil
}

func (h *BookingHandler) HandleGet(ctx context.Context, input *IDInput) (*BookingOutput, error) {
	if err := checkID(input.ID, "Booking"); err != nil {
		return nil, err
	}

	view, err := h.load(h.db.WithContext(ctx), input.ID)
	if err != nil {
		return nil, storeError(err, "Booking", "fetch")
	}
	return &BookingOutput{Body: view}, nil
}

// HandleCreate stores the booking and bumps the cruise's booking counter in one transaction.
func (h *BookingHandler) HandleCreate(ctx context.Context, input *BookingRequest) (*BookingOutput, error) {
	booking, err := input.Body.booking()
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, booking.UserID, booking.CruiseID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&booking).Error; err != nil {
			return err
		}
		return resolver.AdjustBookingCount(tx, booking.CruiseID, 1)
	})
	if err != nil {
		return nil, storeError(err, "Booking", "create")
	}

	view, err := h.load(db, booking.ID)
	if err != nil {
		return nil, storeError(err, "Booking", "create")
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyBooking(view); err != nil {
			log.Printf("Failed to send booking notification: %v", err)
		}
	}

	return &BookingOutput{Body: view}, nil
}

func (h *BookingHandler) HandleUpdate(ctx context.Context, input *UpdateBookingRequest) (*BookingOutput, error) {
	if err := checkID(input.ID, "Booking"); err != nil {
		return nil, err
	}
	fields, err := input.Body.booking()
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", input.ID).Error; err != nil {
			return err
		}
		if err := checkReferences(tx, fields.UserID, fields.CruiseID); err != nil {
			return err
		}

		oldCruiseID := booking.CruiseID
		fields.Model = booking.Model
		if err := tx.Omit(clause.Associations).Save(&fields).Error; err != nil {
			return err
		}

		if resolver.SameCruise(oldCruiseID, fields.CruiseID) {
			return nil
		}
		if err := resolver.AdjustBookingCount(tx, oldCruiseID, -1); err != nil {
			return err
		}
		return resolver.AdjustBookingCount(tx, fields.CruiseID, 1)
	})
	if err != nil {
		return nil, storeError(err, "Booking", "update")
	}

	view, err := h.load(db, input.ID)
	if err != nil {
		return nil, storeError(err, "Booking", "update")
	}
	return &BookingOutput{Body: view}, nil
}

func (h *BookingHandler) HandleDelete(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := checkID(input.ID, "Booking"); err != nil {
		return nil, err
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.First(&booking, "id = ?", input.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&booking).Error; err != nil {
			return err
		}
		return resolver.AdjustBookingCount(tx, booking.CruiseID, -1)
	})
	if err != nil {
		return nil, storeError(err, "Booking", "delete")
	}
	return message("Booking deleted successfully"), nil
}

// HandleTicket renders the booking as a PDF ticket with a signed QR code.
func (h *BookingHandler) HandleTicket(ctx context.Context, input *IDInput) (*TicketOutput, error) {
	if err := checkID(input.ID, "Booking"); err != nil {
		return nil, err
	}

	view, err := h.load(h.db.WithContext(ctx), input.ID)
	if err != nil {
		return nil, storeError(err, "Booking", "fetch")
	}

	pdf, err := ticket.Render(view, h.ticketSecret)
	if err != nil {
		log.Printf("Failed to render ticket for booking %s: %v", view.ID, err)
		return nil, huma.Error500InternalServerError("Failed to generate ticket")
	}

	return &TicketOutput{
		ContentType:        "application/pdf",
		ContentDisposition: "attachment; filename=ticket-" + view.ID + ".pdf",
		Body:               pdf,
	}, nil
}

// HandleVerifyTicket checks a scanned QR payload and returns the booking it belongs to.
func (h *BookingHandler) HandleVerifyTicket(ctx context.Context, input *VerifyTicketRequest) (*VerifyTicketOutput, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	out := &VerifyTicketOutput{}

	bookingID, err := ticket.Verify(input.Body.Code, h.ticketSecret)
	if err != nil {
		return out, nil
	}

	view, err := h.load(h.db.WithContext(ctx), bookingID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return out, nil
	} else if err != nil {
		return nil, storeError(err, "Booking", "fetch")
	}

	out.Body.Valid = true
	out.Body.BookingID = view.ID
	out.Body.Booking = &view
	return out, nil
}
