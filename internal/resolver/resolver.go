// Package resolver expands foreign ids into embedded summaries on read and
// probes that referenced records exist on write.
package resolver

import (
	"errors"
	"time"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrCruiseNotFound = errors.New("cruise not found")
)

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type CruiseSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Location  string `json:"location"`
	MainImage string `json:"mainImage,omitempty"`
}

type BookingView struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	User           *UserSummary   `json:"user"`
	CruiseID       *string        `json:"cruiseId"`
	Cruise         *CruiseSummary `json:"cruise"`
	CruiseDate     time.Time      `json:"cruiseDate"`
	NumberOfGuests int            `json:"numberOfGuests"`
	PackageType    string         `json:"packageType"`
	CruisingTime   string         `json:"cruisingTime"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type ReviewView struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	User      *UserSummary   `json:"user"`
	CruiseID  *string        `json:"cruiseId"`
	Cruise    *CruiseSummary `json:"cruise"`
	Rating    int            `json:"rating"`
	Comment   string         `json:"comment"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// UserExists returns ErrUserNotFound when no user has the given id.
func UserExists(db *gorm.DB, id string) error {
	return exists(db, &models.User{}, id, ErrUserNotFound)
}

// CruiseExists returns ErrCruiseNotFound when no cruise has the given id.
// Deactivated cruises still exist.
func CruiseExists(db *gorm.DB, id string) error {
	return exists(db, &models.Cruise{}, id, ErrCruiseNotFound)
}

func exists(db *gorm.DB, model any, id string, notFound error) error {
	if !models.ValidID(id) {
		return notFound
	}
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

// PopulateBookings preloads the user and cruise projections of a booking query.
func PopulateBookings(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email", "phone")
		}).
		Preload("Cruise", selectCruiseSummary)
}

// PopulateReviews preloads the user and cruise projections of a review query.
func PopulateReviews(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Cruise", selectCruiseSummary)
}

func selectCruiseSummary(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "title", "location", "image_main")
}

func NewBookingView(b models.Booking) BookingView {
	return BookingView{
		ID:             b.ID,
		UserID:         b.UserID,
		User:           summarizeUser(b.User, true),
		CruiseID:       b.CruiseID,
		Cruise:         summarizeCruise(b.Cruise),
		CruiseDate:     b.CruiseDate,
		NumberOfGuests: b.NumberOfGuests,
		PackageType:    b.PackageType,
		CruisingTime:   b.CruisingTime,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func NewReviewView(r models.Review) ReviewView {
	return ReviewView{
		ID:        r.ID,
		UserID:    r.UserID,
		User:      summarizeUser(r.User, false),
		CruiseID:  r.CruiseID,
		Cruise:    summarizeCruise(r.Cruise),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func summarizeUser(u *models.User, withPhone bool) *UserSummary {
	if u == nil || u.ID == "" {
		return nil
	}
	s := &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	if withPhone {
		s.Phone = u.Phone
	}
	return s
}

func summarizeCruise(c *models.Cruise) *CruiseSummary {
	if c == nil || c.ID == "" {
		return nil
	}
	return &CruiseSummary{ID: c.ID, Title: c.Title, Location: c.Location, MainImage: c.Images.Main}
}
