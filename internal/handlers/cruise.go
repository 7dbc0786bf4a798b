package handlers

import (
	"context"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/validation"
	"gorm.io/gorm"
)

type CruiseHandler struct {
	db *gorm.DB
}

func NewCruiseHandler(db *gorm.DB) *CruiseHandler {
	return &CruiseHandler{db: db}
}

type CruiseImagesInput struct {
	Main    string   `json:"main,omitempty" doc:"Main image URL"`
	Gallery []string `json:"gallery,omitempty" doc:"Gallery image URLs"`
}

type CruiseFields struct {
	Title         string             `json:"title" required:"true" validate:"notblank"`
	Description   string             `json:"description" required:"true" validate:"notblank"`
	Tag           string             `json:"tag,omitempty" doc:"Defaults to Bangkok"`
	Price         float64            `json:"price" required:"true" validate:"gt=0"`
	Currency      string             `json:"currency,omitempty" doc:"Defaults to THB"`
	Duration      string             `json:"duration" required:"true" validate:"notblank"`
	Location      string             `json:"location" required:"true" validate:"notblank"`
	Features      []string           `json:"features,omitempty"`
	Highlights    []string           `json:"highlights,omitempty"`
	Images        *CruiseImagesInput `json:"images,omitempty"`
	IsActive      *bool              `json:"isActive,omitempty" doc:"Defaults to true"`
	Capacity      int                `json:"capacity,omitempty" validate:"gte=0"`
	Rating        float64            `json:"rating,omitempty" validate:"gte=0,lte=5"`
	TotalReviews  int                `json:"totalReviews,omitempty" validate:"gte=0"`
	TotalBookings int                `json:"totalBookings,omitempty" validate:"gte=0"`
}

// apply copies the fields onto c, filling defaults for omitted optional fields.
// isActive and the derived counters are left alone unless given; create seeds them.
func (f CruiseFields) apply(c *models.Cruise) {
	c.Title = strings.TrimSpace(f.Title)
	c.Description = f.Description
	c.Tag = orDefault(f.Tag, models.DefaultCruiseTag)
	c.Price = f.Price
	c.Currency = orDefault(f.Currency, models.DefaultCruiseCurrency)
	c.Duration = f.Duration
	c.Location = f.Location

	c.Features = f.Features
	if c.Features == nil {
		c.Features = append([]string(nil), models.DefaultCruiseFeatures...)
	}
	c.Highlights = f.Highlights
	if c.Highlights == nil {
		c.Highlights = []string{}
	}

	c.Images = models.CruiseImages{Main: models.DefaultCruiseImage}
	if f.Images != nil {
		c.Images.Main = orDefault(f.Images.Main, models.DefaultCruiseImage)
		c.Images.Gallery = f.Images.Gallery
	}
	if c.Images.Gallery == nil {
		c.Images.Gallery = append([]string(nil), models.DefaultCruiseGallery...)
	}

	if f.IsActive != nil {
		c.IsActive = *f.IsActive
	}
	c.Capacity = f.Capacity
	if c.Capacity == 0 {
		c.Capacity = models.DefaultCruiseCapacity
	}
	if f.Rating != 0 {
		c.Rating = f.Rating
	} else if c.Rating == 0 {
		c.Rating = models.DefaultCruiseRating
	}
}

type CruiseRequest struct {
	Body CruiseFields
}

type UpdateCruiseRequest struct {
	ID   string `path:"id"`
	Body CruiseFields
}

type CruiseOutput struct {
	Body models.Cruise
}

type CruiseListOutput struct {
	Body []models.Cruise
}

// HandleList returns active cruises, newest first.
func (h *CruiseHandler) HandleList(ctx context.Context, input *struct{}) (*CruiseListOutput, error) {
	cruises := []models.Cruise{}
	if err := h.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at DESC").Find(&cruises).Error; err != nil {
		return nil, storeError(err, "Cruise", "fetch")
	}
	return &CruiseListOutput{Body: cruises}, nil
}

// HandleGet returns a cruise whether or not it is active.
func (h *CruiseHandler) HandleGet(ctx context.Context, input *IDInput) (*CruiseOutput, error) {
	if err := checkID(input.ID, "Cruise"); err != nil {
		return nil, err
	}

	var cruise models.Cruise
	if err := h.db.WithContext(ctx).First(&cruise, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "Cruise", "fetch")
	}
	return &CruiseOutput{Body: cruise}, nil
}

func (h *CruiseHandler) HandleCreate(ctx context.Context, input *CruiseRequest) (*CruiseOutput, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	cruise := models.Cruise{IsActive: true}
	input.Body.apply(&cruise)
	cruise.TotalReviews = input.Body.TotalReviews
	cruise.TotalBookings = input.Body.TotalBookings

	if err := h.db.WithContext(ctx).Create(&cruise).Error; err != nil {
		return nil, storeError(err, "Cruise", "create")
	}
	return &CruiseOutput{Body: cruise}, nil
}

func (h *CruiseHandler) HandleUpdate(ctx context.Context, input *UpdateCruiseRequest) (*CruiseOutput, error) {
	if err := checkID(input.ID, "Cruise"); err != nil {
		return nil, err
	}
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var cruise models.Cruise
	if err := db.First(&cruise, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "Cruise", "update")
	}

	input.Body.apply(&cruise)
	if err := db.Save(&cruise).Error; err != nil {
		return nil, storeError(err, "Cruise", "update")
	}
	return &CruiseOutput{Body: cruise}, nil
}

// HandleDelete deactivates the cruise. Bookings and reviews keep pointing at it.
func (h *CruiseHandler) HandleDelete(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := checkID(input.ID, "Cruise"); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var cruise models.Cruise
	if err := db.First(&cruise, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "Cruise", "delete")
	}

	cruise.IsActive = false
	if err := db.Save(&cruise).Error; err != nil {
		return nil, storeError(err, "Cruise", "delete")
	}
	return message("Cruise deactivated successfully"), nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
