package handlers

import (
	"context"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/resolver"
	"github.com/cruiseline/cruise-booking-api/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type ReviewFields struct {
	UserID   string  `json:"userId" required:"true" validate:"notblank"`
	CruiseID *string `json:"cruiseId,omitempty" nullable:"true" doc:"Optional cruise reference"`
	Rating   int     `json:"rating" required:"true" validate:"min=1,max=5"`
	Comment  string  `json:"comment" required:"true" validate:"notblank"`
}

func (f ReviewFields) review() (models.Review, error) {
	if err := validation.Check(f); err != nil {
		return models.Review{}, err
	}
	return models.Review{
		UserID:   f.UserID,
		CruiseID: optionalID(f.CruiseID),
		Rating:   f.Rating,
		Comment:  strings.TrimSpace(f.Comment),
	}, nil
}

type ReviewRequest struct {
	Body ReviewFields
}

type UpdateReviewRequest struct {
	ID   string `path:"id"`
	Body ReviewFields
}

type ReviewOutput struct {
	Body resolver.ReviewView
}

type ReviewListOutput struct {
	Body []resolver.ReviewView
}

func (h *ReviewHandler) load(db *gorm.DB, id string) (resolver.ReviewView, error) {
	var review models.Review
	if err := resolver.PopulateReviews(db).First(&review, "id = ?", id).Error; err != nil {
		return resolver.ReviewView{}, err
	}
	return resolver.NewReviewView(review), nil
}

func (h *ReviewHandler) HandleList(ctx context.Context, input *struct{}) (*ReviewListOutput, error) {
	var reviews []models.Review
	if err := resolver.PopulateReviews(h.db.WithContext(ctx)).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, storeError(err, "Review", "fetch")
	}

	views := make([]resolver.ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, resolver.NewReviewView(r))
	}
	return &ReviewListOutput{Body: views}, nil
}

func (h *ReviewHandler) HandleGet(ctx context.Context, input *IDInput) (*ReviewOutput, error) {
	if err := checkID(input.ID, "Review"); err != nil {
		return nil, err
	}

	view, err := h.load(h.db.WithContext(ctx), input.ID)
	if err != nil {
		return nil, storeError(err, "Review", "fetch")
	}
	return &ReviewOutput{Body: view}, nil
}

// HandleCreate stores the review and refreshes the cruise's rating and review count.
func (h *ReviewHandler) HandleCreate(ctx context.Context, input *ReviewRequest) (*ReviewOutput, error) {
	review, err := input.Body.review()
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := checkReferences(tx, review.UserID, review.CruiseID); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&review).Error; err != nil {
			return err
		}
		return resolver.RefreshReviewStats(tx, review.CruiseID)
	})
	if err != nil {
		return nil, storeError(err, "Review", "create")
	}

	view, err := h.load(db, review.ID)
	if err != nil {
		return nil, storeError(err, "Review", "create")
	}
	return &ReviewOutput{Body: view}, nil
}

func (h *ReviewHandler) HandleUpdate(ctx context.Context, input *UpdateReviewRequest) (*ReviewOutput, error) {
	if err := checkID(input.ID, "Review"); err != nil {
		return nil, err
	}
	fields, err := input.Body.review()
	if err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	err = db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", input.ID).Error; err != nil {
			return err
		}
		if err := checkReferences(tx, fields.UserID, fields.CruiseID); err != nil {
			return err
		}

		oldCruiseID := review.CruiseID
		fields.Model = review.Model
		if err := tx.Omit(clause.Associations).Save(&fields).Error; err != nil {
			return err
		}

		if err := resolver.RefreshReviewStats(tx, fields.CruiseID); err != nil {
			return err
		}
		if resolver.SameCruise(oldCruiseID, fields.CruiseID) {
			return nil
		}
		return resolver.RefreshReviewStats(tx, oldCruiseID)
	})
	if err != nil {
		return nil, storeError(err, "Review", "update")
	}

	view, err := h.load(db, input.ID)
	if err != nil {
		return nil, storeError(err, "Review", "update")
	}
	return &ReviewOutput{Body: view}, nil
}

func (h *ReviewHandler) HandleDelete(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := checkID(input.ID, "Review"); err != nil {
		return nil, err
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, "id = ?", input.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}
		return resolver.RefreshReviewStats(tx, review.CruiseID)
	})
	if err != nil {
		return nil, storeError(err, "Review", "delete")
	}
	return message("Review deleted successfully"), nil
}
