package handlers

import (
	"context"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/auth"
	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/resolver"
	"github.com/cruiseline/cruise-booking-api/internal/validation"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

type UserFields struct {
	Name  string `json:"name" required:"true" validate:"notblank"`
	Email string `json:"email" required:"true" validate:"notblank,email"`
	Phone string `json:"phone,omitempty"`
}

type UserRequest struct {
	Body UserFields
}

type UpdateUserRequest struct {
	ID   string `path:"id"`
	Body UserFields
}

type UserOutput struct {
	Body models.User
}

type UserSummaryOutput struct {
	Body resolver.UserSummary
}

type UserListOutput struct {
	Body []resolver.UserSummary
}

func summary(u models.User) resolver.UserSummary {
	return resolver.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

// emailTaken reports whether another user than exceptID already uses email.
func emailTaken(db *gorm.DB, email, exceptID string) (bool, error) {
	q := db.Model(&models.User{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HandleList returns customers only, newest first.
func (h *UserHandler) HandleList(ctx context.Context, input *struct{}) (*UserListOutput, error) {
	var users []models.User
	err := h.db.WithContext(ctx).
		Select("id", "name", "email", "phone").
		Where("role = ?", models.RoleCustomer).
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, storeError(err, "User", "fetch")
	}

	out := make([]resolver.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summary(u))
	}
	return &UserListOutput{Body: out}, nil
}

func (h *UserHandler) HandleGet(ctx context.Context, input *IDInput) (*UserSummaryOutput, error) {
	if err := checkID(input.ID, "User"); err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.WithContext(ctx).First(&user, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "User", "fetch")
	}
	return &UserSummaryOutput{Body: summary(user)}, nil
}

// HandleCreate adds a customer without a password; they cannot log in until one is set at signup.
func (h *UserHandler) HandleCreate(ctx context.Context, input *UserRequest) (*UserOutput, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	email := auth.NormalizeEmail(input.Body.Email)

	taken, err := emailTaken(db, email, "")
	if err != nil {
		return nil, storeError(err, "User", "create")
	}
	if taken {
		return nil, huma.Error400BadRequest("Email already exists")
	}

	user := models.User{
		Name:  strings.TrimSpace(input.Body.Name),
		Email: email,
		Phone: input.Body.Phone,
		Role:  models.RoleCustomer,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, storeError(err, "User", "create")
	}
	return &UserOutput{Body: user}, nil
}

// HandleUpdate replaces name, email and phone. The role never changes.
func (h *UserHandler) HandleUpdate(ctx context.Context, input *UpdateUserRequest) (*UserSummaryOutput, error) {
	if err := checkID(input.ID, "User"); err != nil {
		return nil, err
	}
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "User", "update")
	}

	email := auth.NormalizeEmail(input.Body.Email)
	taken, err := emailTaken(db, email, user.ID)
	if err != nil {
		return nil, storeError(err, "User", "update")
	}
	if taken {
		return nil, huma.Error400BadRequest("Email already exists")
	}

	user.Name = strings.TrimSpace(input.Body.Name)
	user.Email = email
	user.Phone = input.Body.Phone
	if err := db.Save(&user).Error; err != nil {
		return nil, storeError(err, "User", "update")
	}
	return &UserSummaryOutput{Body: summary(user)}, nil
}

// HandleDelete removes the user together with their bookings and reviews and
// recomputes the counters of every cruise they touched.
func (h *UserHandler) HandleDelete(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := checkID(input.ID, "User"); err != nil {
		return nil, err
	}

	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", input.ID).Error; err != nil {
			return err
		}

		var bookings []models.Booking
		if err := tx.Select("id", "cruise_id").Where("user_id = ?", user.ID).Find(&bookings).Error; err != nil {
			return err
		}
		var reviewedCruises []string
		if err := tx.Model(&models.Review{}).
			Where("user_id = ? AND cruise_id IS NOT NULL", user.ID).
			Distinct().Pluck("cruise_id", &reviewedCruises).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&user).Error; err != nil {
			return err
		}

		for _, b := range bookings {
			if err := resolver.AdjustBookingCount(tx, b.CruiseID, -1); err != nil {
				return err
			}
		}
		for _, id := range reviewedCruises {
			if err := resolver.RefreshReviewStats(tx, &id); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err, "User", "delete")
	}
	return message("User deleted successfully"), nil
}
