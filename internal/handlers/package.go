package handlers

import (
	"context"
	"strings"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"github.com/cruiseline/cruise-booking-api/internal/validation"
	"gorm.io/gorm"
)

type PackageHandler struct {
	db *gorm.DB
}

func NewPackageHandler(db *gorm.DB) *PackageHandler {
	return &PackageHandler{db: db}
}

type PackageFields struct {
	Name         string `json:"name" required:"true" validate:"notblank"`
	Description  string `json:"description" required:"true" validate:"notblank"`
	CruisingTime string `json:"cruisingTime" required:"true" doc:"e.g. 18:00-20:00" validate:"notblank"`
	Location     string `json:"location" required:"true" validate:"notblank"`
	IsActive     *bool  `json:"isActive,omitempty" doc:"Defaults to true"`
}

func (f PackageFields) apply(p *models.Package) {
	p.Name = strings.TrimSpace(f.Name)
	p.Description = f.Description
	p.CruisingTime = f.CruisingTime
	p.Location = f.Location
	if f.IsActive != nil {
		p.IsActive = *f.IsActive
	}
}

type PackageRequest struct {
	Body PackageFields
}

type UpdatePackageRequest struct {
	ID   string `path:"id"`
	Body PackageFields
}

type PackageOutput struct {
	Body models.Package
}

type PackageListOutput struct {
	Body []models.Package
}

func (h *PackageHandler) HandleList(ctx context.Context, input *struct{}) (*PackageListOutput, error) {
	packages := []models.Package{}
	if err := h.db.WithContext(ctx).Order("created_at DESC").Find(&packages).Error; err != nil {
		return nil, storeError(err, "Package", "fetch")
	}
	return &PackageListOutput{Body: packages}, nil
}

func (h *PackageHandler) HandleGet(ctx context.Context, input *IDInput) (*PackageOutput, error) {
	if err := checkID(input.ID, "Package"); err != nil {
		return nil, err
	}

	var pkg models.Package
	if err := h.db.WithContext(ctx).First(&pkg, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "Package", "fetch")
	}
	return &PackageOutput{Body: pkg}, nil
}

func (h *PackageHandler) HandleCreate(ctx context.Context, input *PackageRequest) (*PackageOutput, error) {
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	pkg := models.Package{IsActive: true}
	input.Body.apply(&pkg)
	if err := h.db.WithContext(ctx).Create(&pkg).Error; err != nil {
		return nil, storeError(err, "Package", "create")
	}
	return &PackageOutput{Body: pkg}, nil
}

func (h *PackageHandler) HandleUpdate(ctx context.Context, input *UpdatePackageRequest) (*PackageOutput, error) {
	if err := checkID(input.ID, "Package"); err != nil {
		return nil, err
	}
	if err := validation.Check(input.Body); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)

	var pkg models.Package
	if err := db.First(&pkg, "id = ?", input.ID).Error; err != nil {
		return nil, storeError(err, "Package", "update")
	}

	input.Body.apply(&pkg)
	if err := db.Save(&pkg).Error; err != nil {
		return nil, storeError(err, "Package", "update")
	}
	return &PackageOutput{Body: pkg}, nil
}

func (h *PackageHandler) HandleDelete(ctx context.Context, input *IDInput) (*MessageOutput, error) {
	if err := checkID(input.ID, "Package"); err != nil {
		return nil, err
	}

	res := h.db.WithContext(ctx).Delete(&models.Package{}, "id = ?", input.ID)
	if res.Error != nil {
		return nil, storeError(res.Error, "Package", "delete")
	}
	if res.RowsAffected == 0 {
		return nil, storeError(gorm.ErrRecordNotFound, "Package", "delete")
	}
	return message("Package deleted successfully"), nil
}
