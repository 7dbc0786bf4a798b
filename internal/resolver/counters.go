package resolver

import (
	"math"

	"github.com/cruiseline/cruise-booking-api/internal/models"
	"gorm.io/gorm"
)

// AdjustBookingCount adds delta to the cruise's totalBookings, never going below zero.
// A nil cruiseID is a no-op.
func AdjustBookingCount(tx *gorm.DB, cruiseID *string, delta int) error {
	if cruiseID == nil || *cruiseID == "" || delta == 0 {
		return nil
	}
	return tx.Model(&models.Cruise{}).
		Where("id = ?", *cruiseID).
		UpdateColumn("total_bookings", gorm.Expr("CASE WHEN total_bookings + ? < 0 THEN 0 ELSE total_bookings + ? END", delta, delta)).
		Error
}

// RefreshReviewStats recomputes totalReviews and the average rating of a cruise
// from its reviews. Without reviews the rating falls back to the default.
func RefreshReviewStats(tx *gorm.DB, cruiseID *string) error {
	if cruiseID == nil || *cruiseID == "" {
		return nil
	}

	var stats struct {
		Count int64
		Avg   float64
	}
	err := tx.Model(&models.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS avg").
		Where("cruise_id = ?", *cruiseID).
		Scan(&stats).Error
	if err != nil {
		return err
	}

	updates := map[string]any{
		"total_reviews": stats.Count,
		"rating":        models.DefaultCruiseRating,
	}
	if stats.Count > 0 {
		updates["rating"] = math.Round(stats.Avg*10) / 10
	}
	return tx.Model(&models.Cruise{}).Where("id = ?", *cruiseID).UpdateColumns(updates).Error
}

// SameCruise reports whether two optional cruise references point at the same record.
func SameCruise(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
