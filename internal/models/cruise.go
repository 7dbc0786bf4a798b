package models

import "gorm.io/datatypes"

const (
	DefaultCruiseTag      = "Bangkok"
	DefaultCruiseCurrency = "THB"
	DefaultCruiseCapacity = 100
	DefaultCruiseRating   = 4.5
	DefaultCruiseImage    = "/img/wp1.png"
)

var (
	DefaultCruiseFeatures = []string{"English", "Join in group", "Meet at location"}
	DefaultCruiseGallery  = []string{"/img/wp1.png", "/img/wp2.png", "/img/wp3.png", "/img/wp4.png", "/img/wp5.png"}
)

type CruiseImages struct {
	Main    string                      `json:"main"`
	Gallery datatypes.JSONSlice[string] `json:"gallery"`
}

type Cruise struct {
	Model
	Title         string                      `json:"title"`
	Description   string                      `json:"description"`
	Tag           string                      `json:"tag"`
	Price         float64                     `json:"price"`
	Currency      string                      `json:"currency"`
	Duration      string                      `json:"duration"`
	Location      string                      `json:"location" gorm:"index"`
	Features      datatypes.JSONSlice[string] `json:"features"`
	Highlights    datatypes.JSONSlice[string] `json:"highlights"`
	Images        CruiseImages                `json:"images" gorm:"embedded;embeddedPrefix:image_"`
	IsActive      bool                        `json:"isActive" gorm:"index"`
	Capacity      int                         `json:"capacity"`
	Rating        float64                     `json:"rating" gorm:"index"`
	TotalReviews  int                         `json:"totalReviews"`
	TotalBookings int                         `json:"totalBookings"`
}
