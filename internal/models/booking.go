package models

import "time"

type Booking struct {
	Model
	UserID         string    `json:"userId" gorm:"index;size:36;not null"`
	User           *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CruiseID       *string   `json:"cruiseId" gorm:"index;size:36"`
	Cruise         *Cruise   `json:"-" gorm:"foreignKey:CruiseID"`
	CruiseDate     time.Time `json:"cruiseDate"`
	NumberOfGuests int       `json:"numberOfGuests"`
	PackageType    string    `json:"packageType"`
	CruisingTime   string    `json:"cruisingTime"`
}
