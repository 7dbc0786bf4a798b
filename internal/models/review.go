package models

type Review struct {
	Model
	UserID   string  `json:"userId" gorm:"index;size:36;not null"`
	User     *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CruiseID *string `json:"cruiseId" gorm:"index;size:36"`
	Cruise   *Cruise `json:"-" gorm:"foreignKey:CruiseID"`
	Rating   int     `json:"rating"`
	Comment  string  `json:"comment"`
}
