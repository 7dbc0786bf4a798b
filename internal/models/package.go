package models

type Package struct {
	Model
	Name         string `json:"name"`
	Description  string `json:"description"`
	CruisingTime string `json:"cruisingTime"`
	Location     string `json:"location"`
	IsActive     bool   `json:"isActive"`
}
