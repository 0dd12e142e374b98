package models

import "github.com/shopspring/decimal"

type Clinic struct {
	ID              string          `json:"id"`
	OwnerID         string          `json:"owner_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Specialty       string          `json:"specialty,omitempty"`
	Neighborhood    string          `json:"neighborhood,omitempty"`
	City            string          `json:"city"`
	State           string          `json:"state"`
	PricePerSession decimal.Decimal `json:"price_per_session"`
	ImageURL        string          `json:"image_url,omitempty"`
	Active          bool            `json:"active"`
}

type ClinicFilter struct {
	Query     string
	City      string
	State     string
	Specialty string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	OwnerID   string
	Page      int
	PageSize  int
}
