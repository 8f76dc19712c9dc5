package dto

import "time"

// MaterialTypeRequest body para crear o actualizar un tipo de material.
type MaterialTypeRequest struct {
	Name                  string   `json:"name" validate:"required,min=1,max=200"`
	Category              string   `json:"category"`
	SpecificationCode     string   `json:"specification_code"`
	SpecificationStandard string   `json:"specification_standard"`
	SpecificationName     string   `json:"specification_name"`
	MaterialGrade         string   `json:"material_grade"`
	Aliases               []string `json:"aliases"`
	EquivalentToID        *string  `json:"equivalent_to_id"`
	IsPreferred           bool     `json:"is_preferred"`
}

// MaterialTypeResponse salida de un tipo de material del catálogo.
type MaterialTypeResponse struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Category              string    `json:"category,omitempty"`
	SpecificationCode     string    `json:"specification_code,omitempty"`
	SpecificationStandard string    `json:"specification_standard,omitempty"`
	SpecificationName     string    `json:"specification_name,omitempty"`
	MaterialGrade         string    `json:"material_grade,omitempty"`
	Aliases               []string  `json:"aliases,omitempty"`
	EquivalentToID        *string   `json:"equivalent_to_id,omitempty"`
	IsPreferred           bool      `json:"is_preferred"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// EquivalenceRequest body para registrar una equivalencia explícita entre tipos.
type EquivalenceRequest struct {
	EquivalentID string `json:"equivalent_id" validate:"required,uuid"`
	Rank         int    `json:"rank"`
	Notes        string `json:"notes"`
}
