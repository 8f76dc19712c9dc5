package entity

import "time"

// MaterialType define un material canónico del catálogo (aleaciones, aceros, plásticos).
// La equivalencia entre tipos se resuelve combinando la tabla material_type_equivalences
// con el puntero EquivalentToID (tipo primario del cual este es alias o subgrado).
// Nunca se borra físicamente: IsActive = false es el soft-delete.
type MaterialType struct {
	ID                    string
	Name                  string
	Category              string // aluminio, acero, inoxidable, plastico, ...
	SpecificationCode     string // ej. "EN AW-6061", "1.4301"
	SpecificationStandard string // ej. "EN", "ASTM", "DIN"
	SpecificationName     string
	MaterialGrade         string
	Aliases               []string // nombres alternativos aceptados en búsquedas
	EquivalentToID        *string
	IsPreferred           bool
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// MaterialTypeEquivalence fila de la tabla de equivalencias (dirigida: primary → equivalent).
type MaterialTypeEquivalence struct {
	PrimaryID    string
	EquivalentID string
	Rank         int
	Notes        string
}
