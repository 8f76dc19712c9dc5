package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/domain/entity"
	"github.com/tallerpro/taller-api/internal/domain/repository"
)

var _ repository.MaterialTypeRepository = (*MaterialTypeRepo)(nil)

const materialTypeColumns = `id, name, category, specification_code, specification_standard,
		specification_name, material_grade, aliases, equivalent_to_id, is_preferred, is_active,
		created_at, updated_at`

// MaterialTypeRepo implementación del catálogo sobre PostgreSQL (usable con pool o tx).
type MaterialTypeRepo struct {
	q Querier
}

// NewMaterialTypeRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewMaterialTypeRepository(q Querier) *MaterialTypeRepo {
	return &MaterialTypeRepo{q: q}
}

// Create persiste un tipo de material.
func (r *MaterialTypeRepo) Create(mt *entity.MaterialType) error {
	if mt.ID == "" {
		mt.ID = uuid.New().String()
	}
	query := `
		INSERT INTO material_types (id, name, category, specification_code, specification_standard,
			specification_name, material_grade, aliases, equivalent_to_id, is_preferred, is_active,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		mt.ID, mt.Name, mt.Category, mt.SpecificationCode, mt.SpecificationStandard,
		mt.SpecificationName, mt.MaterialGrade, mt.Aliases, mt.EquivalentToID,
		mt.IsPreferred, mt.IsActive, mt.CreatedAt, mt.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material type: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo por ID. Devuelve nil sin error si no existe.
func (r *MaterialTypeRepo) GetByID(id string) (*entity.MaterialType, error) {
	query := `SELECT ` + materialTypeColumns + ` FROM material_types WHERE id = $1`
	mt, err := scanMaterialType(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material type: %w", err)
	}
	return mt, nil
}

// Update actualiza los campos editables del tipo.
func (r *MaterialTypeRepo) Update(mt *entity.MaterialType) error {
	query := `
		UPDATE material_types SET name = $2, category = $3, specification_code = $4,
			specification_standard = $5, specification_name = $6, material_grade = $7,
			aliases = $8, equivalent_to_id = $9, is_preferred = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		mt.ID, mt.Name, mt.Category, mt.SpecificationCode, mt.SpecificationStandard,
		mt.SpecificationName, mt.MaterialGrade, mt.Aliases, mt.EquivalentToID,
		mt.IsPreferred, mt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update material type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate soft-delete: marca is_active = false. Nunca borra la fila.
func (r *MaterialTypeRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE material_types SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate material type: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByNameOrAlias coincidencia exacta case-insensitive contra nombre, código
// de especificación o cualquier alias. Primera coincidencia, solo tipos activos.
func (r *MaterialTypeRepo) FindByNameOrAlias(name string) (*entity.MaterialType, error) {
	query := `
		SELECT ` + materialTypeColumns + `
		FROM material_types
		WHERE is_active = true
		  AND (lower(name) = lower($1)
		   OR lower(specification_code) = lower($1)
		   OR EXISTS (SELECT 1 FROM unnest(aliases) AS a WHERE lower(a) = lower($1)))
		ORDER BY is_preferred DESC, name ASC
		LIMIT 1`
	mt, err := scanMaterialType(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find material type by name: %w", err)
	}
	return mt, nil
}

// Search subcadena case-insensitive en nombre/códigos/aliases; prioriza nombre
// exacto, luego código exacto, luego alfabético.
func (r *MaterialTypeRepo) Search(term string, limit int) ([]*entity.MaterialType, error) {
	query := `
		SELECT ` + materialTypeColumns + `
		FROM material_types
		WHERE is_active = true
		  AND (name ILIKE '%' || $1 || '%'
		   OR specification_code ILIKE '%' || $1 || '%'
		   OR specification_name ILIKE '%' || $1 || '%'
		   OR EXISTS (SELECT 1 FROM unnest(aliases) AS a WHERE a ILIKE '%' || $1 || '%'))
		ORDER BY (lower(name) = lower($1)) DESC,
		         (lower(specification_code) = lower($1)) DESC,
		         name ASC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search material types: %w", err)
	}
	defer rows.Close()
	var list []*entity.MaterialType
	for rows.Next() {
		mt, err := scanMaterialType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material type: %w", err)
		}
		list = append(list, mt)
	}
	return list, rows.Err()
}

// EquivalentIDs ids de la tabla de equivalencias con primary = id, por rank.
func (r *MaterialTypeRepo) EquivalentIDs(id string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT equivalent_id FROM material_type_equivalences WHERE primary_id = $1 ORDER BY rank, equivalent_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list equivalents: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// ChildIDs ids de tipos activos cuyo equivalent_to_id apunta a id.
func (r *MaterialTypeRepo) ChildIDs(id string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM material_types WHERE equivalent_to_id = $1 AND is_active = true ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()
	return scanIDs(rows)
}

// AddEquivalence registra (o actualiza) una equivalencia explícita.
func (r *MaterialTypeRepo) AddEquivalence(eq *entity.MaterialTypeEquivalence) error {
	query := `
		INSERT INTO material_type_equivalences (primary_id, equivalent_id, rank, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (primary_id, equivalent_id)
		DO UPDATE SET rank = EXCLUDED.rank, notes = EXCLUDED.notes`
	_, err := r.q.Exec(context.Background(), query, eq.PrimaryID, eq.EquivalentID, eq.Rank, eq.Notes)
	if err != nil {
		return fmt.Errorf("add equivalence: %w", err)
	}
	return nil
}

// RemoveEquivalence elimina una equivalencia explícita.
func (r *MaterialTypeRepo) RemoveEquivalence(primaryID, equivalentID string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM material_type_equivalences WHERE primary_id = $1 AND equivalent_id = $2`,
		primaryID, equivalentID)
	if err != nil {
		return fmt.Errorf("remove equivalence: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanMaterialType(row pgx.Row) (*entity.MaterialType, error) {
	var mt entity.MaterialType
	err := row.Scan(
		&mt.ID, &mt.Name, &mt.Category, &mt.SpecificationCode, &mt.SpecificationStandard,
		&mt.SpecificationName, &mt.MaterialGrade, &mt.Aliases, &mt.EquivalentToID,
		&mt.IsPreferred, &mt.IsActive, &mt.CreatedAt, &mt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

func scanIDs(rows pgx.Rows) ([]string, error) {
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
