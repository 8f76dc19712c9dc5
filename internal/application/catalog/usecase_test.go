package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallerpro/taller-api/internal/application/catalog"
	"github.com/tallerpro/taller-api/internal/application/dto"
	"github.com/tallerpro/taller-api/internal/domain"
	"github.com/tallerpro/taller-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newCatalogUC(t *testing.T) (*catalog.UseCase, *memory.MaterialTypeRepo) {
	t.Helper()
	repo := memory.NewMaterialTypeRepository()
	return catalog.NewUseCase(repo), repo
}

func mustCreate(t *testing.T, uc *catalog.UseCase, in dto.MaterialTypeRequest) dto.MaterialTypeResponse {
	t.Helper()
	mt, err := uc.Create(in)
	require.NoError(t, err)
	return *mt
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ResolveIDByNameOrAlias
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_PorNombreCaseInsensitive(t *testing.T) {
	uc, _ := newCatalogUC(t)
	created := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1045"})

	id, err := uc.ResolveIDByNameOrAlias("acero 1045")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

func TestResolve_PorAlias(t *testing.T) {
	uc, _ := newCatalogUC(t)
	created := mustCreate(t, uc, dto.MaterialTypeRequest{
		Name:    "Aluminio 6061-T6",
		Aliases: []string{"AL6061", "dural"},
	})

	id, err := uc.ResolveIDByNameOrAlias("DURAL")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

func TestResolve_PorCodigoDeEspecificacion(t *testing.T) {
	uc, _ := newCatalogUC(t)
	created := mustCreate(t, uc, dto.MaterialTypeRequest{
		Name:              "Acero inoxidable 304",
		SpecificationCode: "ASTM-A240-304",
	})

	id, err := uc.ResolveIDByNameOrAlias("astm-a240-304")
	require.NoError(t, err)
	assert.Equal(t, created.ID, id)
}

// Sin coincidencia no es error: el flujo de sugerencias continúa con el nombre
// como clave de respaldo.
func TestResolve_SinCoincidenciaDevuelveVacio(t *testing.T) {
	uc, _ := newCatalogUC(t)

	id, err := uc.ResolveIDByNameOrAlias("titanio grado 5")
	require.NoError(t, err)
	assert.Empty(t, id)
}

// Tipos desactivados no resuelven.
func TestResolve_TipoDesactivadoNoResuelve(t *testing.T) {
	uc, _ := newCatalogUC(t)
	created := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Bronce SAE 40"})
	require.NoError(t, uc.Deactivate(created.ID))

	id, err := uc.ResolveIDByNameOrAlias("Bronce SAE 40")
	require.NoError(t, err)
	assert.Empty(t, id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ExpandEquivalentIDs — un solo salto
// ──────────────────────────────────────────────────────────────────────────────

func TestExpand_UnionDeFuentes(t *testing.T) {
	uc, _ := newCatalogUC(t)
	a := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1045"})
	b := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1050"})
	// C apunta a A vía equivalent_to_id (hijo)
	c := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "C45", EquivalentToID: &a.ID})
	// A → B vía tabla de equivalencias explícita
	require.NoError(t, uc.AddEquivalence(a.ID, dto.EquivalenceRequest{EquivalentID: b.ID}))

	ids, err := uc.ExpandEquivalentIDs(a.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a.ID, b.ID, c.ID}, ids)
	assert.Equal(t, a.ID, ids[0], "el propio tipo siempre va primero")
}

// Desde el hijo: él mismo más su padre. La expansión NO es transitiva, los
// equivalentes del padre no se arrastran.
func TestExpand_DesdeElHijoIncluyeAlPadre(t *testing.T) {
	uc, _ := newCatalogUC(t)
	a := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1045"})
	b := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1050"})
	c := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "C45", EquivalentToID: &a.ID})
	require.NoError(t, uc.AddEquivalence(a.ID, dto.EquivalenceRequest{EquivalentID: b.ID}))

	ids, err := uc.ExpandEquivalentIDs(c.ID)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{c.ID, a.ID}, ids,
		"un salto: C ve a su padre A, pero no al equivalente B de A")
}

func TestExpand_TipoInexistente(t *testing.T) {
	uc, _ := newCatalogUC(t)

	_, err := uc.ExpandEquivalentIDs("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpand_SinEquivalencias(t *testing.T) {
	uc, _ := newCatalogUC(t)
	a := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Nylon 6"})

	ids, err := uc.ExpandEquivalentIDs(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids)
}

// Quitar la equivalencia explícita la saca del set.
func TestExpand_DespuesDeRemoveEquivalence(t *testing.T) {
	uc, _ := newCatalogUC(t)
	a := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1045"})
	b := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1050"})
	require.NoError(t, uc.AddEquivalence(a.ID, dto.EquivalenceRequest{EquivalentID: b.ID}))
	require.NoError(t, uc.RemoveEquivalence(a.ID, b.ID))

	ids, err := uc.ExpandEquivalentIDs(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CRUD
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NombreVacioEsInvalido(t *testing.T) {
	uc, _ := newCatalogUC(t)

	_, err := uc.Create(dto.MaterialTypeRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_NombreDuplicado(t *testing.T) {
	uc, _ := newCatalogUC(t)
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1045"})

	_, err := uc.Create(dto.MaterialTypeRequest{Name: "acero 1045"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDeactivate_LuegoGetSigueVisible(t *testing.T) {
	uc, _ := newCatalogUC(t)
	created := mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Cobre electrolítico"})
	require.NoError(t, uc.Deactivate(created.ID))

	// soft-delete: el registro sigue consultable por ID, solo inactivo
	mt, err := uc.GetByID(created.ID)
	require.NoError(t, err)
	assert.False(t, mt.IsActive)
}

func TestSearch_PorSubcadena(t *testing.T) {
	uc, _ := newCatalogUC(t)
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1045"})
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero inoxidable 304"})
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Aluminio 6061"})

	results, err := uc.Search("acero")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

// Orden de resultados: nombre exacto primero, luego código de especificación
// exacto, luego alfabético.
func TestSearch_NombreExactoPrimero(t *testing.T) {
	uc, _ := newCatalogUC(t)
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Aleación Zamak 5"})
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Zamak 5"})

	results, err := uc.Search("Zamak 5")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Zamak 5", results[0].Name, "la coincidencia exacta de nombre encabeza la lista")
	assert.Equal(t, "Aleación Zamak 5", results[1].Name)
}

func TestSearch_CodigoExactoAntesQueAlfabetico(t *testing.T) {
	uc, _ := newCatalogUC(t)
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero al carbono C45", SpecificationCode: "1.0503"})
	mustCreate(t, uc, dto.MaterialTypeRequest{Name: "Acero 1.0503 laminado"})

	results, err := uc.Search("1.0503")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Acero al carbono C45", results[0].Name,
		"código de especificación exacto gana al orden alfabético")
}

// El nombre de la especificación también participa en la búsqueda por subcadena.
func TestSearch_PorNombreDeEspecificacion(t *testing.T) {
	uc, _ := newCatalogUC(t)
	mustCreate(t, uc, dto.MaterialTypeRequest{
		Name:              "Acero inoxidable 304",
		SpecificationName: "Chromium-nickel austenitic",
	})

	results, err := uc.Search("austenitic")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Acero inoxidable 304", results[0].Name)
}
