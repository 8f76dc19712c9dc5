// Package pdf implementa la generación del vale de salida de material
// (picking ticket) para sugerencias aceptadas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Taller Pro  │  N° Vale + Fecha de decisión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOLICITUD: Material + Pieza/Orden + Cantidad                │
//	│  LOTE: Nombre + Ubicación + Forma + Dimensiones              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AJUSTE: Categoría + Razón + Puntaje final                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CÓDIGO DE BARRAS del lote + espacio de firma                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/barcode"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appmatching "github.com/tallerpro/taller-api/internal/application/matching"
	"github.com/tallerpro/taller-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appmatching.PickingTicketGenerator = (*MarotoTicketGenerator)(nil)

// MarotoTicketGenerator implementa matching.PickingTicketGenerator usando Maroto v2.
type MarotoTicketGenerator struct{}

// NewMarotoTicketGenerator construye el generador.
func NewMarotoTicketGenerator() *MarotoTicketGenerator { return &MarotoTicketGenerator{} }

// GeneratePickingTicket genera el PDF del vale y devuelve sus bytes.
func (g *MarotoTicketGenerator) GeneratePickingTicket(
	_ context.Context,
	s *entity.Suggestion,
	lot *entity.StockLot,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Vale de Salida de Material", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requestRow(s))
	m.AddRows(lotRow(lot))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(fitRow(s))
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(barcodeRow(lot))
	m.AddRows(signatureRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar vale: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del taller (izq) y N° de vale + fecha de decisión (der).
func headerRow(s *entity.Suggestion) core.Row {
	fecha := time.Now().Format("02/01/2006")
	if s.DecidedAt != nil {
		fecha = s.DecidedAt.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New("TALLER PRO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Control de materiales de planta", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("VALE DE SALIDA DE MATERIAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(s.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// requestRow: qué se pidió y para qué pieza u orden.
func requestRow(s *entity.Suggestion) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("SOLICITUD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.MaterialTypeName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Pieza/Orden: %s   |   Cantidad: %s   |   Autorizó: %s",
				nonEmpty(s.PartRef, "—"),
				s.RequiredQuantity.String(),
				nonEmpty(s.DecidedBy, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// lotRow: lote asignado con ubicación y dimensiones.
func lotRow(lot *entity.StockLot) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("LOTE ASIGNADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(lot.MaterialName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Ubicación: %s   |   Forma: %s   |   Dimensiones: %s   |   Calidad: %s",
				nonEmpty(lot.Location, "—"),
				lot.ShapeType,
				formatDims(lot),
				lot.QualityStatus,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// fitRow: categoría de ajuste y puntaje final de la sugerencia aceptada.
func fitRow(s *entity.Suggestion) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("AJUSTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(s.MatchReason, props.Text{Size: 9, Top: 7}),
		),
		col.New(4).Add(
			text.New(strings.ToUpper(strings.ReplaceAll(s.Category, "_", " ")), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1, Color: colorPrimary,
			}),
			text.New(fmt.Sprintf("Puntaje: %.2f", s.FinalScore), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
		),
	)
}

// barcodeRow: Code 128 con el ID del lote para escanear en bodega.
func barcodeRow(lot *entity.StockLot) core.Row {
	return row.New(24).Add(
		col.New(6).Add(
			code.NewBar(lot.ID, props.Barcode{
				Type:    barcode.Code128,
				Percent: 90,
				Center:  true,
			}),
		),
		col.New(6).Add(
			text.New("Escanea el código para confirmar\nla salida del lote en bodega.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New("Lote: "+shortID(lot.ID), props.Text{
				Size: 7, Top: 18, Left: 3, Color: colorGray,
			}),
		),
	)
}

// signatureRow: espacio de firmas de quien entrega y quien recibe.
func signatureRow(s *entity.Suggestion) core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 12, Color: colorGray,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 18, Color: colorGray,
			}),
		)
	}
	return row.New(26).Add(
		sig("Entrega (bodega)"),
		sig("Recibe: "+nonEmpty(s.DecidedBy, "operario")),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres de un UUID, en mayúsculas.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}

// formatDims arma la cadena de dimensiones presentes del lote, en mm.
func formatDims(lot *entity.StockLot) string {
	var parts []string
	add := func(label string, v *float64) {
		if v != nil {
			parts = append(parts, fmt.Sprintf("%s %.1f mm", label, *v))
		}
	}
	add("Ø", lot.Diameter)
	add("ancho", lot.Width)
	add("alto", lot.Height)
	add("espesor", lot.Thickness)
	add("largo", lot.Length)
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, " × ")
}
