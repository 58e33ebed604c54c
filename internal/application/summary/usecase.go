package summary

import (
	"context"
	"sort"

	"github.com/tu-usuario/cardstock-pro/internal/application/dto"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// UseCase lecturas de resumen. Todas menos TotalSummary leen únicamente el
// agregado desnormalizado: la cardinalidad de buckets (categorías × tipos ×
// estaciones) es pequeña y acotada, así que el agrupamiento se hace en
// memoria tras un solo listado.
type UseCase struct {
	summaryRepo repository.StockSummaryRepository
	cardRepo    repository.CardRepository
	stationRepo repository.StationRepository
	catalogRepo repository.CatalogRepository
}

// New construye el caso de uso.
func New(
	summaryRepo repository.StockSummaryRepository,
	cardRepo repository.CardRepository,
	stationRepo repository.StationRepository,
	catalogRepo repository.CatalogRepository,
) *UseCase {
	return &UseCase{
		summaryRepo: summaryRepo,
		cardRepo:    cardRepo,
		stationRepo: stationRepo,
		catalogRepo: catalogRepo,
	}
}

// CategoryTypeSummary agrupa los buckets por (categoría, tipo) y deriva
// totalStock = office + beredar.
func (uc *UseCase) CategoryTypeSummary(ctx context.Context, f repository.SummaryFilter) ([]dto.CategoryTypeSummaryRow, error) {
	buckets, err := uc.summaryRepo.ListBuckets(ctx, f)
	if err != nil {
		return nil, err
	}
	catNames, typeNames, err := uc.catalogNames(ctx)
	if err != nil {
		return nil, err
	}

	type key struct{ cat, typ string }
	grouped := make(map[key]*dto.CategoryTypeSummaryRow)
	for _, b := range buckets {
		k := key{b.CategoryID, b.TypeID}
		row, ok := grouped[k]
		if !ok {
			row = &dto.CategoryTypeSummaryRow{
				CategoryID:   b.CategoryID,
				CategoryName: catNames[b.CategoryID],
				TypeID:       b.TypeID,
				TypeName:     typeNames[b.TypeID],
			}
			grouped[k] = row
		}
		row.CardOffice += b.CardOffice
		row.CardInTransit += b.CardInTransit
		row.CardBeredar += b.CardBeredar
		row.CardAktif += b.CardAktif
		row.CardNonAktif += b.CardNonAktif
		row.CardBelumTerjual += b.CardBelumTerjual
	}

	rows := make([]dto.CategoryTypeSummaryRow, 0, len(grouped))
	for _, row := range grouped {
		row.TotalStock = row.CardOffice + row.CardBeredar
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CategoryName != rows[j].CategoryName {
			return rows[i].CategoryName < rows[j].CategoryName
		}
		return rows[i].TypeName < rows[j].TypeName
	})
	return rows, nil
}

// StationMonitor vista por bucket de estación; total = aktif + nonAktif.
func (uc *UseCase) StationMonitor(ctx context.Context, f repository.SummaryFilter) ([]dto.StationMonitorRow, error) {
	buckets, err := uc.summaryRepo.ListStationBuckets(ctx, f)
	if err != nil {
		return nil, err
	}
	catNames, typeNames, err := uc.catalogNames(ctx)
	if err != nil {
		return nil, err
	}
	stationNames, err := uc.stationNames(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StationMonitorRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, dto.StationMonitorRow{
			StationID:        *b.StationID,
			StationName:      stationNames[*b.StationID],
			CategoryID:       b.CategoryID,
			CategoryName:     catNames[b.CategoryID],
			TypeID:           b.TypeID,
			TypeName:         typeNames[b.TypeID],
			CardInTransit:    b.CardInTransit,
			CardBeredar:      b.CardBeredar,
			CardAktif:        b.CardAktif,
			CardNonAktif:     b.CardNonAktif,
			CardBelumTerjual: b.CardBelumTerjual,
			Total:            b.CardAktif + b.CardNonAktif,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StationName != rows[j].StationName {
			return rows[i].StationName < rows[j].StationName
		}
		return rows[i].TypeName < rows[j].TypeName
	})
	return rows, nil
}

// TotalSummary el único lector que consulta el Card Store directo: las cifras
// de perdidas/dañadas/total emitido no se mantienen como contadores.
func (uc *UseCase) TotalSummary(ctx context.Context) (*dto.TotalSummaryResponse, error) {
	counts, err := uc.cardRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.TotalSummaryResponse{
		InOffice:   counts[entity.CardInOffice],
		InTransit:  counts[entity.CardInTransit],
		InStation:  counts[entity.CardInStation],
		SoldActive: counts[entity.CardSoldActive],
		Lost:       counts[entity.CardLost],
		Damaged:    counts[entity.CardDamaged],
	}
	for _, n := range counts {
		resp.TotalCards += n
	}
	return resp, nil
}

// StationSummary una fila por estación más la fila sintética "Office" que
// agrupa las filas de bodega (stationId null).
func (uc *UseCase) StationSummary(ctx context.Context) ([]dto.StationSummaryRow, error) {
	buckets, err := uc.summaryRepo.ListBuckets(ctx, repository.SummaryFilter{})
	if err != nil {
		return nil, err
	}
	stationNames, err := uc.stationNames(ctx)
	if err != nil {
		return nil, err
	}

	office := dto.StationSummaryRow{StationName: "Office"}
	grouped := make(map[string]*dto.StationSummaryRow)
	for _, b := range buckets {
		if b.StationID == nil {
			office.CardOffice += b.CardOffice
			continue
		}
		row, ok := grouped[*b.StationID]
		if !ok {
			row = &dto.StationSummaryRow{
				StationID:   *b.StationID,
				StationName: stationNames[*b.StationID],
			}
			grouped[*b.StationID] = row
		}
		row.CardInTransit += b.CardInTransit
		row.CardBeredar += b.CardBeredar
		row.CardAktif += b.CardAktif
		row.CardNonAktif += b.CardNonAktif
		row.CardBelumTerjual += b.CardBelumTerjual
	}

	rows := make([]dto.StationSummaryRow, 0, len(grouped)+1)
	rows = append(rows, office)
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows[1:], func(i, j int) bool {
		return rows[1:][i].StationName < rows[1:][j].StationName
	})
	return rows, nil
}

func (uc *UseCase) catalogNames(ctx context.Context) (map[string]string, map[string]string, error) {
	cats, err := uc.catalogRepo.ListCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	catNames := make(map[string]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}
	types, err := uc.catalogRepo.ListTypes(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	typeNames := make(map[string]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	return catNames, typeNames, nil
}

func (uc *UseCase) stationNames(ctx context.Context) (map[string]string, error) {
	stations, err := uc.stationRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(stations))
	for _, s := range stations {
		names[s.ID] = s.Name
	}
	return names, nil
}
