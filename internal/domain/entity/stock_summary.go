package entity

import "time"

// StockSummary fila desnormalizada del agregado de inventario, una por
// combinación (categoría, tipo, estación). StationID nil representa la fila
// de bodega central (Office). Los contadores se mantienen de forma
// incremental en la misma transacción que muta las tarjetas; nunca se
// recalculan con un escaneo completo en el camino caliente de lectura.
type StockSummary struct {
	ID         string
	CategoryID string
	TypeID     string
	StationID  *string

	CardOffice       int // solo significativo en la fila de bodega
	CardInTransit    int // despachadas y aún no confirmadas en estación
	CardBeredar      int // entregadas a la estación (circulando)
	CardAktif        int // vendidas y vigentes
	CardNonAktif     int // vendidas y expiradas (materializado por el barrido)
	CardBelumTerjual int // entregadas y aún sin vender

	UpdatedAt time.Time
}

// IsConsistent verifica el invariante de estación en reposo:
// cardBeredar = cardAktif + cardNonAktif + cardBelumTerjual.
// La fila de bodega (StationID nil) no circula, así que siempre es consistente.
func (s *StockSummary) IsConsistent() bool {
	if s.StationID == nil {
		return true
	}
	return s.CardBeredar == s.CardAktif+s.CardNonAktif+s.CardBelumTerjual
}

// SummaryDelta incrementos con signo a aplicar atómicamente sobre un bucket
// (upsert insert-or-increment). Un movimiento produce uno o dos deltas y
// todos se aplican dentro de la transacción del movimiento, nunca parcialmente.
type SummaryDelta struct {
	CategoryID string
	TypeID     string
	StationID  *string

	CardOffice       int
	CardInTransit    int
	CardBeredar      int
	CardAktif        int
	CardNonAktif     int
	CardBelumTerjual int
}

// DeltaOfficeIntake ingreso de n tarjetas nuevas a bodega.
func DeltaOfficeIntake(categoryID, typeID string, n int) SummaryDelta {
	return SummaryDelta{CategoryID: categoryID, TypeID: typeID, CardOffice: n}
}

// DeltaStockOut despacho bodega -> tránsito: resta en bodega y suma en
// tránsito del bucket de la estación destino (la fila se crea si no existe).
func DeltaStockOut(categoryID, typeID, stationID string, n int) (office, station SummaryDelta) {
	office = SummaryDelta{CategoryID: categoryID, TypeID: typeID, CardOffice: -n}
	station = SummaryDelta{CategoryID: categoryID, TypeID: typeID, StationID: &stationID, CardInTransit: n}
	return office, station
}

// DeltaStockIn recepción confirmada en estación: el faltante reportado como
// perdido/dañado NO se aplica aquí; queda retenido hasta la aprobación.
func DeltaStockIn(categoryID, typeID, stationID string, confirmed int) SummaryDelta {
	return SummaryDelta{
		CategoryID:       categoryID,
		TypeID:           typeID,
		StationID:        &stationID,
		CardInTransit:    -confirmed,
		CardBeredar:      confirmed,
		CardBelumTerjual: confirmed,
	}
}

// DeltaSale venta de una tarjeta en estación.
func DeltaSale(categoryID, typeID, stationID string) SummaryDelta {
	return SummaryDelta{
		CategoryID:       categoryID,
		TypeID:           typeID,
		StationID:        &stationID,
		CardBelumTerjual: -1,
		CardAktif:        1,
	}
}

// DeltaExpiry materialización de expiración de una tarjeta vendida.
func DeltaExpiry(categoryID, typeID, stationID string) SummaryDelta {
	return SummaryDelta{
		CategoryID:   categoryID,
		TypeID:       typeID,
		StationID:    &stationID,
		CardAktif:    -1,
		CardNonAktif: 1,
	}
}

// DeltaApprovedIssue baja aprobada (perdida/dañada) de una tarjeta que nunca
// llegó a estación: solo decrementa cardInTransit. Las tarjetas perdidas o
// dañadas quedan fuera de todos los contadores del agregado; el resumen total
// las cuenta directamente por estado en el Card Store.
func DeltaApprovedIssue(categoryID, typeID, stationID string, n int) SummaryDelta {
	return SummaryDelta{
		CategoryID:    categoryID,
		TypeID:        typeID,
		StationID:     &stationID,
		CardInTransit: -n,
	}
}

// IsZero indica si el delta no modifica ningún contador.
func (d SummaryDelta) IsZero() bool {
	return d.CardOffice == 0 && d.CardInTransit == 0 && d.CardBeredar == 0 &&
		d.CardAktif == 0 && d.CardNonAktif == 0 && d.CardBelumTerjual == 0
}
