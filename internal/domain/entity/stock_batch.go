package entity

import "time"

// BatchStatus estado de un lote de despacho.
type BatchStatus string

const (
	BatchInTransit BatchStatus = "IN_TRANSIT" // despachado, pendiente de recepción
	BatchReceived  BatchStatus = "RECEIVED"   // recepción confirmada (stock-in ya ejecutado)
)

// StockBatch lote de despacho bodega -> estación. Conserva el conjunto exacto
// de seriales despachados para que la recepción pueda exigir que
// confirmados ∪ perdidos ∪ dañados lo cubra sin faltantes ni sobrantes.
// La fila del lote se bloquea (FOR UPDATE) durante el stock-in para
// serializar reintentos concurrentes sobre el mismo lote.
type StockBatch struct {
	ID         string
	CategoryID string
	TypeID     string
	StationID  string
	Serials    []string
	Status     BatchStatus
	CreatedBy  string
	CreatedAt  time.Time
	ReceivedAt *time.Time
}

// ContainsExactly verifica que los seriales recibidos cubran exactamente el
// conjunto original del lote, sin omitidos, repetidos ni ajenos.
func (b *StockBatch) ContainsExactly(serials []string) bool {
	if len(serials) != len(b.Serials) {
		return false
	}
	set := make(map[string]struct{}, len(b.Serials))
	for _, s := range b.Serials {
		set[s] = struct{}{}
	}
	for _, s := range serials {
		if _, ok := set[s]; !ok {
			return false
		}
		delete(set, s) // detecta duplicados en la entrada
	}
	return len(set) == 0
}
