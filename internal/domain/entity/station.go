package entity

import "time"

// Station punto de venta que recibe tarjetas para su comercialización.
// MinStockThreshold en cero delega en el umbral por defecto de la config.
type Station struct {
	ID                string
	Name              string
	MinStockThreshold int
	CreatedAt         time.Time
}
