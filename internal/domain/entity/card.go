package entity

import "time"

// CardStatus estado de una tarjeta física dentro de su ciclo de vida.
type CardStatus string

const (
	CardInOffice   CardStatus = "IN_OFFICE"   // en bodega central, recién recibida del fabricante
	CardInTransit  CardStatus = "IN_TRANSIT"  // despachada hacia una estación
	CardInStation  CardStatus = "IN_STATION"  // recibida en estación, disponible para venta
	CardSoldActive CardStatus = "SOLD_ACTIVE" // vendida; la expiración es un predicado, no un estado
	CardLost       CardStatus = "LOST"        // extraviada, solo vía decisión de aprobación
	CardDamaged    CardStatus = "DAMAGED"     // dañada, solo vía decisión de aprobación
)

// allowedTransitions tabla de transiciones permitidas del ciclo de vida.
// LOST/DAMAGED solo se alcanzan desde IN_TRANSIT o IN_STATION y únicamente
// a través de una decisión de aprobación; una tarjeta vendida nunca regresa
// a la bodega ni al tránsito.
var allowedTransitions = map[CardStatus][]CardStatus{
	CardInOffice:  {CardInTransit},
	CardInTransit: {CardInStation, CardLost, CardDamaged},
	CardInStation: {CardSoldActive, CardLost, CardDamaged},
}

// CanTransition indica si el cambio de estado from -> to está permitido.
func CanTransition(from, to CardStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Card una tarjeta física de transporte. El serial es inmutable y único;
// el estado y la estación asignada cambian con los movimientos de stock.
type Card struct {
	ID           string
	SerialNumber string
	Status       CardStatus
	CategoryID   string
	TypeID       string
	ProductID    string
	StationID    *string // nil mientras está en bodega; se fija al llegar a estación
	QuotaTicket  int
	PurchaseDate *time.Time
	ExpiredDate  *time.Time
	// ExpiryMaterialized marca que el barrido ya movió esta tarjeta de
	// cardAktif a cardNonAktif en el agregado (evita doble conteo).
	ExpiryMaterialized bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsExpired predica expiración derivada: vendida y con fecha vencida.
func (c *Card) IsExpired(now time.Time) bool {
	return c.Status == CardSoldActive && c.ExpiredDate != nil && c.ExpiredDate.Before(now)
}

// BucketStationID devuelve la estación del bucket al que pertenece la tarjeta
// (nil = fila de bodega central).
func (c *Card) BucketStationID() *string {
	return c.StationID
}
