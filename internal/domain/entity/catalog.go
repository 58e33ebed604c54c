package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardCategory categoría comercial de la tarjeta (ej. GOLD, SILVER).
type CardCategory struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// CardType tipo de tarjeta dentro de una categoría (ej. JaBan). Define el
// precio de venta, la cuota de viajes y la vigencia con la que se calcula
// la fecha de expiración al vender.
type CardType struct {
	ID           string
	CategoryID   string
	Name         string
	Price        decimal.Decimal
	QuotaTicket  int
	ValidityDays int
	CreatedAt    time.Time
}

// ExpiryFrom calcula la fecha de expiración de una venta hecha en purchase.
func (t *CardType) ExpiryFrom(purchase time.Time) time.Time {
	return purchase.AddDate(0, 0, t.ValidityDays)
}
