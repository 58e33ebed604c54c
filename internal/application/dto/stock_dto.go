package dto

// IntakeRequest ingreso de tarjetas nuevas a bodega.
type IntakeRequest struct {
	CategoryID string   `json:"category_id"`
	TypeID     string   `json:"type_id"`
	ProductID  string   `json:"product_id"`
	Serials    []string `json:"serials"`
}

// StockOutRequest despacho de un lote bodega -> estación.
type StockOutRequest struct {
	StationID string   `json:"station_id"`
	Serials   []string `json:"serials"`
}

// StockOutResponse resultado del despacho.
type StockOutResponse struct {
	BatchID    string `json:"batch_id"`
	CategoryID string `json:"category_id"`
	TypeID     string `json:"type_id"`
	StationID  string `json:"station_id"`
	Dispatched int    `json:"dispatched"`
}

// StockInRequest recepción de un lote en estación, con novedades.
type StockInRequest struct {
	BatchID        string   `json:"batch_id"`
	Confirmed      []string `json:"confirmed_serials"`
	LostSerials    []string `json:"lost_serials"`
	DamagedSerials []string `json:"damaged_serials"`
}

// StockInResponse resultado de la recepción.
type StockInResponse struct {
	BatchID        string `json:"batch_id"`
	Confirmed      int    `json:"confirmed"`
	Lost           int    `json:"lost"`
	Damaged        int    `json:"damaged"`
	InboxMessageID string `json:"inbox_message_id"`
	NeedsApproval  bool   `json:"needs_approval"`
}

// SaleRequest evento de compra de una tarjeta (lo emite el módulo de ventas).
type SaleRequest struct {
	SerialNumber string `json:"serial_number"`
}

// SaleResponse resultado de la venta.
type SaleResponse struct {
	SerialNumber string `json:"serial_number"`
	StationID    string `json:"station_id"`
	PurchaseDate string `json:"purchase_date"`
	ExpiredDate  string `json:"expired_date"`
}
