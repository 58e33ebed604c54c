package dto

// CategoryTypeSummaryRow resumen por categoría y tipo sumado sobre todas las
// estaciones más la fila de bodega. totalStock = office + beredar.
type CategoryTypeSummaryRow struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	TypeID       string `json:"type_id"`
	TypeName     string `json:"type_name"`

	CardOffice       int `json:"card_office"`
	CardInTransit    int `json:"card_in_transit"`
	CardBeredar      int `json:"card_beredar"`
	CardAktif        int `json:"card_aktif"`
	CardNonAktif     int `json:"card_non_aktif"`
	CardBelumTerjual int `json:"card_belum_terjual"`
	TotalStock       int `json:"total_stock"`
}

// StationMonitorRow vista por bucket de estación. total = aktif + nonAktif.
type StationMonitorRow struct {
	StationID    string `json:"station_id"`
	StationName  string `json:"station_name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	TypeID       string `json:"type_id"`
	TypeName     string `json:"type_name"`

	CardInTransit    int `json:"card_in_transit"`
	CardBeredar      int `json:"card_beredar"`
	CardAktif        int `json:"card_aktif"`
	CardNonAktif     int `json:"card_non_aktif"`
	CardBelumTerjual int `json:"card_belum_terjual"`
	Total            int `json:"total"`
}

// TotalSummaryResponse cifras globales leídas directo del Card Store por
// estado (el agregado no mantiene perdidas/dañadas/total emitido).
type TotalSummaryResponse struct {
	TotalCards int `json:"total_cards"`
	InOffice   int `json:"in_office"`
	InTransit  int `json:"in_transit"`
	InStation  int `json:"in_station"`
	SoldActive int `json:"sold_active"`
	Lost       int `json:"lost"`
	Damaged    int `json:"damaged"`
}

// StationSummaryRow una fila por estación más la fila sintética "Office".
type StationSummaryRow struct {
	StationID   string `json:"station_id"` // vacío en la fila Office
	StationName string `json:"station_name"`

	CardOffice       int `json:"card_office"`
	CardInTransit    int `json:"card_in_transit"`
	CardBeredar      int `json:"card_beredar"`
	CardAktif        int `json:"card_aktif"`
	CardNonAktif     int `json:"card_non_aktif"`
	CardBelumTerjual int `json:"card_belum_terjual"`
}

// SummaryFilterRequest filtros de los resúmenes.
type SummaryFilterRequest struct {
	CategoryID string `query:"category_id"`
	TypeID     string `query:"type_id"`
	StationID  string `query:"station_id"`
}

// LowStockCheckResponse resultado del chequeo de stock bajo.
type LowStockCheckResponse struct {
	BucketsChecked int `json:"buckets_checked"`
	AlertsSent     int `json:"alerts_sent"`
}
