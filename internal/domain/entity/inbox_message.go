package entity

import "time"

// InboxType discriminador del tipo de mensaje de la bandeja administrativa.
type InboxType string

const (
	InboxStockIssueApproval InboxType = "STOCK_ISSUE_APPROVAL" // transición pendiente: requiere decisión
	InboxStockOutReport     InboxType = "STOCK_OUT_REPORT"     // informativo: recepción sin novedades
	InboxLowStock           InboxType = "LOW_STOCK"            // informativo: bucket bajo el umbral
)

// DecisionAction acción del administrador sobre un STOCK_ISSUE_APPROVAL.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "APPROVE"
	DecisionReject  DecisionAction = "REJECT"
)

// InboxPayload carga del mensaje. Para STOCK_ISSUE_APPROVAL lleva los
// seriales reportados y el lote origen; para LOW_STOCK el bucket y el conteo.
// Se persiste como jsonb.
type InboxPayload struct {
	BatchID        string   `json:"batch_id,omitempty"`
	StationID      string   `json:"station_id,omitempty"`
	CategoryID     string   `json:"category_id,omitempty"`
	TypeID         string   `json:"type_id,omitempty"`
	LostSerials    []string `json:"lost_serials,omitempty"`
	DamagedSerials []string `json:"damaged_serials,omitempty"`
	ConfirmedCount int      `json:"confirmed_count,omitempty"`
	CurrentStock   int      `json:"current_stock,omitempty"`
	MinThreshold   int      `json:"min_threshold,omitempty"`
}

// InboxMessage mensaje de la bandeja de aprobación/notificaciones.
// Processed es el latch de un solo escritor: se fija exactamente una vez,
// en la misma transacción que aplica (o rechaza) la transición de tarjetas.
type InboxMessage struct {
	ID            string
	Type          InboxType
	Payload       InboxPayload
	Sender        string // actor/rol que originó el mensaje
	RecipientRole string // alcance por rol, ej. "admin"
	IsRead        bool
	ReadAt        *time.Time
	SentAt        time.Time
	Processed     bool
}

// RequiresDecision indica si el mensaje codifica una transición pendiente.
func (m *InboxMessage) RequiresDecision() bool {
	return m.Type == InboxStockIssueApproval
}
