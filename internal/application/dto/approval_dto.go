package dto

// DecisionRequest decisión del administrador sobre un STOCK_ISSUE_APPROVAL.
type DecisionRequest struct {
	Action string `json:"action"` // APPROVE | REJECT
}

// DecisionResponse resultado de la decisión.
type DecisionResponse struct {
	InboxMessageID string `json:"inbox_message_id"`
	Action         string `json:"action"`
	LostApplied    int    `json:"lost_applied"`
	DamagedApplied int    `json:"damaged_applied"`
	Restored       int    `json:"restored"`
}

// InboxMessageDTO mensaje de bandeja en respuestas.
type InboxMessageDTO struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Sender         string   `json:"sender"`
	RecipientRole  string   `json:"recipient_role"`
	IsRead         bool     `json:"is_read"`
	ReadAt         *string  `json:"read_at,omitempty"`
	SentAt         string   `json:"sent_at"`
	Processed      bool     `json:"processed"`
	BatchID        string   `json:"batch_id,omitempty"`
	StationID      string   `json:"station_id,omitempty"`
	LostSerials    []string `json:"lost_serials,omitempty"`
	DamagedSerials []string `json:"damaged_serials,omitempty"`
	CurrentStock   int      `json:"current_stock,omitempty"`
	MinThreshold   int      `json:"min_threshold,omitempty"`
}
