package inbox

import (
	"context"
	"time"

	"github.com/tu-usuario/cardstock-pro/internal/application/dto"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// UseCase lectura de la bandeja administrativa y marcado de leído para
// mensajes informativos. Las decisiones sobre aprobaciones viven en el
// paquete approval; aquí solo se consulta.
type UseCase struct {
	inboxRepo repository.InboxRepository
}

// New construye el caso de uso.
func New(inboxRepo repository.InboxRepository) *UseCase {
	return &UseCase{inboxRepo: inboxRepo}
}

// List devuelve los mensajes visibles para el rol.
func (uc *UseCase) List(ctx context.Context, f repository.InboxFilter) ([]dto.InboxMessageDTO, error) {
	msgs, err := uc.inboxRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InboxMessageDTO, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toDTO(m))
	}
	return out, nil
}

// MarkRead marca un mensaje como leído. No toca el latch processed: leer una
// aprobación no equivale a decidirla.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	msg, err := uc.inboxRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return domain.ErrNotFound
	}
	if msg.IsRead {
		return nil
	}
	return uc.inboxRepo.MarkRead(ctx, id)
}

func toDTO(m *entity.InboxMessage) dto.InboxMessageDTO {
	d := dto.InboxMessageDTO{
		ID:             m.ID,
		Type:           string(m.Type),
		Sender:         m.Sender,
		RecipientRole:  m.RecipientRole,
		IsRead:         m.IsRead,
		SentAt:         m.SentAt.Format(time.RFC3339),
		Processed:      m.Processed,
		BatchID:        m.Payload.BatchID,
		StationID:      m.Payload.StationID,
		LostSerials:    m.Payload.LostSerials,
		DamagedSerials: m.Payload.DamagedSerials,
		CurrentStock:   m.Payload.CurrentStock,
		MinThreshold:   m.Payload.MinThreshold,
	}
	if m.ReadAt != nil {
		s := m.ReadAt.Format(time.RFC3339)
		d.ReadAt = &s
	}
	return d
}
