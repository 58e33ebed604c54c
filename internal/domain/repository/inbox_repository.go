package repository

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// InboxFilter filtros de listado de la bandeja.
type InboxFilter struct {
	RecipientRole string
	Type          entity.InboxType
	UnreadOnly    bool
	Limit         int
	Offset        int
}

// InboxRepository define el puerto de persistencia de la bandeja administrativa.
type InboxRepository interface {
	Create(ctx context.Context, msg *entity.InboxMessage) error
	GetByID(ctx context.Context, id string) (*entity.InboxMessage, error)
	List(ctx context.Context, f InboxFilter) ([]*entity.InboxMessage, error)
	MarkRead(ctx context.Context, id string) error
	// MarkProcessed latch de un solo escritor: UPDATE ... WHERE processed = false.
	// Devuelve false si otro caller ya había procesado el mensaje.
	MarkProcessed(ctx context.Context, id string) (bool, error)
}
