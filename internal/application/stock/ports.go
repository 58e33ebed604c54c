package stock

import (
	"context"

	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Toda escritura que toca Card Store y agregado
// pasa por aquí: el movimiento entero commitea o se revierte, nunca a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		cardRepo repository.CardRepository,
		summaryRepo repository.StockSummaryRepository,
		batchRepo repository.StockBatchRepository,
		inboxRepo repository.InboxRepository,
	) error) error
}
