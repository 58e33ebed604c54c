package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
)

// dispatch ingresa n tarjetas y las despacha a la estación; devuelve los
// seriales y el ID del lote en tránsito.
func dispatch(t *testing.T, w *world, n int) ([]string, string) {
	t.Helper()
	list := seedOffice(t, w, n)
	result, err := stock.NewStockOutUseCase(w.tx, w.stations).Execute(context.Background(), stock.StockOutInput{
		StationID: stationID,
		Serials:   list,
		ActorID:   "admin-1",
	})
	require.NoError(t, err)
	return list, result.BatchID
}

func TestStockIn_RecepcionSinNovedades(t *testing.T) {
	w := newWorld()
	list, batchID := dispatch(t, w, 10)
	uc := stock.NewStockInUseCase(w.tx)
	ctx := context.Background()

	result, err := uc.Execute(ctx, stock.StockInInput{
		BatchID:   batchID,
		Confirmed: list,
		ActorID:   "op-1",
		ActorRole: "operador",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, result.Confirmed)
	assert.False(t, result.NeedsApproval)

	// Tarjetas en estación, lote recibido.
	for _, s := range list {
		card, _ := w.cards.GetBySerial(ctx, s)
		assert.Equal(t, entity.CardInStation, card.Status)
	}
	batch, _ := w.batches.GetByID(ctx, batchID)
	assert.Equal(t, entity.BatchReceived, batch.Status)

	// Agregado: tránsito vacío, todo circulando y sin vender.
	bucket := w.stationBucket()
	assert.Equal(t, 0, bucket.CardInTransit)
	assert.Equal(t, 10, bucket.CardBeredar)
	assert.Equal(t, 10, bucket.CardBelumTerjual)
	assert.True(t, bucket.IsConsistent())

	// Exactamente un mensaje, informativo y ya procesado.
	msg, _ := w.inbox.GetByID(ctx, result.InboxMessageID)
	require.NotNil(t, msg)
	assert.Equal(t, entity.InboxStockOutReport, msg.Type)
	assert.True(t, msg.Processed)
	assert.Len(t, w.inbox.messages, 1)
}

func TestStockIn_ConNovedadesRetieneElFaltante(t *testing.T) {
	w := newWorld()
	list, batchID := dispatch(t, w, 10)
	uc := stock.NewStockInUseCase(w.tx)
	ctx := context.Background()

	confirmed, lost, damaged := list[:8], list[8:9], list[9:]
	result, err := uc.Execute(ctx, stock.StockInInput{
		BatchID:   batchID,
		Confirmed: confirmed,
		Lost:      lost,
		Damaged:   damaged,
		ActorID:   "op-1",
		ActorRole: "operador",
	})
	require.NoError(t, err)
	assert.True(t, result.NeedsApproval)
	assert.Equal(t, 8, result.Confirmed)
	assert.Equal(t, 1, result.Lost)
	assert.Equal(t, 1, result.Damaged)

	// Las reportadas NO cambian de estado: quedan retenidas en tránsito
	// hasta la decisión del administrador.
	for _, s := range append(lost, damaged...) {
		card, _ := w.cards.GetBySerial(ctx, s)
		assert.Equal(t, entity.CardInTransit, card.Status)
	}
	for _, s := range confirmed {
		card, _ := w.cards.GetBySerial(ctx, s)
		assert.Equal(t, entity.CardInStation, card.Status)
	}

	bucket := w.stationBucket()
	assert.Equal(t, 2, bucket.CardInTransit, "el faltante sigue contado en tránsito")
	assert.Equal(t, 8, bucket.CardBeredar)
	assert.Equal(t, 8, bucket.CardBelumTerjual)
	assert.True(t, bucket.IsConsistent())

	// El mensaje pendiente lleva los seriales reportados.
	msg, _ := w.inbox.GetByID(ctx, result.InboxMessageID)
	require.NotNil(t, msg)
	assert.Equal(t, entity.InboxStockIssueApproval, msg.Type)
	assert.False(t, msg.Processed)
	assert.Equal(t, lost, msg.Payload.LostSerials)
	assert.Equal(t, damaged, msg.Payload.DamagedSerials)
	assert.Equal(t, 8, msg.Payload.ConfirmedCount)
}

func TestStockIn_ConciliacionIncompleta(t *testing.T) {
	w := newWorld()
	list, batchID := dispatch(t, w, 10)
	uc := stock.NewStockInUseCase(w.tx)
	ctx := context.Background()

	// Falta un serial: ni confirmado ni reportado.
	_, err := uc.Execute(ctx, stock.StockInInput{
		BatchID:   batchID,
		Confirmed: list[:9],
		ActorID:   "op-1",
		ActorRole: "operador",
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteReconciliation)

	// Nada cambió: todas siguen en tránsito y el lote sigue pendiente.
	for _, s := range list {
		card, _ := w.cards.GetBySerial(ctx, s)
		assert.Equal(t, entity.CardInTransit, card.Status)
	}
	batch, _ := w.batches.GetByID(ctx, batchID)
	assert.Equal(t, entity.BatchInTransit, batch.Status)
	assert.Len(t, w.inbox.messages, 0)
}

func TestStockIn_SerialAjenoAlLote(t *testing.T) {
	w := newWorld()
	list, batchID := dispatch(t, w, 3)
	uc := stock.NewStockInUseCase(w.tx)

	_, err := uc.Execute(context.Background(), stock.StockInInput{
		BatchID:   batchID,
		Confirmed: []string{list[0], list[1], "SN-AJENO"},
		Lost:      list[2:],
		ActorID:   "op-1",
		ActorRole: "operador",
	})
	assert.ErrorIs(t, err, domain.ErrIncompleteReconciliation)
}

func TestStockIn_LoteYaRecibido(t *testing.T) {
	w := newWorld()
	list, batchID := dispatch(t, w, 5)
	uc := stock.NewStockInUseCase(w.tx)
	ctx := context.Background()

	_, err := uc.Execute(ctx, stock.StockInInput{
		BatchID: batchID, Confirmed: list, ActorID: "op-1", ActorRole: "operador",
	})
	require.NoError(t, err)

	// El reintento observa el lote RECEIVED y no duplica nada.
	_, err = uc.Execute(ctx, stock.StockInInput{
		BatchID: batchID, Confirmed: list, ActorID: "op-1", ActorRole: "operador",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyProcessed)

	bucket := w.stationBucket()
	assert.Equal(t, 5, bucket.CardBeredar, "los contadores no se duplican")
	assert.Len(t, w.inbox.messages, 1, "no se genera un segundo mensaje")
}

func TestStockIn_LoteInexistente(t *testing.T) {
	w := newWorld()
	uc := stock.NewStockInUseCase(w.tx)

	_, err := uc.Execute(context.Background(), stock.StockInInput{
		BatchID: "b-fantasma", Confirmed: []string{"SN-1"}, ActorID: "op-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
