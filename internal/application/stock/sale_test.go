package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cardstock-pro/internal/application/stock"
	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
	"github.com/tu-usuario/cardstock-pro/pkg/logger"
)

// receive deja n tarjetas IN_STATION listas para vender.
func receive(t *testing.T, w *world, n int) []string {
	t.Helper()
	list, batchID := dispatch(t, w, n)
	_, err := stock.NewStockInUseCase(w.tx).Execute(context.Background(), stock.StockInInput{
		BatchID:   batchID,
		Confirmed: list,
		ActorID:   "op-1",
		ActorRole: "operador",
	})
	require.NoError(t, err)
	return list
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func TestSale_VendeTarjeta(t *testing.T) {
	w := newWorld()
	list := receive(t, w, 3)
	uc := stock.NewSaleUseCase(w.tx, w.catalog)
	ctx := context.Background()

	result, err := uc.Execute(ctx, stock.SaleInput{SerialNumber: list[0], ActorID: "op-1"})
	require.NoError(t, err)
	assert.Equal(t, stationID, result.StationID)
	assert.Equal(t, result.PurchaseDate.AddDate(0, 0, 30), result.ExpiredDate,
		"la expiración sale de la vigencia del tipo (30 días)")

	card, _ := w.cards.GetBySerial(ctx, list[0])
	assert.Equal(t, entity.CardSoldActive, card.Status)
	require.NotNil(t, card.PurchaseDate)
	require.NotNil(t, card.ExpiredDate)

	bucket := w.stationBucket()
	assert.Equal(t, 1, bucket.CardAktif)
	assert.Equal(t, 2, bucket.CardBelumTerjual)
	assert.Equal(t, 3, bucket.CardBeredar, "la venta no cambia lo circulante")
	assert.True(t, bucket.IsConsistent())
}

func TestSale_TarjetaEnBodegaNoSeVende(t *testing.T) {
	w := newWorld()
	list := seedOffice(t, w, 1)
	uc := stock.NewSaleUseCase(w.tx, w.catalog)

	_, err := uc.Execute(context.Background(), stock.SaleInput{SerialNumber: list[0], ActorID: "op-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestSale_VentaDobleFalla(t *testing.T) {
	w := newWorld()
	list := receive(t, w, 1)
	uc := stock.NewSaleUseCase(w.tx, w.catalog)
	ctx := context.Background()

	_, err := uc.Execute(ctx, stock.SaleInput{SerialNumber: list[0], ActorID: "op-1"})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, stock.SaleInput{SerialNumber: list[0], ActorID: "op-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, 1, w.stationBucket().CardAktif, "una sola unidad vendida")
}

func TestSale_SerialInexistente(t *testing.T) {
	w := newWorld()
	uc := stock.NewSaleUseCase(w.tx, w.catalog)

	_, err := uc.Execute(context.Background(), stock.SaleInput{SerialNumber: "SN-FANTASMA", ActorID: "op-1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de expiración
// ──────────────────────────────────────────────────────────────────────────────

func TestExpirySweep_MaterializaUnaSolaVez(t *testing.T) {
	w := newWorld()
	list := receive(t, w, 2)
	ctx := context.Background()

	// Vender las dos y vencer una a mano.
	saleUC := stock.NewSaleUseCase(w.tx, w.catalog)
	for _, s := range list {
		_, err := saleUC.Execute(ctx, stock.SaleInput{SerialNumber: s, ActorID: "op-1"})
		require.NoError(t, err)
	}
	expired, _ := w.cards.GetBySerial(ctx, list[0])
	past := time.Now().Add(-48 * time.Hour)
	expired.ExpiredDate = &past

	sweep := stock.NewExpirySweepUseCase(w.tx, 100, testLogger())

	moved, err := sweep.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	bucket := w.stationBucket()
	assert.Equal(t, 1, bucket.CardAktif)
	assert.Equal(t, 1, bucket.CardNonAktif)
	assert.True(t, bucket.IsConsistent())

	// El estado de la tarjeta no cambia; solo se marca materializada.
	assert.Equal(t, entity.CardSoldActive, expired.Status)
	assert.True(t, expired.ExpiryMaterialized)

	// Un segundo barrido no encuentra nada pendiente.
	moved, err = sweep.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, moved, "la materialización ocurre exactamente una vez")
	assert.Equal(t, 1, w.stationBucket().CardNonAktif)
}

// staleListCardRepo devuelve siempre el mismo snapshot de candidatas,
// simulando una instancia que listó antes de que otra commiteara su barrido.
type staleListCardRepo struct {
	*memCardRepo
	snapshot []*entity.Card
}

func (r *staleListCardRepo) ListExpiredUnmaterialized(context.Context, time.Time, int) ([]*entity.Card, error) {
	return r.snapshot, nil
}

type staleTxRunner struct {
	cards     *staleListCardRepo
	summaries *memSummaryRepo
	batches   *memBatchRepo
	inbox     *memInboxRepo
}

func (f *staleTxRunner) Run(_ context.Context, fn func(
	repository.CardRepository,
	repository.StockSummaryRepository,
	repository.StockBatchRepository,
	repository.InboxRepository,
) error) error {
	return fn(f.cards, f.summaries, f.batches, f.inbox)
}

// Dos instancias con ticks solapados leen la misma tarjeta vencida; la
// segunda trabaja sobre un listado obsoleto (la tarjeta ya materializada
// aparece como pendiente). El reclamo condicionado debe dejarla en cero
// movidas, sin volver a aplicar el delta ni llevar cardAktif a negativo.
func TestExpirySweep_ListadoObsoletoNoDuplicaElDelta(t *testing.T) {
	w := newWorld()
	list := receive(t, w, 1)
	ctx := context.Background()

	saleUC := stock.NewSaleUseCase(w.tx, w.catalog)
	_, err := saleUC.Execute(ctx, stock.SaleInput{SerialNumber: list[0], ActorID: "op-1"})
	require.NoError(t, err)
	card, _ := w.cards.GetBySerial(ctx, list[0])
	past := time.Now().Add(-48 * time.Hour)
	card.ExpiredDate = &past

	// Snapshot previo al primer barrido: copia con el flag aún en false.
	stale := *card
	staleCards := &staleListCardRepo{memCardRepo: w.cards, snapshot: []*entity.Card{&stale}}
	staleTx := &staleTxRunner{cards: staleCards, summaries: w.summaries, batches: w.batches, inbox: w.inbox}

	// Instancia A materializa normalmente.
	movedA, err := stock.NewExpirySweepUseCase(w.tx, 100, testLogger()).Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, movedA)

	// Instancia B rejuega su listado obsoleto: no debe reclamar nada.
	movedB, err := stock.NewExpirySweepUseCase(staleTx, 100, testLogger()).Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, movedB, "la tarjeta ya reclamada no se vuelve a contabilizar")

	bucket := w.stationBucket()
	assert.Equal(t, 0, bucket.CardAktif)
	assert.Equal(t, 1, bucket.CardNonAktif)
	assert.True(t, bucket.IsConsistent())
}
