package stock_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/cardstock-pro/internal/domain"
	"github.com/tu-usuario/cardstock-pro/internal/domain/entity"
	"github.com/tu-usuario/cardstock-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. El TxRunner falso no hace
// rollback: los casos de uso validan antes de mutar, y los fakes aplican las
// transiciones todo-o-nada igual que el UPDATE guardado de Postgres.
// ──────────────────────────────────────────────────────────────────────────────

type memCardRepo struct {
	cards map[string]*entity.Card // por serial
}

func newMemCardRepo() *memCardRepo {
	return &memCardRepo{cards: make(map[string]*entity.Card)}
}

func (r *memCardRepo) Create(_ context.Context, card *entity.Card) error {
	if _, ok := r.cards[card.SerialNumber]; ok {
		return domain.ErrDuplicate
	}
	r.cards[card.SerialNumber] = card
	return nil
}

func (r *memCardRepo) CreateBatch(ctx context.Context, cards []*entity.Card) error {
	for _, c := range cards {
		if err := r.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (r *memCardRepo) GetBySerial(_ context.Context, serial string) (*entity.Card, error) {
	return r.cards[serial], nil
}

func (r *memCardRepo) ListBySerials(_ context.Context, serials []string) ([]*entity.Card, error) {
	var list []*entity.Card
	for _, s := range serials {
		if c, ok := r.cards[s]; ok {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *memCardRepo) ListByStatus(_ context.Context, status entity.CardStatus, limit, offset int) ([]*entity.Card, error) {
	var list []*entity.Card
	for _, c := range r.cards {
		if c.Status == status {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SerialNumber < list[j].SerialNumber })
	if offset >= len(list) {
		return nil, nil
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *memCardRepo) TransitionSerials(_ context.Context, serials []string, from, to entity.CardStatus, stationID *string) error {
	if len(serials) == 0 {
		return nil
	}
	if !entity.CanTransition(from, to) {
		return domain.ErrInvalidTransition
	}
	// Guardia todo-o-nada: primero verificar, luego aplicar.
	for _, s := range serials {
		c, ok := r.cards[s]
		if !ok || c.Status != from {
			return domain.ErrInvalidTransition
		}
	}
	for _, s := range serials {
		c := r.cards[s]
		c.Status = to
		if stationID != nil {
			sid := *stationID
			c.StationID = &sid
		}
		c.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memCardRepo) MarkSold(_ context.Context, serial string, purchaseDate, expiredDate time.Time) (*entity.Card, error) {
	c, ok := r.cards[serial]
	if !ok || c.Status != entity.CardInStation {
		return nil, domain.ErrInvalidTransition
	}
	c.Status = entity.CardSoldActive
	c.PurchaseDate = &purchaseDate
	c.ExpiredDate = &expiredDate
	c.UpdatedAt = time.Now()
	return c, nil
}

func (r *memCardRepo) CountByStatus(_ context.Context) (map[entity.CardStatus]int, error) {
	counts := make(map[entity.CardStatus]int)
	for _, c := range r.cards {
		counts[c.Status]++
	}
	return counts, nil
}

func (r *memCardRepo) ListExpiredUnmaterialized(_ context.Context, now time.Time, limit int) ([]*entity.Card, error) {
	var list []*entity.Card
	for _, c := range r.cards {
		if c.IsExpired(now) && !c.ExpiryMaterialized {
			list = append(list, c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SerialNumber < list[j].SerialNumber })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *memCardRepo) MarkExpiryMaterialized(_ context.Context, ids []string) ([]string, error) {
	// Guardia condicionada como el UPDATE ... WHERE NOT expiry_materialized:
	// solo se reclaman (y devuelven) las tarjetas aún pendientes.
	var claimed []string
	for _, id := range ids {
		for _, c := range r.cards {
			if c.ID == id && !c.ExpiryMaterialized {
				c.ExpiryMaterialized = true
				claimed = append(claimed, id)
			}
		}
	}
	return claimed, nil
}

type memSummaryRepo struct {
	buckets map[string]*entity.StockSummary
}

func newMemSummaryRepo() *memSummaryRepo {
	return &memSummaryRepo{buckets: make(map[string]*entity.StockSummary)}
}

func bucketKey(categoryID, typeID string, stationID *string) string {
	st := ""
	if stationID != nil {
		st = *stationID
	}
	return categoryID + "|" + typeID + "|" + st
}

func (r *memSummaryRepo) ApplyDelta(_ context.Context, d entity.SummaryDelta) error {
	if d.IsZero() {
		return nil
	}
	key := bucketKey(d.CategoryID, d.TypeID, d.StationID)
	s, ok := r.buckets[key]
	if !ok {
		s = &entity.StockSummary{CategoryID: d.CategoryID, TypeID: d.TypeID, StationID: d.StationID}
		r.buckets[key] = s
	}
	s.CardOffice += d.CardOffice
	s.CardInTransit += d.CardInTransit
	s.CardBeredar += d.CardBeredar
	s.CardAktif += d.CardAktif
	s.CardNonAktif += d.CardNonAktif
	s.CardBelumTerjual += d.CardBelumTerjual
	s.UpdatedAt = time.Now()
	return nil
}

func (r *memSummaryRepo) GetBucket(_ context.Context, categoryID, typeID string, stationID *string) (*entity.StockSummary, error) {
	return r.buckets[bucketKey(categoryID, typeID, stationID)], nil
}

func (r *memSummaryRepo) ListBuckets(_ context.Context, f repository.SummaryFilter) ([]*entity.StockSummary, error) {
	return r.list(f, false), nil
}

func (r *memSummaryRepo) ListStationBuckets(_ context.Context, f repository.SummaryFilter) ([]*entity.StockSummary, error) {
	return r.list(f, true), nil
}

func (r *memSummaryRepo) list(f repository.SummaryFilter, stationsOnly bool) []*entity.StockSummary {
	var list []*entity.StockSummary
	for _, s := range r.buckets {
		if stationsOnly && s.StationID == nil {
			continue
		}
		if f.CategoryID != "" && s.CategoryID != f.CategoryID {
			continue
		}
		if f.TypeID != "" && s.TypeID != f.TypeID {
			continue
		}
		if f.StationID != "" && (s.StationID == nil || *s.StationID != f.StationID) {
			continue
		}
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool {
		return bucketKey(list[i].CategoryID, list[i].TypeID, list[i].StationID) <
			bucketKey(list[j].CategoryID, list[j].TypeID, list[j].StationID)
	})
	return list
}

type memBatchRepo struct {
	batches map[string]*entity.StockBatch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: make(map[string]*entity.StockBatch)}
}

func (r *memBatchRepo) Create(_ context.Context, b *entity.StockBatch) error {
	r.batches[b.ID] = b
	return nil
}

func (r *memBatchRepo) GetByID(_ context.Context, id string) (*entity.StockBatch, error) {
	return r.batches[id], nil
}

func (r *memBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockBatch, error) {
	return r.GetByID(ctx, id)
}

func (r *memBatchRepo) MarkReceived(_ context.Context, id string) error {
	if b, ok := r.batches[id]; ok {
		now := time.Now()
		b.Status = entity.BatchReceived
		b.ReceivedAt = &now
	}
	return nil
}

type memInboxRepo struct {
	messages map[string]*entity.InboxMessage
	order    []string // en orden de llegada
}

func newMemInboxRepo() *memInboxRepo {
	return &memInboxRepo{messages: make(map[string]*entity.InboxMessage)}
}

func (r *memInboxRepo) Create(_ context.Context, msg *entity.InboxMessage) error {
	r.messages[msg.ID] = msg
	r.order = append(r.order, msg.ID)
	return nil
}

func (r *memInboxRepo) GetByID(_ context.Context, id string) (*entity.InboxMessage, error) {
	return r.messages[id], nil
}

func (r *memInboxRepo) List(_ context.Context, f repository.InboxFilter) ([]*entity.InboxMessage, error) {
	var list []*entity.InboxMessage
	for i := len(r.order) - 1; i >= 0; i-- { // más reciente primero
		m := r.messages[r.order[i]]
		if f.RecipientRole != "" && m.RecipientRole != f.RecipientRole {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.UnreadOnly && m.IsRead {
			continue
		}
		list = append(list, m)
	}
	return list, nil
}

func (r *memInboxRepo) MarkRead(_ context.Context, id string) error {
	if m, ok := r.messages[id]; ok {
		now := time.Now()
		m.IsRead = true
		m.ReadAt = &now
	}
	return nil
}

func (r *memInboxRepo) MarkProcessed(_ context.Context, id string) (bool, error) {
	m, ok := r.messages[id]
	if !ok || m.Processed {
		return false, nil
	}
	m.Processed = true
	return true, nil
}

type memStationRepo struct {
	stations map[string]*entity.Station
}

func newMemStationRepo() *memStationRepo {
	return &memStationRepo{stations: make(map[string]*entity.Station)}
}

func (r *memStationRepo) Create(_ context.Context, s *entity.Station) error {
	r.stations[s.ID] = s
	return nil
}

func (r *memStationRepo) GetByID(_ context.Context, id string) (*entity.Station, error) {
	return r.stations[id], nil
}

func (r *memStationRepo) List(_ context.Context) ([]*entity.Station, error) {
	var list []*entity.Station
	for _, s := range r.stations {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

type memCatalogRepo struct {
	categories map[string]*entity.CardCategory
	types      map[string]*entity.CardType
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{
		categories: make(map[string]*entity.CardCategory),
		types:      make(map[string]*entity.CardType),
	}
}

func (r *memCatalogRepo) CreateCategory(_ context.Context, c *entity.CardCategory) error {
	r.categories[c.ID] = c
	return nil
}

func (r *memCatalogRepo) CreateType(_ context.Context, t *entity.CardType) error {
	r.types[t.ID] = t
	return nil
}

func (r *memCatalogRepo) GetCategory(_ context.Context, id string) (*entity.CardCategory, error) {
	return r.categories[id], nil
}

func (r *memCatalogRepo) GetType(_ context.Context, id string) (*entity.CardType, error) {
	return r.types[id], nil
}

func (r *memCatalogRepo) ListCategories(_ context.Context) ([]*entity.CardCategory, error) {
	var list []*entity.CardCategory
	for _, c := range r.categories {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *memCatalogRepo) ListTypes(_ context.Context, categoryID string) ([]*entity.CardType, error) {
	var list []*entity.CardType
	for _, t := range r.types {
		if categoryID != "" && t.CategoryID != categoryID {
			continue
		}
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// fakeTxRunner entrega los mismos fakes a cada transacción.
type fakeTxRunner struct {
	cards     *memCardRepo
	summaries *memSummaryRepo
	batches   *memBatchRepo
	inbox     *memInboxRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	repository.CardRepository,
	repository.StockSummaryRepository,
	repository.StockBatchRepository,
	repository.InboxRepository,
) error) error {
	return fn(f.cards, f.summaries, f.batches, f.inbox)
}

// world agrupa todo el estado en memoria de un escenario de test,
// pre-cargado con una categoría GOLD, un tipo JaBan y una estación.
type world struct {
	cards     *memCardRepo
	summaries *memSummaryRepo
	batches   *memBatchRepo
	inbox     *memInboxRepo
	stations  *memStationRepo
	catalog   *memCatalogRepo
	tx        *fakeTxRunner
}

const (
	catGold   = "cat-gold"
	typeJaBan = "type-jaban"
	stationID = "st-central"
)

func newWorld() *world {
	w := &world{
		cards:     newMemCardRepo(),
		summaries: newMemSummaryRepo(),
		batches:   newMemBatchRepo(),
		inbox:     newMemInboxRepo(),
		stations:  newMemStationRepo(),
		catalog:   newMemCatalogRepo(),
	}
	w.tx = &fakeTxRunner{cards: w.cards, summaries: w.summaries, batches: w.batches, inbox: w.inbox}

	ctx := context.Background()
	_ = w.catalog.CreateCategory(ctx, &entity.CardCategory{ID: catGold, Name: "GOLD"})
	_ = w.catalog.CreateType(ctx, &entity.CardType{
		ID:           typeJaBan,
		CategoryID:   catGold,
		Name:         "JaBan",
		Price:        decimal.NewFromInt(150000),
		QuotaTicket:  20,
		ValidityDays: 30,
	})
	_ = w.stations.Create(ctx, &entity.Station{ID: stationID, Name: "Central", MinStockThreshold: 5})
	return w
}

// officeBucket devuelve la fila de bodega del bucket GOLD/JaBan (nil si no existe).
func (w *world) officeBucket() *entity.StockSummary {
	s, _ := w.summaries.GetBucket(context.Background(), catGold, typeJaBan, nil)
	return s
}

// stationBucket devuelve el bucket GOLD/JaBan de la estación (nil si no existe).
func (w *world) stationBucket() *entity.StockSummary {
	st := stationID
	s, _ := w.summaries.GetBucket(context.Background(), catGold, typeJaBan, &st)
	return s
}
