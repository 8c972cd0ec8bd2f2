package inventory_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/inventory-stock-api/internal/domain/entity"
)

// memStock libro de stock en memoria que cuenta lecturas y escrituras.
type memStock struct {
	mu       sync.Mutex
	records  map[string]entity.StockRecord
	reads    int
	writes   int
	readErr  error
	writeErr error
	panicOn  string
}

func newMemStock(records ...entity.StockRecord) *memStock {
	m := &memStock{records: make(map[string]entity.StockRecord)}
	for _, r := range records {
		m.records[r.ItemID] = r
	}
	return m
}

func (m *memStock) GetStock(_ context.Context, itemID string) (*entity.StockRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if itemID == m.panicOn && itemID != "" {
		panic("store explotó")
	}
	if m.readErr != nil {
		return nil, m.readErr
	}
	r, ok := m.records[itemID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStock) SaveStock(_ context.Context, record *entity.StockRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.records[record.ItemID] = *record
	return nil
}

func (m *memStock) get(id string) entity.StockRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[id]
}

func (m *memStock) counts() (reads, writes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads, m.writes
}

// memAudit repositorio de auditoría write-once en memoria.
type memAudit struct {
	mu        sync.Mutex
	records   map[string]entity.AuditRecord
	gets      int
	insertErr error
}

func newMemAudit() *memAudit {
	return &memAudit{records: make(map[string]entity.AuditRecord)}
}

func (m *memAudit) Insert(_ context.Context, record *entity.AuditRecord) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return false, m.insertErr
	}
	if _, ok := m.records[record.CorrelationID]; ok {
		return false, nil
	}
	m.records[record.CorrelationID] = *record
	return true, nil
}

func (m *memAudit) GetByCorrelationID(_ context.Context, correlationID string) (*entity.AuditRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	r, ok := m.records[correlationID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memAudit) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// memQueue cola en memoria: guarda los mensajes publicados.
type memQueue struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

type publishedMessage struct {
	correlationID string
	payload       []byte
}

func (q *memQueue) Publish(_ context.Context, correlationID string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.messages = append(q.messages, publishedMessage{correlationID: correlationID, payload: payload})
	return nil
}

func (q *memQueue) published() []publishedMessage {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]publishedMessage(nil), q.messages...)
}

// memCache caché de auditoría en memoria.
type memCache struct {
	mu      sync.Mutex
	records map[string]entity.AuditRecord
	getErr  error
}

func newMemCache() *memCache {
	return &memCache{records: make(map[string]entity.AuditRecord)}
}

func (c *memCache) Get(_ context.Context, correlationID string) (*entity.AuditRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	r, ok := c.records[correlationID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (c *memCache) Set(_ context.Context, record *entity.AuditRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[record.CorrelationID] = *record
	return nil
}

var errStoreDown = errors.New("connection refused")
