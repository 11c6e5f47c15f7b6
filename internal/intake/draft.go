package intake

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/AdminHomeSmile/scg-customer-screening/internal/domain/lead"
)

// Draft is the service-form record held between the two steps, with the id
// of the form that produced it.
type Draft struct {
	Record *lead.Record
	FormID string
}

// DraftStore keeps one draft per session in two string slots.
type DraftStore interface {
	Save(ctx context.Context, session string, d Draft) error
	// Load reports false when the session has no draft.
	Load(ctx context.Context, session string) (Draft, bool, error)
	Clear(ctx context.Context, session string) error
}

const (
	slotRecord = "serviceFormData"
	slotForm   = "previousForm"
)

func encodeDraft(d Draft) (string, error) {
	raw, err := json.Marshal(d.Record)
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}
	return string(raw), nil
}

func decodeDraft(record, formID string) (Draft, error) {
	rec := lead.NewRecord()
	if record != "" {
		parsed, err := lead.ParseRecord([]byte(record))
		if err != nil {
			return Draft{}, fmt.Errorf("decode draft: %w", err)
		}
		rec = parsed
	}
	return Draft{Record: rec, FormID: formID}, nil
}

// MemoryDraftStore keeps drafts in process memory.
type MemoryDraftStore struct {
	mu    sync.Mutex
	slots map[string]map[string]string
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{slots: map[string]map[string]string{}}
}

func (m *MemoryDraftStore) Save(ctx context.Context, session string, d Draft) error {
	enc, err := encodeDraft(d)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[session] = map[string]string{slotRecord: enc, slotForm: d.FormID}
	return nil
}

func (m *MemoryDraftStore) Load(ctx context.Context, session string) (Draft, bool, error) {
	m.mu.Lock()
	s, ok := m.slots[session]
	m.mu.Unlock()
	if !ok {
		return Draft{}, false, nil
	}
	d, err := decodeDraft(s[slotRecord], s[slotForm])
	return d, err == nil, err
}

func (m *MemoryDraftStore) Clear(ctx context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, session)
	return nil
}

// RedisDraftStore keeps the two slots as plain keys with a shared TTL.
type RedisDraftStore struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisDraftStore(rdb goredis.UniversalClient, prefix string, ttl time.Duration) *RedisDraftStore {
	if prefix == "" {
		prefix = "intake"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDraftStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisDraftStore) key(session, slot string) string {
	return r.prefix + ":" + session + ":" + slot
}

func (r *RedisDraftStore) Save(ctx context.Context, session string, d Draft) error {
	enc, err := encodeDraft(d)
	if err != nil {
		return err
	}
	_, err = r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		p.Set(ctx, r.key(session, slotRecord), enc, r.ttl)
		p.Set(ctx, r.key(session, slotForm), d.FormID, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (r *RedisDraftStore) Load(ctx context.Context, session string) (Draft, bool, error) {
	vals, err := r.rdb.MGet(ctx, r.key(session, slotRecord), r.key(session, slotForm)).Result()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return Draft{}, false, fmt.Errorf("load draft: %w", err)
	}
	if len(vals) != 2 || vals[0] == nil {
		return Draft{}, false, nil
	}
	record, _ := vals[0].(string)
	formID, _ := vals[1].(string)
	d, err := decodeDraft(record, formID)
	return d, err == nil, err
}

func (r *RedisDraftStore) Clear(ctx context.Context, session string) error {
	if err := r.rdb.Del(ctx, r.key(session, slotRecord), r.key(session, slotForm)).Err(); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
