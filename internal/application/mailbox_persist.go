package application

import (
	"context"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"go.uber.org/zap"
)

// schedulePersistLocked arms a single debounced write. Mutations that land
// while a write is pending are picked up by that write.
func (m *Mailbox) schedulePersistLocked() {
	m.mutated = true
	if m.store == nil || m.persistPending {
		return
	}
	m.persistPending = true
	m.persistTimer = time.AfterFunc(m.persistDelay, m.persistScheduled)
}

func (m *Mailbox) persistScheduled() {
	m.mu.Lock()
	if !m.persistPending {
		m.mu.Unlock()
		return
	}
	m.persistPending = false
	snapshot, seq := m.snapshotLocked()
	m.mu.Unlock()

	_ = m.write(context.Background(), snapshot, seq)
}

func (m *Mailbox) snapshotLocked() (domain.MailboxSnapshot, uint64) {
	m.snapshotSeq++

	snapshot := domain.MailboxSnapshot{
		Version:        domain.CurrentMailboxSnapshotVersion,
		SavedAt:        m.clock.Now(),
		Queue:          persistableMessages(m.queue),
		History:        persistableMessages(m.history),
		TotalProcessed: m.totalProcessed,
		TotalFailed:    m.totalFailed,
	}
	if m.current != nil {
		current := persistableMessage(*m.current)
		snapshot.CurrentMessage = &current
	}

	return snapshot, m.snapshotSeq
}

// write saves snapshot unless a newer one has already been written.
func (m *Mailbox) write(ctx context.Context, snapshot domain.MailboxSnapshot, seq uint64) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	if seq <= m.writtenSeq {
		return nil
	}

	if err := m.store.Save(ctx, snapshot); err != nil {
		m.logger.Error("persist mailbox snapshot", zap.Error(err))
		return err
	}

	m.writtenSeq = seq
	return nil
}

func persistableMessages(messages []domain.QueuedMessage) []domain.QueuedMessage {
	out := make([]domain.QueuedMessage, 0, len(messages))
	for _, msg := range messages {
		out = append(out, persistableMessage(msg))
	}
	return out
}

func persistableMessage(msg domain.QueuedMessage) domain.QueuedMessage {
	out := msg.Clone()
	out.SourceMetadata = sanitizeMetadata(msg.SourceMetadata)
	return out
}

// sanitizeMetadata keeps only values that can round-trip through a
// snapshot file. Functions, channels and similar values are dropped.
// Structs become maps of their exported fields, and unsigned integers
// beyond the int64 range become decimal strings.
func sanitizeMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}
	out := make(map[string]any, len(metadata))
	for key, value := range metadata {
		if clean, ok := sanitizeValue(value); ok {
			out[key] = clean
		}
	}
	return out
}

func sanitizeValue(value any) (any, bool) {
	if value == nil {
		return nil, false
	}

	switch typed := value.(type) {
	case time.Time:
		return typed, true
	case string, bool, int, int8, int16, int32, int64,
		uint8, uint16, uint32, float32, float64:
		return typed, true
	case map[string]any:
		return sanitizeMetadata(typed), true
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			if clean, ok := sanitizeValue(item); ok {
				out = append(out, clean)
			}
		}
		return out, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Complex64, reflect.Complex128, reflect.Interface:
		return nil, false
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return sanitizeValue(rv.Elem().Interface())
	case reflect.Struct:
		return sanitizeStruct(rv), true
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if clean, ok := sanitizeValue(rv.Index(i).Interface()); ok {
				out = append(out, clean)
			}
		}
		return out, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			if clean, ok := sanitizeValue(iter.Value().Interface()); ok {
				out[iter.Key().String()] = clean
			}
		}
		return out, true
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return strconv.FormatUint(u, 10), true
		}
		return int64(u), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}

	return nil, false
}

// sanitizeStruct maps exported fields by their toml tag, falling back to
// the field name. Fields tagged "-" are skipped.
func sanitizeStruct(rv reflect.Value) map[string]any {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("toml"), ","); tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}
		if clean, ok := sanitizeValue(rv.Field(i).Interface()); ok {
			out[name] = clean
		}
	}
	return out
}
