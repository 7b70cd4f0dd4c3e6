package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"taskbot/internal/domain"
)

// Memory is the default store: a mutex-guarded map plus an insertion-order
// index. Its lifetime is the process lifetime.
type Memory struct {
	mu    sync.Mutex
	tasks map[string]domain.Task
	order []string
	seq   int // monotonic, never decremented on delete so ids are never reused
}

func NewMemory() *Memory {
	return &Memory{tasks: make(map[string]domain.Task)}
}

func (m *Memory) Create(_ context.Context, t domain.Task) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	id := fmt.Sprintf("#%d", m.seq)
	t.ID = id
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	m.tasks[id] = t
	m.order = append(m.order, id)
	return id, nil
}

func (m *Memory) Save(_ context.Context, id string, t domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.ID = id
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if _, ok := m.tasks[id]; !ok {
		m.order = append(m.order, id)
	}
	m.tasks[id] = t
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return domain.Task{}, ErrNotFound
	}
	return t, nil
}

func (m *Memory) GetAll(_ context.Context, channelID string) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var tasks []domain.Task
	for _, id := range m.order {
		if t := m.tasks[id]; t.ChannelID == channelID {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (m *Memory) GetCompleted(_ context.Context, channelID string) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var tasks []domain.Task
	for _, id := range m.order {
		if t := m.tasks[id]; t.ChannelID == channelID && t.Completed {
			tasks = append(tasks, t)
		}
	}
	return tasks, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) MarkDone(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.Completed = true
	m.tasks[id] = t
	return nil
}

func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order), nil
}
