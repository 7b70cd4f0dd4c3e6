package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"taskbot/internal/domain"
)

func TestMemoryCreateSequentialIDs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for i := 1; i <= 3; i++ {
		id, err := m.Create(ctx, domain.Task{Description: "t", ChannelID: "C1"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if want := fmt.Sprintf("#%d", i); id != want {
			t.Errorf("id = %q, want %q", id, want)
		}
	}
	if n, _ := m.Count(ctx); n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestMemoryCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	const n = 50

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := m.Create(ctx, domain.Task{Description: "t", ChannelID: "C1"})
			if err != nil {
				t.Errorf("Create: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %q", id)
		}
		seen[id] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[fmt.Sprintf("#%d", i)] {
			t.Errorf("missing id #%d", i)
		}
	}
}

func TestMemoryChannelIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a1, _ := m.Create(ctx, domain.Task{Description: "a1", ChannelID: "A"})
	m.Create(ctx, domain.Task{Description: "b1", ChannelID: "B"})
	a2, _ := m.Create(ctx, domain.Task{Description: "a2", ChannelID: "A"})

	tasks, err := m.GetAll(ctx, "A")
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != a1 || tasks[1].ID != a2 {
		t.Fatalf("GetAll(A) = %+v, want [%s %s] in order", tasks, a1, a2)
	}

	if err := m.MarkDone(ctx, a2); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	done, err := m.GetCompleted(ctx, "A")
	if err != nil {
		t.Fatalf("GetCompleted: %v", err)
	}
	if len(done) != 1 || done[0].ID != a2 || !done[0].Completed {
		t.Fatalf("GetCompleted(A) = %+v, want only %s", done, a2)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, _ := m.Create(ctx, domain.Task{Description: "t", ChannelID: "C1"})
	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	tasks, _ := m.GetAll(ctx, "C1")
	if len(tasks) != 0 {
		t.Errorf("GetAll after delete = %+v, want empty", tasks)
	}

	if err := m.Delete(ctx, "#99"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing err = %v, want ErrNotFound", err)
	}
}

func TestMemoryIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id1, _ := m.Create(ctx, domain.Task{ChannelID: "C1"})
	if err := m.Delete(ctx, id1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	id2, _ := m.Create(ctx, domain.Task{ChannelID: "C1"})
	if id2 == id1 {
		t.Errorf("id %q reused after delete", id2)
	}
}

func TestMemoryMarkDoneMissing(t *testing.T) {
	m := NewMemory()
	if err := m.MarkDone(context.Background(), "#1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MarkDone missing err = %v, want ErrNotFound", err)
	}
}

func TestMemorySaveOverwrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Save(ctx, "#1", domain.Task{Description: "old", ChannelID: "C1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Save(ctx, "#1", domain.Task{Description: "new", ChannelID: "C1"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := m.Get(ctx, "#1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description != "new" {
		t.Errorf("Description = %q, want %q", got.Description, "new")
	}
	if n, _ := m.Count(ctx); n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}
