package memory

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"

	"globetrotter/core"
)

func TestNewStore(t *testing.T) {
	store := NewStore()
	if store == nil {
		t.Fatal("NewStore() returned nil")
	}
	if store.Len() != 0 {
		t.Errorf("new store has %d records, want 0", store.Len())
	}
}

func TestGet_NotFound(t *testing.T) {
	store := NewStore()

	value, found, err := store.Get(context.Background(), "draft:anon:unknown:default")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Errorf("Get() reported found for missing key, value %q", value)
	}
}

func TestSetGet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", `{"days":3}`); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	value, found, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found || value != `{"days":3}` {
		t.Errorf("Get() = %q, %v; want stored value", value, found)
	}
}

func TestSet_Overwrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k", "first")
	_ = store.Set(ctx, "k", "second")

	value, _, _ := store.Get(ctx, "k")
	if value != "second" {
		t.Errorf("Get() = %q, want last write", value)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

func TestDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k", "v")
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, found, _ := store.Get(ctx, "k"); found {
		t.Error("record still present after Delete()")
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() of absent key failed: %v", err)
	}
}

func TestStoreIsolation(t *testing.T) {
	a := NewStore()
	b := NewStore()
	ctx := context.Background()

	_ = a.Set(ctx, "k", "v")
	if _, found, _ := b.Get(ctx, "k"); found {
		t.Error("records leaked between store instances")
	}
}

func TestQuota(t *testing.T) {
	store := NewStore(WithQuota(10))
	ctx := context.Background()

	if err := store.Set(ctx, "k", "12345"); err != nil {
		t.Fatalf("Set() within quota failed: %v", err)
	}

	err := store.Set(ctx, "k2", "123456789")
	if !errors.Is(err, core.ErrQuotaExceeded) {
		t.Fatalf("Set() over quota error = %v, want ErrQuotaExceeded", err)
	}
	if _, found, _ := store.Get(ctx, "k2"); found {
		t.Error("rejected write was stored")
	}

	// Replacing a record only counts the difference.
	if err := store.Set(ctx, "k", "123456789"); err != nil {
		t.Errorf("Set() replacing within quota failed: %v", err)
	}

	// Deleting frees space.
	_ = store.Delete(ctx, "k")
	if err := store.Set(ctx, "k2", "12345678"); err != nil {
		t.Errorf("Set() after Delete() failed: %v", err)
	}
}

func TestQuota_FailedOverwriteKeepsOldValue(t *testing.T) {
	store := NewStore(WithQuota(8))
	ctx := context.Background()

	_ = store.Set(ctx, "k", "old")
	if err := store.Set(ctx, "k", strings.Repeat("x", 20)); err == nil {
		t.Fatal("Set() over quota should fail")
	}
	value, _, _ := store.Get(ctx, "k")
	if value != "old" {
		t.Errorf("Get() = %q, want previous value", value)
	}
}

func TestConcurrentReadWrite(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(index int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if err := store.Set(ctx, "k"+strconv.Itoa(index), strconv.Itoa(j)); err != nil {
					t.Errorf("concurrent Set() failed: %v", err)
				}
			}
		}(i)
		go func(index int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if _, _, err := store.Get(ctx, "k"+strconv.Itoa(index)); err != nil {
					t.Errorf("concurrent Get() failed: %v", err)
				}
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 10 {
		t.Errorf("Len() = %d, want 10", store.Len())
	}
}
