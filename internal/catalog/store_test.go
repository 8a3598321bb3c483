package catalog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/shelf/internal/domain"
)

func TestCategories(t *testing.T) {
	items := []domain.Item{
		{MainCategory: "Props"},
		{MainCategory: "Hats"},
		{MainCategory: "Props"},
		{MainCategory: "Avatars"},
		{MainCategory: "hats"},
	}

	got := Categories(items)
	want := []string{"Avatars", "Hats", "Props", "hats"}
	if len(got) != len(want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCategoriesEmpty(t *testing.T) {
	if got := Categories(nil); len(got) != 0 {
		t.Errorf("Categories(nil) = %v, want empty", got)
	}
}

func TestNewStore(t *testing.T) {
	store := NewStore()
	if store.Current() != nil {
		t.Fatal("new store should have no snapshot")
	}
	if store.Ready() {
		t.Error("new store should not be ready")
	}
}

func TestStoreReplace(t *testing.T) {
	store := NewStore()

	first := NewSnapshot("a.json", []domain.Item{{Name: "one", MainCategory: "x"}}, time.Now())
	if !store.Replace(first) {
		t.Fatal("first snapshot should be installed")
	}
	if store.Current() != first {
		t.Error("Current() should return the installed snapshot")
	}

	second := NewSnapshot("a.json", []domain.Item{{Name: "one"}, {Name: "two"}}, time.Now())
	store.Replace(second)
	if store.Current().Count() != 2 {
		t.Errorf("Replace() should overwrite, got %d items", store.Current().Count())
	}
	if store.Reloads() != 2 {
		t.Errorf("Reloads() = %d, want 2", store.Reloads())
	}
}

func TestStoreFailedFirstLoad(t *testing.T) {
	store := NewStore()

	failed := FailedSnapshot("a.json", errors.New("boom"), time.Now())
	if !store.Replace(failed) {
		t.Fatal("failed first load should be installed")
	}
	if !store.Ready() {
		t.Error("store should be ready after a failed load")
	}
	if !store.Current().Failed() {
		t.Error("current snapshot should be failed")
	}
	if store.Current().Count() != 0 {
		t.Error("failed snapshot should hold no items")
	}

	good := NewSnapshot("a.json", []domain.Item{{Name: "one"}}, time.Now())
	if !store.Replace(good) {
		t.Error("good snapshot should replace a failed one")
	}
}

func TestStoreFailedReloadKeepsLastGood(t *testing.T) {
	store := NewStore()

	good := NewSnapshot("a.json", []domain.Item{{Name: "one"}}, time.Now())
	store.Replace(good)

	if store.Replace(FailedSnapshot("a.json", errors.New("boom"), time.Now())) {
		t.Error("failed reload should not replace a good snapshot")
	}
	if store.Current() != good {
		t.Error("store should keep serving the last good snapshot")
	}
}

func TestStoreConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Replace(NewSnapshot("a.json", []domain.Item{{Name: "x"}}, time.Now()))
		}()
		go func() {
			defer wg.Done()
			if snap := store.Current(); snap != nil && snap.Count() != 1 {
				t.Errorf("observed partial snapshot with %d items", snap.Count())
			}
		}()
	}
	wg.Wait()

	if store.Reloads() != 50 {
		t.Errorf("Reloads() = %d, want 50", store.Reloads())
	}
}
