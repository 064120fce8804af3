package drawstore

import (
	"errors"
	"testing"
)

func newTestBadger(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create BadgerStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_BasicOperations(t *testing.T) {
	store := newTestBadger(t)

	key := "test_key"
	value := []byte("test_value")

	if err := store.Set(key, value); err != nil {
		t.Errorf("Failed to set key: %v", err)
	}

	retrieved, err := store.Get(key)
	if err != nil {
		t.Errorf("Failed to get key: %v", err)
	}
	if string(retrieved) != string(value) {
		t.Errorf("Expected value %s, got %s", string(value), string(retrieved))
	}
}

func TestBadgerStore_GetNonExistentKey(t *testing.T) {
	store := newTestBadger(t)

	_, err := store.Get("non_existent_key")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestBadgerStore_Delete(t *testing.T) {
	store := newTestBadger(t)

	key := "test_key"
	if err := store.Set(key, []byte("test_value")); err != nil {
		t.Errorf("Failed to set key: %v", err)
	}
	if err := store.Delete(key); err != nil {
		t.Errorf("Failed to delete key: %v", err)
	}
	if _, err := store.Get(key); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestBadgerStore_List(t *testing.T) {
	store := newTestBadger(t)

	testData := map[string][]byte{
		"draws/2026-01-06": []byte("a"),
		"draws/2026-01-08": []byte("b"),
		"predictions/x":    []byte("c"),
	}
	for key, value := range testData {
		if err := store.Set(key, value); err != nil {
			t.Errorf("Failed to set %s: %v", key, err)
		}
	}

	pairs, err := store.List("draws/")
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(pairs) != 2 {
		t.Errorf("Expected 2 entries under draws/, got %d", len(pairs))
	}
	for _, pair := range pairs {
		if want, ok := testData[pair.Key]; !ok || string(pair.Value) != string(want) {
			t.Errorf("Unexpected pair %s=%s", pair.Key, string(pair.Value))
		}
	}
}

func TestBadgerStore_InvalidPath(t *testing.T) {
	if _, err := NewBadgerStore("/proc/invalid/badger"); err == nil {
		t.Error("Expected error when creating BadgerStore with invalid path, got nil")
	}
}
