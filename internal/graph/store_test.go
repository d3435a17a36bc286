package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kg.ttl")
	if err := os.WriteFile(path, []byte(sampleTurtle), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if store.Graph().Len() == 0 {
		t.Error("empty graph after load")
	}
	if store.Path() != path {
		t.Errorf("Path = %s", store.Path())
	}
	if store.Graph() != store.Graph() {
		t.Error("Graph must return the same instance")
	}
}

func TestStoreLoadErrors(t *testing.T) {
	_, err := NewStore(filepath.Join(t.TempDir(), "missing.ttl"))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want LoadError", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.ttl")
	if err := os.WriteFile(bad, []byte(":a :b ."), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(bad); !errors.As(err, &loadErr) {
		t.Fatalf("err = %v, want LoadError for parse failure", err)
	}
}
