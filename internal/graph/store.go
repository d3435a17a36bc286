package graph

import (
	"fmt"
	"os"
)

// LoadError reports a missing or malformed graph document. Load errors
// are fatal; callers abort startup rather than continue with no graph.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load graph %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Store loads a serialized graph document once and hands out the same
// immutable Graph instance to every consumer. Concurrent readers are
// safe because the graph is never mutated after load.
type Store struct {
	path  string
	graph *Graph
}

// NewStore reads and parses the Turtle document at path
func NewStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	g, err := ParseTurtle(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &Store{path: path, graph: g}, nil
}

// Graph returns the loaded graph. Every call returns the same instance.
func (s *Store) Graph() *Graph {
	return s.graph
}

// Path returns the document path the store was loaded from
func (s *Store) Path() string {
	return s.path
}
