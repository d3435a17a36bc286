package systems

import (
	"context"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// Stub is a named baseline that abstains on every card. It stands in
// for external systems whose transcripts are scored offline, so their
// names still appear in reports with a defined floor behavior.
type Stub struct {
	name string
}

// NewStub creates an always-UNKNOWN baseline with the given name
func NewStub(name string) *Stub { return &Stub{name: name} }

func (s *Stub) Name() string { return s.name }

func (s *Stub) Answer(_ context.Context, _ model.Card) (model.Verdict, error) {
	return model.VerdictUnknown, nil
}
