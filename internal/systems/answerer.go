// Package systems contains the prediction systems evaluated against
// card sets. Every system answers YES, NO or UNKNOWN per card.
package systems

import (
	"context"
	"fmt"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// Answerer predicts a verdict for one card. Implementations must be
// safe for concurrent use: the runner calls Answer from many workers.
type Answerer interface {
	Name() string
	Answer(ctx context.Context, card model.Card) (model.Verdict, error)
}

// ErrUnknownSystem is wrapped by the factory for unrecognized names
var ErrUnknownSystem = fmt.Errorf("unknown prediction system")
