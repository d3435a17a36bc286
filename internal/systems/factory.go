package systems

import (
	"fmt"

	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
	"github.com/worldmind-ai/worldmind/internal/retrieve"
)

// Deps carries the shared resources the factory wires into systems
type Deps struct {
	Graph     graph.Reader
	Retriever *retrieve.Retriever
	LLM       model.LLMConfig
}

// New builds one prediction system by name. Known names are kg,
// graph_rag, raw, rag and llm.
func New(name string, deps Deps) (Answerer, error) {
	switch name {
	case "kg":
		return NewContextOracle(), nil
	case "graph_rag":
		if deps.Graph == nil {
			return nil, fmt.Errorf("graph_rag system requires a loaded graph")
		}
		return NewGraphOracle(deps.Graph), nil
	case "raw", "rag":
		return NewStub(name), nil
	case "llm":
		return NewLLM(deps.LLM, deps.Retriever)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, name)
	}
}
