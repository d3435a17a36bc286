package audit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// ConstraintSet is a declarative shape document: per entity type, the
// cardinality, datatype and value-range rules its properties must obey.
type ConstraintSet struct {
	Shapes []Shape `yaml:"shapes"`
}

// Shape targets every entity of one type
type Shape struct {
	Name       string               `yaml:"name"`
	TargetType string               `yaml:"target_type"`
	Properties []PropertyConstraint `yaml:"properties"`
}

// PropertyConstraint restricts one predicate of the target entities
type PropertyConstraint struct {
	Predicate string   `yaml:"predicate"`
	MinCount  *int     `yaml:"min_count,omitempty"`
	MaxCount  *int     `yaml:"max_count,omitempty"`
	Datatype  string   `yaml:"datatype,omitempty"`
	In        []string `yaml:"in,omitempty"`
}

// Violation is one failed constraint check
type Violation struct {
	Shape     string `json:"shape"`
	Focus     string `json:"focus"`
	Predicate string `json:"predicate"`
	Message   string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("[%s] %s %s: %s", v.Shape, v.Focus, v.Predicate, v.Message)
}

// LoadConstraints reads and parses a YAML constraint document.
// A missing or malformed document is a fatal load error.
func LoadConstraints(path string) (*ConstraintSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load constraints %s: %w", path, err)
	}
	var cs ConstraintSet
	if err := yaml.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("parse constraints %s: %w", path, err)
	}
	return &cs, nil
}

// conformanceGraph is the view the checks need; both Graph and Overlay
// provide it, so hypothetical additions validate without copying.
type conformanceGraph interface {
	graph.Reader
	HasType(subject, typeIRI string) bool
}

// ValidateGraph checks every entity of every shape's target type and
// collects all violations.
func (cs *ConstraintSet) ValidateGraph(g *graph.Graph) (bool, []Violation) {
	var violations []Violation
	for _, shape := range cs.Shapes {
		for _, subject := range g.SubjectsOfType(shape.TargetType) {
			violations = append(violations, checkEntity(g, shape, subject, false)...)
		}
	}
	return len(violations) == 0, violations
}

// ConformsTouched checks only the shapes whose target includes one of
// the given entities, short-circuiting on the first violation. The
// base graph is pre-validated at build time, so after a hypothetical
// addition only the touched subject and object need rechecking.
func (cs *ConstraintSet) ConformsTouched(g conformanceGraph, subjects ...string) bool {
	for _, shape := range cs.Shapes {
		for _, subject := range subjects {
			if subject == "" || !g.HasType(subject, shape.TargetType) {
				continue
			}
			if len(checkEntity(g, shape, subject, true)) > 0 {
				return false
			}
		}
	}
	return true
}

func checkEntity(g conformanceGraph, shape Shape, subject string, shortCircuit bool) []Violation {
	var violations []Violation
	add := func(pc PropertyConstraint, msg string) {
		violations = append(violations, Violation{
			Shape:     shape.Name,
			Focus:     subject,
			Predicate: pc.Predicate,
			Message:   msg,
		})
	}
	for _, pc := range shape.Properties {
		objects := g.Objects(subject, pc.Predicate)
		if pc.MinCount != nil && len(objects) < *pc.MinCount {
			add(pc, fmt.Sprintf("count %d below minimum %d", len(objects), *pc.MinCount))
			if shortCircuit {
				return violations
			}
		}
		if pc.MaxCount != nil && len(objects) > *pc.MaxCount {
			add(pc, fmt.Sprintf("count %d above maximum %d", len(objects), *pc.MaxCount))
			if shortCircuit {
				return violations
			}
		}
		for _, obj := range objects {
			if pc.Datatype != "" {
				if obj.Kind != model.KindLiteral || obj.Datatype != pc.Datatype {
					add(pc, fmt.Sprintf("value %q is not of datatype %s", obj.Value, pc.Datatype))
					if shortCircuit {
						return violations
					}
				}
			}
			if len(pc.In) > 0 && !contains(pc.In, obj.Value) {
				add(pc, fmt.Sprintf("value %q not in allowed set", obj.Value))
				if shortCircuit {
					return violations
				}
			}
		}
	}
	return violations
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
