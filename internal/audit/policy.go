package audit

// Action is the abstention policy's final decision
type Action string

const (
	ActionAnswer  Action = "ANSWER"
	ActionAbstain Action = "ABSTAIN"
)

// Policy maps an audit license to an action. It is a strategy
// interface so alternative policies (confidence-thresholded,
// cost-sensitive) can replace the default without touching
// entailment logic.
type Policy interface {
	Decide(isLicensed bool) Action
}

// NewPolicy returns the default policy: answer iff licensed
func NewPolicy() Policy {
	return abstainUnlessLicensed{}
}

type abstainUnlessLicensed struct{}

func (abstainUnlessLicensed) Decide(isLicensed bool) Action {
	if isLicensed {
		return ActionAnswer
	}
	return ActionAbstain
}
