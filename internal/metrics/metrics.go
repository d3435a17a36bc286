// Package metrics aggregates evaluation results into the action-by-truth
// confusion matrix and the abstention quality metrics derived from it.
package metrics

import (
	"fmt"
	"io"
	"sort"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// Confusion is the 2x3 action-by-truth matrix. Rows: ANSWER (A) and
// ABSTAIN (S); columns: Entailed, Contradictory, Unknown gold labels.
type Confusion struct {
	AE int `json:"A_E"`
	AC int `json:"A_C"`
	AU int `json:"A_U"`
	SE int `json:"S_E"`
	SC int `json:"S_C"`
	SU int `json:"S_U"`
}

// Total is the number of cases in the matrix
func (c Confusion) Total() int {
	return c.AE + c.AC + c.AU + c.SE + c.SC + c.SU
}

// Totals are the marginal sums of the confusion matrix
type Totals struct {
	Entailed      int `json:"entailed"`
	Contradictory int `json:"contradictory"`
	Unknown       int `json:"unknown"`
	NonEntailed   int `json:"non_entailed"`
	Abstentions   int `json:"abstentions"`
	Answers       int `json:"answers"`
}

// Values are the derived quality metrics. A nil value means the metric
// is undefined (zero denominator) and is serialized as JSON null,
// never as zero.
type Values struct {
	AP              *float64 `json:"AP"`
	APInvalid       *float64 `json:"AP_invalid"`
	APUnknown       *float64 `json:"AP_unknown"`
	AR              *float64 `json:"AR"`
	ARContradictory *float64 `json:"AR_contradictory"`
	ARUnknown       *float64 `json:"AR_unknown"`
	CVRR            *float64 `json:"CVRR"`
	FARNE           *float64 `json:"FAR_NE"`
	LA              *float64 `json:"LA"`
	Coverage        *float64 `json:"coverage"`
	AnswerAccuracy  *float64 `json:"answer_accuracy"`
	OverallAccuracy *float64 `json:"overall_accuracy"`
}

// Report is the full per-system metrics document
type Report struct {
	Counts    map[string]int `json:"counts"`
	Confusion Confusion      `json:"confusion_matrix"`
	Totals    Totals         `json:"totals"`
	Metrics   Values         `json:"metrics"`
}

// Compute builds one report per system from evaluation results
func Compute(results []model.Result) map[string]*Report {
	bySystem := make(map[string][]model.Result)
	for _, r := range results {
		bySystem[r.System] = append(bySystem[r.System], r)
	}
	out := make(map[string]*Report, len(bySystem))
	for system, rows := range bySystem {
		var c Confusion
		counts := make(map[string]int)
		for _, r := range rows {
			label := goldLabel(r.Gold)
			action := "A"
			if r.Pred == model.VerdictUnknown {
				action = "S"
			}
			counts[action+"_"+string(label)]++
		}
		c.AE = counts["A_E"]
		c.AC = counts["A_C"]
		c.AU = counts["A_U"]
		c.SE = counts["S_E"]
		c.SC = counts["S_C"]
		c.SU = counts["S_U"]
		report := Derive(c)
		report.Counts = counts
		out[system] = report
	}
	return out
}

// goldLabel maps a gold verdict to its epistemic column
func goldLabel(gold model.Verdict) model.Label {
	switch gold {
	case model.VerdictYes:
		return model.LabelEntailed
	case model.VerdictNo:
		return model.LabelContradictory
	default:
		return model.LabelUnknown
	}
}

// Derive computes totals and all derived metrics from the six cell
// counts alone, so results are reproducible from the matrix.
func Derive(c Confusion) *Report {
	t := Totals{
		Entailed:      c.AE + c.SE,
		Contradictory: c.AC + c.SC,
		Unknown:       c.AU + c.SU,
		Abstentions:   c.SE + c.SC + c.SU,
		Answers:       c.AE + c.AC + c.AU,
	}
	t.NonEntailed = t.Contradictory + t.Unknown
	total := c.Total()

	return &Report{
		Counts:    map[string]int{},
		Confusion: c,
		Totals:    t,
		Metrics: Values{
			AP:              ratio(c.SC+c.SU, t.Abstentions),
			APInvalid:       ratio(c.SC, c.SC+c.SE),
			APUnknown:       ratio(c.SU, c.SU+c.SE),
			AR:              ratio(c.SC+c.SU, t.NonEntailed),
			ARContradictory: ratio(c.SC, t.Contradictory),
			ARUnknown:       ratio(c.SU, t.Unknown),
			CVRR:            ratio(c.SC, t.Contradictory),
			FARNE:           ratio(c.AC+c.AU, t.NonEntailed),
			LA:              ratio(c.AE, t.Entailed),
			Coverage:        ratio(t.Answers, total),
			AnswerAccuracy:  ratio(c.AE, t.Answers),
			OverallAccuracy: ratio(c.AE+c.SC+c.SU, total),
		},
	}
}

// ratio guards every division: a zero denominator yields nil, the
// explicit "not applicable" sentinel.
func ratio(num, den int) *float64 {
	if den == 0 {
		return nil
	}
	v := float64(num) / float64(den)
	return &v
}

// FormatValue renders a metric for display, with "N/A" for undefined
func FormatValue(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.3f", *v)
}

// WriteReport prints a human-readable report for every system
func WriteReport(w io.Writer, reports map[string]*Report) {
	systems := make([]string, 0, len(reports))
	for s := range reports {
		systems = append(systems, s)
	}
	sort.Strings(systems)

	for _, system := range systems {
		data := reports[system]
		c := data.Confusion
		m := data.Metrics
		fmt.Fprintf(w, "\n%s\n", divider)
		fmt.Fprintf(w, "System: %s\n", system)
		fmt.Fprintf(w, "%s\n", divider)
		fmt.Fprintf(w, "\nConfusion Matrix (Action x Truth):\n")
		fmt.Fprintf(w, "%10s %10s %10s %10s\n", "", "E", "C", "U")
		fmt.Fprintf(w, "%-10s %10d %10d %10d\n", "ANSWER", c.AE, c.AC, c.AU)
		fmt.Fprintf(w, "%-10s %10d %10d %10d\n", "ABSTAIN", c.SE, c.SC, c.SU)
		fmt.Fprintf(w, "\nKey Metrics:\n")
		fmt.Fprintf(w, "  Abstention Precision (AP):        %s\n", FormatValue(m.AP))
		fmt.Fprintf(w, "    - AP on invalid (C):            %s\n", FormatValue(m.APInvalid))
		fmt.Fprintf(w, "    - AP on unknown (U):            %s\n", FormatValue(m.APUnknown))
		fmt.Fprintf(w, "  Abstention Recall (AR):           %s\n", FormatValue(m.AR))
		fmt.Fprintf(w, "    - AR on contradictory (C):      %s\n", FormatValue(m.ARContradictory))
		fmt.Fprintf(w, "    - AR on unknown (U):            %s\n", FormatValue(m.ARUnknown))
		fmt.Fprintf(w, "  Constraint Violation Reject Rate: %s\n", FormatValue(m.CVRR))
		fmt.Fprintf(w, "  False Answer Rate (Non-Entailed): %s\n", FormatValue(m.FARNE))
		fmt.Fprintf(w, "  Licensed Answer Accuracy (LA):    %s\n", FormatValue(m.LA))
		fmt.Fprintf(w, "\nCoverage & Accuracy:\n")
		fmt.Fprintf(w, "  Coverage (%% answered):            %s\n", FormatValue(m.Coverage))
		fmt.Fprintf(w, "  Accuracy when answering:          %s\n", FormatValue(m.AnswerAccuracy))
		fmt.Fprintf(w, "  Overall accuracy:                 %s\n", FormatValue(m.OverallAccuracy))
	}
}

const divider = "======================================================================"
