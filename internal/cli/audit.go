package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worldmind-ai/worldmind/internal/audit"
	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
	"github.com/worldmind-ai/worldmind/internal/resolve"
)

var (
	auditOut         string
	auditLink        bool
	auditSubjectType string
	auditObjectType  string
)

var auditCmd = &cobra.Command{
	Use:   "audit <claims.jsonl>",
	Short: "Audit claims against the knowledge graph",
	Long: `Audit reads claims (one JSON object per line) and decides for each
whether it is licensed by the knowledge graph.

Without a constraint file the license is direct membership: the claim
triple must be present in the graph. With --constraints the license is
conformance: the graph must stay valid when the triple is added.

Claims may carry entity IRIs directly, or labels resolved with --link.

Example:
  worldmind audit claims.jsonl --graph kg.ttl --out report.json
  worldmind audit claims.jsonl --graph kg.ttl --link --subject-type River`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().StringVar(&auditOut, "out", "audit_report.json", "output report path")
	auditCmd.Flags().BoolVar(&auditLink, "link", false, "resolve claim labels to entity IRIs before auditing")
	auditCmd.Flags().StringVar(&auditSubjectType, "subject-type", "", "entity type for subject label resolution (local name)")
	auditCmd.Flags().StringVar(&auditObjectType, "object-type", "", "entity type for object label resolution (local name)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	g := store.Graph()

	records, err := readClaims(args[0])
	if err != nil {
		return err
	}

	auditor := audit.NewAuditor(g)
	if cfg.Graph.ConstraintsPath != "" {
		cs, err := audit.LoadConstraints(cfg.Graph.ConstraintsPath)
		if err != nil {
			return fmt.Errorf("load constraints: %w", err)
		}
		auditor = audit.NewConstraintAuditor(g, cs)
		if verbose {
			fmt.Fprintf(os.Stderr, "Conformance mode: %d shapes from %s\n",
				len(cs.Shapes), cfg.Graph.ConstraintsPath)
		}
	}

	var subjResolver, objResolver *resolve.Resolver
	if auditLink {
		subjResolver = typeResolver(g, cfg, auditSubjectType)
		objResolver = typeResolver(g, cfg, auditObjectType)
	}

	policy := audit.NewPolicy()
	report := model.AuditReport{Results: make([]model.AuditOutcome, 0, len(records))}
	for _, record := range records {
		claim := record.Claim
		if auditLink {
			claim = linkClaim(claim, cfg, subjResolver, objResolver)
		}
		licensed := auditor.Audit(claim)
		action := policy.Decide(licensed)

		report.Summary.Total++
		if licensed {
			report.Summary.Licensed++
		}
		if action == audit.ActionAnswer {
			report.Summary.Answered++
		} else {
			report.Summary.Abstained++
		}
		report.Results = append(report.Results, model.AuditOutcome{
			ID:       record.ID,
			Claim:    claim,
			Licensed: licensed,
			Decision: string(action),
		})
	}

	if err := writeJSON(auditOut, report); err != nil {
		return err
	}
	fmt.Printf("Audited %d claims: %d licensed, %d answered, %d abstained\n",
		report.Summary.Total, report.Summary.Licensed,
		report.Summary.Answered, report.Summary.Abstained)
	return nil
}

// typeResolver builds a label resolver over entities of one type. An
// empty local name falls back to the retrieval root type.
func typeResolver(g *graph.Graph, cfg *model.Config, localType string) *resolve.Resolver {
	typeIRI := cfg.Retrieval.RootType
	if localType != "" {
		typeIRI = cfg.Graph.Namespace + localType
	}
	index := resolve.BuildIndex(g, typeIRI, graph.RDFSLabel)
	return resolve.NewResolver(index, cfg.Resolver.FuzzyThreshold)
}

// linkClaim resolves label components to IRIs. A component that is
// already an IRI in the configured namespace passes through; a label
// that fails to resolve becomes empty and the claim unlicensed.
func linkClaim(claim model.Claim, cfg *model.Config, subj, obj *resolve.Resolver) model.Claim {
	ns := cfg.Graph.Namespace
	if !isIRI(claim.Subject, ns) {
		claim.Subject = subj.Link(claim.Subject)
	}
	if !isIRI(claim.Predicate, ns) && claim.Predicate != "" {
		claim.Predicate = ns + claim.Predicate
	}
	if !isIRI(claim.Object, ns) {
		claim.Object = obj.Link(claim.Object)
	}
	return claim
}

func isIRI(s, namespace string) bool {
	return len(s) > len(namespace) && s[:len(namespace)] == namespace
}

func readClaims(path string) ([]model.ClaimRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open claims: %w", err)
	}
	defer f.Close()

	var records []model.ClaimRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var record model.ClaimRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}
	return records, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
