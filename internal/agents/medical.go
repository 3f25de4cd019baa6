package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ahrie-ai/platform/internal/catalog"
	"github.com/ahrie-ai/platform/internal/i18n"
	"github.com/ahrie-ai/platform/internal/knowledge"
	"github.com/ahrie-ai/platform/internal/llm"
	"github.com/ahrie-ai/platform/pkg/logging"
)

// procedureCatalog is the slice of the catalog store the medical agent
// uses to ground its answers.
type procedureCatalog interface {
	ListProcedures(ctx context.Context, category string) ([]catalog.Procedure, error)
	ListClinicsForProcedure(ctx context.Context, procedureID uuid.UUID, limit int) ([]catalog.Clinic, error)
	ListClinics(ctx context.Context, filter catalog.ClinicFilter) ([]catalog.Clinic, error)
}

// MedicalAgent answers procedure, cost, and recovery questions grounded
// in the clinic catalog and the medical knowledge base.
type MedicalAgent struct {
	client    llm.Client
	catalog   procedureCatalog
	retriever knowledge.Retriever
	tuning    tuning
	logger    *logging.Logger
}

func NewMedicalAgent(client llm.Client, cat procedureCatalog, retriever knowledge.Retriever, logger *logging.Logger, opts ...AgentOption) *MedicalAgent {
	if client == nil {
		panic("agents: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MedicalAgent{client: client, catalog: cat, retriever: retriever, tuning: newTuning(opts), logger: logger}
}

func (a *MedicalAgent) Role() Role { return RoleMedical }

func (a *MedicalAgent) Respond(ctx context.Context, q Query) (Reply, error) {
	var grounding []string

	if a.catalog != nil {
		if facts := a.catalogFacts(ctx, q); facts != "" {
			grounding = append(grounding, facts)
		}
	}
	if a.retriever != nil {
		docs, err := a.retriever.Query(ctx, "medical", q.Text, a.tuning.topK)
		if err != nil {
			a.logger.Warn("medical knowledge lookup failed", "error", err)
		} else if len(docs) > 0 {
			grounding = append(grounding, "Reference notes:\n"+strings.Join(docs, "\n"))
		}
	}

	return complete(ctx, a.client, RoleMedical, q, grounding, a.tuning)
}

// catalogFacts pulls the procedures mentioned in the query, with their
// price bands and the best-rated clinics offering them. Lookup failures
// degrade to an ungrounded answer rather than an error.
func (a *MedicalAgent) catalogFacts(ctx context.Context, q Query) string {
	procedures, err := a.catalog.ListProcedures(ctx, "")
	if err != nil {
		a.logger.Warn("procedure list failed", "error", err)
		return ""
	}

	lowered := strings.ToLower(q.Text)
	var matched []catalog.Procedure
	for _, p := range procedures {
		for _, name := range []string{p.Name, p.NameAR, p.NameKO} {
			if name != "" && strings.Contains(lowered, strings.ToLower(name)) {
				matched = append(matched, p)
				break
			}
		}
	}

	var b strings.Builder
	for _, p := range matched {
		fmt.Fprintf(&b, "%s: %s to %s, %d-%d days recovery.\n",
			p.LocalizedName(q.Language),
			i18n.FormatCurrency(p.PriceMinUSD, "USD", q.Language),
			i18n.FormatCurrency(p.PriceMaxUSD, "USD", q.Language),
			p.RecoveryDaysMin, p.RecoveryDaysMax)

		clinics, err := a.catalog.ListClinicsForProcedure(ctx, p.ID, 3)
		if err != nil {
			a.logger.Warn("clinic lookup failed", "procedure", p.Name, "error", err)
			continue
		}
		for _, c := range clinics {
			fmt.Fprintf(&b, "- %s (%s), rating %.1f%s\n",
				c.LocalizedName(q.Language), c.District, c.Rating, clinicBadges(c))
		}
	}

	if len(matched) == 0 {
		filter := catalog.ClinicFilter{Limit: 3}
		if strings.Contains(lowered, "female") || strings.Contains(lowered, "طبيبة") || strings.Contains(lowered, "여의사") {
			filter.FemaleStaff = true
		}
		clinics, err := a.catalog.ListClinics(ctx, filter)
		if err != nil {
			a.logger.Warn("clinic list failed", "error", err)
			return ""
		}
		for _, c := range clinics {
			fmt.Fprintf(&b, "- %s (%s), rating %.1f%s\n",
				c.LocalizedName(q.Language), c.District, c.Rating, clinicBadges(c))
		}
	}

	if b.Len() == 0 {
		return ""
	}
	return "Verified catalog facts, use these over your own estimates:\n" + b.String()
}

func clinicBadges(c catalog.Clinic) string {
	var badges []string
	if c.FemaleStaff {
		badges = append(badges, "female doctors")
	}
	if c.HalalFriendly {
		badges = append(badges, "halal friendly")
	}
	if c.ArabicSupport {
		badges = append(badges, "Arabic support")
	}
	if len(badges) == 0 {
		return ""
	}
	return ", " + strings.Join(badges, ", ")
}
