package reconcile

import (
	"github.com/bwmarrin/snowflake"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
)

// PersonResolver decides which person a meeting or sale is attributed to.
// The same aggregation runs vendor-keyed for salespeople and SDR-keyed
// for the booking reps.
type PersonResolver struct {
	Name    string
	Meeting func(m *meetingdomain.Meeting) (snowflake.ID, bool)
	Sale    func(s *saledomain.Sale) (snowflake.ID, bool)
}

var VendorResolver = PersonResolver{
	Name: "vendedor",
	Meeting: func(m *meetingdomain.Meeting) (snowflake.ID, bool) {
		return m.VendedorID, m.VendedorID != 0
	},
	Sale: func(s *saledomain.Sale) (snowflake.ID, bool) {
		return s.VendedorID, s.VendedorID != 0
	},
}

var SDRResolver = PersonResolver{
	Name: "sdr",
	Meeting: func(m *meetingdomain.Meeting) (snowflake.ID, bool) {
		if m.SDRID == nil || *m.SDRID == 0 {
			return 0, false
		}
		return *m.SDRID, true
	},
	Sale: func(s *saledomain.Sale) (snowflake.ID, bool) {
		if s.SDRID == nil || *s.SDRID == 0 {
			return 0, false
		}
		return *s.SDRID, true
	},
}

type Stats struct {
	Convertidas        int     `json:"convertidas"`
	Compareceram       int     `json:"compareceram"`
	NaoCompareceram    int     `json:"nao_compareceram"`
	Pendentes          int     `json:"pendentes"`
	TaxaConversao      float64 `json:"taxa_conversao"`
	TaxaComparecimento float64 `json:"taxa_comparecimento"`
}

// Input carries the rows one aggregation pass folds over. Sales must
// include, besides the period's enrolled sales, any sale linked or
// contact-matched to a meeting in the pass even when its conversion
// landed in another period; the period filter for Convertidas is applied
// here, not by the caller.
type Input struct {
	Meetings []meetingdomain.Meeting
	Sales    []saledomain.Sale
	Leads    []leaddomain.Lead
	Students []saledomain.Student
}

// Aggregate folds the period's rows into per-person counts and rates.
// Conversions come from enrolled sales attributed by effective conversion
// date; meetings whose sale already counts are excluded from pending via
// the matcher and the form_entry link. Meetings with no resolvable person
// are dropped. The fold is deterministic over the same input.
func Aggregate(in Input, period Period, resolver PersonResolver) map[snowflake.ID]Stats {
	converted := convertedMeetings(in)

	counts := make(map[snowflake.ID]Stats)
	for i := range in.Sales {
		sale := &in.Sales[i]
		if sale.Status != saledomain.StatusMatriculado {
			continue
		}
		if !period.Contains(sale.EffectiveConversionDate()) {
			continue
		}
		personID, ok := resolver.Sale(sale)
		if !ok {
			continue
		}
		stats := counts[personID]
		stats.Convertidas++
		counts[personID] = stats
	}

	for i := range in.Meetings {
		meeting := &in.Meetings[i]
		if !period.Contains(meeting.DataAgendamento) {
			continue
		}
		personID, ok := resolver.Meeting(meeting)
		if !ok {
			continue
		}
		outcome := Classify(meeting, converted)
		if outcome == OutcomeIgnored {
			continue
		}
		stats := counts[personID]
		switch outcome {
		case OutcomeAttended:
			stats.Compareceram++
		case OutcomeNoShow:
			stats.NaoCompareceram++
		case OutcomePending:
			stats.Pendentes++
		}
		counts[personID] = stats
	}

	for personID, stats := range counts {
		finalizadas := stats.Convertidas + stats.Compareceram
		if finalizadas > 0 {
			stats.TaxaConversao = float64(stats.Convertidas) / float64(finalizadas) * 100
		}
		total := finalizadas + stats.NaoCompareceram
		if total > 0 {
			stats.TaxaComparecimento = float64(finalizadas) / float64(total) * 100
		}
		counts[personID] = stats
	}
	return counts
}

// convertedMeetings collects meeting IDs whose conversion is already
// represented by an enrolled sale: either linked through form_entry_id or
// matched to the student's contact info. A match against a sale that is
// still pendente (or desistiu) does not settle the meeting; it stays an
// unresolved comprou and is counted pending.
func convertedMeetings(in Input) map[snowflake.ID]struct{} {
	enrolled := make(map[snowflake.ID]struct{}, len(in.Sales))
	for i := range in.Sales {
		if in.Sales[i].Status == saledomain.StatusMatriculado {
			enrolled[in.Sales[i].ID] = struct{}{}
		}
	}

	converted := make(map[snowflake.ID]struct{})
	for i := range in.Meetings {
		meeting := &in.Meetings[i]
		if meeting.FormEntryID == nil {
			continue
		}
		if _, ok := enrolled[*meeting.FormEntryID]; ok {
			converted[meeting.ID] = struct{}{}
		}
	}
	for meetingID, formEntryID := range Match(in.Meetings, in.Leads, in.Students) {
		if _, ok := enrolled[formEntryID]; ok {
			converted[meetingID] = struct{}{}
		}
	}
	return converted
}
