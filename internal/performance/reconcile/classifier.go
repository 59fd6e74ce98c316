package reconcile

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
)

// Outcome is the single category a meeting falls into for one
// aggregation pass. Exactly one applies per meeting.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeNoShow
	OutcomePending
	OutcomeAttended
	OutcomeConverted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConverted:
		return "converted"
	case OutcomeAttended:
		return "attended"
	case OutcomeNoShow:
		return "no_show"
	case OutcomePending:
		return "pending"
	default:
		return "ignored"
	}
}

// Classify maps a meeting's raw outcome code to its category. converted
// holds meeting IDs whose sale already counts as a conversion; a comprou
// meeting in that set is Ignored here so the conversion is only counted
// once, from the sale record.
func Classify(meeting *meetingdomain.Meeting, converted map[snowflake.ID]struct{}) Outcome {
	code := strings.ToLower(meeting.Resultado())
	if code == "" {
		return OutcomeIgnored
	}

	switch code {
	case meetingdomain.ResultadoNaoCompareceu, meetingdomain.ResultadoAusente:
		return OutcomeNoShow
	case meetingdomain.ResultadoComprou:
		if _, ok := converted[meeting.ID]; ok {
			return OutcomeIgnored
		}
		return OutcomePending
	case meetingdomain.ResultadoCompareceuNaoComprou,
		meetingdomain.ResultadoPresente,
		meetingdomain.ResultadoCompareceu:
		return OutcomeAttended
	}
	if strings.HasPrefix(code, "realizad") {
		return OutcomeAttended
	}
	// Unknown non-empty codes count as attendance rather than vanishing.
	return OutcomeAttended
}
