package reconcile

import (
	"sort"
	"strings"
	"unicode"

	"github.com/bwmarrin/snowflake"
	leaddomain "github.com/vendaflow/vendaflow/internal/lead/domain"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
	saledomain "github.com/vendaflow/vendaflow/internal/sale/domain"
)

// Confidence ranks how a lead/student pair was matched. Phone and email
// are strong signals, a bare name match is weak.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceName
	ConfidenceEmail
	ConfidencePhone
)

func (c Confidence) String() string {
	switch c {
	case ConfidencePhone:
		return "phone"
	case ConfidenceEmail:
		return "email"
	case ConfidenceName:
		return "name"
	default:
		return "none"
	}
}

type Candidate struct {
	FormEntryID snowflake.ID
	Confidence  Confidence
}

// Match links orphan meetings (resultado comprou, no form_entry_id) to the
// form entry of a student sharing contact info with the meeting's lead.
// First match wins; Candidates exposes the full ranked set when callers
// want to apply their own tie-break. Whether the matched sale settles the
// meeting is the caller's call, it depends on the sale's status.
func Match(meetings []meetingdomain.Meeting, leads []leaddomain.Lead, students []saledomain.Student) map[snowflake.ID]snowflake.ID {
	matched := make(map[snowflake.ID]snowflake.ID)
	for meetingID, candidates := range Candidates(meetings, leads, students) {
		matched[meetingID] = candidates[0].FormEntryID
	}
	return matched
}

// Candidates returns, per orphan meeting, every student whose contact info
// matches the meeting's lead, strongest signal first.
func Candidates(meetings []meetingdomain.Meeting, leads []leaddomain.Lead, students []saledomain.Student) map[snowflake.ID][]Candidate {
	leadByID := make(map[snowflake.ID]*leaddomain.Lead, len(leads))
	for i := range leads {
		leadByID[leads[i].ID] = &leads[i]
	}

	out := make(map[snowflake.ID][]Candidate)
	for i := range meetings {
		meeting := &meetings[i]
		if meeting.FormEntryID != nil || meeting.Resultado() != meetingdomain.ResultadoComprou {
			continue
		}
		lead := leadByID[meeting.LeadID]
		if lead == nil {
			continue
		}

		var candidates []Candidate
		for j := range students {
			if c := compare(lead, &students[j]); c != ConfidenceNone {
				candidates = append(candidates, Candidate{
					FormEntryID: students[j].FormEntryID,
					Confidence:  c,
				})
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].Confidence > candidates[b].Confidence
		})
		out[meeting.ID] = candidates
	}
	return out
}

func compare(lead *leaddomain.Lead, student *saledomain.Student) Confidence {
	if lead.Whatsapp != nil && student.Telefone != nil {
		leadPhone := NormalizePhone(*lead.Whatsapp)
		studentPhone := NormalizePhone(*student.Telefone)
		if leadPhone != "" && leadPhone == studentPhone {
			return ConfidencePhone
		}
	}
	if lead.Email != nil && student.Email != nil {
		leadEmail := NormalizeEmail(*lead.Email)
		studentEmail := NormalizeEmail(*student.Email)
		if leadEmail != "" && leadEmail == studentEmail {
			return ConfidenceEmail
		}
	}
	leadName := NormalizeName(lead.Nome)
	if leadName != "" && leadName == NormalizeName(student.Nome) {
		return ConfidenceName
	}
	return ConfidenceNone
}

// NormalizePhone strips every non-digit character.
func NormalizePhone(value string) string {
	var b strings.Builder
	for _, r := range value {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// NormalizeName lowercases and collapses internal whitespace.
func NormalizeName(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
