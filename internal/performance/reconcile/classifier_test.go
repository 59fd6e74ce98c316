package reconcile

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	meetingdomain "github.com/vendaflow/vendaflow/internal/meeting/domain"
)

func meetingWithResult(id snowflake.ID, resultado string) *meetingdomain.Meeting {
	m := &meetingdomain.Meeting{ID: id}
	if resultado != "" {
		m.ResultadoReuniao = &resultado
	}
	return m
}

func TestClassifyNoResult(t *testing.T) {
	assert.Equal(t, OutcomeIgnored, Classify(meetingWithResult(1, ""), nil))
	assert.Equal(t, OutcomeIgnored, Classify(meetingWithResult(1, "   "), nil))
}

func TestClassifyNoShowVariants(t *testing.T) {
	assert.Equal(t, OutcomeNoShow, Classify(meetingWithResult(1, "nao_compareceu"), nil))
	assert.Equal(t, OutcomeNoShow, Classify(meetingWithResult(1, "ausente"), nil))
}

func TestClassifyComprouPendingWithoutSale(t *testing.T) {
	assert.Equal(t, OutcomePending, Classify(meetingWithResult(1, "comprou"), nil))
}

func TestClassifyComprouIgnoredWhenConverted(t *testing.T) {
	converted := map[snowflake.ID]struct{}{1: {}}
	assert.Equal(t, OutcomeIgnored, Classify(meetingWithResult(1, "comprou"), converted))
	assert.Equal(t, OutcomePending, Classify(meetingWithResult(2, "comprou"), converted))
}

func TestClassifyAttendedVariants(t *testing.T) {
	for _, code := range []string{"compareceu_nao_comprou", "presente", "compareceu", "realizada", "realizado", "REALIZADA"} {
		assert.Equal(t, OutcomeAttended, Classify(meetingWithResult(1, code), nil), "code %q", code)
	}
}

func TestClassifyUnknownCodeCountsAsAttended(t *testing.T) {
	assert.Equal(t, OutcomeAttended, Classify(meetingWithResult(1, "remanejado"), nil))
}
