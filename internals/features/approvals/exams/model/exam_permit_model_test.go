package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeetsRequirement(t *testing.T) {
	m := ExamPermit{ExamPermitRequiredCentavos: 500000}

	m.ExamPermitPaidCentavos = 499999
	assert.False(t, m.MeetsRequirement())

	// exactly the required amount passes
	m.ExamPermitPaidCentavos = 500000
	assert.True(t, m.MeetsRequirement())

	m.ExamPermitPaidCentavos = 500001
	assert.True(t, m.MeetsRequirement())
}
