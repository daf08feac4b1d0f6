package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeFee(t *testing.T) {
	fee, ok := ComputeFee(DocumentTypeTranscript, 1, ProcessingNormal)
	assert.True(t, ok)
	assert.Equal(t, int64(15000), fee)

	fee, ok = ComputeFee(DocumentTypeTranscript, 3, ProcessingNormal)
	assert.True(t, ok)
	assert.Equal(t, int64(45000), fee)

	// rush is 1.5x the whole amount
	fee, ok = ComputeFee(DocumentTypeTranscript, 2, ProcessingRush)
	assert.True(t, ok)
	assert.Equal(t, int64(45000), fee)

	fee, ok = ComputeFee(DocumentTypeGoodMoral, 1, ProcessingRush)
	assert.True(t, ok)
	assert.Equal(t, int64(15000), fee)

	_, ok = ComputeFee(DocumentType("affidavit"), 1, ProcessingNormal)
	assert.False(t, ok)

	_, ok = ComputeFee(DocumentTypeDiploma, 0, ProcessingNormal)
	assert.False(t, ok)

	_, ok = ComputeFee(DocumentTypeDiploma, -1, ProcessingNormal)
	assert.False(t, ok)
}

func TestOverallStatus(t *testing.T) {
	m := DocumentRequest{
		DocumentRequestRegistrarStatus:  StagePending,
		DocumentRequestAccountingStatus: StagePending,
	}
	assert.Equal(t, "awaiting_registrar", m.OverallStatus())

	m.DocumentRequestRegistrarStatus = StageApproved
	assert.Equal(t, "awaiting_payment_check", m.OverallStatus())

	m.DocumentRequestAccountingStatus = StageApproved
	assert.Equal(t, "ready_for_release", m.OverallStatus())

	m.DocumentRequestAccountingStatus = StageRejected
	assert.Equal(t, "rejected", m.OverallStatus())

	m = DocumentRequest{
		DocumentRequestRegistrarStatus:  StageRejected,
		DocumentRequestAccountingStatus: StagePending,
	}
	assert.Equal(t, "rejected", m.OverallStatus())
}
