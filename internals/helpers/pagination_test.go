package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "student_ledger_created_at",
		"status":     "student_ledger_payment_status",
	}

	p := Params{SortBy: "status", SortOrder: "asc"}
	clause, err := p.SafeOrderClause(allowed, "created_at")
	assert.NoError(t, err)
	assert.Equal(t, "student_ledger_payment_status ASC", clause)

	// unknown key falls back to the default, desc
	p = Params{SortBy: "student_ledger_id; DROP TABLE student_ledgers", SortOrder: "desc"}
	clause, err = p.SafeOrderClause(allowed, "created_at")
	assert.NoError(t, err)
	assert.Equal(t, "student_ledger_created_at DESC", clause)

	p = Params{SortBy: "x"}
	_, err = p.SafeOrderClause(map[string]string{}, "missing")
	assert.Error(t, err)
}

func TestBuildMeta(t *testing.T) {
	m := BuildMeta(101, Params{Page: 2, PerPage: 50})
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNext)
	assert.True(t, m.HasPrev)

	m = BuildMeta(0, Params{Page: 1, PerPage: 50})
	assert.Equal(t, 1, m.TotalPages)
	assert.False(t, m.HasNext)
	assert.False(t, m.HasPrev)
}

func TestParamsOffset(t *testing.T) {
	p := Params{Page: 3, PerPage: 25}
	assert.Equal(t, 50, p.Offset())
	assert.Equal(t, 25, p.Limit())
}
