package definition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomValidationsRegistered(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() { newValidator() })

	cases := []struct {
		tag, good, bad string
	}{
		{"date", "2025-01-02", "30/06/2025"},
		{"tenor", "5Y", "soon"},
		{"end", "10Y", "soon"},
		{"daycount", "act/360", "bus/252"},
		{"calendar", "us/settlement", "us/moon"},
		{"bdc", "MF", "sideways"},
	}
	require.Len(t, customValidations, len(cases))
	for _, tc := range cases {
		assert.NoError(t, validate.Var(tc.good, tc.tag), tc.tag)
		assert.Error(t, validate.Var(tc.bad, tc.tag), tc.tag)
	}
}
