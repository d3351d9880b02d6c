package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalImpactKeepsZeroResults(t *testing.T) {
	data, err := json.Marshal(GoalImpact{GoalTitle: "Car", Type: GoalMonthlySavings})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, key := range []string{"current_months", "new_months", "months_saved", "current_percentage", "new_percentage"} {
		assert.Contains(t, fields, key)
		assert.EqualValues(t, 0, fields[key], key)
	}
}
