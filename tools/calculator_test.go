package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatorEvaluatesExpression(t *testing.T) {
	calc := NewCalculator()

	value, err := calc.Execute(context.Background(), map[string]interface{}{"expression": "2 * (3 + 4) + sqrt(16)"})
	require.NoError(t, err)
	assert.Equal(t, "18.000000", value)
}

func TestCalculatorRejectsEmptyExpression(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Execute(context.Background(), map[string]interface{}{})
	assert.Error(t, err)
}

func TestCalculatorRejectsInvalidExpression(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.Execute(context.Background(), map[string]interface{}{"expression": "2 + * 3"})
	assert.Error(t, err)
}
