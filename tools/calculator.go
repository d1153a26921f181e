// Package tools provides example tool implementations hosts can register
// against an Engine's Registry.
package tools

import (
	"context"
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
	"github.com/taipm/reactagent/agent"
)

// NewCalculator creates an arithmetic-expression tool powered by
// govaluate.
func NewCalculator() *agent.Tool {
	return agent.NewTool("calculator", "Evaluate an arithmetic expression. Supports +, -, *, /, ** (power), and the functions sqrt, pow, sin, cos, tan, log, ln, abs, ceil, floor, round.").
		AddParameter("expression", "string", "The expression to evaluate, e.g. \"2 * (3 + 4) + sqrt(16)\"", true).
		WithExecutor(evaluateExpression)
}

func evaluateExpression(ctx context.Context, parameters map[string]interface{}) (interface{}, error) {
	expression, _ := parameters["expression"].(string)
	if expression == "" {
		return nil, fmt.Errorf("expression is required")
	}

	expr, err := govaluate.NewEvaluableExpressionWithFunctions(expression, calculatorFunctions)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	result, err := expr.Evaluate(nil)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	switch v := result.(type) {
	case float64:
		return fmt.Sprintf("%.6f", v), nil
	case int:
		return fmt.Sprintf("%.6f", float64(v)), nil
	default:
		return nil, fmt.Errorf("unexpected result type %T", result)
	}
}

var calculatorFunctions = map[string]govaluate.ExpressionFunction{
	"sqrt":  func(args ...interface{}) (interface{}, error) { return math.Sqrt(args[0].(float64)), nil },
	"pow":   func(args ...interface{}) (interface{}, error) { return math.Pow(args[0].(float64), args[1].(float64)), nil },
	"sin":   func(args ...interface{}) (interface{}, error) { return math.Sin(args[0].(float64)), nil },
	"cos":   func(args ...interface{}) (interface{}, error) { return math.Cos(args[0].(float64)), nil },
	"tan":   func(args ...interface{}) (interface{}, error) { return math.Tan(args[0].(float64)), nil },
	"log":   func(args ...interface{}) (interface{}, error) { return math.Log10(args[0].(float64)), nil },
	"ln":    func(args ...interface{}) (interface{}, error) { return math.Log(args[0].(float64)), nil },
	"abs":   func(args ...interface{}) (interface{}, error) { return math.Abs(args[0].(float64)), nil },
	"ceil":  func(args ...interface{}) (interface{}, error) { return math.Ceil(args[0].(float64)), nil },
	"floor": func(args ...interface{}) (interface{}, error) { return math.Floor(args[0].(float64)), nil },
	"round": func(args ...interface{}) (interface{}, error) { return math.Round(args[0].(float64)), nil },
}
