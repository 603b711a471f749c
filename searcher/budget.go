package searcher

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var ErrBudgetExpr = errors.New("invalid risk budget expression")

// BudgetEnv is what a risk budget expression can refer to, e.g.
// `DistanceToTarget < 50 ? 0.02 : 0.1`.
type BudgetEnv struct {
	Turn             int
	Score            int
	Skill            float64
	DistanceToTarget float64
}

type BudgetExpr struct {
	source  string
	program *vm.Program
}

func CompileBudget(source string) (*BudgetExpr, error) {
	program, err := expr.Compile(source, expr.Env(BudgetEnv{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w: %w", source, ErrBudgetExpr, err)
	}
	return &BudgetExpr{source: source, program: program}, nil
}

func (b *BudgetExpr) String() string {
	return b.source
}

// Eval returns the budget for a turn, clamped to [0, 1].
func (b *BudgetExpr) Eval(env BudgetEnv) (float64, error) {
	result, err := vm.Run(b.program, env)
	if err != nil {
		return 0, fmt.Errorf("run %q: %w: %w", b.source, ErrBudgetExpr, err)
	}

	var budget float64
	switch v := result.(type) {
	case float64:
		budget = v
	case int:
		budget = float64(v)
	default:
		return 0, fmt.Errorf("%q returned %T: %w", b.source, result, ErrBudgetExpr)
	}
	if math.IsNaN(budget) {
		return 0, fmt.Errorf("%q returned NaN: %w", b.source, ErrBudgetExpr)
	}
	return math.Min(1, math.Max(0, budget)), nil
}
