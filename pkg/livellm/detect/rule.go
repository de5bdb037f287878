package detect

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rule is an optional host-supplied boolean expression that adjusts a
// detector's confidence bonus when it evaluates true, e.g.
// "rowCount >= 3 && hasHeader".
type Rule struct {
	Source  string
	Bonus   float64
	program *vm.Program
}

// NewRule compiles source as a boolean expression against the detector's
// per-match environment.
func NewRule(source string, bonus float64) (*Rule, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("detect: compile rule %q: %w", source, err)
	}
	return &Rule{Source: source, Bonus: bonus, program: program}, nil
}

// Eval runs the rule against env, returning the bonus to add (0 if the
// rule didn't fire or failed to evaluate) and a human-readable trace
// entry for Match.Explain.
func (r *Rule) Eval(env map[string]interface{}) (float64, string) {
	if r == nil || r.program == nil {
		return 0, ""
	}
	out, err := expr.Run(r.program, env)
	if err != nil {
		return 0, ""
	}
	if matched, _ := out.(bool); matched {
		return r.Bonus, fmt.Sprintf("rule %q matched", r.Source)
	}
	return 0, ""
}
