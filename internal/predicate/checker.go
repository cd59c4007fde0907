package predicate

import (
	"fmt"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Checker evaluates a compiled predicate expression.
type Checker struct {
	src string
	prg *vm.Program
}

// Compile compiles src into a Checker. The expression must yield a bool.
func Compile(src string) (*Checker, error) {
	opts := append(exprOpts(), expr.Env(env("")), expr.AsBool())

	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile check %q: %w", src, err)
	}

	return &Checker{src: src, prg: prg}, nil
}

// Source returns the expression text.
func (c *Checker) Source() string {
	return c.src
}

// Check reports whether value satisfies the expression.
func (c *Checker) Check(value string) (bool, error) {
	out, err := expr.Run(c.prg, env(value))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate check %q on %q: %w", c.src, value, err)
	}

	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("check %q returned %T, want bool", c.src, out)
	}

	return ok, nil
}

func env(s string) map[string]any {
	return map[string]any{"s": s}
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Function("bytes", func(params ...any) (any, error) {
			s := params[0].(string)

			res := make([]int, len(s))
			for i := range len(s) {
				res[i] = int(s[i])
			}

			return res, nil
		},
			new(func(string) []int)),
		expr.Function("runes", func(params ...any) (any, error) {
			s := params[0].(string)

			res := make([]int, 0, utf8.RuneCountInString(s))
			for _, r := range s {
				res = append(res, int(r))
			}

			return res, nil
		},
			new(func(string) []int)),
		expr.Function("validUTF8", func(params ...any) (any, error) {
			return utf8.ValidString(params[0].(string)), nil
		},
			new(func(string) bool)),
		expr.Function("isASCII", func(params ...any) (any, error) {
			s := params[0].(string)
			for i := range len(s) {
				if s[i] >= utf8.RuneSelf {
					return false, nil
				}
			}

			return true, nil
		},
			new(func(string) bool)),
	}
}
