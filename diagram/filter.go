package diagram

import (
	"errors"
	"fmt"
	"go/ast"

	"github.com/google/cel-go/cel"

	"github.com/don7panic/codewiki-go-diagram/models"
)

// ErrInvalidFilter indicates a class filter expression that does not compile
// or does not evaluate to a bool.
var ErrInvalidFilter = errors.New("invalid class filter")

type classFilter struct {
	expr string
	prg  cel.Program
}

func compileFilter(expr string) (*classFilter, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("kind", cel.StringType),
		cel.Variable("pkg", cel.StringType),
		cel.Variable("exported", cel.BoolType),
	)
	if err != nil {
		return nil, err
	}

	checked, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, iss.Err())
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return &classFilter{expr: expr, prg: prg}, nil
}

func (f *classFilter) match(info *models.ClassInfo) (bool, error) {
	out, _, err := f.prg.Eval(map[string]any{
		"name":     info.Name,
		"kind":     info.Kind,
		"pkg":      info.Package,
		"exported": ast.IsExported(info.Name),
	})
	if err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrInvalidFilter, f.expr, err)
	}
	keep, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s: result is %T, not bool", ErrInvalidFilter, f.expr, out.Value())
	}
	return keep, nil
}
