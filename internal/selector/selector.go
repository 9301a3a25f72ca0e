// Package selector compiles selection expressions such as
//
//	type == "FRAME" && name startsWith "Card"
//
// into node predicates. Expressions see one node at a time through Env.
package selector

import (
	"fmt"

	"github.com/aretw0/reattach/pkg/domain"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the view of a node an expression is evaluated against.
type Env struct {
	ID         string  `expr:"id"`
	Type       string  `expr:"type"`
	Name       string  `expr:"name"`
	X          float64 `expr:"x"`
	Y          float64 `expr:"y"`
	Width      float64 `expr:"width"`
	Height     float64 `expr:"height"`
	Children   int     `expr:"children"`
	Characters string  `expr:"characters"`
	Font       string  `expr:"font"`
	Fills      int     `expr:"fills"`
	Effects    int     `expr:"effects"`
}

// EnvOf builds the expression view of n.
func EnvOf(n *domain.Node) Env {
	e := Env{
		ID:       n.ID,
		Type:     string(n.Category),
		Name:     n.Name,
		X:        n.X,
		Y:        n.Y,
		Width:    n.Width,
		Height:   n.Height,
		Children: len(n.Children),
		Fills:    len(n.Fills),
		Effects:  len(n.Effects),
	}
	if n.Text != nil {
		e.Characters = n.Text.Characters
	}
	if f := n.Font(); f != nil {
		e.Font = f.String()
	}
	return e
}

// Compile type-checks expression and returns a predicate evaluating it.
// A node for which evaluation fails at runtime does not match.
func Compile(expression string) (domain.Predicate, error) {
	prg, err := expr.Compile(expression, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile selector %q: %w", expression, err)
	}
	return predicate(prg), nil
}

func predicate(prg *vm.Program) domain.Predicate {
	return func(n *domain.Node) bool {
		if n == nil {
			return false
		}
		out, err := expr.Run(prg, EnvOf(n))
		if err != nil {
			return false
		}
		ok, _ := out.(bool)
		return ok
	}
}

// Selectable is a host whose selection can be replaced.
type Selectable interface {
	Select(ids ...string)
	SelectWhere(pred domain.Predicate) int
}

// Apply replaces the selection of s. A non-empty expression wins over ids;
// with neither, the selection is left as is.
func Apply(s Selectable, expression string, ids []string) error {
	switch {
	case expression != "":
		pred, err := Compile(expression)
		if err != nil {
			return err
		}
		s.SelectWhere(pred)
	case len(ids) > 0:
		s.Select(ids...)
	}
	return nil
}
