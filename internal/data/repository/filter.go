package repository

import (
	"fmt"
	"strings"
)

// whereBuilder collects optional filter clauses with numbered placeholders.
// Each clause passed to add holds a single %d for the argument position.
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, arg any) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(clause, len(w.args)))
}

// addStatic adds a clause that takes no argument.
func (w *whereBuilder) addStatic(clause string) {
	w.clauses = append(w.clauses, clause)
}

func (w *whereBuilder) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page appends LIMIT/OFFSET placeholders and returns the full argument list.
func (w *whereBuilder) page(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}
