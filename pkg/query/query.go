// Copyright (c) 2026 Librarium. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package query helps repositories assemble parameterised SQL.

Values are never interpolated into SQL text: every filter value becomes a
positional argument ($1, $2, ...) and only trusted column names are formatted
into the statement.
*/
package query

import (
	"fmt"
	"strings"
)

// likeEscaper escapes the LIKE metacharacters using the default '\' escape.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Contains turns a user fragment into an ILIKE pattern matching it anywhere.
func Contains(fragment string) string {
	return "%" + likeEscaper.Replace(fragment) + "%"
}

// Where collects AND-joined conditions and their positional arguments.
type Where struct {
	conditions []string
	args       []any
}

// Add appends a condition. Every "%[1]d" verb in condition is replaced by the
// placeholder number assigned to arg, so one argument may be referenced
// several times.
//
// # Example
//
//	where.Add("(a.name ILIKE $%[1]d OR a.email ILIKE $%[1]d)", query.Contains(q))
func (w *Where) Add(condition string, arg any) *Where {
	w.args = append(w.args, arg)
	w.conditions = append(w.conditions, fmt.Sprintf(condition, len(w.args)))
	return w
}

// String renders " WHERE ..." or "" when no condition was added.
func (w *Where) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}

// Args returns a copy of the collected arguments.
func (w *Where) Args() []any {
	return append([]any(nil), w.args...)
}

// Paginate appends LIMIT and OFFSET placeholders after the collected
// arguments and returns the clause with the full argument list.
func (w *Where) Paginate(limit, offset int) (string, []any) {
	clause := fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2)
	return clause, append(w.Args(), limit, offset)
}
