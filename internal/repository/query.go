package repository

import "strings"

// whereBuilder composes optional predicate clauses joined with AND. Each
// filter method appends independently; an empty builder renders to nothing
// so unfiltered lists need no special casing.
type whereBuilder struct {
	conds []string
	args  []interface{}
}

// add appends one predicate with its arguments.
func (w *whereBuilder) add(cond string, args ...interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

// addIn appends an IN predicate for a non-empty id set.
func (w *whereBuilder) addIn(column string, ids []uint64) {
	if len(ids) == 0 {
		return
	}
	ph := make([]string, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		w.args = append(w.args, id)
	}
	w.conds = append(w.conds, column+" IN ("+strings.Join(ph, ",")+")")
}

// clause renders " WHERE ..." or an empty string.
func (w *whereBuilder) clause() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// Page bounds a list query. Limit 0 means the repository default.
type Page struct {
	Limit  int
	Offset int
}

// limitClause renders " LIMIT x OFFSET y" with def as fallback page size.
func (p Page) limitClause(def int) (string, []interface{}) {
	limit := p.Limit
	if limit <= 0 {
		limit = def
	}
	if limit > 100 {
		limit = 100
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return " LIMIT ? OFFSET ?", []interface{}{limit, offset}
}
