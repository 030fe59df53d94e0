package listing

import (
	"strings"
	"time"

	"admindash/internal/utils"
)

// Query accumulates WHERE conditions for a list endpoint. Blank filter
// values are skipped so that "empty string means unset" is enforced in
// exactly one place instead of once per handler.
type Query struct {
	conds []string
	args  []any
}

func (q *Query) Like(column, value string) *Query {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	q.conds = append(q.conds, column+" LIKE ?")
	q.args = append(q.args, "%"+value+"%")
	return q
}

func (q *Query) Equal(column, value string) *Query {
	value = strings.TrimSpace(value)
	if value == "" {
		return q
	}
	q.conds = append(q.conds, column+" = ?")
	q.args = append(q.args, value)
	return q
}

func (q *Query) Bool(column, value string) *Query {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		q.conds = append(q.conds, column+" = 1")
	case "false", "0":
		q.conds = append(q.conds, column+" = 0")
	}
	return q
}

// FromDate keeps rows on or after the given YYYY-MM-DD day.
func (q *Query) FromDate(column, value string) *Query {
	t, ok := parseDay(value)
	if !ok {
		return q
	}
	q.conds = append(q.conds, column+" >= ?")
	q.args = append(q.args, t.Format("2006-01-02 15:04:05"))
	return q
}

// ToDate keeps rows up to and including the given YYYY-MM-DD day.
func (q *Query) ToDate(column, value string) *Query {
	t, ok := parseDay(value)
	if !ok {
		return q
	}
	q.conds = append(q.conds, column+" < ?")
	q.args = append(q.args, t.AddDate(0, 0, 1).Format("2006-01-02 15:04:05"))
	return q
}

// Where returns the assembled clause (with leading " WHERE ") and args.
// With no active filters it returns an empty clause.
func (q *Query) Where() (string, []any) {
	if len(q.conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(q.conds, " AND "), q.args
}

// OrderBy resolves a user-supplied sort field against a column whitelist.
// Unknown fields fall back, and order is normalized to ASC/DESC.
func OrderBy(sortBy, order string, allowed map[string]string, fallback string) string {
	col, ok := allowed[strings.TrimSpace(sortBy)]
	if !ok {
		col = fallback
	}
	dir := "ASC"
	if strings.EqualFold(strings.TrimSpace(order), "desc") {
		dir = "DESC"
	}
	return " ORDER BY " + col + " " + dir
}

func parseDay(value string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}
	t, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
