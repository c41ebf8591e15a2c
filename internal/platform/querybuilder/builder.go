package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates SQL text and positional args, numbering $n
// placeholders in the order they are written.
type sqlWriter struct {
	buf  strings.Builder
	args []any
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.buf.WriteString("$" + strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) write(parts ...string) {
	for _, p := range parts {
		w.buf.WriteString(p)
	}
}

// writeExpr copies expr, binding each '?' to the next value of exprArgs.
// A '?' without a matching arg is kept as is.
func (w *sqlWriter) writeExpr(expr string, exprArgs []any) {
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.buf.WriteByte(expr[i])
	}
}

func (w *sqlWriter) writeWhere(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.write(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.write(" AND ")
		}
		c.writeTo(w)
	}
}

func (w *sqlWriter) result() (string, []any, error) {
	return w.buf.String(), w.args, nil
}

type Condition interface {
	writeTo(w *sqlWriter)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) writeTo(w *sqlWriter) {
	w.write(c.column, " = ")
	w.bind(c.value)
}

type anyCondition struct {
	column string
	array  any
}

// Any renders "column = ANY($n)". array should be a driver value for a
// postgres array, e.g. pq.Array(ids).
func Any(column string, array any) Condition {
	return anyCondition{column: column, array: array}
}

func (c anyCondition) writeTo(w *sqlWriter) {
	w.write(c.column, " = ANY(")
	w.bind(c.array)
	w.write(")")
}

type exprCondition struct {
	expr string
	args []any
}

// Expr is a raw condition where '?' is replaced by the next arg.
func Expr(expr string, args ...any) Condition {
	return exprCondition{expr: expr, args: args}
}

func (c exprCondition) writeTo(w *sqlWriter) {
	w.writeExpr(c.expr, c.args)
}

type SelectBuilder struct {
	columns []string
	table   string
	joins   []string
	where   []Condition
	orderBy []string
	limit   int
	suffix  string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

// Join appends a raw join clause, e.g. "JOIN teams t ON t.id = r.team_id".
func (b *SelectBuilder) Join(clause string) *SelectBuilder {
	b.joins = append(b.joins, strings.TrimSpace(clause))
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

// Suffix appends a trailing clause such as "FOR UPDATE".
func (b *SelectBuilder) Suffix(sql string) *SelectBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.write("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	for _, j := range b.joins {
		w.write(" ", j)
	}
	w.writeWhere(b.where)
	if len(b.orderBy) > 0 {
		w.write(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.write(" LIMIT ", strconv.Itoa(b.limit))
	}
	if b.suffix != "" {
		w.write(" ", b.suffix)
	}
	return w.result()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values adds one row. Call it repeatedly for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w sqlWriter
	w.write("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.write(", ")
		}
		w.write("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.write(", ")
			}
			w.bind(value)
		}
		w.write(")")
	}
	if b.suffix != "" {
		w.write(" ", b.suffix)
	}
	return w.result()
}

type setClause struct {
	column string
	value  any
	expr   *exprCondition
}

type UpdateBuilder struct {
	table  string
	sets   []setClause
	where  []Condition
	suffix string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, value: value})
	return b
}

// SetExpr sets column to a SQL expression evaluated by the database, e.g.
// SetExpr("score", "score + ?", delta).
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, setClause{column: column, expr: &exprCondition{expr: expr, args: args}})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Suffix(sql string) *UpdateBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w sqlWriter
	w.write("UPDATE ", b.table, " SET ")
	for i, s := range b.sets {
		if i > 0 {
			w.write(", ")
		}
		w.write(s.column, " = ")
		if s.expr != nil {
			s.expr.writeTo(&w)
			continue
		}
		w.bind(s.value)
	}
	w.writeWhere(b.where)
	if b.suffix != "" {
		w.write(" ", b.suffix)
	}
	return w.result()
}
