// Package querytest dobles en memoria de pgx para probar código construido
// sobre query.Executor sin una base de datos.
package querytest

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/users-api/internal/infrastructure/postgres/query"
)

// Rows implementa pgx.Rows sobre valores en memoria. Scan asigna por posición.
type Rows struct {
	Data   [][]any
	Error  error
	Closed bool
	pos    int
}

func NewRows(data ...[]any) *Rows { return &Rows{Data: data, pos: -1} }

func (r *Rows) Close()                                       { r.Closed = true }
func (r *Rows) Err() error                                   { return r.Error }
func (r *Rows) CommandTag() pgconn.CommandTag                { return pgconn.NewCommandTag("SELECT") }
func (r *Rows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *Rows) RawValues() [][]byte                          { return nil }
func (r *Rows) Conn() *pgx.Conn                              { return nil }

func (r *Rows) Next() bool {
	if r.Closed {
		return false
	}
	r.pos++
	return r.pos < len(r.Data)
}

func (r *Rows) Values() ([]any, error) { return r.Data[r.pos], nil }

func (r *Rows) Scan(dest ...any) error {
	row := r.Data[r.pos]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: %d destinos para %d columnas", len(dest), len(row))
	}
	for i, d := range dest {
		if err := assign(d, row[i]); err != nil {
			return fmt.Errorf("scan columna %d: %w", i, err)
		}
	}
	return nil
}

// assign copia src en *dest. Acepta T en destinos *T y **T; nil deja el cero.
func assign(dest, src any) error {
	target := reflect.ValueOf(dest).Elem()
	if src == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}
	v := reflect.ValueOf(src)
	switch {
	case v.Type().AssignableTo(target.Type()):
		target.Set(v)
	case target.Kind() == reflect.Pointer && v.Type().AssignableTo(target.Type().Elem()):
		p := reflect.New(target.Type().Elem())
		p.Elem().Set(v)
		target.Set(p)
	default:
		return fmt.Errorf("%s no asignable a %s", v.Type(), target.Type())
	}
	return nil
}

type row struct{ err error }

func (r row) Scan(...any) error { return r.err }

// Call sentencia recibida por el Querier.
type Call struct {
	SQL  string
	Args []any
}

// Querier registra cada sentencia y responde con lo configurado.
// Results se consume en orden, uno por Query; sin resultados devuelve cero filas.
type Querier struct {
	mu       sync.Mutex
	Calls    []Call
	Results  []*Rows
	QueryErr error
	Tag      pgconn.CommandTag
	ExecErr  error
}

func (q *Querier) record(sql string, args []any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Calls = append(q.Calls, Call{SQL: sql, Args: args})
}

func (q *Querier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.record(sql, args)
	return q.Tag, q.ExecErr
}

func (q *Querier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.record(sql, args)
	if q.QueryErr != nil {
		return nil, q.QueryErr
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.Results) == 0 {
		return NewRows(), nil
	}
	rows := q.Results[0]
	q.Results = q.Results[1:]
	return rows, nil
}

func (q *Querier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.record(sql, args)
	return row{err: q.QueryErr}
}

// Last devuelve la última sentencia recibida.
func (q *Querier) Last() Call {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.Calls) == 0 {
		return Call{}
	}
	return q.Calls[len(q.Calls)-1]
}

// Conns ConnSource que cuenta préstamos y devoluciones.
type Conns struct {
	DB         *Querier
	AcquireErr error
	Acquired   int
	Released   int
}

var _ query.ConnSource = (*Conns)(nil)

func (c *Conns) WithConn(_ context.Context, fn func(query.Querier) error) error {
	if c.AcquireErr != nil {
		return c.AcquireErr
	}
	c.Acquired++
	defer func() { c.Released++ }()
	return fn(c.DB)
}
