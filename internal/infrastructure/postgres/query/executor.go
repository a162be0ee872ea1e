package query

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/users-api/internal/domain"
)

// Querier subconjunto de pgx que usan los repositorios (*pgxpool.Conn, *pgxpool.Pool, pgx.Tx).
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnSource presta una conexión durante fn y la devuelve al salir, en cualquier caso.
type ConnSource interface {
	WithConn(ctx context.Context, fn func(Querier) error) error
}

// PoolConns ConnSource sobre un pool pgx.
type PoolConns struct {
	pool *pgxpool.Pool
}

func NewPoolConns(pool *pgxpool.Pool) *PoolConns {
	return &PoolConns{pool: pool}
}

func (p *PoolConns) WithConn(ctx context.Context, fn func(Querier) error) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return fn(conn)
}

// Executor ejecuta sentencias ya compiladas y clasifica los errores.
// resource nombra la entidad en los mensajes de "no encontrado".
type Executor struct {
	conns    ConnSource
	log      zerolog.Logger
	resource string
}

func NewExecutor(conns ConnSource, log zerolog.Logger, resource string) *Executor {
	return &Executor{
		conns:    conns,
		log:      log.With().Str("component", "query").Str("resource", resource).Logger(),
		resource: resource,
	}
}

// ListQuery describe un listado paginado: proyección, filtro compilado y orden.
type ListQuery[T any] struct {
	// Projection "SELECT ... FROM tabla", sin WHERE.
	Projection string
	Filter     Fragment
	Separator  Separator
	Page       domain.PageRequest
	Order      Ordering
	Scan       pgx.RowToFunc[T]
	ID         func(T) string
}

// Statement une la proyección y el resto de la consulta.
func (q ListQuery[T]) Statement() Fragment {
	sep := q.Separator
	if sep == "" {
		sep = And
	}
	paged := Paginate(q.Filter, q.Page, q.Order, sep)
	return Fragment{SQL: q.Projection + " " + paged.SQL, Args: paged.Args}
}

// List ejecuta el listado en un solo viaje y aplica el recorte de sobre-lectura.
func List[T any](ctx context.Context, ex *Executor, q ListQuery[T]) (domain.Page[T], error) {
	stmt := q.Statement()
	var rows []T
	err := ex.conns.WithConn(ctx, func(db Querier) error {
		r, err := db.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return err
		}
		rows, err = pgx.CollectRows(r, q.Scan)
		return err
	})
	if err != nil {
		return domain.Page[T]{}, ex.classify(err, stmt)
	}
	return Truncate(rows, q.Page.Limit, q.ID), nil
}

// One devuelve exactamente una fila; cero filas es KindNotFound.
func One[T any](ctx context.Context, ex *Executor, sql string, args []any, scan pgx.RowToFunc[T]) (T, error) {
	return single(ctx, ex, Fragment{SQL: sql, Args: args}, scan)
}

// Write ejecuta un INSERT/UPDATE ... RETURNING. Un UPDATE que no toca filas es KindNotFound.
func Write[T any](ctx context.Context, ex *Executor, sql string, args []any, scan pgx.RowToFunc[T]) (T, error) {
	return single(ctx, ex, Fragment{SQL: sql, Args: args}, scan)
}

func single[T any](ctx context.Context, ex *Executor, stmt Fragment, scan pgx.RowToFunc[T]) (T, error) {
	var out T
	err := ex.conns.WithConn(ctx, func(db Querier) error {
		r, err := db.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectExactlyOneRow(r, scan)
		return err
	})
	if err != nil {
		var zero T
		return zero, ex.classify(err, stmt)
	}
	return out, nil
}

// Exec sentencia sin filas de retorno; cero filas afectadas es KindNotFound.
func (ex *Executor) Exec(ctx context.Context, sql string, args ...any) error {
	stmt := Fragment{SQL: sql, Args: args}
	var tag pgconn.CommandTag
	err := ex.conns.WithConn(ctx, func(db Querier) error {
		var err error
		tag, err = db.Exec(ctx, stmt.SQL, stmt.Args...)
		return err
	})
	if err != nil {
		return ex.classify(err, stmt)
	}
	if tag.RowsAffected() == 0 {
		return ex.classify(pgx.ErrNoRows, stmt)
	}
	return nil
}
