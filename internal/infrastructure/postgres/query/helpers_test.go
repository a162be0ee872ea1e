package query_test

import "github.com/jackc/pgx/v5"

type item struct {
	ID   string
	Name string
}

func scanItem(row pgx.CollectableRow) (item, error) {
	var it item
	err := row.Scan(&it.ID, &it.Name)
	return it, err
}

func itemID(it item) string { return it.ID }

func ptr[T any](v T) *T { return &v }
