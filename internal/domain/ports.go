package domain

import "context"

// RowSource is the spreadsheet side of the pipeline: one header row plus
// raw data rows, cells untyped exactly as the backend returned them.
type RowSource interface {
	ReadRows(ctx context.Context) (headers []string, rows [][]any, err error)
}

// Catalog serves the normalized result set. cached reports whether the
// items came out of the in-memory slot or from a fresh fetch.
type Catalog interface {
	List(ctx context.Context) (items []Experience, cached bool, err error)
}
