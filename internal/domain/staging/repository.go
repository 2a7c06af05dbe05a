package staging

import "context"

// Repository reads staging tables into their typed row forms. Implementations
// must treat a missing staging table as an empty slice, not an error, so
// validation can still run against a partially-loaded database.
type Repository interface {
	Load(ctx context.Context) (*Dataset, error)
	RowCounts(ctx context.Context) (map[string]int64, error)
}
