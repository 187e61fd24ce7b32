package notify

import (
	"context"

	"go.uber.org/zap"

	"pos_gateway/internal/posapi"
)

// pendingStatuses are the status values the upstream uses for records
// awaiting approval. The second entry is the Lao spelling stored by older
// clients.
var pendingStatuses = map[string]bool{
	"Pending": true,
	"ລໍຖ້າ":   true,
}

// source is one tier of a feed's fallback chain.
type source[T any] struct {
	name  string
	fetch func(context.Context) ([]T, error)
}

// firstAvailable tries each source in order and returns the first that
// succeeds. When every tier fails the feed degrades to an empty result;
// a broken feed must never block the other two.
func firstAvailable[T any](ctx context.Context, logger *zap.Logger, feed string, sources []source[T]) []T {
	for _, s := range sources {
		records, err := s.fetch(ctx)
		if err != nil {
			logger.Warn("notification source failed",
				zap.String("feed", feed),
				zap.String("source", s.name),
				zap.Error(err),
			)
			continue
		}
		return records
	}

	logger.Warn("notification feed degraded to empty", zap.String("feed", feed))
	return nil
}

// lowStockRecords fetches products at or below minimum quantity: the
// dedicated filtered endpoint first, then the full collection filtered
// here.
func (a *Aggregator) lowStockRecords(ctx context.Context) []posapi.Product {
	return firstAvailable(ctx, a.logger, "low-stock", []source[posapi.Product]{
		{name: "min-product endpoint", fetch: a.api.LowStockProducts},
		{name: "all-products client filter", fetch: func(ctx context.Context) ([]posapi.Product, error) {
			all, err := a.api.AllProducts(ctx)
			if err != nil {
				return nil, err
			}
			return filterLowStock(all), nil
		}},
	})
}

// pendingImportRecords fetches imports awaiting approval: the import
// endpoint filtered here, then the locally cached history.
func (a *Aggregator) pendingImportRecords(ctx context.Context) []posapi.ImportRecord {
	return firstAvailable(ctx, a.logger, "pending-import", []source[posapi.ImportRecord]{
		{name: "import endpoint", fetch: func(ctx context.Context) ([]posapi.ImportRecord, error) {
			all, err := a.api.AllImports(ctx)
			if err != nil {
				return nil, err
			}
			return filterPendingImports(all), nil
		}},
		{name: "local import history", fetch: func(ctx context.Context) ([]posapi.ImportRecord, error) {
			all, err := a.history.Imports()
			if err != nil {
				return nil, err
			}
			return filterPendingImports(all), nil
		}},
	})
}

// pendingExportRecords mirrors pendingImportRecords for exports.
func (a *Aggregator) pendingExportRecords(ctx context.Context) []posapi.ExportRecord {
	return firstAvailable(ctx, a.logger, "pending-export", []source[posapi.ExportRecord]{
		{name: "export endpoint", fetch: func(ctx context.Context) ([]posapi.ExportRecord, error) {
			all, err := a.api.AllExports(ctx)
			if err != nil {
				return nil, err
			}
			return filterPendingExports(all), nil
		}},
		{name: "local export history", fetch: func(ctx context.Context) ([]posapi.ExportRecord, error) {
			all, err := a.history.Exports()
			if err != nil {
				return nil, err
			}
			return filterPendingExports(all), nil
		}},
	})
}

func filterLowStock(products []posapi.Product) []posapi.Product {
	out := make([]posapi.Product, 0, len(products))
	for _, p := range products {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out
}

func filterPendingImports(records []posapi.ImportRecord) []posapi.ImportRecord {
	out := make([]posapi.ImportRecord, 0, len(records))
	for _, r := range records {
		if pendingStatuses[r.Status] {
			out = append(out, r)
		}
	}
	return out
}

func filterPendingExports(records []posapi.ExportRecord) []posapi.ExportRecord {
	out := make([]posapi.ExportRecord, 0, len(records))
	for _, r := range records {
		if pendingStatuses[r.Status] {
			out = append(out, r)
		}
	}
	return out
}
