package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"pos_gateway/internal/posapi"
)

// Aggregator merges the three alert feeds (low-stock products, pending
// imports, pending exports) into a single notification list. It never
// fails as a whole: a feed whose fallback chain is exhausted contributes
// an empty result instead of an error.
type Aggregator struct {
	api     *posapi.Client
	history HistoryStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewAggregator creates an Aggregator over the given client and history
// fallback store.
func NewAggregator(api *posapi.Client, history HistoryStore, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Aggregator{
		api:     api,
		history: history,
		logger:  logger,
		now:     time.Now,
	}
}

// FetchAll fetches the three feeds concurrently, normalizes each record
// into the common Notification shape, and returns the merged list sorted
// by date descending. Ties may appear in either relative order.
func (a *Aggregator) FetchAll(ctx context.Context) []Notification {
	var (
		products []posapi.Product
		imports  []posapi.ImportRecord
		exports  []posapi.ExportRecord
		wg       sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		products = a.lowStockRecords(ctx)
	}()
	go func() {
		defer wg.Done()
		imports = a.pendingImportRecords(ctx)
	}()
	go func() {
		defer wg.Done()
		exports = a.pendingExportRecords(ctx)
	}()
	wg.Wait()

	merged := make([]Notification, 0, len(products)+len(imports)+len(exports))
	for _, p := range products {
		merged = append(merged, a.lowStockNotification(p))
	}
	for _, r := range imports {
		merged = append(merged, a.importNotification(r))
	}
	for _, r := range exports {
		merged = append(merged, a.exportNotification(r))
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	a.logger.Info("notifications aggregated",
		zap.Int("low_stock", len(products)),
		zap.Int("pending_imports", len(imports)),
		zap.Int("pending_exports", len(exports)),
	)
	return merged
}

// CountAll returns badge counts for the three feeds without materializing
// Notification values. It runs the same fallback chains as FetchAll, so
// the numbers always agree with a full fetch.
func (a *Aggregator) CountAll(ctx context.Context) Counts {
	var (
		counts Counts
		wg     sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		counts.LowStock = len(a.lowStockRecords(ctx))
	}()
	go func() {
		defer wg.Done()
		counts.PendingImports = len(a.pendingImportRecords(ctx))
	}()
	go func() {
		defer wg.Done()
		counts.PendingExports = len(a.pendingExportRecords(ctx))
	}()
	wg.Wait()

	counts.Total = counts.LowStock + counts.PendingImports + counts.PendingExports
	return counts
}

// lowStockNotification normalizes a product. Product records carry no
// timestamp, so the date defaults to now.
func (a *Aggregator) lowStockNotification(p posapi.Product) Notification {
	return Notification{
		ID:      fmt.Sprintf("low-stock-%d", p.ID.Int()),
		Type:    KindLowStock,
		Title:   "Low stock",
		Message: fmt.Sprintf("%s is down to %d (minimum %d)", p.Name, p.Qty.Int(), p.QtyMin.Int()),
		Date:    a.now(),
		Data:    p,
	}
}

func (a *Aggregator) importNotification(r posapi.ImportRecord) Notification {
	return Notification{
		ID:      fmt.Sprintf("import-%d", r.ID.Int()),
		Type:    KindPendingImport,
		Title:   "Pending import",
		Message: fmt.Sprintf("Import #%d is awaiting approval", r.ID.Int()),
		Date:    a.recordDate(r.Date),
		Data:    r,
	}
}

func (a *Aggregator) exportNotification(r posapi.ExportRecord) Notification {
	return Notification{
		ID:      fmt.Sprintf("export-%d", r.ID.Int()),
		Type:    KindPendingExport,
		Title:   "Pending export",
		Message: fmt.Sprintf("Export #%d is awaiting approval", r.ID.Int()),
		Date:    a.recordDate(r.Date),
		Data:    r,
	}
}

// recordDate keeps the date invariant: an unparseable record date falls
// back to now rather than producing a zero timestamp.
func (a *Aggregator) recordDate(raw string) time.Time {
	if t, ok := posapi.ParseTimestamp(raw); ok {
		return t
	}
	return a.now()
}
