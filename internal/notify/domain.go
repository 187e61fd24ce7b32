package notify

import "time"

// Kind identifies which feed a notification came from.
type Kind string

const (
	KindLowStock      Kind = "lowStock"
	KindPendingImport Kind = "pendingImport"
	KindPendingExport Kind = "pendingExport"
)

// Notification is the common shape every feed record is normalized into.
// The ID is source-qualified ("low-stock-5", "import-5") so records from
// different feeds with the same upstream id never collide. Read is always
// false; there is no read-state persistence.
type Notification struct {
	ID      string    `json:"id"`
	Type    Kind      `json:"type"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
	Read    bool      `json:"read"`
	Data    any       `json:"data"`
}

// Counts is the badge-count view of the three feeds. It must agree with
// what a full fetch would report: same filters, same fallback policy.
type Counts struct {
	LowStock       int `json:"lowStock"`
	PendingImports int `json:"pendingImports"`
	PendingExports int `json:"pendingExports"`
	Total          int `json:"total"`
}
