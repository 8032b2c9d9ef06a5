// Package metrics provides Prometheus counters for the batch runs. The
// CLIs are short-lived, so metrics are pushed to a Pushgateway at the
// end of a run rather than scraped.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Registry is the custom prometheus registry for our application.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// HolidaysFetched counts normalized holiday records per state.
var HolidaysFetched = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "holidaysync",
	Name:      "holidays_fetched_total",
	Help:      "Holiday records fetched and kept after filtering, by state",
}, []string{"state"})

// FetchFailures counts states whose upstream query failed.
var FetchFailures = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "holidaysync",
	Name:      "fetch_failures_total",
	Help:      "Upstream holiday queries that failed, by state",
}, []string{"state"})

// Decisions counts reconcile decisions by action.
var Decisions = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "holidaysync",
	Name:      "decisions_total",
	Help:      "Reconcile decisions emitted, by action",
}, []string{"action"})

// SchedulesWritten counts schedules actually created or updated.
var SchedulesWritten = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "holidaysync",
	Name:      "schedules_written_total",
	Help:      "Schedules created or updated on the platform",
})

// AccountsCreated counts resource accounts provisioned.
var AccountsCreated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "provision",
	Name:      "accounts_created_total",
	Help:      "Resource accounts created",
})

// AccountsSkipped counts provisioning rows skipped for any reason.
var AccountsSkipped = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "provision",
	Name:      "accounts_skipped_total",
	Help:      "Provisioning rows skipped (conflicts, failures, dry-run)",
})

// ContactsImported counts contacts imported.
var ContactsImported = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "contactimport",
	Name:      "contacts_imported_total",
	Help:      "Contacts imported onto the platform",
})

// RowsSkipped counts CSV rows rejected during parsing.
var RowsSkipped = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "csv",
	Name:      "rows_skipped_total",
	Help:      "CSV rows skipped due to missing or malformed fields",
})

// Push sends the registry to a Pushgateway. Used at the end of a run
// when a push URL is configured.
func Push(url string, job string) error {
	return push.New(url, job).Gatherer(Registry).Push()
}
