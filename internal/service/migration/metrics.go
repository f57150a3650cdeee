package migration

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MigratedLabelsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "label_migration_processed_total",
			Help: "Total number of legacy label references processed by the migration",
		},
		[]string{"outcome"},
	)

	OrphanFilesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "label_migration_orphans_deleted_total",
			Help: "Total number of orphaned label files removed from legacy directories",
		},
	)
)

const (
	outcomeMigrated  = "migrated"
	outcomeRepointed = "repointed"
	outcomeMissing   = "missing"
	outcomeFailed    = "failed"
)
