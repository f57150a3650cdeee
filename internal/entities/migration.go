package entities

// MigrationState фаза переноса старых этикеток в защищённое хранилище.
//
// Допустимые переходы: unset -> not_needed, unset -> in_progress,
// in_progress -> completed. Терминальные состояния не пересматриваются.
type MigrationState string

const (
	MigrationUnset      MigrationState = ""
	MigrationNotNeeded  MigrationState = "not_needed"
	MigrationInProgress MigrationState = "in_progress"
	MigrationCompleted  MigrationState = "completed"
)

func (s MigrationState) Terminal() bool {
	return s == MigrationNotNeeded || s == MigrationCompleted
}

func (s MigrationState) String() string {
	return string(s)
}
