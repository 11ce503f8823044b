package models

// ConfigKeyLastDailyReset stores the local calendar day (YYYY-MM-DD) of the
// last daily quest transition.
const ConfigKeyLastDailyReset = "last_daily_reset"

// SystemConfig is a generic key/value record.
type SystemConfig struct {
	Key   string `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}
