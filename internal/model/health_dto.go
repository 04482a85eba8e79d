package model

import "time"

// HealthResponse reports liveness plus image index and database state
type HealthResponse struct {
	Status string        `json:"status"`
	Mode   string        `json:"mode"`
	Index  IndexStatsDTO `json:"index"`
	Cache  CacheStatsDTO `json:"cache"`
}

// IndexStatsDTO summarizes the last image index build
type IndexStatsDTO struct {
	Entries int        `json:"entries"`
	BuiltAt *time.Time `json:"builtAt,omitempty"`
	Fresh   bool       `json:"fresh"`
}

// CacheStatsDTO summarizes the document query cache
type CacheStatsDTO struct {
	Entries int `json:"entries"`
}
