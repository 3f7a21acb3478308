package model

import "time"

type ScreenReport struct {
	RunID          string             `json:"run_id"`
	Backend        string             `json:"backend"`
	Threshold      float64            `json:"threshold"`
	Total          int                `json:"total"`
	ValidCount     int                `json:"valid_count"`
	Valid          []bool             `json:"valid"`
	Invalid        []InvalidStatement `json:"invalid,omitempty"`
	Duplicates     []DuplicateMatch   `json:"duplicates"`
	Clusters       []DuplicateCluster `json:"clusters,omitempty"`
	Contradictions []Contradiction    `json:"contradictions,omitempty"`
	StartedAt      time.Time          `json:"started_at"`
	Duration       time.Duration      `json:"duration_ns"`
}

type InvalidStatement struct {
	Index     int    `json:"index"`
	Statement string `json:"statement"`
	Diagnosis string `json:"diagnosis"`
}
