package api

import "time"

type TimePeriod struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_days"`
}

type ReportSection struct {
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Header   []string `json:"header,omitempty"`
	Rows     [][]any  `json:"rows"`
	Summary  []string `json:"summary,omitempty"`
	Emphasis []string `json:"emphasis,omitempty"`
}

type MovementSummary struct {
	ActiveNow    int `json:"active_now"`
	ActiveBefore int `json:"active_before"`
	Additions    int `json:"additions"`
	Removals     int `json:"removals"`
	Hot          int `json:"hot"`
	Cold         int `json:"cold"`
}

type ReportSummary struct {
	Title     string          `json:"title"`
	RunID     string          `json:"run_id"`
	Period    TimePeriod      `json:"period"`
	Enquiries int             `json:"enquiries"`
	Movement  MovementSummary `json:"movement"`
	Sections  []ReportSection `json:"sections"`
}
