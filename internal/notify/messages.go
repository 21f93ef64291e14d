package notify

import (
	"encoding/json"
	"time"
)

// RunCompletedEvent announces a finished analysis run and where its
// artifacts landed. Consumers fetch the report themselves.
type RunCompletedEvent struct {
	RunID             string    `json:"run_id"`
	CompletedAt       time.Time `json:"completed_at"`
	TotalSpent        float64   `json:"total_spent"`
	TotalTransactions int       `json:"total_transactions"`
	ReportPath        string    `json:"report_path"`
	ChartsDir         string    `json:"charts_dir"`
}

func NewRunCompletedEvent(runID string, totalSpent float64, totalTransactions int, reportPath, chartsDir string) *RunCompletedEvent {
	return &RunCompletedEvent{
		RunID:             runID,
		CompletedAt:       time.Now(),
		TotalSpent:        totalSpent,
		TotalTransactions: totalTransactions,
		ReportPath:        reportPath,
		ChartsDir:         chartsDir,
	}
}

// ToJSON converts the event to JSON bytes
func (e *RunCompletedEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RunCompletedEventFromJSON creates an event from JSON bytes
func RunCompletedEventFromJSON(data []byte) (*RunCompletedEvent, error) {
	var ev RunCompletedEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
