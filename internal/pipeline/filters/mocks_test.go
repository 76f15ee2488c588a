package filters

import (
	"time"
)

type mockCounterRepository struct {
	recordMessageFunc  func(groupID, userID int64, text string, now time.Time, window time.Duration, limit int) (int, bool, error)
	addFalseReportFunc func(groupID, userID int64, threshold int) (int, bool, error)
	falseReportCountFn func(groupID, userID int64) (int, error)
}

func (m *mockCounterRepository) RecordMessage(groupID, userID int64, text string, now time.Time, window time.Duration, limit int) (int, bool, error) {
	return m.recordMessageFunc(groupID, userID, text, now, window, limit)
}

func (m *mockCounterRepository) AddFalseReport(groupID, userID int64, threshold int) (int, bool, error) {
	return m.addFalseReportFunc(groupID, userID, threshold)
}

func (m *mockCounterRepository) FalseReportCount(groupID, userID int64) (int, error) {
	return m.falseReportCountFn(groupID, userID)
}
