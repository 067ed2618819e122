package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// SessionRow is one flattened session in an export. No aggregation; one row
// per session in the period, whatever its status.
type SessionRow struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Duration    int       `json:"duration"`
	Subject     string    `json:"subject"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	Currency    string    `json:"currency"`
}

// Export flattens the mentor's sessions for the period into a downloadable
// document. Returns the encoded bytes and a content type.
func (s *DefaultAnalyticsService) Export(ctx context.Context, mentorID, period, format string) ([]byte, string, error) {
	start, end, err := periodWindow(period, s.now())
	if err != nil {
		return nil, "", err
	}

	sessions, err := s.Sessions.FindByMentorBetween(ctx, mentorID, start, end)
	if err != nil {
		return nil, "", fmt.Errorf("export query failed: %w", err)
	}

	rows := make([]SessionRow, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, SessionRow{
			ID:          sess.ID,
			StudentID:   sess.StudentID,
			ScheduledAt: sess.ScheduledAt,
			Duration:    sess.Duration,
			Subject:     sess.Subject,
			Type:        sess.Type,
			Status:      sess.Status,
			Amount:      sess.Payment.Amount,
			Currency:    sess.Payment.Currency,
		})
	}

	switch format {
	case FormatJSON:
		data, err := json.Marshal(rows)
		if err != nil {
			return nil, "", err
		}
		return data, "application/json", nil
	case FormatCSV:
		data, err := encodeCSV(rows)
		if err != nil {
			return nil, "", err
		}
		return data, "text/csv", nil
	default:
		return nil, "", fmt.Errorf("unknown export format %q", format)
	}
}

func encodeCSV(rows []SessionRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "studentId", "scheduledAt", "duration", "subject", "type", "status", "amount", "currency"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.ID,
			r.StudentID,
			r.ScheduledAt.Format(time.RFC3339),
			strconv.Itoa(r.Duration),
			r.Subject,
			r.Type,
			r.Status,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Currency,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
