package store

import (
	"context"
	"fmt"

	"github.com/avetrov/readmentor/internal/llm"
)

// AppendLLMRequest records one LLM API call. Store implements
// llm.EventSink so the provider stack logs straight into SQLite.
func (s *Store) AppendLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_request_events
			(provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMs,
		boolToInt(ev.Success), ev.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// LLMStats summarizes the request event log.
type LLMStats struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// LLMStatsByPurpose aggregates the event log per purpose label.
func (s *Store) LLMStatsByPurpose(ctx context.Context) (map[string]LLMStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT purpose,
		       COUNT(*),
		       SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END),
		       COALESCE(SUM(input_tokens), 0),
		       COALESCE(SUM(output_tokens), 0)
		FROM llm_request_events
		GROUP BY purpose`)
	if err != nil {
		return nil, fmt.Errorf("query LLM stats: %w", err)
	}
	defer rows.Close()

	out := make(map[string]LLMStats)
	for rows.Next() {
		var purpose string
		var st LLMStats
		if err := rows.Scan(&purpose, &st.Requests, &st.Failures, &st.InputTokens, &st.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan LLM stats: %w", err)
		}
		out[purpose] = st
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
