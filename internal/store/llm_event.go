package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
	"output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	insert := builder.Insert(llmEventsTable).
		Columns(llmEventColumns[1:]...).
		Values(seq, now(), data.Provider, data.Model, data.Purpose, data.InputTokens,
			data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
			data.RequestBody, data.ResponseBody)
	if err := execute(ctx, r.drv, insert); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func scanLLMEvent(rows *entsql.Rows) (LLMEvent, error) {
	var e LLMEvent
	err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody)
	return e, err
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	sel := selectEvents(llmEventsTable, llmEventColumns, opts, map[string]string{"purpose": opts.Purpose})
	var out []LLMEvent
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		out = append(out, e)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error) {
	sel := builder.Select(llmEventColumns...).From(builder.Table(llmEventsTable)).
		Where(entsql.EQ("id", id)).Limit(1)
	var found *LLMEvent
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		found = &e
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return found, nil
}

// usageColumns are the aggregates shared by the usage reports.
var usageColumns = []string{
	entsql.Count("*"),
	"COALESCE(SUM(input_tokens), 0)",
	"COALESCE(SUM(output_tokens), 0)",
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	columns := append([]string{"purpose"}, usageColumns...)
	columns = append(columns, "CAST(COALESCE(AVG(latency_ms), 0) AS INTEGER)")
	sel := builder.Select(columns...).From(builder.Table(llmEventsTable)).
		GroupBy("purpose").OrderBy("purpose")

	var out []LLMUsage
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var u LLMUsage
		err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs)
		out = append(out, u)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	sel := builder.Select(append([]string{"model"}, usageColumns...)...).From(builder.Table(llmEventsTable)).
		GroupBy("model").OrderBy("model")

	var out []ModelUsage
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var u ModelUsage
		err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens)
		out = append(out, u)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	return out, nil
}
