package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var assessmentColumns = []string{
	"id", "sequence", "timestamp", "session_id", "source", "age", "admission_grade",
	"scholarship_holder", "first_semester_grade", "tuition_up_to_date", "probability",
	"bucket", "programs", "model_key",
}

func (r *eventRepo) AppendAssessment(ctx context.Context, data AssessmentEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	programs := data.Programs
	if programs == nil {
		programs = []string{}
	}
	encoded, err := json.Marshal(programs)
	if err != nil {
		return fmt.Errorf("marshal programs: %w", err)
	}

	insert := builder.Insert(assessmentsTable).
		Columns(assessmentColumns[1:]...).
		Values(seq, now(), data.SessionID, data.Source, data.Age, data.AdmissionGrade,
			data.ScholarshipHolder, data.FirstSemesterGrade, data.TuitionUpToDate,
			data.Probability, data.Bucket, string(encoded), data.ModelKey)
	if err := execute(ctx, r.drv, insert); err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	sel := selectEvents(assessmentsTable, assessmentColumns, opts, map[string]string{"source": opts.Source})

	var out []AssessmentEvent
	err := scanAll(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		var (
			e        AssessmentEvent
			programs []byte
		)
		err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.Source, &e.Age,
			&e.AdmissionGrade, &e.ScholarshipHolder, &e.FirstSemesterGrade, &e.TuitionUpToDate,
			&e.Probability, &e.Bucket, &programs, &e.ModelKey)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(programs, &e.Programs); err != nil {
			return fmt.Errorf("decode programs of assessment %d: %w", e.ID, err)
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	return out, nil
}
