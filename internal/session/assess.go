package session

import (
	"context"
	"fmt"

	"github.com/abhisek/dropwatch/internal/advisor"
	"github.com/abhisek/dropwatch/internal/features"
	"github.com/abhisek/dropwatch/internal/insight"
	"github.com/abhisek/dropwatch/internal/model"
	"github.com/abhisek/dropwatch/internal/recommend"
	"github.com/abhisek/dropwatch/internal/risk"
	"github.com/abhisek/dropwatch/internal/store"
)

// Assessment sources recorded in the event store.
const (
	SourcePredict = "predict"
	SourceCLI     = "cli"
)

// Assessment is a scored applicant with its explanation and programs.
type Assessment struct {
	Input features.Input
	Risk  risk.Assessment
	// Dropout is the classifier's hard decision, which can disagree with
	// a probability near 0.5.
	Dropout         bool
	Report          insight.Report
	Recommendations recommend.Set
	Evaluation      model.Evaluation
	ModelKey        string
}

// AdvisorInput converts the assessment for the counselor-note service.
func (a Assessment) AdvisorInput() advisor.Input {
	return advisor.NewInput(a.Input, a.Report, a.Recommendations)
}

// Assess scores in with the session model. Training failures are returned
// as-is, typically *model.ModelFitError.
func (s *Session) Assess(ctx context.Context, in features.Input) (Assessment, error) {
	res, err := s.Train(ctx)
	if err != nil {
		return Assessment{}, err
	}
	return assess(res, in), nil
}

func assess(res *model.TrainResult, in features.Input) Assessment {
	rec := in.Record()
	ra := res.Model.Assess(rec)
	return Assessment{
		Input:           in,
		Risk:            ra,
		Dropout:         res.Model.PredictDropout(rec),
		Report:          insight.Explain(ra, in),
		Recommendations: recommend.Recommend(ra.Bucket, rec),
		Evaluation:      res.Evaluation,
		ModelKey:        res.Key,
	}
}

// Record stores the assessment in the event store. Without a store it
// does nothing.
func (s *Session) Record(ctx context.Context, a Assessment, source string) error {
	if s.events == nil {
		return nil
	}
	err := s.events.AppendAssessment(ctx, store.AssessmentEventData{
		SessionID:          s.ID,
		Source:             source,
		Age:                a.Input.Age,
		AdmissionGrade:     a.Input.AdmissionGrade,
		ScholarshipHolder:  a.Input.ScholarshipHolder,
		FirstSemesterGrade: a.Input.FirstSemesterGrade,
		TuitionUpToDate:    a.Input.TuitionUpToDate,
		Probability:        a.Risk.Probability,
		Bucket:             a.Risk.Bucket.String(),
		Programs:           a.Recommendations.Programs,
		ModelKey:           a.ModelKey,
	})
	if err != nil {
		return fmt.Errorf("record assessment: %w", err)
	}
	return nil
}

// Note drafts a counselor note for a. When the advisor is disabled or the
// provider fails, the note is built from the insight report and the
// failure is reported as a warning.
func (s *Session) Note(ctx context.Context, a Assessment) advisor.Note {
	in := a.AdvisorInput()
	if !s.advisor.Enabled() {
		return advisor.Fallback(in)
	}
	note, err := s.advisor.Draft(ctx, in)
	if err != nil {
		s.warnf("advisor note unavailable: %v", err)
	}
	return note
}
