package store

import (
	"context"
	"time"

	"github.com/abhisek/dropwatch/internal/modelcache"
)

// QueryOpts configures event queries with filtering and pagination.
// Results are returned newest first.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	Purpose string // LLM events only
	Source  string // assessments only
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls by purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM calls by model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// AssessmentEventData records one dropout-risk assessment.
type AssessmentEventData struct {
	SessionID          string
	Source             string // "predict" or "cli"
	Age                float64
	AdmissionGrade     float64
	ScholarshipHolder  bool
	FirstSemesterGrade float64
	TuitionUpToDate    bool
	Probability        float64
	Bucket             string
	Programs           []string
	ModelKey           string
}

// AssessmentEvent is a stored assessment.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents lists LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendAssessment records a risk assessment.
	AppendAssessment(ctx context.Context, data AssessmentEventData) error

	// QueryAssessments lists assessments, newest first.
	QueryAssessments(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	// Reset deletes every recorded event.
	Reset(ctx context.Context) error
}

// ArtifactInfo describes a stored model artifact without its payload.
type ArtifactInfo struct {
	Key       string
	Size      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArtifactRepo persists encoded model artifacts. It is the default
// modelcache.Cache backend.
type ArtifactRepo interface {
	modelcache.Cache

	// List returns stored artifacts, most recently updated first.
	List(ctx context.Context) ([]ArtifactInfo, error)
}
