package output

import (
	"time"

	"github.com/manav03panchal/blockstage/internal/block"
	"github.com/manav03panchal/blockstage/internal/model"
	"github.com/manav03panchal/blockstage/internal/store"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// RunOutput represents a run record in JSON output.
type RunOutput struct {
	Key            string  `json:"key,omitempty"`
	RunID          string  `json:"run_id"`
	ActorID        string  `json:"actor_id"`
	ActorName      string  `json:"actor_name"`
	Status         string  `json:"status"`
	Error          string  `json:"error,omitempty"`
	BlockCount     int     `json:"block_count"`
	Steps          int     `json:"steps"`
	Swaps          int     `json:"swaps"`
	Collisions     int     `json:"collisions"`
	StartedAt      string  `json:"started_at"`
	FinishedAt     string  `json:"finished_at"`
	DurationMillis int64   `json:"duration_ms"`
	FinalX         float64 `json:"final_x"`
	FinalY         float64 `json:"final_y"`
	FinalDirection float64 `json:"final_direction"`
}

// NewRunOutput creates a RunOutput from a RunRecord.
func NewRunOutput(r *model.RunRecord) *RunOutput {
	return &RunOutput{
		Key:            r.Key,
		RunID:          r.RunID,
		ActorID:        r.ActorID,
		ActorName:      r.ActorName,
		Status:         string(r.Status),
		Error:          r.Error,
		BlockCount:     r.BlockCount,
		Steps:          r.Steps,
		Swaps:          r.Swaps,
		Collisions:     r.Collisions,
		StartedAt:      r.StartedAt.Format(time.RFC3339Nano),
		FinishedAt:     r.FinishedAt.Format(time.RFC3339Nano),
		DurationMillis: r.Duration().Milliseconds(),
		FinalX:         r.FinalX,
		FinalY:         r.FinalY,
		FinalDirection: r.FinalDirection,
	}
}

// ActorOutput represents an actor in JSON output.
type ActorOutput struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Costume   string         `json:"costume"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Direction float64        `json:"direction"`
	Visible   bool           `json:"visible"`
	Active    bool           `json:"active"`
	Message   *store.Message `json:"message,omitempty"`
	Program   []string       `json:"program"`
}

// NewActorOutputs converts every actor in the snapshot.
func NewActorOutputs(s store.State) []ActorOutput {
	out := make([]ActorOutput, 0, len(s.Actors))
	for _, a := range s.Actors {
		program := BlockLines(a.Blocks)
		if program == nil {
			program = []string{}
		}
		out = append(out, ActorOutput{
			ID:        a.ID,
			Name:      a.Name,
			Costume:   a.Costume,
			X:         a.X,
			Y:         a.Y,
			Direction: a.Direction,
			Visible:   a.Visible,
			Active:    a.ID == s.ActiveActorID,
			Message:   a.Message,
			Program:   program,
		})
	}
	return out
}

// RunResponse represents the run command output in JSON.
type RunResponse struct {
	Status  string        `json:"status"`
	Run     *RunOutput    `json:"run"`
	Sprites []ActorOutput `json:"sprites"`
	Notices []string      `json:"notices"`
}

// HistoryResponse represents the history command output in JSON.
type HistoryResponse struct {
	Runs  []*RunOutput `json:"runs"`
	Total int          `json:"total"`
}

// KindOutput describes one block kind.
type KindOutput struct {
	Kind     string       `json:"kind"`
	Category string       `json:"category"`
	Defaults block.Params `json:"defaults"`
}

// PrintRun prints the result of a run.
func (j *JSONFormatter) PrintRun(r *model.RunRecord, s store.State, notices []string) error {
	if notices == nil {
		notices = []string{}
	}
	return j.JSON(RunResponse{
		Status:  string(r.Status),
		Run:     NewRunOutput(r),
		Sprites: NewActorOutputs(s),
		Notices: notices,
	})
}

// PrintHistory prints recorded runs.
func (j *JSONFormatter) PrintHistory(runs []*model.RunRecord) error {
	out := make([]*RunOutput, 0, len(runs))
	for _, r := range runs {
		out = append(out, NewRunOutput(r))
	}
	return j.JSON(HistoryResponse{Runs: out, Total: len(out)})
}

// PrintKinds prints every block kind with its defaults.
func (j *JSONFormatter) PrintKinds() error {
	out := make([]KindOutput, 0, len(block.Kinds()))
	for _, k := range block.Kinds() {
		out = append(out, KindOutput{
			Kind:     string(k),
			Category: string(k.Category()),
			Defaults: block.Defaults(k),
		})
	}
	return j.JSON(out)
}

// PrintError prints an error response.
func (j *JSONFormatter) PrintError(errMsg, message, suggestion string) error {
	return j.JSON(ErrorResponse{
		Status:     "error",
		Error:      errMsg,
		Message:    message,
		Suggestion: suggestion,
	})
}
