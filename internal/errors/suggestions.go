package errors

import "errors"

// Suggestions maps common errors to helpful suggestions.
var Suggestions = map[error]string{
	ErrAlreadyRunning: "Wait for the current run to finish.",
	ErrEmptyProgram:   "Add blocks first, e.g. blockstage run 'move 10; turn 90'.",
	ErrLastActor:      "Add another sprite before removing this one.",
	ErrActorNotFound:  "Sprite ids look like sprite1, sprite2; check the sprite list.",
	ErrBlockNotFound:  "Check the block id in the block list.",
	ErrNotRepeat:      "Only repeat blocks can hold child blocks.",
	ErrInvalidProgram: "Statements: move N, turn N, goto X Y, say \"text\" S, think \"text\" S, repeat N [ ... ].",
	ErrInvalidSprite:  "Use NAME[@X,Y]=PROGRAM, e.g. --sprite 'Dog@40,0=move 10'.",
	ErrRunNotFound:    "Use 'blockstage history' to see recorded runs.",
	ErrInvalidConfig:  "Check the config file; durations look like 100ms or 2s.",
}

// GetSuggestion returns a suggestion for an error, if available.
// It walks the error chain to find matching suggestions.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// A UserError's own suggestion is the most specific.
	if ue, ok := AsUserError(err); ok && ue.Suggestion != "" {
		return ue.Suggestion
	}

	for knownErr, suggestion := range Suggestions {
		if errors.Is(err, knownErr) {
			return suggestion
		}
	}
	return ""
}
