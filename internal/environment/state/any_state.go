package state

import (
	"encoding/json"
	"fmt"

	"github.com/torrust/tracker-deployer/internal/traceable"
)

// AnyEnvironmentState is the type-erased union of all thirteen
// lifecycle variants, used for persistence, repository storage, and
// collections. It converts to and from each typed state in
// internal/environment via total fallible conversions.
type AnyEnvironmentState struct {
	State   Name
	Fields  EnvironmentFields
	Failure *FailureContext
}

// envelope is the JSON shape nested under the single discriminator key:
// the environment fields plus, for failed variants, the failure
// context fields.
type envelope struct {
	EnvironmentFields
	FailedStep     *string             `json:"failed_step,omitempty"`
	FailureContext *BaseFailureContext `json:"failure_context,omitempty"`
}

// MarshalJSON renders { "<StateVariantName>": <fields...> },
// single-table-inheritance style.
func (a AnyEnvironmentState) MarshalJSON() ([]byte, error) {
	env := envelope{EnvironmentFields: a.Fields}
	if a.Failure != nil {
		step := a.Failure.FailedStep
		env.FailedStep = &step
		base := a.Failure.BaseFailureContext
		env.FailureContext = &base
	}
	return json.Marshal(map[string]envelope{string(a.State): env})
}

// UnmarshalJSON parses the single-table-inheritance shape back into an
// AnyEnvironmentState.
func (a *AnyEnvironmentState) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("expected exactly one state variant key, got %d", len(raw))
	}

	var name Name
	var body json.RawMessage
	for k, v := range raw {
		name = Name(k)
		body = v
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return err
	}

	a.State = name
	a.Fields = env.EnvironmentFields

	if name.IsFailed() {
		if env.FailedStep == nil || env.FailureContext == nil {
			return fmt.Errorf("state %s is a failed variant but is missing failed_step/failure_context", name)
		}
		a.Failure = &FailureContext{
			BaseFailureContext: *env.FailureContext,
			FailedStep:         *env.FailedStep,
		}
	} else {
		a.Failure = nil
	}

	return nil
}

// UnexpectedStateError is returned by a TryIntoX conversion when the
// union does not currently hold the expected variant.
type UnexpectedStateError struct {
	Expected Name
	Actual   Name
}

func (e *UnexpectedStateError) Error() string {
	return fmt.Sprintf("unexpected environment state: expected %s, got %s", e.Expected, e.Actual)
}

func (e *UnexpectedStateError) TraceFormat() string { return e.Error() }
func (e *UnexpectedStateError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *UnexpectedStateError) ErrorKind() traceable.ErrorKind {
	return traceable.KindStatePersistence
}
