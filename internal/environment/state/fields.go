package state

import "time"

// SSHCredentials is immutable once an environment is created: it is
// never mutated post-creation by any transition.
type SSHCredentials struct {
	Username       string `json:"username"`
	PrivateKeyPath string `json:"private_key_path"`
	PublicKeyPath  string `json:"public_key_path"`
}

// EnvironmentFields holds every field common to all thirteen lifecycle
// variants. Derived paths (DataDir, BuildDir, InstanceName, ProfileName)
// are a pure function of Name and are never mutated independently of
// it. InstanceIP is monotone: nil until provisioning populates it, then
// preserved through every later transition.
type EnvironmentFields struct {
	Name           string         `json:"name"`
	InstanceName   string         `json:"instance_name"`
	ProfileName    string         `json:"profile_name"`
	SSHCredentials SSHCredentials `json:"ssh_credentials"`
	SSHPort        int            `json:"ssh_port"`
	DataDir        string         `json:"data_dir"`
	BuildDir       string         `json:"build_dir"`
	InstanceIP     *string        `json:"instance_ip,omitempty"`
}

// BaseFailureContext is attached to a failed state: error summary,
// timestamps, execution duration, and a trace id unique per failure.
type BaseFailureContext struct {
	ErrorSummary       string        `json:"error_summary"`
	FailedAt           time.Time     `json:"failed_at"`
	ExecutionStartedAt time.Time     `json:"execution_started_at"`
	ExecutionDuration  time.Duration `json:"execution_duration"`
	TraceID            string        `json:"trace_id"`
	TraceFilePath      *string       `json:"trace_file_path,omitempty"`
}

// FailureContext extends BaseFailureContext with the name of the step
// that failed, carried by each of the four command-specific failed
// states.
type FailureContext struct {
	BaseFailureContext
	FailedStep string `json:"failed_step"`
}
