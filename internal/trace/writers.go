package trace

import (
	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/traceable"
)

// ProvisionTraceWriter writes trace files for the provision command.
type ProvisionTraceWriter struct{ Common *CommonWriter }

func (w *ProvisionTraceWriter) Write(base state.BaseFailureContext, err traceable.Traceable) (string, error) {
	return w.Common.Write("provision", base, err)
}

// ConfigureTraceWriter writes trace files for the configure command.
type ConfigureTraceWriter struct{ Common *CommonWriter }

func (w *ConfigureTraceWriter) Write(base state.BaseFailureContext, err traceable.Traceable) (string, error) {
	return w.Common.Write("configure", base, err)
}

// ReleaseTraceWriter writes trace files for the release command.
type ReleaseTraceWriter struct{ Common *CommonWriter }

func (w *ReleaseTraceWriter) Write(base state.BaseFailureContext, err traceable.Traceable) (string, error) {
	return w.Common.Write("release", base, err)
}

// RunTraceWriter writes trace files for the run command.
type RunTraceWriter struct{ Common *CommonWriter }

func (w *RunTraceWriter) Write(base state.BaseFailureContext, err traceable.Traceable) (string, error) {
	return w.Common.Write("run", base, err)
}
