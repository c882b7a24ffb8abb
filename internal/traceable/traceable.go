// Package traceable defines the capability every error produced by this
// repository implements: a chain that can be walked without a single
// type assertion, used to render trace files on command failure.
package traceable

import "strconv"

// ErrorKind classifies the origin of a failure for trace rendering and
// for any future metrics/alerting layered on top.
type ErrorKind string

const (
	KindTemplateRendering       ErrorKind = "TemplateRendering"
	KindInfrastructureOperation ErrorKind = "InfrastructureOperation"
	KindNetworkConnectivity     ErrorKind = "NetworkConnectivity"
	KindCommandExecution        ErrorKind = "CommandExecution"
	KindStatePersistence        ErrorKind = "StatePersistence"
	KindLockConflict            ErrorKind = "LockConflict"
	KindValidationFailed        ErrorKind = "ValidationFailed"
)

// Traceable is implemented by every error in the orchestration pipeline.
// TraceSource exposes the next link in the chain, if any; TraceFormat
// renders this single link as a human-readable line.
type Traceable interface {
	error
	TraceFormat() string
	TraceSource() (Traceable, bool)
	ErrorKind() ErrorKind
}

// Chain walks err's TraceSource links, starting with err itself, and
// returns one formatted line per link ("[Level N] ...").
func Chain(err Traceable) []string {
	var lines []string
	level := 0
	current := err
	for {
		lines = append(lines, formatLevel(level, current))
		next, ok := current.TraceSource()
		if !ok {
			break
		}
		current = next
		level++
	}
	return lines
}

func formatLevel(level int, t Traceable) string {
	return "[Level " + strconv.Itoa(level) + "] " + t.TraceFormat()
}
