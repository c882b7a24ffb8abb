// Package trace writes the on-disk trace file produced whenever a
// command handler fails: a header, the failure's base metadata, the
// full Traceable error chain, and a footer.
package trace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/torrust/tracker-deployer/internal/clock"
	"github.com/torrust/tracker-deployer/internal/environment/state"
	"github.com/torrust/tracker-deployer/internal/traceable"
)

const ruleWidth = 63

// CommonWriter provides the shared file I/O every command-specific
// trace writer delegates to: directory creation, filename generation,
// and the write itself.
type CommonWriter struct {
	TracesDir string
	Clock     clock.Clock
}

// Write renders a complete trace file for the given command and
// failure, and returns the path it was written to.
func (w *CommonWriter) Write(command string, base state.BaseFailureContext, err traceable.Traceable) (string, error) {
	if mkErr := os.MkdirAll(w.TracesDir, 0o755); mkErr != nil {
		return "", errors.Wrapf(mkErr, "creating traces directory %s", w.TracesDir)
	}

	filename := fmt.Sprintf("%s-%s.log", w.Clock.Now().Format("20060102-150405"), command)
	path := filepath.Join(w.TracesDir, filename)

	content := render(command, base, err)
	if writeErr := os.WriteFile(path, []byte(content), 0o644); writeErr != nil {
		return "", errors.Wrapf(writeErr, "writing trace file %s", path)
	}

	return path, nil
}

func render(command string, base state.BaseFailureContext, err traceable.Traceable) string {
	var b strings.Builder
	b.WriteString(header(strings.ToUpper(command) + " FAILURE"))
	b.WriteString(formatBaseMetadata(base))
	b.WriteString("\n")
	b.WriteString(errorChainHeader())
	for _, line := range traceable.Chain(err) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(footer())
	return b.String()
}

func header(title string) string {
	rule := strings.Repeat("=", ruleWidth)
	return fmt.Sprintf("%s\n%s\n%s\n\n", rule, center(title, ruleWidth), rule)
}

func footer() string {
	rule := strings.Repeat("=", ruleWidth)
	return fmt.Sprintf("\n%s\n%s\n%s\n", rule, center("END OF TRACE", ruleWidth), rule)
}

func errorChainHeader() string {
	rule := strings.Repeat("-", ruleWidth)
	return fmt.Sprintf("%s\n%s\n%s\n\n", rule, center("ERROR CHAIN", ruleWidth), rule)
}

func formatBaseMetadata(base state.BaseFailureContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trace ID: %s\n", base.TraceID)
	fmt.Fprintf(&b, "Failed At: %s\n", base.FailedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "Execution Started: %s\n", base.ExecutionStartedAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Fprintf(&b, "Execution Duration: %s\n", base.ExecutionDuration)
	fmt.Fprintf(&b, "Error Summary: %s\n", base.ErrorSummary)
	return b.String()
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	total := width - len(text)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", right)
}
