package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer receives structured events during provisioning.
type Observer interface {
	Logger

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Step      string
	Message   string
	Resource  string
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventStepStarted indicates a provisioning step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a step's action completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a step failed.
	EventStepFailed EventType = "step.failed"
	// EventStepSkipped indicates a step's end-state already held.
	EventStepSkipped EventType = "step.skipped"

	// EventResourceExists indicates a sub-action was skipped because its
	// result already exists.
	EventResourceExists EventType = "resource.exists"
	// EventResourceCreated indicates a sub-action produced its result.
	EventResourceCreated EventType = "resource.created"

	// EventWarning indicates a recoverable problem the run continued past.
	EventWarning EventType = "warning"
)

// ConsoleObserver implements Observer on the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Logger.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	log.Print(formatEvent(event))
}

// formatEvent renders an event for console output.
func formatEvent(event Event) string {
	parts := []string{string(event.Type)}

	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	if event.Resource != "" {
		parts = append(parts, fmt.Sprintf("resource=%s", event.Resource))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		fieldParts := make([]string, 0, len(event.Fields))
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}

// LogStepStart logs a step start event.
func LogStepStart(observer Observer, step string) {
	observer.Event(Event{Type: EventStepStarted, Step: step, Message: "starting"})
}

// LogStepComplete logs a step completion event.
func LogStepComplete(observer Observer, step string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step failure event.
func LogStepFailed(observer Observer, step string, err error) {
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogStepSkipped logs that a step's end-state already held.
func LogStepSkipped(observer Observer, step string) {
	observer.Event(Event{Type: EventStepSkipped, Step: step, Message: "already satisfied"})
}

// LogResourceExists logs that a sub-action found its result in place.
func LogResourceExists(observer Observer, step, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceExists,
		Step:     step,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s already present", resourceType),
	})
}

// LogResourceCreated logs a successful sub-action.
func LogResourceCreated(observer Observer, step, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceCreated,
		Step:     step,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s created", resourceType),
	})
}

// LogWarning logs a recoverable problem.
func LogWarning(observer Observer, step, message string) {
	observer.Event(Event{Type: EventWarning, Step: step, Message: message})
}
