package event

import (
	"time"

	"github.com/c360/iecbridge/native"
)

// Category identifies one asynchronous event category. Subscriber ids are
// free-form strings, but by convention a single-connection application
// uses the category name itself as the id (one slot per category).
type Category string

// Event categories.
const (
	CategoryReport             Category = "report"
	CategoryGoose              Category = "goose"
	CategoryCommandTermination Category = "command-termination"
	CategoryControlAction      Category = "control-action"
	CategoryInformationReport  Category = "information-report"
)

// Valid reports whether the category is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryReport, CategoryGoose, CategoryCommandTermination,
		CategoryControlAction, CategoryInformationReport:
		return true
	default:
		return false
	}
}

// Decision is the outcome of a Decide handler.
type Decision int

// Decide outcomes. Deny is the zero value and the conservative default
// applied when a handler fails or is absent.
const (
	Deny Decision = iota
	Allow
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Report is the owned payload delivered to a ReportHandler. It is valid
// indefinitely: all values were copied out of engine memory before the
// trigger ran.
type Report struct {
	RcbRef       string
	RptID        string
	DataSetName  string
	SeqNum       uint16
	ReasonBitmap uint32
	BufOverflow  bool
	HasTimestamp bool
	Timestamp    time.Time
	Values       []native.Value
}

// Goose is the owned payload delivered to a GooseHandler.
type Goose struct {
	GocbRef           string
	DataSetName       string
	StNum             uint32
	SqNum             uint32
	TimeAllowedToLive uint32
	Values            []native.Value
}

// CommandTermination is the owned payload delivered to a
// CommandTerminationHandler when a control sequence completes.
type CommandTermination struct {
	ObjectRef      string
	Success        bool
	LastApplError  int
	OriginCategory int
}

// ControlAction is the owned payload delivered to a ControlActionHandler
// ahead of a control decision.
type ControlAction struct {
	ObjectRef      string
	Action         native.ControlActionKind
	OriginCategory int
	InterlockCheck bool
	CtlVal         native.Value
}

// InformationReport is the owned payload delivered to an
// InformationReportHandler.
type InformationReport struct {
	DomainName         string
	VariableListName   string
	IsVariableListName bool
	Value              native.Value
}

// ReportHandler receives buffered/unbuffered report events.
type ReportHandler interface {
	Trigger(Report)
}

// GooseHandler receives GOOSE state changes.
type GooseHandler interface {
	Trigger(Goose)
}

// CommandTerminationHandler receives control-sequence completions.
type CommandTerminationHandler interface {
	Trigger(CommandTermination)
}

// ControlActionHandler decides whether a proposed control action is
// accepted. The decision is consumed synchronously by the native call
// site, so Trigger must not block.
type ControlActionHandler interface {
	Trigger(ControlAction) Decision
}

// InformationReportHandler receives MMS information reports.
type InformationReportHandler interface {
	Trigger(InformationReport)
}

// Func adapters so plain functions can act as handlers.

// ReportHandlerFunc adapts a function to ReportHandler.
type ReportHandlerFunc func(Report)

// Trigger implements ReportHandler.
func (f ReportHandlerFunc) Trigger(r Report) { f(r) }

// GooseHandlerFunc adapts a function to GooseHandler.
type GooseHandlerFunc func(Goose)

// Trigger implements GooseHandler.
func (f GooseHandlerFunc) Trigger(g Goose) { f(g) }

// CommandTerminationHandlerFunc adapts a function to CommandTerminationHandler.
type CommandTerminationHandlerFunc func(CommandTermination)

// Trigger implements CommandTerminationHandler.
func (f CommandTerminationHandlerFunc) Trigger(ct CommandTermination) { f(ct) }

// ControlActionHandlerFunc adapts a function to ControlActionHandler.
type ControlActionHandlerFunc func(ControlAction) Decision

// Trigger implements ControlActionHandler.
func (f ControlActionHandlerFunc) Trigger(a ControlAction) Decision { return f(a) }

// InformationReportHandlerFunc adapts a function to InformationReportHandler.
type InformationReportHandlerFunc func(InformationReport)

// Trigger implements InformationReportHandler.
func (f InformationReportHandlerFunc) Trigger(ir InformationReport) { f(ir) }

// handlerMatches reports whether the handler implements the interface the
// category dispatches to.
func handlerMatches(category Category, handler any) bool {
	switch category {
	case CategoryReport:
		_, ok := handler.(ReportHandler)
		return ok
	case CategoryGoose:
		_, ok := handler.(GooseHandler)
		return ok
	case CategoryCommandTermination:
		_, ok := handler.(CommandTerminationHandler)
		return ok
	case CategoryControlAction:
		_, ok := handler.(ControlActionHandler)
		return ok
	case CategoryInformationReport:
		_, ok := handler.(InformationReportHandler)
		return ok
	default:
		return false
	}
}
