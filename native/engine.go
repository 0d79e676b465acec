package native

import "time"

// FunctionalConstraint selects which functional view of a data attribute a
// read or write addresses.
type FunctionalConstraint int

// Functional constraints used by the facade. The engine defines more; only
// the ones reachable through this module's operations are named here.
const (
	FCStatus FunctionalConstraint = iota
	FCMeasurement
	FCSetpoint
	FCConfiguration
	FCControl
	FCReport
)

// ACSIClass selects which class of children a directory browse returns.
type ACSIClass int

// Browseable ACSI classes.
const (
	ClassDataObject ACSIClass = iota
	ClassDataAttribute
	ClassDataSet
	ClassLog
)

// ControlModel is the control behavior configured for a controllable object.
type ControlModel int

// Control models.
const (
	ControlStatusOnly ControlModel = iota
	ControlDirectNormal
	ControlSBONormal
	ControlDirectEnhanced
	ControlSBOEnhanced
)

// RawReport carries one report event as delivered by the engine's worker
// goroutine. Values is a borrowed handle into engine-owned memory: it is
// valid only for the duration of the callback invocation.
type RawReport struct {
	RcbRef       string
	RptID        string
	DataSetName  string
	SeqNum       uint16
	ReasonBitmap uint32
	BufOverflow  bool
	HasTimestamp bool
	Timestamp    time.Time
	Values       Handle
}

// RawGoose carries one GOOSE state change. Values is borrowed.
type RawGoose struct {
	GocbRef           string
	DataSetName       string
	StNum             uint32
	SqNum             uint32
	TimeAllowedToLive uint32
	Values            Handle
}

// RawCommandTermination carries the completion of a control sequence.
type RawCommandTermination struct {
	ObjectRef      string
	Success        bool
	LastApplError  int
	OriginCategory int
}

// ControlActionKind discriminates the three control decision points.
type ControlActionKind int

// Control decision points.
const (
	ControlActionSelect ControlActionKind = iota
	ControlActionWaitForExecution
	ControlActionOperate
	ControlActionCancel
)

// RawControlAction carries a proposed control action awaiting a decision.
// CtlVal is borrowed.
type RawControlAction struct {
	ObjectRef      string
	Action         ControlActionKind
	OriginCategory int
	InterlockCheck bool
	CtlVal         Handle
}

// RawInformationReport carries one MMS information report. Value is borrowed.
type RawInformationReport struct {
	DomainName         string
	VariableListName   string
	IsVariableListName bool
	Value              Handle
}

// Callback signatures for the fixed global registration entry points. Each
// accepts the opaque user parameter supplied at registration time; the
// engine invokes them from its own worker goroutines.
type (
	ReportCallback             func(user any, rpt RawReport)
	GooseCallback              func(user any, ev RawGoose)
	CommandTerminationCallback func(user any, ct RawCommandTermination)
	ControlActionCallback      func(user any, act RawControlAction) bool
	InformationReportCallback  func(user any, ir RawInformationReport)
)

// FileEntry describes one entry of a remote file directory listing.
type FileEntry struct {
	Name     string
	Size     uint32
	Modified time.Time
}

// Engine is the full collaborator surface consumed by the bridge. Every
// method that returns a Handle transfers ownership to the caller unless
// documented as borrowed; the caller must pair it with the matching
// destroy method, which the guard package does on its behalf.
//
// Synchronous methods block the calling goroutine for a native round trip
// bounded by the configured timeouts. Destroy methods must be safe to call
// exactly once per live handle and are never called with the null handle
// by this module.
type Engine interface {
	// Connection lifecycle.
	CreateConnection() Handle
	DestroyConnection(conn Handle)
	SetConnectTimeout(conn Handle, timeout time.Duration)
	SetRequestTimeout(conn Handle, timeout time.Duration)
	Connect(conn Handle, host string, port int) ErrorCode
	Close(conn Handle)

	// Server identity.
	Identify(conn Handle) (Handle, ErrorCode)
	IdentityVendor(id Handle) string
	IdentityModel(id Handle) string
	IdentityRevision(id Handle) string
	DestroyIdentity(id Handle)

	// Model browsing. Results are enumerable list handles.
	LogicalDeviceList(conn Handle) (Handle, ErrorCode)
	LogicalNodeList(conn Handle, device string) (Handle, ErrorCode)
	LogicalNodeDirectory(conn Handle, ref string, class ACSIClass) (Handle, ErrorCode)

	// List primitives. ListNext walks to the next element (null at the
	// end-of-list sentinel); ListString reads the element's payload, with
	// ok=false signalling a null entry. DestroyList must be called exactly
	// once per list, never per element.
	ListNext(element Handle) Handle
	ListString(element Handle) (value string, ok bool)
	DestroyList(list Handle)

	// Data access. ReadObject transfers ownership of the decoded value.
	ReadObject(conn Handle, ref string, fc FunctionalConstraint) (Handle, ErrorCode)
	WriteObject(conn Handle, ref string, fc FunctionalConstraint, value Handle) ErrorCode

	// Dataset access. DataSetValues borrows from the dataset handle.
	ReadDataSetValues(conn Handle, ref string) (Handle, ErrorCode)
	DataSetValues(ds Handle) Handle
	DestroyDataSet(ds Handle)

	// Typed-value constructors and decode functions. Decode calls are pure
	// reads and must only be made on live handles of the matching kind.
	NewBoolValue(v bool) Handle
	NewIntValue(v int64) Handle
	NewFloatValue(v float64) Handle
	NewStringValue(v string) Handle
	DeleteValue(value Handle)
	ValueKind(value Handle) Kind
	ValueBool(value Handle) bool
	ValueInt(value Handle) int64
	ValueUint(value Handle) uint64
	ValueFloat(value Handle) float64
	ValueString(value Handle) string
	ValueBitString(value Handle) uint32
	ValueTimestamp(value Handle) time.Time
	ValueCount(value Handle) int
	ValueElement(value Handle, index int) Handle

	// Report control blocks.
	ReadRCB(conn Handle, rcbRef string) (Handle, ErrorCode)
	SetRCBReportID(rcb Handle, rptID string)
	SetRCBEnabled(rcb Handle, enabled bool)
	WriteRCB(conn Handle, rcb Handle) ErrorCode
	DestroyRCB(rcb Handle)

	// Control objects.
	CreateControlObject(conn Handle, objectRef string) Handle
	DestroyControlObject(ctl Handle)
	ControlModelOf(ctl Handle) ControlModel
	Select(ctl Handle) bool
	SelectWithValue(ctl Handle, value Handle) bool
	Operate(ctl Handle, value Handle, operTime uint64) bool
	Cancel(ctl Handle) bool
	LastApplError(ctl Handle) int

	// File services.
	GetFile(conn Handle, name string) ([]byte, ErrorCode)
	SetFile(conn Handle, source string, destination string) ErrorCode
	DeleteFile(conn Handle, name string) ErrorCode
	FileDirectory(conn Handle, dir string) ([]FileEntry, ErrorCode)

	// Fixed callback registration entry points, one per event category.
	// Each holds a single static callback pointer plus an opaque user
	// parameter; registering replaces the previous registration and
	// registering nil removes it.
	InstallReportCallback(conn Handle, rcbRef string, cb ReportCallback, user any)
	InstallGooseCallback(conn Handle, gocbRef string, cb GooseCallback, user any)
	InstallCommandTerminationCallback(ctl Handle, cb CommandTerminationCallback, user any)
	InstallControlActionCallback(conn Handle, cb ControlActionCallback, user any)
	InstallInformationReportCallback(conn Handle, cb InformationReportCallback, user any)
}
