// Package testutil provides a scriptable in-memory engine implementation
// for tests. The fake tracks every handle it issues and every destroy call
// it receives, so tests can assert that ownership contracts hold: each
// handle destroyed exactly once, no destroy on a handle that was never
// issued, nothing live at the end.
package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/c360/iecbridge/native"
)

// ListEntry is one element of a scripted list. Null entries decode as
// not-ok, the way the engine reports a null element payload.
type ListEntry struct {
	Value string
	Null  bool
}

// StringList builds non-null list entries from plain strings.
func StringList(values ...string) []ListEntry {
	entries := make([]ListEntry, len(values))
	for i, v := range values {
		entries[i] = ListEntry{Value: v}
	}
	return entries
}

type listElem struct {
	value string
	ok    bool
	next  native.Handle
}

type rcbState struct {
	ref     string
	rptID   string
	enabled bool
}

// WriteRecord captures one WriteObject invocation.
type WriteRecord struct {
	Ref   string
	FC    native.FunctionalConstraint
	Value native.Value
}

// ControlRecord captures one control operation on a control object.
type ControlRecord struct {
	Op        string
	ObjectRef string
	Value     native.Value
	OperTime  uint64
}

// FakeEngine is a scriptable native.Engine. The zero value is not usable;
// call NewFakeEngine. All methods are safe for concurrent use.
//
// Scripting fields are plain exported fields set before the exercise runs.
// Engine-issued handles are tracked so tests can call Violations and
// LiveHandles afterwards.
type FakeEngine struct {
	mu sync.Mutex

	nextHandle uintptr
	live       map[native.Handle]string // handle -> kind tag
	destroyed  map[native.Handle]int
	violations []string

	values    map[native.Handle]native.Value
	borrowed  map[native.Handle]bool
	elements  map[native.Handle]listElem
	listFirst map[native.Handle]native.Handle

	rcbs     map[native.Handle]*rcbState
	controls map[native.Handle]string // control handle -> object ref

	// Connection scripting.
	ConnectFunc    func(host string, port int) native.ErrorCode
	ConnectCode    native.ErrorCode
	ConnectedHost  string
	ConnectedPort  int
	ConnectTimeout time.Duration
	RequestTimeout time.Duration
	CloseCalls     int

	// Identity scripting.
	Vendor, Model, Revision string
	IdentifyCode            native.ErrorCode

	// Browse scripting.
	Devices    []ListEntry
	Nodes      map[string][]ListEntry
	Directory  map[string][]ListEntry
	BrowseCode native.ErrorCode

	// Data access scripting.
	ReadValues map[string]native.Value
	ReadCode   native.ErrorCode
	WriteCode  native.ErrorCode
	Writes     []WriteRecord

	// Dataset scripting.
	DataSets    map[string][]native.Value
	DataSetCode native.ErrorCode

	// RCB scripting.
	ReadRCBCode  native.ErrorCode
	WriteRCBCode native.ErrorCode
	RCBWrites    []rcbState

	// Control scripting.
	ControlModel      native.ControlModel
	SelectResult      bool
	OperateResult     bool
	CancelResult      bool
	LastApplErrorCode int
	ControlOps        []ControlRecord

	// File scripting.
	Files       map[string][]byte
	FileEntries map[string][]native.FileEntry
	GetFileCode native.ErrorCode
	SetFileCode native.ErrorCode
	DelFileCode native.ErrorCode
	FileDirCode native.ErrorCode
	FileSets    [][2]string
	FileDeletes []string

	// Captured callback registrations, keyed the way the engine keys its
	// static slots.
	reportCB   native.ReportCallback
	reportUser any
	reportRef  string
	gooseCB    native.GooseCallback
	gooseUser  any
	gooseRef   string
	ctCB       native.CommandTerminationCallback
	ctUser     any
	caCB       native.ControlActionCallback
	caUser     any
	irCB       native.InformationReportCallback
	irUser     any
}

// NewFakeEngine creates an empty fake. Every lookup miss returns the
// object-not-found code unless a scripting field overrides it.
func NewFakeEngine() *FakeEngine {
	return &FakeEngine{
		live:        make(map[native.Handle]string),
		destroyed:   make(map[native.Handle]int),
		values:      make(map[native.Handle]native.Value),
		borrowed:    make(map[native.Handle]bool),
		elements:    make(map[native.Handle]listElem),
		listFirst:   make(map[native.Handle]native.Handle),
		rcbs:        make(map[native.Handle]*rcbState),
		controls:    make(map[native.Handle]string),
		Nodes:       make(map[string][]ListEntry),
		Directory:   make(map[string][]ListEntry),
		ReadValues:  make(map[string]native.Value),
		DataSets:    make(map[string][]native.Value),
		Files:       make(map[string][]byte),
		FileEntries: make(map[string][]native.FileEntry),
	}
}

func (e *FakeEngine) alloc(tag string) native.Handle {
	e.nextHandle++
	h := native.Handle(e.nextHandle)
	e.live[h] = tag
	return h
}

func (e *FakeEngine) destroy(h native.Handle, tag string) {
	if h.IsNull() {
		e.violations = append(e.violations, fmt.Sprintf("destroy %s called with null handle", tag))
		return
	}
	got, ok := e.live[h]
	if !ok {
		if e.destroyed[h] > 0 {
			e.violations = append(e.violations, fmt.Sprintf("double destroy of %s handle %d", tag, h))
		} else {
			e.violations = append(e.violations, fmt.Sprintf("destroy %s called with unknown handle %d", tag, h))
		}
		e.destroyed[h]++
		return
	}
	if got != tag {
		e.violations = append(e.violations, fmt.Sprintf("handle %d issued as %s but destroyed as %s", h, got, tag))
	}
	delete(e.live, h)
	e.destroyed[h]++
}

// Violations returns ownership contract breaches observed so far: double
// destroys, destroys of unknown or null handles, kind mismatches.
func (e *FakeEngine) Violations() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string{}, e.violations...)
}

// DestroyCount returns how often h was destroyed.
func (e *FakeEngine) DestroyCount(h native.Handle) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.destroyed[h]
}

// LiveHandles returns the count of issued, not-yet-destroyed handles.
// Borrowed value handles issued by ValueElement and list elements are
// excluded: the caller never owns those.
func (e *FakeEngine) LiveHandles() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for h, tag := range e.live {
		if tag == "element" || e.borrowed[h] {
			continue
		}
		n++
	}
	return n
}

// MakeList scripts a list handle from entries. The returned handle is
// owned by the caller (pair with DestroyList or a ListGuard).
func (e *FakeEngine) MakeList(entries []ListEntry) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.makeListLocked(entries)
}

func (e *FakeEngine) makeListLocked(entries []ListEntry) native.Handle {
	head := e.alloc("list")
	prev := native.NullHandle
	for i := len(entries) - 1; i >= 0; i-- {
		el := e.alloc("element")
		e.elements[el] = listElem{value: entries[i].Value, ok: !entries[i].Null, next: prev}
		prev = el
	}
	e.listFirst[head] = prev
	return head
}

// MakeValue scripts a caller-owned value handle holding v.
func (e *FakeEngine) MakeValue(v native.Value) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.alloc("value")
	e.values[h] = v
	return h
}

// MakeBorrowedValues scripts an engine-owned value-array handle, the shape
// callback payloads arrive in. The caller must not destroy it.
func (e *FakeEngine) MakeBorrowedValues(values ...native.Value) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.alloc("value")
	e.borrowed[h] = true
	e.values[h] = native.NewArray(values...)
	return h
}

// --- Connection lifecycle ---

func (e *FakeEngine) CreateConnection() native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.alloc("connection")
}

func (e *FakeEngine) DestroyConnection(conn native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroy(conn, "connection")
}

func (e *FakeEngine) SetConnectTimeout(conn native.Handle, timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ConnectTimeout = timeout
}

func (e *FakeEngine) SetRequestTimeout(conn native.Handle, timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.RequestTimeout = timeout
}

func (e *FakeEngine) Connect(conn native.Handle, host string, port int) native.ErrorCode {
	e.mu.Lock()
	fn := e.ConnectFunc
	code := e.ConnectCode
	e.ConnectedHost = host
	e.ConnectedPort = port
	e.mu.Unlock()
	if fn != nil {
		return fn(host, port)
	}
	return code
}

func (e *FakeEngine) Close(conn native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.CloseCalls++
}

// --- Server identity ---

func (e *FakeEngine) Identify(conn native.Handle) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.IdentifyCode.OK() {
		return native.NullHandle, e.IdentifyCode
	}
	return e.alloc("identity"), native.CodeOK
}

func (e *FakeEngine) IdentityVendor(id native.Handle) string   { return e.Vendor }
func (e *FakeEngine) IdentityModel(id native.Handle) string    { return e.Model }
func (e *FakeEngine) IdentityRevision(id native.Handle) string { return e.Revision }

func (e *FakeEngine) DestroyIdentity(id native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroy(id, "identity")
}

// --- Model browsing ---

func (e *FakeEngine) LogicalDeviceList(conn native.Handle) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.BrowseCode.OK() {
		return native.NullHandle, e.BrowseCode
	}
	return e.makeListLocked(e.Devices), native.CodeOK
}

func (e *FakeEngine) LogicalNodeList(conn native.Handle, device string) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.BrowseCode.OK() {
		return native.NullHandle, e.BrowseCode
	}
	entries, ok := e.Nodes[device]
	if !ok {
		return native.NullHandle, native.CodeObjectNotFound
	}
	return e.makeListLocked(entries), native.CodeOK
}

func (e *FakeEngine) LogicalNodeDirectory(conn native.Handle, ref string, class native.ACSIClass) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.BrowseCode.OK() {
		return native.NullHandle, e.BrowseCode
	}
	entries, ok := e.Directory[ref]
	if !ok {
		return native.NullHandle, native.CodeObjectNotFound
	}
	return e.makeListLocked(entries), native.CodeOK
}

// --- List primitives ---

func (e *FakeEngine) ListNext(element native.Handle) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	if first, ok := e.listFirst[element]; ok {
		return first
	}
	if el, ok := e.elements[element]; ok {
		return el.next
	}
	return native.NullHandle
}

func (e *FakeEngine) ListString(element native.Handle) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	el, ok := e.elements[element]
	if !ok || !el.ok {
		return "", false
	}
	return el.value, true
}

func (e *FakeEngine) DestroyList(list native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	first, ok := e.listFirst[list]
	e.destroy(list, "list")
	if !ok {
		return
	}
	for el := first; !el.IsNull(); {
		next := e.elements[el].next
		delete(e.elements, el)
		delete(e.live, el)
		el = next
	}
	delete(e.listFirst, list)
}

// --- Data access ---

func (e *FakeEngine) ReadObject(conn native.Handle, ref string, fc native.FunctionalConstraint) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ReadCode.OK() {
		return native.NullHandle, e.ReadCode
	}
	v, ok := e.ReadValues[ref]
	if !ok {
		return native.NullHandle, native.CodeObjectNotFound
	}
	h := e.alloc("value")
	e.values[h] = v
	return h, native.CodeOK
}

func (e *FakeEngine) WriteObject(conn native.Handle, ref string, fc native.FunctionalConstraint, value native.Handle) native.ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Writes = append(e.Writes, WriteRecord{Ref: ref, FC: fc, Value: e.values[value]})
	return e.WriteCode
}

// --- Dataset access ---

func (e *FakeEngine) ReadDataSetValues(conn native.Handle, ref string) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.DataSetCode.OK() {
		return native.NullHandle, e.DataSetCode
	}
	values, ok := e.DataSets[ref]
	if !ok {
		return native.NullHandle, native.CodeObjectNotFound
	}
	ds := e.alloc("dataset")
	vals := e.alloc("value")
	e.borrowed[vals] = true
	e.values[vals] = native.NewArray(values...)
	e.listFirst[ds] = vals // reuse the slot to remember the borrowed payload
	return ds, native.CodeOK
}

func (e *FakeEngine) DataSetValues(ds native.Handle) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.listFirst[ds]
}

func (e *FakeEngine) DestroyDataSet(ds native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroy(ds, "dataset")
	delete(e.listFirst, ds)
}

// --- Typed values ---

func (e *FakeEngine) newValue(v native.Value) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.alloc("value")
	e.values[h] = v
	return h
}

func (e *FakeEngine) NewBoolValue(v bool) native.Handle { return e.newValue(native.NewBool(v)) }
func (e *FakeEngine) NewIntValue(v int64) native.Handle { return e.newValue(native.NewInt(v)) }
func (e *FakeEngine) NewFloatValue(v float64) native.Handle {
	return e.newValue(native.NewFloat(v))
}
func (e *FakeEngine) NewStringValue(v string) native.Handle {
	return e.newValue(native.NewString(v))
}

func (e *FakeEngine) DeleteValue(value native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.borrowed[value] {
		e.violations = append(e.violations, fmt.Sprintf("DeleteValue called on borrowed handle %d", value))
	}
	e.destroy(value, "value")
	delete(e.values, value)
}

func (e *FakeEngine) valueAt(h native.Handle) native.Value {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.values[h]
}

func (e *FakeEngine) ValueKind(h native.Handle) native.Kind    { return e.valueAt(h).Kind }
func (e *FakeEngine) ValueBool(h native.Handle) bool           { return e.valueAt(h).Bool }
func (e *FakeEngine) ValueInt(h native.Handle) int64           { return e.valueAt(h).Int }
func (e *FakeEngine) ValueUint(h native.Handle) uint64         { return e.valueAt(h).Uint }
func (e *FakeEngine) ValueFloat(h native.Handle) float64       { return e.valueAt(h).Float }
func (e *FakeEngine) ValueString(h native.Handle) string       { return e.valueAt(h).Str }
func (e *FakeEngine) ValueBitString(h native.Handle) uint32    { return e.valueAt(h).Bits }
func (e *FakeEngine) ValueTimestamp(h native.Handle) time.Time { return e.valueAt(h).Time }
func (e *FakeEngine) ValueCount(h native.Handle) int           { return len(e.valueAt(h).Elements) }

func (e *FakeEngine) ValueElement(h native.Handle, index int) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.values[h]
	if index < 0 || index >= len(v.Elements) {
		return native.NullHandle
	}
	el := e.alloc("element")
	e.values[el] = v.Elements[index]
	e.borrowed[el] = true
	return el
}

// --- Report control blocks ---

func (e *FakeEngine) ReadRCB(conn native.Handle, rcbRef string) (native.Handle, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ReadRCBCode.OK() {
		return native.NullHandle, e.ReadRCBCode
	}
	h := e.alloc("rcb")
	e.rcbs[h] = &rcbState{ref: rcbRef}
	return h, native.CodeOK
}

func (e *FakeEngine) SetRCBReportID(rcb native.Handle, rptID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.rcbs[rcb]; ok {
		st.rptID = rptID
	}
}

func (e *FakeEngine) SetRCBEnabled(rcb native.Handle, enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.rcbs[rcb]; ok {
		st.enabled = enabled
	}
}

func (e *FakeEngine) WriteRCB(conn native.Handle, rcb native.Handle) native.ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if st, ok := e.rcbs[rcb]; ok {
		e.RCBWrites = append(e.RCBWrites, *st)
	}
	return e.WriteRCBCode
}

func (e *FakeEngine) DestroyRCB(rcb native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroy(rcb, "rcb")
	delete(e.rcbs, rcb)
}

// RCBEnabled reports the enable flag last written for rcbRef.
func (e *FakeEngine) RCBEnabled(rcbRef string) (bool, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.RCBWrites) - 1; i >= 0; i-- {
		if e.RCBWrites[i].ref == rcbRef {
			return e.RCBWrites[i].enabled, true
		}
	}
	return false, false
}

// RCBReportID reports the report id last written for rcbRef.
func (e *FakeEngine) RCBReportID(rcbRef string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := len(e.RCBWrites) - 1; i >= 0; i-- {
		if e.RCBWrites[i].ref == rcbRef {
			return e.RCBWrites[i].rptID, true
		}
	}
	return "", false
}

// --- Control objects ---

func (e *FakeEngine) CreateControlObject(conn native.Handle, objectRef string) native.Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	h := e.alloc("control")
	e.controls[h] = objectRef
	return h
}

func (e *FakeEngine) DestroyControlObject(ctl native.Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.destroy(ctl, "control")
	delete(e.controls, ctl)
}

func (e *FakeEngine) ControlModelOf(ctl native.Handle) native.ControlModel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ControlModel
}

func (e *FakeEngine) recordControl(ctl native.Handle, op string, value native.Handle, operTime uint64) {
	e.ControlOps = append(e.ControlOps, ControlRecord{
		Op:        op,
		ObjectRef: e.controls[ctl],
		Value:     e.values[value],
		OperTime:  operTime,
	})
}

func (e *FakeEngine) Select(ctl native.Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recordControl(ctl, "select", native.NullHandle, 0)
	return e.SelectResult
}

func (e *FakeEngine) SelectWithValue(ctl native.Handle, value native.Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recordControl(ctl, "select-with-value", value, 0)
	return e.SelectResult
}

func (e *FakeEngine) Operate(ctl native.Handle, value native.Handle, operTime uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recordControl(ctl, "operate", value, operTime)
	return e.OperateResult
}

func (e *FakeEngine) Cancel(ctl native.Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recordControl(ctl, "cancel", native.NullHandle, 0)
	return e.CancelResult
}

func (e *FakeEngine) LastApplError(ctl native.Handle) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.LastApplErrorCode
}

// --- File services ---

func (e *FakeEngine) GetFile(conn native.Handle, name string) ([]byte, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.GetFileCode.OK() {
		return nil, e.GetFileCode
	}
	data, ok := e.Files[name]
	if !ok {
		return nil, native.CodeObjectNotFound
	}
	return append([]byte{}, data...), native.CodeOK
}

func (e *FakeEngine) SetFile(conn native.Handle, source, destination string) native.ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.FileSets = append(e.FileSets, [2]string{source, destination})
	return e.SetFileCode
}

func (e *FakeEngine) DeleteFile(conn native.Handle, name string) native.ErrorCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.FileDeletes = append(e.FileDeletes, name)
	return e.DelFileCode
}

func (e *FakeEngine) FileDirectory(conn native.Handle, dir string) ([]native.FileEntry, native.ErrorCode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.FileDirCode.OK() {
		return nil, e.FileDirCode
	}
	entries, ok := e.FileEntries[dir]
	if !ok {
		return nil, native.CodeObjectNotFound
	}
	return append([]native.FileEntry{}, entries...), native.CodeOK
}

// --- Callback registration ---

func (e *FakeEngine) InstallReportCallback(conn native.Handle, rcbRef string, cb native.ReportCallback, user any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reportCB, e.reportUser, e.reportRef = cb, user, rcbRef
}

func (e *FakeEngine) InstallGooseCallback(conn native.Handle, gocbRef string, cb native.GooseCallback, user any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gooseCB, e.gooseUser, e.gooseRef = cb, user, gocbRef
}

func (e *FakeEngine) InstallCommandTerminationCallback(ctl native.Handle, cb native.CommandTerminationCallback, user any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ctCB, e.ctUser = cb, user
}

func (e *FakeEngine) InstallControlActionCallback(conn native.Handle, cb native.ControlActionCallback, user any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.caCB, e.caUser = cb, user
}

func (e *FakeEngine) InstallInformationReportCallback(conn native.Handle, cb native.InformationReportCallback, user any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.irCB, e.irUser = cb, user
}

// --- Callback firing, used by tests to simulate the engine's worker
// goroutines. Each fires the currently installed callback synchronously on
// the calling goroutine; tests spawn their own goroutines when they need
// concurrency. Firing with no callback installed is a no-op returning the
// zero decision. ---

// FireReport invokes the installed report callback.
func (e *FakeEngine) FireReport(raw native.RawReport) {
	e.mu.Lock()
	cb, user := e.reportCB, e.reportUser
	e.mu.Unlock()
	if cb != nil {
		cb(user, raw)
	}
}

// FireGoose invokes the installed GOOSE callback.
func (e *FakeEngine) FireGoose(raw native.RawGoose) {
	e.mu.Lock()
	cb, user := e.gooseCB, e.gooseUser
	e.mu.Unlock()
	if cb != nil {
		cb(user, raw)
	}
}

// FireCommandTermination invokes the installed command termination callback.
func (e *FakeEngine) FireCommandTermination(raw native.RawCommandTermination) {
	e.mu.Lock()
	cb, user := e.ctCB, e.ctUser
	e.mu.Unlock()
	if cb != nil {
		cb(user, raw)
	}
}

// FireControlAction invokes the installed control action callback and
// returns its decision; false when nothing is installed.
func (e *FakeEngine) FireControlAction(raw native.RawControlAction) bool {
	e.mu.Lock()
	cb, user := e.caCB, e.caUser
	e.mu.Unlock()
	if cb == nil {
		return false
	}
	return cb(user, raw)
}

// FireInformationReport invokes the installed information report callback.
func (e *FakeEngine) FireInformationReport(raw native.RawInformationReport) {
	e.mu.Lock()
	cb, user := e.irCB, e.irUser
	e.mu.Unlock()
	if cb != nil {
		cb(user, raw)
	}
}

// ReportCallbackInstalled reports whether a report callback is currently
// installed and the rcb reference it was installed for.
func (e *FakeEngine) ReportCallbackInstalled() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reportRef, e.reportCB != nil
}
