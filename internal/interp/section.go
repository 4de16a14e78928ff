package interp

// State is the section the interpreter is currently reading.
type State uint8

const (
	StateNone State = iota
	StateGeneral
	StateInitialize
	StateDataset
	StateBegin
	StateMain
	StateEnd
	StateFinalize
)

var stateNames = [...]string{
	StateNone:       "NONE",
	StateGeneral:    "GENERAL",
	StateInitialize: "INITIALIZE",
	StateDataset:    "DATASET",
	StateBegin:      "BEGIN_ROUTINE",
	StateMain:       "MAIN_ROUTINE",
	StateEnd:        "END_ROUTINE",
	StateFinalize:   "FINALIZE",
}

// String returns the section name as written in a header.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// sections maps header names to states. NONE has no header.
var sections = map[string]State{
	"GENERAL":       StateGeneral,
	"INITIALIZE":    StateInitialize,
	"DATASET":       StateDataset,
	"BEGIN_ROUTINE": StateBegin,
	"MAIN_ROUTINE":  StateMain,
	"END_ROUTINE":   StateEnd,
	"FINALIZE":      StateFinalize,
}

// Declaration names read from GENERAL sections.
const (
	RecordDelim  = "RECORD_DELIM"
	DatasetDelim = "DATASET_DELIM"
	OutputDelim  = "OUTPUT_DELIM"
	RecordVars   = "RECORD_VARS"
	DatasetVars  = "DATASET_VARS"
)

// declarations holds the GENERAL string and list tables. A value moves to
// the claimed side on first use and stays there for the rest of the run.
type declarations struct {
	strs        map[string]string
	lists       map[string][]string
	claimedStrs map[string]string
	claimedList map[string][]string
}

func newDeclarations() declarations {
	return declarations{
		strs:        make(map[string]string),
		lists:       make(map[string][]string),
		claimedStrs: make(map[string]string),
		claimedList: make(map[string][]string),
	}
}

// setString records name unless it was defined before.
func (d *declarations) setString(name, value string) bool {
	if _, ok := d.strs[name]; ok {
		return false
	}
	if _, ok := d.claimedStrs[name]; ok {
		return false
	}
	d.strs[name] = value
	return true
}

// setList records name unless it was defined before.
func (d *declarations) setList(name string, items []string) bool {
	if _, ok := d.lists[name]; ok {
		return false
	}
	if _, ok := d.claimedList[name]; ok {
		return false
	}
	d.lists[name] = items
	return true
}

func (d *declarations) str(name string) (string, bool) {
	if v, ok := d.claimedStrs[name]; ok {
		return v, true
	}
	v, ok := d.strs[name]
	if !ok {
		return "", false
	}
	delete(d.strs, name)
	d.claimedStrs[name] = v
	return v, true
}

func (d *declarations) list(name string) ([]string, bool) {
	if v, ok := d.claimedList[name]; ok {
		return v, true
	}
	v, ok := d.lists[name]
	if !ok {
		return nil, false
	}
	delete(d.lists, name)
	d.claimedList[name] = v
	return v, true
}

// listLen reports the length of a declared list without claiming it.
func (d *declarations) listLen(name string) int {
	if v, ok := d.claimedList[name]; ok {
		return len(v)
	}
	return len(d.lists[name])
}
