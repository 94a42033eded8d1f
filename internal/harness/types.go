package harness

// Trace event types.
const (
	EventPut   = "put"
	EventCheck = "check"
)

// TraceEvent records one step of a scenario run: a literal being stored or
// a check being evaluated.
type TraceEvent struct {
	Type string `json:"type"` // "put" or "check"
	Seq  int64  `json:"seq"`

	// Put fields.
	Literal   string `json:"literal,omitempty"`
	Kind      string `json:"kind,omitempty"`
	String    string `json:"string,omitempty"`
	Valid     bool   `json:"valid,omitempty"`
	Canonical string `json:"canonical,omitempty"`

	// Check fields.
	Check    string   `json:"check,omitempty"`
	Subjects []string `json:"subjects,omitempty"`
	Actual   string   `json:"actual,omitempty"`
	Pass     bool     `json:"pass,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every check held and replay found no drift.
	Pass bool `json:"pass"`

	// Trace lists puts then checks, in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// BatchHash identifies the ordered set of stored terms.
	BatchHash string `json:"batch_hash,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) nextSeq() int64 {
	return int64(len(r.Trace)) + 1
}

// AddPutTrace records a stored literal.
func (r *Result) AddPutTrace(name, kind, str string, valid bool, canonical string) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:      EventPut,
		Seq:       r.nextSeq(),
		Literal:   name,
		Kind:      kind,
		String:    str,
		Valid:     valid,
		Canonical: canonical,
	})
}

// AddCheckTrace records an evaluated check.
func (r *Result) AddCheckTrace(check string, subjects []string, actual string, pass bool) {
	r.Trace = append(r.Trace, TraceEvent{
		Type:     EventCheck,
		Seq:      r.nextSeq(),
		Check:    check,
		Subjects: subjects,
		Actual:   actual,
		Pass:     pass,
	})
}
