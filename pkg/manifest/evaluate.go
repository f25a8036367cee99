package manifest

// Severity of a manifest diagnostic. Values match the editor's ordering.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "information"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Diagnostic is a finding located by character offsets. Metadata is opaque to
// this package and is carried through to code-action requests.
type Diagnostic struct {
	Range    Range
	Message  string
	Severity Severity
	Code     string
	Metadata any
}

// Evaluator holds callbacks invoked for every value of a resource. Nil
// callbacks are skipped.
type Evaluator struct {
	Map    func(path Path, entry Traversable) []Diagnostic
	Array  func(path Path, entry Traversable) []Diagnostic
	Scalar func(path Path, entry Traversable) []Diagnostic
}

// Evaluate walks each parse depth-first, parents before children, and
// concatenates the evaluator's results in walk order.
func Evaluate(parses []*ResourceParse, ev Evaluator) []Diagnostic {
	var out []Diagnostic
	for _, p := range parses {
		out = append(out, evaluate(AsTraversable(p), ev)...)
	}
	return out
}

func evaluate(t Traversable, ev Evaluator) []Diagnostic {
	if !t.Exists() {
		return nil
	}
	var out []Diagnostic
	switch t.Kind() {
	case KindMap:
		if ev.Map != nil {
			out = append(out, ev.Map(t.Path(), t)...)
		}
	case KindArray:
		if ev.Array != nil {
			out = append(out, ev.Array(t.Path(), t)...)
		}
	default:
		if ev.Scalar != nil {
			out = append(out, ev.Scalar(t.Path(), t)...)
		}
	}
	for _, child := range t.Items() {
		out = append(out, evaluate(child, ev)...)
	}
	return out
}
