package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/jammie/rdf/internal/literal"
)

// Scenario defines a conformance scenario: a set of named literals and the
// checks that must hold for them.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Batch is the store batch the literals are written to.
	// If empty, defaults to "scenario-" + Name.
	Batch string `yaml:"batch,omitempty" json:"batch,omitempty"`

	// Literals maps a name to the input used to build a literal.
	Literals map[string]LiteralSpec `yaml:"literals" json:"literals"`

	// Checks run in order after every literal is stored.
	Checks []Check `yaml:"checks" json:"checks"`
}

// LiteralSpec is the input for one literal.
type LiteralSpec struct {
	// Value is the raw input handed to the constructor.
	Value string `yaml:"value" json:"value"`

	// Datatype is "time", "date", "dateTime", "string" or a full URI.
	// Defaults to "time".
	Datatype string `yaml:"datatype,omitempty" json:"datatype,omitempty"`

	// Lexical overrides the lexical form derived from Value.
	Lexical *string `yaml:"lexical,omitempty" json:"lexical,omitempty"`
}

// Check is one expectation about the scenario's literals.
type Check struct {
	// Type is one of the Check* constants.
	Type string `yaml:"type" json:"type"`

	// Literal names the subject of single-literal checks.
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`

	// Literals names the pair compared by equal and not_equal.
	Literals []string `yaml:"literals,omitempty" json:"literals,omitempty"`

	// Expect is the expected string (used by canonical and string).
	Expect *string `yaml:"expect,omitempty" json:"expect,omitempty"`

	// Valid is the expected validity (used by valid).
	Valid *bool `yaml:"valid,omitempty" json:"valid,omitempty"`
}

// Check type constants.
const (
	CheckValid             = "valid"
	CheckCanonical         = "canonical"
	CheckString            = "string"
	CheckEqual             = "equal"
	CheckNotEqual          = "not_equal"
	CheckCanonicalizeError = "canonicalize_error"
)

// DatatypeURI resolves the short datatype names used in scenarios.
func (l LiteralSpec) DatatypeURI() literal.URI {
	switch l.Datatype {
	case "", "time":
		return literal.XSDTime
	case "date":
		return literal.XSDDate
	case "dateTime":
		return literal.XSDDateTime
	case "string":
		return literal.XSDString
	default:
		return literal.URI(l.Datatype)
	}
}

// Build constructs the literal described by l. Datatypes other than
// the XSD ones build a time literal that carries the given datatype.
func (l LiteralSpec) Build() literal.Literal {
	var opts []literal.Option
	if l.Lexical != nil {
		opts = append(opts, literal.WithLexical(*l.Lexical))
	}

	dt := l.DatatypeURI()
	switch dt {
	case literal.XSDTime:
		return literal.NewTime(l.Value, opts...)
	case literal.XSDDate:
		return literal.NewDate(l.Value, opts...)
	case literal.XSDDateTime:
		return literal.NewDateTime(l.Value, opts...)
	case literal.XSDString:
		lex := l.Value
		if l.Lexical != nil {
			lex = *l.Lexical
		}
		return literal.NewPlain(lex, dt)
	default:
		return literal.NewTime(l.Value, append(opts, literal.WithDatatype(dt))...)
	}
}

// LoadScenario reads and parses a scenario file.
//
// YAML files (.yaml, .yml) are decoded strictly: unknown fields are errors.
// CUE files (.cue) are compiled and unified with the scenario schema.
// Either way the result is checked against the schema and for dangling
// literal references.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	switch filepath.Ext(path) {
	case ".cue":
		scenario, err = decodeCUE(data, path)
	default:
		scenario, err = decodeYAML(data)
	}
	if err != nil {
		return nil, err
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// ParseScenario decodes a YAML scenario from memory and validates it.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

func decodeYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

func decodeCUE(data []byte, path string) (*Scenario, error) {
	v, err := compileScenarioCUE(data, path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := v.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to decode CUE: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks the schema first, then cross references the
// schema cannot express.
func validateScenario(s *Scenario) error {
	if err := validateSchema(s); err != nil {
		return err
	}

	for i, c := range s.Checks {
		names := c.Literals
		if c.Literal != "" {
			names = []string{c.Literal}
		}
		for _, name := range names {
			if _, ok := s.Literals[name]; !ok {
				return fmt.Errorf("checks[%d]: unknown literal %q", i, name)
			}
		}
	}

	return nil
}

// BatchID returns the store batch for the scenario.
func (s *Scenario) BatchID() string {
	if s.Batch != "" {
		return s.Batch
	}
	return "scenario-" + s.Name
}

// literalNames returns the scenario's literal names in sorted order so
// stored sequence numbers do not depend on map iteration.
func (s *Scenario) literalNames() []string {
	names := make([]string, 0, len(s.Literals))
	for name := range s.Literals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
