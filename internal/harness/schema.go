package harness

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// SchemaError reports a scenario that does not satisfy the CUE schema.
type SchemaError struct {
	Message string
	Pos     string // file:line:col of the first error, if known
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: schema: %s", e.Pos, e.Message)
	}
	return "schema: " + e.Message
}

// scenarioDef compiles the embedded schema in ctx and returns #Scenario.
// cue.Values cannot cross contexts, so each caller brings its own.
func scenarioDef(ctx *cue.Context) (cue.Value, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile scenario schema: %w", err)
	}
	return schema.LookupPath(cue.ParsePath("#Scenario")), nil
}

// validateSchema encodes s and unifies it with #Scenario.
func validateSchema(s *Scenario) error {
	ctx := cuecontext.New()
	def, err := scenarioDef(ctx)
	if err != nil {
		return err
	}

	v := def.Unify(ctx.Encode(s))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return newSchemaError(err)
	}
	return nil
}

// compileScenarioCUE compiles a scenario written in CUE and returns it
// unified with #Scenario.
func compileScenarioCUE(data []byte, path string) (cue.Value, error) {
	ctx := cuecontext.New()
	def, err := scenarioDef(ctx)
	if err != nil {
		return cue.Value{}, err
	}

	src := ctx.CompileBytes(data, cue.Filename(path))
	if err := src.Err(); err != nil {
		return cue.Value{}, newSchemaError(err)
	}

	v := def.Unify(src)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return cue.Value{}, newSchemaError(err)
	}
	return v, nil
}

func newSchemaError(err error) *SchemaError {
	se := &SchemaError{Message: errors.Details(err, nil)}
	for _, e := range errors.Errors(err) {
		if pos := e.Position(); pos.IsValid() {
			se.Pos = pos.String()
			break
		}
	}
	return se
}
