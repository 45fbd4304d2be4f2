package doctools

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// Args are the caller supplied arguments of a tool call. A null value counts as missing.
type Args map[string]interface{}

// ArgumentError reports a missing or ill-typed argument.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("missing required argument %q", e.Name)
	}
	return fmt.Sprintf("argument %q %s", e.Name, e.Reason)
}

func missing(name string) error {
	return &ArgumentError{Name: name}
}

func (a Args) lookup(name string) (interface{}, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (a Args) requiredString(name string) (string, error) {
	v, ok := a.lookup(name)
	if !ok {
		return "", missing(name)
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgumentError{Name: name, Reason: "must be a string"}
	}
	return s, nil
}

func (a Args) optionalString(name, def string) (string, error) {
	if _, ok := a.lookup(name); !ok {
		return def, nil
	}
	return a.requiredString(name)
}

func (a Args) optionalInt(name string, def int) (int, error) {
	v, ok := a.lookup(name)
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n == math.Trunc(n) {
			return int(n), nil
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
	}
	return 0, &ArgumentError{Name: name, Reason: "must be an integer"}
}

func (a Args) optionalBool(name string, def bool) (bool, error) {
	v, ok := a.lookup(name)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ArgumentError{Name: name, Reason: "must be a boolean"}
	}
	return b, nil
}

// checkTypes validates the JSON type of every known argument against the tool schema.
func (t Tool) checkTypes(args Args) error {
	if t.argTypes == nil {
		return nil
	}
	doc := make(map[string]interface{}, len(args))
	for k, v := range args {
		if v != nil {
			doc[k] = v
		}
	}

	err := t.argTypes.Validate(doc)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return errors.Wrap(err, "checking argument types")
	}
	return argumentError(verr)
}

// argumentError returns the first leaf of `verr` as an ArgumentError.
func argumentError(verr *jsonschema.ValidationError) error {
	for len(verr.Causes) > 0 {
		verr = verr.Causes[0]
	}
	name := strings.Join(verr.InstanceLocation, "/")
	if k, ok := verr.ErrorKind.(*kind.Type); ok {
		return &ArgumentError{
			Name:   name,
			Reason: fmt.Sprintf("must be %s, got %s", strings.Join(k.Want, " or "), k.Got),
		}
	}
	return &ArgumentError{Name: name, Reason: "is invalid"}
}
