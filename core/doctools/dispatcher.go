package doctools

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
)

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindUpstream
	KindUnknownTool
	KindInternal
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindUnknownTool:
		return "unknown_tool"
	default:
		return "internal"
	}
}

// Result is the outcome of one tool call. Failures are only turned into text by Text.
type Result struct {
	Tool    string
	Kind    ErrorKind
	Content string // set on success
	Err     error  // set on failure, except for KindUnknownTool
}

func (r Result) OK() bool {
	return r.Kind == KindNone
}

// Text renders the Result as the single, never empty, text block returned to callers.
func (r Result) Text() string {
	switch r.Kind {
	case KindNone:
		return r.Content
	case KindUnknownTool:
		return "Unknown tool: " + r.Tool
	}
	if r.Err == nil {
		return "Error: " + r.Kind.String() + " failure"
	}
	return "Error: " + r.Err.Error()
}

// Dispatcher runs catalog tools. It holds no per-call state and is safe for concurrent use.
type Dispatcher struct {
	completer core.Completer
	searcher  core.CodeSearcher
	logger    core.Logger
}

// NewDispatcher builds a Dispatcher; a nil logger discards entries.
func NewDispatcher(completer core.Completer, searcher core.CodeSearcher, logger core.Logger) *Dispatcher {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Dispatcher{
		completer: completer,
		searcher:  searcher,
		logger:    logger,
	}
}

// Dispatch resolves `name` in the catalog and runs it with `args`.
// It never panics and never returns an error: every failure is carried by the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args map[string]interface{}) (res Result) {
	tool, ok := Lookup(name)
	if !ok {
		return Result{Tool: name, Kind: KindUnknownTool}
	}

	defer func() {
		if rec := recover(); rec != nil {
			d.logger.Error("doctools.Dispatch: recovered from panic", errors.Errorf("%v", rec), map[string]interface{}{"tool": name})
			res = Result{Tool: name, Kind: KindInternal, Err: fmt.Errorf("%v", rec)}
		}
	}()

	if err := tool.checkTypes(args); err != nil {
		return Result{Tool: name, Kind: KindValidation, Err: err}
	}
	op, err := tool.decode(args)
	if err != nil {
		return Result{Tool: name, Kind: KindValidation, Err: err}
	}

	text, err := op.run(ctx, d)
	if err != nil {
		d.logger.Warn("doctools.Dispatch: "+name, err)
		return Result{Tool: name, Kind: KindUpstream, Err: err}
	}
	return Result{Tool: name, Content: text}
}

func (d *Dispatcher) complete(ctx context.Context, system, prompt string) (string, error) {
	if d.completer == nil {
		return "", errors.New("no completion service configured")
	}
	return d.completer.Complete(ctx, system, prompt)
}

// searchCode is best effort: any failure yields no references.
func (d *Dispatcher) searchCode(ctx context.Context, query, language string, max int) []core.CodeReference {
	if d.searcher == nil {
		return nil
	}
	refs, err := d.searcher.SearchCode(ctx, query, language, max)
	if err != nil {
		d.logger.Info("doctools.searchCode: no references", err)
		return nil
	}
	return refs
}
