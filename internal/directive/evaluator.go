package directive

import (
	"github.com/casibbald/SuperPascal/internal/ident"
	"github.com/casibbald/SuperPascal/internal/lexer"
)

// frame tracks one open conditional (an IFDEF/IFNDEF/IF through its
// matching ENDIF). parentActive is the activeness of the enclosing scope
// at the moment this conditional was opened; matchedAny records whether
// any branch so far (the opening one, or a later ELSEIF/ELSE) has been
// taken, so that a later ELSEIF/ELSE correctly becomes inactive once a
// prior branch already fired.
type frame struct {
	parentActive bool
	matchedAny   bool
	active       bool
	elseSeen     bool
	start        lexer.Span
}

// Error is returned for unmatched or malformed conditional-directive
// structure. It always carries the span of the offending directive.
type Error struct {
	Message string
	Span    lexer.Span
}

func (e *Error) Error() string { return e.Message }

// Evaluator owns the defined-symbol set and the conditional stack for one
// parse (a unit plus everything it transitively includes, per §4.6 — an
// include shares its parent's Evaluator by value-copy and merges symbols
// back on return).
type Evaluator struct {
	symbols map[string]struct{}
	stack   []*frame
}

// New creates an Evaluator seeded with predefined symbols (already
// expected upper-case, matching a command-line -D flag).
func New(predefined []string) *Evaluator {
	e := &Evaluator{symbols: make(map[string]struct{}, len(predefined))}
	for _, s := range predefined {
		e.symbols[ident.Normalize(s)] = struct{}{}
	}
	return e
}

// IsDefined reports whether name (any case) is in the symbol set.
func (e *Evaluator) IsDefined(name string) bool {
	_, ok := e.symbols[ident.Normalize(name)]
	return ok
}

// Define inserts the upper-cased name into the symbol set.
func (e *Evaluator) Define(name string) { e.symbols[ident.Normalize(name)] = struct{}{} }

// Undef removes name from the symbol set.
func (e *Evaluator) Undef(name string) { delete(e.symbols, ident.Normalize(name)) }

// Active reports whether code at the current position should be kept: the
// conjunction of every enclosing conditional's activeness. With no open
// conditional, everything is active.
func (e *Evaluator) Active() bool {
	if len(e.stack) == 0 {
		return true
	}
	return e.stack[len(e.stack)-1].active
}

// Depth returns the current conditional nesting depth (0 outside any
// conditional). Balanced() is Depth() == 0.
func (e *Evaluator) Depth() int { return len(e.stack) }

// Balanced reports whether every opened conditional has been closed —
// required at end-of-input per the spec's stated invariant.
func (e *Evaluator) Balanced() bool { return len(e.stack) == 0 }

// Symbols returns a snapshot copy of the defined-symbol set, upper-cased.
// Used when merging an include's mutations back into its parent.
func (e *Evaluator) Symbols() []string {
	out := make([]string, 0, len(e.symbols))
	for s := range e.symbols {
		out = append(out, s)
	}
	return out
}

// Clone returns a new Evaluator sharing no state with e but starting from
// the same symbol set, used when constructing a sub-parser for an include.
func (e *Evaluator) Clone() *Evaluator {
	return New(e.Symbols())
}

// MergeFrom replaces e's symbol set with other's — used after an include
// finishes, so that {$DEFINE}/{$UNDEF} performed inside the included file
// are visible to the parent (§4.6).
func (e *Evaluator) MergeFrom(other *Evaluator) {
	e.symbols = make(map[string]struct{}, len(other.symbols))
	for k := range other.symbols {
		e.symbols[k] = struct{}{}
	}
}

// Result reports the effect of evaluating one directive: whether code
// immediately following it is active, and whether the parser must skip
// tokens until the next directive at the same nesting depth closes or
// reopens this branch.
type Result struct {
	Include       bool
	SkipToBoundary bool
}

// Apply evaluates a parsed control directive (IfDef/IfNDef/If/ElseIf/Else/
// EndIf) against current state and returns the parser-facing result.
// Define/Undef/Include are not handled here — callers dispatch those kinds
// themselves (Define/Undef via Define/Undef above, Include via the parser's
// include resolver) since they do not alter the conditional stack.
func (e *Evaluator) Apply(d Directive, span lexer.Span) (Result, error) {
	switch d.Kind {
	case IfDef:
		return e.open(e.IsDefined(d.Name), span), nil
	case IfNDef:
		return e.open(!e.IsDefined(d.Name), span), nil
	case If:
		return e.open(e.evalExpr(d.Expr), span), nil
	case ElseIf:
		return e.elseIf(d.Expr, span)
	case Else:
		return e.elseBranch(span)
	case EndIf:
		return e.endIf(span)
	default:
		return Result{Include: e.Active()}, nil
	}
}

func (e *Evaluator) open(condTrue bool, span lexer.Span) Result {
	parentActive := e.Active()
	f := &frame{
		parentActive: parentActive,
		matchedAny:   condTrue,
		active:       parentActive && condTrue,
		start:        span,
	}
	e.stack = append(e.stack, f)
	return Result{Include: f.active, SkipToBoundary: !f.active}
}

func (e *Evaluator) top() *frame {
	if len(e.stack) == 0 {
		return nil
	}
	return e.stack[len(e.stack)-1]
}

func (e *Evaluator) elseIf(expr string, span lexer.Span) (Result, error) {
	f := e.top()
	if f == nil {
		return Result{}, &Error{Message: "{$ELSEIF} without matching {$IF}, {$IFDEF}, or {$IFNDEF}", Span: span}
	}
	if f.matchedAny {
		f.active = false
	} else {
		cond := e.evalExpr(expr)
		f.active = f.parentActive && cond
		if f.active {
			f.matchedAny = true
		}
	}
	return Result{Include: f.active, SkipToBoundary: !f.active}, nil
}

func (e *Evaluator) elseBranch(span lexer.Span) (Result, error) {
	f := e.top()
	if f == nil {
		return Result{}, &Error{Message: "{$ELSE} without matching {$IFDEF} or {$IFNDEF}", Span: span}
	}
	f.elseSeen = true
	if f.matchedAny {
		f.active = false
	} else {
		f.active = f.parentActive
		f.matchedAny = true
	}
	return Result{Include: f.active, SkipToBoundary: !f.active}, nil
}

func (e *Evaluator) endIf(span lexer.Span) (Result, error) {
	f := e.top()
	if f == nil {
		return Result{}, &Error{Message: "{$ENDIF} without matching {$IFDEF} or {$IFNDEF}", Span: span}
	}
	e.stack = e.stack[:len(e.stack)-1]
	return Result{Include: e.Active()}, nil
}

// UnmatchedError builds the "reached end of file" error for an EOF
// encountered while a conditional is still open.
func (e *Evaluator) UnmatchedError(span lexer.Span) error {
	return &Error{Message: "Unmatched IFDEF/IFNDEF/IF - reached end of file", Span: span}
}
