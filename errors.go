package reach

import "fmt"

// SourceLocation identifies a file/line/column span for diagnostics,
// grounded on original_source/src/parser/SourceLocation.h. The lexer/parser
// that produces these is out of scope; this type is the data contract the
// AST and BytecodeBlock's location table carry.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

func (l SourceLocation) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// TypeError reports one failed constraint discovered while type checking.
// Unlike RuntimeError these are accumulated rather than fatal — a program
// can have many (spec §7: "batch of diagnostics, not first-error-wins").
// Modeled on the teacher's errors.go ParsingError: a typed error value with
// a location and message, not a sentinel string.
type TypeError struct {
	Location SourceLocation
	Message  string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: type error: %s", e.Location, e.Message)
}

// TypeErrors is a batch of TypeError, itself an error so a type-check pass
// that found N>0 errors can be returned/handled as a single Go error value.
type TypeErrors []*TypeError

func (es TypeErrors) Error() string {
	if len(es) == 1 {
		return es[0].Error()
	}
	return fmt.Sprintf("%d type errors (first: %s)", len(es), es[0].Error())
}

// RuntimeError is a fatal failure during bytecode execution — an assertion
// that should be unreachable in a well-typed program, or a genuine runtime
// fault (array bounds, unbound variable). Panicked at the point of failure
// and recovered at VM.Call's boundary (spec §7), then returned to
// the caller as an ordinary Go error rather than calling os.Exit — the exit
// code behavior belongs to the (out-of-scope) CLI driver.
type RuntimeError struct {
	Location SourceLocation
	Message  string
}

func (e *RuntimeError) Error() string {
	if e.Location == (SourceLocation{}) {
		return fmt.Sprintf("runtime error: %s", e.Message)
	}
	return fmt.Sprintf("%s: runtime error: %s", e.Location, e.Message)
}
