/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package errs

import "fmt"

//
// The Error interface
//

// Error is a loxgo error: anything that can escape to the command line and
// carries the process exit code it should produce.
type Error interface {
	error
	ExitCode() int
}

//
// CompileTime
//

// CompileTime is a single compile-time error, reported by the scanner or the
// compiler. Message is already fully formatted (e.g. "Expect ';' after
// value."); Line and Lexeme are kept around so tests can match on them without
// parsing the formatted string back out.
type CompileTime struct {
	Message string
	Line    int
	Lexeme  string
}

// NewCompileTime creates a CompileTime error at a given source line.
func NewCompileTime(line int, format string, a ...any) *CompileTime {
	return &CompileTime{
		Message: fmt.Sprintf(format, a...),
		Line:    line,
	}
}

// Error converts the CompileTime to a string. Fulfills the error interface.
func (e *CompileTime) Error() string {
	at := ""
	switch {
	case e.Lexeme == "":
		// Nothing: either an EOF error or we don't have lexeme info.
	default:
		at = fmt.Sprintf(" at '%v'", e.Lexeme)
	}
	return fmt.Sprintf("[line %v] Error%v: %v", e.Line, at, e.Message)
}

// ExitCode fulfills the Error interface.
func (e *CompileTime) ExitCode() int {
	return StatusCodeCompileTimeError
}

//
// CompileTimeCollection
//

// CompileTimeCollection collects every CompileTime error produced during one
// compilation. panicMode in the compiler ensures only one error is added per
// syntax error, but a single source can fail in more than one place once
// synchronize() resumes parsing.
type CompileTimeCollection struct {
	Errors []*CompileTime
}

// Add appends err to the collection. A no-op if err is nil.
func (e *CompileTimeCollection) Add(err *CompileTime) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

// IsEmpty reports whether no errors were collected.
func (e *CompileTimeCollection) IsEmpty() bool {
	return len(e.Errors) == 0
}

// Error converts the CompileTimeCollection to a string, one error per line.
func (e *CompileTimeCollection) Error() string {
	s := ""
	for _, err := range e.Errors {
		s += err.Error() + "\n"
	}
	return s
}

// ExitCode fulfills the Error interface.
func (e *CompileTimeCollection) ExitCode() int {
	return StatusCodeCompileTimeError
}

//
// Runtime
//

// Runtime is an error raised while the VM was executing bytecode: the
// operation was well-formed at compile time, but the operand values at
// runtime weren't.
type Runtime struct {
	// Message is the user-facing message (e.g. "Operands must be numbers.").
	Message string

	// Line is the source line of the offending instruction, looked up via the
	// chunk's line table.
	Line int
}

// NewRuntime creates a Runtime error.
func NewRuntime(line int, format string, a ...any) *Runtime {
	return &Runtime{
		Message: fmt.Sprintf(format, a...),
		Line:    line,
	}
}

// Error converts the Runtime error to a string, matching the two-line report
// the VM writes to stderr: the message, then "[line N] in script".
func (e *Runtime) Error() string {
	return fmt.Sprintf("%v\n[line %v] in script", e.Message, e.Line)
}

// ExitCode fulfills the Error interface.
func (e *Runtime) ExitCode() int {
	return StatusCodeRuntimeError
}

//
// BadUsage
//

// BadUsage is an error caused by incorrect loxgo command-line usage.
type BadUsage struct {
	Message string
}

// NewBadUsage creates a BadUsage error.
func NewBadUsage(format string, a ...any) *BadUsage {
	return &BadUsage{Message: fmt.Sprintf(format, a...)}
}

// Error converts the BadUsage to a string. Fulfills the error interface.
func (e *BadUsage) Error() string {
	return e.Message
}

// ExitCode fulfills the Error interface.
func (e *BadUsage) ExitCode() int {
	return StatusCodeBadUsage
}

//
// IOError
//

// IOError is an error reading a source or data file.
type IOError struct {
	Message string
}

// NewIOError creates an IOError.
func NewIOError(format string, a ...any) *IOError {
	return &IOError{Message: fmt.Sprintf(format, a...)}
}

// Error converts the IOError to a string. Fulfills the error interface.
func (e *IOError) Error() string {
	return e.Message
}

// ExitCode fulfills the Error interface.
func (e *IOError) ExitCode() int {
	return StatusCodeIOError
}

//
// TestSuite
//

// TestSuite is an error produced while running loxgo's own golden-file test
// suite (not a user-facing error).
type TestSuite struct {
	TestCase string
	Message  string
}

// NewTestSuite creates a TestSuite error.
func NewTestSuite(testCase, format string, a ...any) *TestSuite {
	return &TestSuite{TestCase: testCase, Message: fmt.Sprintf(format, a...)}
}

// Error converts the TestSuite to a string. Fulfills the error interface.
func (e *TestSuite) Error() string {
	return fmt.Sprintf("%v: %v", e.TestCase, e.Message)
}

// ExitCode fulfills the Error interface.
func (e *TestSuite) ExitCode() int {
	return StatusCodeTestSuiteError
}

//
// ICE
//

// ICE is an Internal Compiler/VM Error: something the implementation assumed
// could never happen, happened. Always a bug in loxgo itself, never in the
// user's source.
type ICE struct {
	Message string
}

// NewICE creates an ICE.
func NewICE(format string, a ...any) *ICE {
	return &ICE{Message: fmt.Sprintf(format, a...)}
}

// Error converts the ICE to a string. Fulfills the error interface.
func (e *ICE) Error() string {
	return "internal error: " + e.Message
}

// ExitCode fulfills the Error interface.
func (e *ICE) ExitCode() int {
	return StatusCodeICE
}
