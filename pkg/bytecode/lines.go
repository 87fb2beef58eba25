/******************************************************************************\
* loxgo                                                                        *
\******************************************************************************/

package bytecode

// lineRun is one run of consecutive code bytes that all belong to the same
// source line.
type lineRun struct {
	line  int
	count int
}

// lineTable is a run-length-encoded map from code offset to source line,
// following clox's rleEncodeLines: rather than one int per byte, it stores
// (line, run_length) pairs and only ever needs to answer `line(offset)`,
// which is the single query the runtime-error path makes.
type lineTable struct {
	runs []lineRun
}

// add records that the next code byte belongs to line. Extends the current
// run if line matches it, otherwise starts a new one.
func (lt *lineTable) add(line int) {
	if n := len(lt.runs); n > 0 && lt.runs[n-1].line == line {
		lt.runs[n-1].count++
		return
	}
	lt.runs = append(lt.runs, lineRun{line: line, count: 1})
}

// get returns the source line for code offset. Panics if offset is out of
// range, since that indicates a bug in the compiler or VM, not user error.
func (lt *lineTable) get(offset int) int {
	remaining := offset
	for _, run := range lt.runs {
		if remaining < run.count {
			return run.line
		}
		remaining -= run.count
	}
	panic("bytecode: line table offset out of range")
}
