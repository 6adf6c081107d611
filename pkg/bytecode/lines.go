package bytecode

// LineRun is one entry of the run-length line map: Count consecutive code
// bytes that all originate from source line Line.
type LineRun struct {
	Line  int
	Count int
}

// lineMap maps byte offsets to source lines. The sum of all run counts
// always equals the number of code bytes.
type lineMap struct {
	runs  []LineRun
	total int
}

// record extends the last run when line matches it, otherwise starts a new one.
func (m *lineMap) record(line int) {
	m.total++
	if n := len(m.runs); n > 0 && m.runs[n-1].Line == line {
		m.runs[n-1].Count++
		return
	}
	m.runs = append(m.runs, LineRun{Line: line, Count: 1})
}

// lineAt scans the runs until offset falls inside one.
func (m *lineMap) lineAt(offset int) (int, error) {
	if offset < 0 || offset >= m.total {
		return 0, &LineError{Offset: offset, Len: m.total}
	}
	end := 0
	for _, run := range m.runs {
		end += run.Count
		if offset < end {
			return run.Line, nil
		}
	}
	return 0, &LineError{Offset: offset, Len: m.total}
}
