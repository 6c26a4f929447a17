package engine

import "fmt"

// Memory is the calculation transcript: one line per derived quantity under
// numbered sections. The numbering is fixed for a given kind of calculation.
type Memory struct {
	Lines []string

	section int
	item    int
}

// Section starts a new numbered section
func (m *Memory) Section(title string) {
	m.section++
	m.item = 0
	m.Lines = append(m.Lines, fmt.Sprintf("%d. %s", m.section, title))
}

// Add appends a numbered line to the current section
func (m *Memory) Add(format string, args ...any) {
	m.item++
	m.Lines = append(m.Lines, fmt.Sprintf("%d.%d %s", m.section, m.item, fmt.Sprintf(format, args...)))
}
