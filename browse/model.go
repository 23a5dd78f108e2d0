// Package browse is the interactive catalog browser.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"library-portal/library"
	"library-portal/render"
)

var statuses = []library.StatusFilter{
	library.StatusAll,
	library.StatusAvailableOnly,
	library.StatusNewestFirst,
}

// chrome is the number of lines View spends around the result list.
const chrome = 7

// Model filters the catalog on every keystroke.
type Model struct {
	catalog    []library.BookRecord
	categories []string // "" means every category
	catIndex   int
	statusIdx  int

	search  textinput.Model
	results []library.BookRecord
	cursor  int
	offset  int
	height  int

	notice   string
	selected *library.BookRecord
	quitting bool
}

// New creates a browser over catalog. notice, if set, is shown above the
// list (e.g. the offline snapshot age).
func New(catalog []library.BookRecord, notice string) Model {
	search := textinput.New()
	search.Placeholder = "title, author or ISBN"
	search.Prompt = "Search: "
	search.CharLimit = 100
	search.Width = 40
	search.Focus()

	m := Model{
		catalog:    catalog,
		categories: append([]string{""}, library.Categories(catalog)...),
		search:     search,
		height:     20,
		notice:     notice,
	}
	m.refilter()
	return m
}

// Spec is the filter currently applied.
func (m Model) Spec() library.FilterSpec {
	return library.FilterSpec{
		SearchText: m.search.Value(),
		Category:   m.categories[m.catIndex],
		Status:     statuses[m.statusIdx],
	}
}

// Results are the books matching Spec, in display order.
func (m Model) Results() []library.BookRecord { return m.results }

// Selected is the book chosen with enter, if any.
func (m Model) Selected() (library.BookRecord, bool) {
	if m.selected == nil {
		return library.BookRecord{}, false
	}
	return *m.selected, true
}

func (m *Model) refilter() {
	m.results = library.FilterCatalog(m.catalog, m.Spec())
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
	m.scroll()
}

func (m *Model) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset > max(len(m.results)-rows, 0) {
		m.offset = max(len(m.results)-rows, 0)
	}
}

func (m Model) visibleRows() int {
	return max(m.height-chrome, 1)
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.scroll()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if len(m.results) > 0 {
				b := m.results[m.cursor]
				m.selected = &b
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				m.scroll()
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
				m.scroll()
			}
			return m, nil

		case "tab":
			m.statusIdx = (m.statusIdx + 1) % len(statuses)
			m.refilter()
			return m, nil

		case "ctrl+t":
			m.catIndex = (m.catIndex + 1) % len(m.categories)
			m.refilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	st := render.Default
	var b strings.Builder

	b.WriteString(st.Title.Render("Browse books"))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(st.Warning.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	category := m.categories[m.catIndex]
	if category == "" {
		category = "all"
	}
	fmt.Fprintf(&b, "Status: %s   Category: %s\n", statuses[m.statusIdx], category)

	if len(m.results) == 0 {
		b.WriteString(st.Dim.Render("No books found"))
		b.WriteString("\n")
	} else {
		b.WriteString(st.Header.Render(render.BookHeader()))
		b.WriteString("\n")
		end := min(m.offset+m.visibleRows(), len(m.results))
		for i := m.offset; i < end; i++ {
			book := m.results[i]
			row := render.BookRow(book) + " " + render.Availability(book)
			if i == m.cursor {
				row = st.Selected.Render(row)
			}
			b.WriteString(row)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "%s\n", st.Dim.Render(fmt.Sprintf(
		"%d of %d books · ↑/↓ move · tab status · ctrl+t category · enter borrow · esc quit",
		len(m.results), len(m.catalog))))
	return b.String()
}
