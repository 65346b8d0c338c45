package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ozanyilmaz/notevault/internal/config"
	"github.com/ozanyilmaz/notevault/internal/gitsync"
	"github.com/ozanyilmaz/notevault/internal/markdown"
	"github.com/ozanyilmaz/notevault/internal/notify"
	"github.com/ozanyilmaz/notevault/internal/routine"
	"github.com/ozanyilmaz/notevault/internal/search"
	"github.com/ozanyilmaz/notevault/internal/task"
	"github.com/ozanyilmaz/notevault/internal/vault"
	"github.com/ozanyilmaz/notevault/internal/version"
)

type tab int
type mode int

const (
	tabNotes tab = iota
	tabTasks
	tabRoutines
)

const (
	modeNormal mode = iota
	modeCapture
	modeSearch
)

var tabNames = []string{"Notes", "Tasks", "Routines"}

// App bundles the services the TUI operates on.
type App struct {
	Config   config.Config
	Vault    *vault.Vault
	Tasks    *task.Service
	Routines *routine.Service
	Searcher *search.Searcher
	Sync     *gitsync.Client
}

// noteRow is one visible line in the notes pane.
type noteRow struct {
	entry vault.Entry
	depth int
}

// taskRow is one visible line in the tasks pane, honoring Expanded.
type taskRow struct {
	task  task.Task
	depth int
}

type Model struct {
	app   App
	theme Theme

	width, height int
	active        tab
	mode          mode
	cursor        [3]int

	notes    []noteRow
	taskRows []taskRow
	routines []routine.Routine

	preview  viewport.Model
	renderer *markdown.Renderer
	capture  AutocompleteModel
	hits     []search.Hit

	status     string
	syncStatus string
}

type tickMsg struct{ now time.Time }

type syncStatusMsg struct {
	status gitsync.Status
	err    error
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg { return tickMsg{now: t} })
}

func (m Model) fetchSyncStatus() tea.Cmd {
	if m.app.Sync == nil {
		return nil
	}
	client := m.app.Sync
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		st, err := client.Status(ctx)
		return syncStatusMsg{status: st, err: err}
	}
}

func newModel(app App) Model {
	m := Model{
		app:      app,
		theme:    DefaultTheme,
		renderer: markdown.New(),
		preview:  viewport.New(0, 0),
	}
	m.capture = NewAutocomplete(nil, "Capture...", 5)
	m.reload()
	return m
}

// Run starts the TUI and blocks until it exits.
func Run(app App) error {
	p := tea.NewProgram(newModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.fetchSyncStatus())
}

// reload rebuilds all pane rows from the services.
func (m *Model) reload() {
	m.notes = nil
	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		for _, e := range m.app.Vault.List(dir) {
			m.notes = append(m.notes, noteRow{entry: e, depth: depth})
			if e.IsDir {
				walk(e.Path, depth+1)
			}
		}
	}
	walk(m.app.Vault.NotesDir(), 0)

	m.taskRows = nil
	var flatten func(forest []task.Task, depth int)
	flatten = func(forest []task.Task, depth int) {
		for _, t := range forest {
			m.taskRows = append(m.taskRows, taskRow{task: t, depth: depth})
			if t.Expanded {
				flatten(t.Subtasks, depth+1)
			}
		}
	}
	flatten(m.app.Tasks.Tasks(), 0)

	m.routines = m.app.Routines.All()

	var names []string
	for _, r := range m.notes {
		if !r.entry.IsDir && strings.HasSuffix(r.entry.Name, ".md") {
			names = append(names, strings.TrimSuffix(r.entry.Name, ".md"))
		}
	}
	m.capture.SetNames(names)

	for i := range m.cursor {
		if n := m.rowCount(tab(i)); m.cursor[i] >= n && n > 0 {
			m.cursor[i] = n - 1
		}
	}
}

func (m Model) rowCount(t tab) int {
	switch t {
	case tabNotes:
		return len(m.notes)
	case tabTasks:
		return len(m.taskRows)
	default:
		return len(m.routines)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.preview.Width = msg.Width/2 - 4
		m.preview.Height = msg.Height - 6
		return m, nil

	case tickMsg:
		return m.onTick()

	case syncStatusMsg:
		if msg.err != nil {
			m.syncStatus = "sync: unavailable"
		} else if msg.status.Clean {
			m.syncStatus = fmt.Sprintf("sync: clean (%s)", msg.status.Branch)
		} else {
			m.syncStatus = fmt.Sprintf("sync: %d changed (%s)", msg.status.Modified, msg.status.Branch)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeCapture:
			return m.updateCapture(msg)
		case modeSearch:
			return m.updateSearch(msg)
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) onTick() (tea.Model, tea.Cmd) {
	if changed, err := m.app.Routines.CheckStreaks(); err == nil && changed {
		m.reload()
	}
	if m.app.Config.Reminder.Enabled {
		now := time.Now()
		overdue := 0
		for _, r := range m.app.Routines.All() {
			if r.Overdue(now) {
				overdue++
			}
		}
		if overdue > 0 {
			title, msg := notify.FormatOverduePrompt(overdue)
			_ = notify.Info(title, msg)
		}
	}
	return m, tick()
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.active = (m.active + 1) % 3
	case "shift+tab":
		m.active = (m.active + 2) % 3
	case "j", "down":
		if m.cursor[m.active] < m.rowCount(m.active)-1 {
			m.cursor[m.active]++
		}
		m.refreshPreview()
	case "k", "up":
		if m.cursor[m.active] > 0 {
			m.cursor[m.active]--
		}
		m.refreshPreview()
	case "enter":
		return m.onEnter()
	case "e":
		if m.active == tabTasks {
			if row, ok := m.currentTask(); ok {
				if err := m.app.Tasks.ToggleExpanded(row.task.ID); err == nil {
					m.reload()
				}
			}
		}
	case "d":
		return m.onDelete()
	case "n":
		m.mode = modeCapture
		m.capture.Reset()
		m.capture.Focus()
	case "/":
		m.mode = modeSearch
		m.capture.Reset()
		m.capture.Focus()
	case "s":
		return m, m.fetchSyncStatus()
	}
	return m, nil
}

func (m Model) onEnter() (tea.Model, tea.Cmd) {
	switch m.active {
	case tabNotes:
		m.refreshPreview()
	case tabTasks:
		if row, ok := m.currentTask(); ok {
			if err := m.app.Tasks.Toggle(row.task.ID); err != nil {
				m.status = err.Error()
			} else {
				m.reload()
			}
		}
	case tabRoutines:
		if r, ok := m.currentRoutine(); ok {
			if err := m.app.Routines.Complete(r.ID); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Completed: " + r.Title
				m.reload()
			}
		}
	}
	return m, nil
}

func (m Model) onDelete() (tea.Model, tea.Cmd) {
	var err error
	switch m.active {
	case tabNotes:
		if row, ok := m.currentNote(); ok {
			err = m.app.Vault.Delete(row.entry.Path)
		}
	case tabTasks:
		if row, ok := m.currentTask(); ok {
			err = m.app.Tasks.Delete(row.task.ID)
		}
	case tabRoutines:
		if r, ok := m.currentRoutine(); ok {
			err = m.app.Routines.Delete(r.ID)
		}
	}
	if err != nil {
		m.status = err.Error()
	} else {
		m.reload()
	}
	return m, nil
}

func (m Model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.capture.Blur()
		return m, nil
	case "tab":
		if m.capture.Accept() {
			return m, nil
		}
	case "down":
		m.capture.Next()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.capture.Value())
		m.mode = modeNormal
		m.capture.Blur()
		if title == "" {
			return m, nil
		}
		m.status = m.captureItem(title)
		m.reload()
		return m, nil
	}
	var cmd tea.Cmd
	m.capture, cmd = m.capture.Update(msg)
	return m, cmd
}

// captureItem creates a note, task or routine named title in the active tab.
func (m *Model) captureItem(title string) string {
	switch m.active {
	case tabNotes:
		path := filepath.Join(m.app.Vault.NotesDir(), title+".md")
		if err := m.app.Vault.WriteNote(path, fmt.Sprintf("# %s\n\n", title)); err != nil {
			return err.Error()
		}
		return "Created " + title + ".md"
	case tabTasks:
		if _, err := m.app.Tasks.Add(task.Task{Title: title}); err != nil {
			return err.Error()
		}
		return "Added task: " + title
	default:
		r := routine.Routine{Title: title, Type: routine.TypeDaily, Frequency: 1}
		if _, err := m.app.Routines.Add(r); err != nil {
			return err.Error()
		}
		return "Added daily routine: " + title
	}
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.hits = nil
		m.capture.Blur()
		return m, nil
	case "enter":
		m.hits = m.app.Searcher.Search(m.capture.Value())
		return m, nil
	}
	var cmd tea.Cmd
	m.capture, cmd = m.capture.Update(msg)
	return m, cmd
}

func (m *Model) refreshPreview() {
	if m.active != tabNotes {
		return
	}
	row, ok := m.currentNote()
	if !ok || row.entry.IsDir {
		m.preview.SetContent("")
		return
	}
	content, err := m.app.Vault.ReadNote(row.entry.Path)
	if err != nil {
		m.preview.SetContent(m.theme.Error.Render(err.Error()))
		return
	}
	m.preview.SetContent(m.renderer.Render(content))
}

func (m Model) currentNote() (noteRow, bool) {
	if len(m.notes) == 0 {
		return noteRow{}, false
	}
	return m.notes[m.cursor[tabNotes]], true
}

func (m Model) currentTask() (taskRow, bool) {
	if len(m.taskRows) == 0 {
		return taskRow{}, false
	}
	return m.taskRows[m.cursor[tabTasks]], true
}

func (m Model) currentRoutine() (routine.Routine, bool) {
	if len(m.routines) == 0 {
		return routine.Routine{}, false
	}
	return m.routines[m.cursor[tabRoutines]], true
}

func (m Model) View() string {
	var b strings.Builder

	var tabs []string
	for i, name := range tabNames {
		style := m.theme.Tab
		if tab(i) == m.active {
			style = m.theme.TabFocus
		}
		tabs = append(tabs, style.Render(name))
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	b.WriteString(m.theme.Title.Render(version.GetShortVersion()) + "  " + header + "\n\n")

	switch m.mode {
	case modeSearch:
		b.WriteString("/" + m.capture.View() + "\n")
		b.WriteString(m.renderHits())
	case modeCapture:
		b.WriteString(m.capture.View() + "\n")
		if m.capture.Showing() {
			b.WriteString(m.capture.SuggestionView() + "\n")
		}
		b.WriteString(m.renderPane())
	default:
		b.WriteString(m.renderPane())
	}

	b.WriteString("\n")
	footer := m.theme.Hint.Render("tab: switch  n: new  enter: open/complete  d: delete  /: search  q: quit")
	if m.syncStatus != "" {
		footer += "  " + m.theme.Dim.Render(m.syncStatus)
	}
	if m.status != "" {
		footer += "\n" + m.theme.Success.Render(m.status)
	}
	b.WriteString(footer)
	return b.String()
}

func (m Model) renderPane() string {
	switch m.active {
	case tabNotes:
		list := m.renderNotes()
		if m.preview.Width > 0 {
			return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", m.preview.View())
		}
		return list
	case tabTasks:
		return m.renderTasks()
	default:
		return m.renderRoutines()
	}
}

func (m Model) renderNotes() string {
	if len(m.notes) == 0 {
		return m.theme.Dim.Render("No notes yet. Press n to create one.")
	}
	var b strings.Builder
	for i, row := range m.notes {
		name := row.entry.Name
		if row.entry.IsDir {
			name += "/"
		}
		line := strings.Repeat("  ", row.depth) + name
		if i == m.cursor[tabNotes] {
			line = m.theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderTasks() string {
	if len(m.taskRows) == 0 {
		return m.theme.Dim.Render("No tasks yet. Press n to add one.")
	}
	var b strings.Builder
	for i, row := range m.taskRows {
		box := "☐"
		if row.task.Completed {
			box = "✓"
		}
		line := strings.Repeat("  ", row.depth) + box + " " + row.task.Title
		if row.task.Priority != "" {
			line += " " + m.theme.Dim.Render("("+string(row.task.Priority)+")")
		}
		if len(row.task.Subtasks) > 0 && !row.task.Expanded {
			line += m.theme.Dim.Render(fmt.Sprintf(" [+%d]", len(row.task.Subtasks)))
		}
		if i == m.cursor[tabTasks] {
			line = m.theme.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderRoutines() string {
	if len(m.routines) == 0 {
		return m.theme.Dim.Render("No routines yet. Press n to add one.")
	}
	now := time.Now()
	var b strings.Builder
	for i, r := range m.routines {
		due := "no due date"
		style := m.theme.Dim
		if r.NextDue != nil {
			due = "due " + r.NextDue.Format("Mon Jan 2")
			if r.Overdue(now) {
				style = m.theme.Overdue
				due = "overdue since " + r.NextDue.Format("Jan 2")
			}
		}
		line := fmt.Sprintf("%s  %s  %s", r.Title, style.Render(due),
			m.theme.Streak.Render(fmt.Sprintf("🔥 %d", r.Streak)))
		if i == m.cursor[tabRoutines] {
			line = m.theme.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m Model) renderHits() string {
	if m.hits == nil {
		return m.theme.Dim.Render("Type a query and press enter.")
	}
	if len(m.hits) == 0 {
		return m.theme.Dim.Render("No matches.")
	}
	var b strings.Builder
	for _, h := range m.hits {
		b.WriteString(fmt.Sprintf("%s %s", m.theme.Dim.Render("["+string(h.Kind)+"]"), h.Title))
		if h.Snippet != "" {
			b.WriteString("  " + m.theme.Dim.Render(h.Snippet))
		}
		b.WriteString("\n")
	}
	return b.String()
}
