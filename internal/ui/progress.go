// Package ui renders build progress in the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wss/internal/buildpipeline"
)

// stageInfo is how a working stage is shown and how far along it puts a
// file.
type stageInfo struct {
	label  string
	weight float64
}

var stageTable = map[buildpipeline.Stage]stageInfo{
	buildpipeline.StageParse:  {"parsing", 0.25},
	buildpipeline.StageScopes: {"scoping", 0.5},
	buildpipeline.StageEmit:   {"emitting", 0.75},
	buildpipeline.StageWrite:  {"writing", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

const statusWidth = 10

type fileState struct {
	path   string
	stage  buildpipeline.Stage
	status buildpipeline.Status
	err    error
}

// finished reports whether the file needs no more work.
func (f fileState) finished() bool {
	return f.status == buildpipeline.StatusError ||
		(f.status == buildpipeline.StatusDone && f.stage == buildpipeline.StageWrite)
}

func (f fileState) label() string {
	if f.status == buildpipeline.StatusWorking {
		if info, ok := stageTable[f.stage]; ok {
			return info.label
		}
	}
	return string(f.status)
}

func (f fileState) style() lipgloss.Style {
	switch f.status {
	case buildpipeline.StatusDone:
		return doneStyle
	case buildpipeline.StatusError:
		return errorStyle
	case buildpipeline.StatusWorking:
		return workingStyle
	}
	return idleStyle
}

type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	bar     progress.Model
	files   []fileState
	byPath  map[string]int
	// phase is the label of the last pipeline-wide stage event.
	phase string
	width int
	done  bool
}

type (
	eventMsg buildpipeline.Event
	doneMsg  struct{}
)

// NewProgressModel returns a Bubble Tea model that follows the events of one
// build until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	m := &progressModel{
		title:   title,
		events:  events,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(76)),
		files:   make([]fileState, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, path := range files {
		m.files[i] = fileState{path: path, status: buildpipeline.StatusQueued}
		m.byPath[path] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(buildpipeline.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// next waits for the following pipeline event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) apply(ev buildpipeline.Event) tea.Cmd {
	if ev.File == "" {
		if info, ok := stageTable[ev.Stage]; ok && ev.Status == buildpipeline.StatusWorking {
			m.phase = info.label
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	m.files[i].stage = ev.Stage
	m.files[i].status = ev.Status
	m.files[i].err = ev.Err
	return m.bar.SetPercent(m.percent())
}

// percent averages per-file progress.
func (m *progressModel) percent() float64 {
	if len(m.files) == 0 {
		return 0
	}
	var total float64
	for _, f := range m.files {
		if f.finished() {
			total++
			continue
		}
		total += stageTable[f.stage].weight
	}
	return total / float64(len(m.files))
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header += " (" + m.phase + ")"
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-4, 20)
	written := 0
	for _, f := range m.files {
		if f.finished() && f.err == nil {
			written++
		}
		fmt.Fprintf(&b, "  %s %s\n", f.style().Render(fmt.Sprintf("%*s", statusWidth, f.label())), truncate(f.path, nameWidth))
		if f.err != nil {
			fmt.Fprintf(&b, "  %*s %s\n", statusWidth, "", errorStyle.Render(truncate(f.err.Error(), nameWidth)))
		}
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	fmt.Fprintf(&b, "\n%d/%d files\n", written, len(m.files))
	return b.String()
}

// truncate shortens value to width display cells, marking the cut with
// "..." when there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
