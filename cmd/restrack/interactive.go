package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/multierr"

	"github.com/wippyai/resource-core/runtime"
)

type interactiveModel struct {
	err      error
	closeErr error
	rt       *runtime.Runtime
	world    *World
	status   string
	filename string
	entries  []Entry
	input    textinput.Model
	selected int
	state    modelState
}

type modelState int

const (
	stateBrowse modelState = iota
	stateRename
)

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err   error
	rt    *runtime.Runtime
	world *World
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadScenario
}

func (m *interactiveModel) loadScenario() tea.Msg {
	sc, err := LoadScenario(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	rt, err := runtime.New(runtime.DefaultConfig())
	if err != nil {
		return loadedMsg{err: err}
	}
	w, err := Build(rt, sc)
	if err != nil {
		return loadedMsg{err: multierr.Append(err, rt.Close())}
	}
	return loadedMsg{rt: rt, world: w}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateRename {
			return m.updateRename(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.rt != nil {
				m.closeErr = m.rt.Close()
			}
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}

		case "d":
			m.apply(Step{Action: ActionDispose, Target: m.current()})

		case "s":
			if e, ok := m.currentEntry(); ok && e.IsGroup {
				m.apply(Step{Action: ActionSeal, Group: e.Name})
			}

		case "r":
			if _, ok := m.currentEntry(); ok {
				ti := textinput.New()
				ti.Prompt = "name: "
				ti.Width = 40
				ti.Focus()
				m.input = ti
				m.state = stateRename
			}

		case "enter":
			m.showDependents()
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rt = msg.rt
		m.world = msg.world
		m.entries = m.world.Entries()
	}

	return m, nil
}

func (m *interactiveModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = stateBrowse
		return m, nil
	case "enter":
		m.state = stateBrowse
		m.apply(Step{Action: ActionRename, Target: m.current(), Name: m.input.Value()})
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) current() string {
	e, _ := m.currentEntry()
	return e.Name
}

func (m *interactiveModel) currentEntry() (Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return Entry{}, false
	}
	return m.entries[m.selected], true
}

func (m *interactiveModel) apply(st Step) {
	if m.world == nil || st.Target == "" && st.Group == "" {
		return
	}
	if err := m.world.Apply(st); err != nil {
		m.status = errorStyle.Render(err.Error())
	} else {
		m.status = passStyle.Render(describeStep(st))
	}
	m.entries = m.world.Entries()
}

func (m *interactiveModel) showDependents() {
	e, ok := m.currentEntry()
	if !ok || e.Disposed {
		return
	}
	names, err := m.world.DependentsOf(e.Name)
	switch {
	case err != nil:
		m.status = errorStyle.Render(err.Error())
	case len(names) == 0:
		m.status = helpStyle.Render(e.Name + " has no dependents")
	default:
		m.status = fmt.Sprintf("%s is needed by %s", nameStyle.Render(e.Name), strings.Join(names, ", "))
	}
}

func (m *interactiveModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.world == nil {
		return "Loading scenario..."
	}

	var b strings.Builder
	p := printer{w: &b, styled: true}

	b.WriteString(titleStyle.Render("Resource Tracker"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	for i, e := range m.entries {
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + p.formatEntry(e)))
		} else {
			b.WriteString("  " + p.formatEntry(e))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "edges: %d\n\n", m.rt.Tracker().EdgeCount())

	if m.state == stateRename {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
		return b.String()
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ select • enter dependents • d dispose • s seal • r rename • q quit"))
	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(*interactiveModel); ok {
		return m.closeErr
	}
	return nil
}
