package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Bold(true)
	unselectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

// Option is one selectable preset in the picker.
type Option struct {
	// Name is the preset filename, e.g. "golang.md".
	Name string

	// Repo describes where the preset comes from, shown dimmed.
	Repo string

	// Selected marks the option as pre-checked.
	Selected bool
}

// SelectionResult contains the outcome of the picker
type SelectionResult struct {
	Selected  []Option // checked options, in display order
	Cancelled bool
}

// pickerModel is the bubbletea model for multi-select preset picking
type pickerModel struct {
	options   []Option
	filtered  []int // indexes into options
	checked   map[int]bool
	textInput textinput.Model
	cursor    int
	confirmed bool
	cancelled bool
	maxHeight int
}

func newPickerModel(options []Option) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40
	ti.PromptStyle = cursorStyle
	ti.TextStyle = lipgloss.NewStyle()

	checked := make(map[int]bool)
	for i, opt := range options {
		if opt.Selected {
			checked[i] = true
		}
	}

	return pickerModel{
		options:   options,
		filtered:  filterOptions(options, ""),
		checked:   checked,
		textInput: ti,
		maxHeight: 10,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			m.confirmed = true
			return m, tea.Quit

		case " ", "tab":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				idx := m.filtered[m.cursor]
				m.checked[idx] = !m.checked[idx]
			}
			return m, nil

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)

	m.filtered = filterOptions(m.options, m.textInput.Value())
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}

	return m, cmd
}

// filterOptions returns the indexes of options matching query, ranked by
// fuzzy match quality. An empty query keeps the original order.
func filterOptions(options []Option, query string) []int {
	if query == "" {
		all := make([]int, len(options))
		for i := range options {
			all[i] = i
		}
		return all
	}

	names := make([]string, len(options))
	for i, opt := range options {
		names[i] = opt.Name
	}

	matches := fuzzy.Find(query, names)
	filtered := make([]int, len(matches))
	for i, match := range matches {
		filtered[i] = match.Index
	}
	return filtered
}

func (m pickerModel) View() string {
	var sb strings.Builder

	sb.WriteString("Select presets:\n")
	sb.WriteString(m.textInput.View())
	sb.WriteString("\n\n")

	if len(m.filtered) == 0 {
		sb.WriteString(dimStyle.Render("  No matches found"))
		sb.WriteString("\n")
	} else {
		start := 0
		end := len(m.filtered)
		if end > m.maxHeight {
			halfHeight := m.maxHeight / 2
			start = m.cursor - halfHeight
			if start < 0 {
				start = 0
			}
			end = start + m.maxHeight
			if end > len(m.filtered) {
				end = len(m.filtered)
				start = max(0, end-m.maxHeight)
			}
		}

		for i := start; i < end; i++ {
			opt := m.options[m.filtered[i]]

			check := "[ ]"
			if m.checked[m.filtered[i]] {
				check = "[x]"
			}
			line := fmt.Sprintf("%s %s", check, opt.Name)
			if opt.Repo != "" {
				line += " " + dimStyle.Render("("+opt.Repo+")")
			}

			if i == m.cursor {
				sb.WriteString(cursorStyle.Render("> "))
				sb.WriteString(selectedStyle.Render(line))
			} else {
				sb.WriteString("  ")
				sb.WriteString(unselectedStyle.Render(line))
			}
			sb.WriteString("\n")
		}

		if len(m.filtered) > m.maxHeight {
			sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  %d/%d", m.cursor+1, len(m.filtered))))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("↑/↓ navigate • space toggle • enter confirm • esc cancel"))

	return sb.String()
}

// RunPicker shows an interactive multi-select picker for presets.
// Returns the chosen filenames, or Cancelled when the user backed out.
func RunPicker(options []Option) (*SelectionResult, error) {
	if len(options) == 0 {
		return &SelectionResult{Cancelled: true}, nil
	}

	model := newPickerModel(options)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := finalModel.(pickerModel)
	if m.cancelled {
		return &SelectionResult{Cancelled: true}, nil
	}

	var selected []Option
	for i, opt := range m.options {
		if m.checked[i] {
			selected = append(selected, opt)
		}
	}
	return &SelectionResult{Selected: selected}, nil
}
