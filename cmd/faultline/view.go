package main

// view.go — interactive browser over an analysed fault tree. A gate table
// opens first; enter drills into the selected gate's minimal cut sets, tab
// flips between cut sets and contributions, and esc backs out.

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"faultline/internal/format"
	"faultline/internal/tree"
)

func runView(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: faultline view <ft.txt>")
	}
	ft, config, err := buildFromFile(args[0])
	if err != nil {
		return err
	}
	m := newViewModel(ft, config.SignificantFigures())
	_, err = tea.NewProgram(m).Run()
	return err
}

const tableHeight = 14

type viewModel struct {
	ft                 *tree.FaultTree
	significantFigures int

	gates         table.Model
	cutSets       table.Model
	contributions table.Model

	// gateID is the gate whose detail is showing, or "" for the gate table.
	gateID string

	// showContributions flips the detail view between the gate's cut sets
	// and its per-event contributions.
	showContributions bool
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	styles.Selected = styles.Selected.Reverse(true)
	return styles
}

func newViewModel(ft *tree.FaultTree, significantFigures int) viewModel {
	columns := []table.Column{
		{Title: "gate", Width: 24},
		{Title: "type", Width: 4},
		{Title: "top", Width: 5},
		{Title: "quantity", Width: 12},
		{Title: "unit", Width: 13},
		{Title: "cut sets", Width: 8},
	}

	gates := append([]*tree.Gate(nil), ft.Gates...)
	sort.Slice(gates, func(i, j int) bool {
		if gates[i].IsTop != gates[j].IsTop {
			return gates[i].IsTop
		}
		return gates[i].ID < gates[j].ID
	})

	rows := make([]table.Row, len(gates))
	for i, gate := range gates {
		top := ""
		if gate.IsTop {
			top = "yes"
		}
		rows[i] = table.Row{
			gate.ID,
			gate.Type.String(),
			top,
			format.Dull(gate.Quantity, significantFigures),
			ft.QuantityUnit(gate.Tome.Kind),
			strconv.Itoa(len(gate.CutSets)),
		}
	}

	gatesTable := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	gatesTable.SetStyles(tableStyles())

	return viewModel{
		ft:                 ft,
		significantFigures: significantFigures,
		gates:              gatesTable,
	}
}

// cutSetTable builds the drill-down table for one gate.
func (m viewModel) cutSetTable(gateID string) table.Model {
	gate := m.ft.GateByID[gateID]
	columns := []table.Column{
		{Title: "cut set", Width: 40},
		{Title: "order", Width: 5},
		{Title: "quantity", Width: 12},
		{Title: "unit", Width: 13},
	}
	rows := make([]table.Row, len(gate.CutSets))
	for i, cutSet := range gate.CutSets {
		rows[i] = table.Row{
			m.ft.CutSetID(cutSet),
			strconv.Itoa(len(cutSet.Indices)),
			format.Dull(cutSet.Quantity, m.significantFigures),
			m.ft.QuantityUnit(gate.Tome.Kind),
		}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	t.SetStyles(tableStyles())
	return t
}

// contributionTable builds the per-event contribution table for one gate,
// sorted by descending contribution, then event id.
func (m viewModel) contributionTable(gateID string) table.Model {
	gate := m.ft.GateByID[gateID]
	columns := []table.Column{
		{Title: "event", Width: 24},
		{Title: "contribution", Width: 12},
		{Title: "unit", Width: 13},
		{Title: "importance", Width: 10},
	}

	events := append([]*tree.Event(nil), m.ft.Events...)
	sort.Slice(events, func(i, j int) bool {
		a := gate.Contributions[events[i].Index]
		b := gate.Contributions[events[j].Index]
		if a != b {
			return a > b
		}
		return events[i].ID < events[j].ID
	})

	rows := make([]table.Row, len(events))
	for i, event := range events {
		rows[i] = table.Row{
			event.ID,
			format.Dull(gate.Contributions[event.Index], m.significantFigures),
			m.ft.QuantityUnit(gate.Tome.Kind),
			format.Dull(gate.Importances[event.Index], m.significantFigures),
		}
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)
	t.SetStyles(tableStyles())
	return t
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.gateID == "" && len(m.gates.Rows()) > 0 {
				m.gateID = m.gates.SelectedRow()[0]
				m.showContributions = false
				m.cutSets = m.cutSetTable(m.gateID)
				m.contributions = m.contributionTable(m.gateID)
				return m, nil
			}
		case "tab":
			if m.gateID != "" {
				m.showContributions = !m.showContributions
				return m, nil
			}
		case "esc":
			if m.gateID != "" {
				m.gateID = ""
				return m, nil
			}
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	switch {
	case m.gateID == "":
		m.gates, cmd = m.gates.Update(msg)
	case m.showContributions:
		m.contributions, cmd = m.contributions.Update(msg)
	default:
		m.cutSets, cmd = m.cutSets.Update(msg)
	}
	return m, cmd
}

func (m viewModel) View() string {
	if m.gateID == "" {
		return fmt.Sprintf(
			"Gates\n\n%s\n\nenter: cut sets · q: quit\n",
			m.gates.View(),
		)
	}
	if m.showContributions {
		return fmt.Sprintf(
			"Contributions to %s\n\n%s\n\ntab: cut sets · esc: back · q: quit\n",
			m.gateID, m.contributions.View(),
		)
	}
	return fmt.Sprintf(
		"Minimal cut sets of %s\n\n%s\n\ntab: contributions · esc: back · q: quit\n",
		m.gateID, m.cutSets.View(),
	)
}
