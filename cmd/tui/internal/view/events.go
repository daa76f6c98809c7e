package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marqueehq/marquee/internal/event"
)

type EventsModel struct {
	CommonModel
	eventService *event.Service

	table   table.Model
	evs     []*event.Event
	loading bool
	err     error
}

func NewEventsModel(eventSvc *event.Service) EventsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Name", Width: 28},
		{Title: "Status", Width: 10},
		{Title: "Contracts", Width: 9},
		{Title: "Receivable", Width: 12},
		{Title: "Payable", Width: 12},
		{Title: "Net", Width: 12},
	}

	return EventsModel{
		eventService: eventSvc,
		table:        newDataTable(columns),
	}
}

func (m EventsModel) Title() string { return "Events" }
func (m EventsModel) ShortHelp() string {
	return "Esc: back | r: refresh"
}

func (m EventsModel) Init() tea.Cmd {
	return m.loadEventsCmd()
}

func (m EventsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadEventsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.evs = msg.evs
		m.refreshTable()
		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadEventsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m EventsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading events...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	tableView := tableBorder(m.table.View())

	total := int64(0)
	for _, ev := range m.evs {
		total += ev.NetRevenue
	}

	footer := lipgloss.NewStyle().Faint(true).Render(
		fmt.Sprintf("%d events, net revenue %s", len(m.evs), FormatNet(total)))

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left, tableView, footer))
}

func (m *EventsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.evs))
	for _, ev := range m.evs {
		rows = append(rows, table.Row{
			FormatDate(ev.EventDate),
			strings.TrimSpace(ev.Name),
			string(ev.Status),
			fmt.Sprintf("%d", len(ev.ContractIDs)),
			FormatAmount(ev.TotalReceivable),
			FormatAmount(ev.TotalPayable),
			FormatNet(ev.NetRevenue),
		})
	}
	m.table.SetRows(rows)
}

type loadEventsMsg struct {
	evs []*event.Event
	err error
}

func (m EventsModel) loadEventsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		evs, err := m.eventService.List(ctx, event.ListFilter{})
		return loadEventsMsg{evs: evs, err: err}
	}
}
