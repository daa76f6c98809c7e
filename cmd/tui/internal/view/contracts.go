package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/marqueehq/marquee/internal/contract"
)

type contractsState int

const (
	contractsStateBrowse contractsState = iota
	contractsStateToggle
)

type ContractsModel struct {
	CommonModel
	contractService *contract.Service

	state contractsState
	table table.Model
	cs    []*contract.Contract
	form  *huh.Form

	// Filter cycling
	typeFilterIdx   int
	statusFilterIdx int

	filter  contract.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formPaid   bool
	formPaidBy string
}

func NewContractsModel(contractSvc *contract.Service) ContractsModel {
	columns := []table.Column{
		{Title: "Start", Width: 12},
		{Title: "Type", Width: 18},
		{Title: "Counterparty", Width: 24},
		{Title: "Event", Width: 20},
		{Title: "Dir", Width: 10},
		{Title: "Status", Width: 8},
		{Title: "Value", Width: 12},
	}

	return ContractsModel{
		contractService: contractSvc,
		table:           newDataTable(columns),
		filter:          contract.ListFilter{},
	}
}

func (m ContractsModel) Title() string { return "Contracts" }
func (m ContractsModel) ShortHelp() string {
	if m.state == contractsStateToggle {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | p: toggle paid | t: type filter | s: status filter | r: refresh"
}

func (m ContractsModel) Init() tea.Cmd {
	return m.loadContractsCmd()
}

func (m ContractsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadContractsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.cs = msg.cs
		m.status = ""
		m.refreshTable()
		return m, nil

	case contractSaveMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		}
		m.state = contractsStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadContractsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case contractsStateBrowse:
		return m.updateBrowse(msg)
	case contractsStateToggle:
		return m.updateToggle(msg)
	}

	return m, nil
}

func (m ContractsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadContractsCmd()
		case "p":
			return m.enterToggleMode()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % (len(contract.Types()) + 1)
			m.applyFilter()
			return m, m.loadContractsCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 3
			m.applyFilter()
			return m, m.loadContractsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ContractsModel) enterToggleMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cs) {
		return m, nil
	}

	c := m.cs[idx]
	m.formPaid = c.PaymentStatus != contract.StatusPaid
	m.formPaidBy = ""

	fields := []huh.Field{
		huh.NewConfirm().
			Key("paid").
			Title(fmt.Sprintf("Mark %q as paid?", c.CounterpartyName)).
			Value(&m.formPaid),
	}

	if m.formPaid {
		fields = append(fields, huh.NewInput().
			Key("paid_by").
			Title("Paid by (uid)").
			Value(&m.formPaidBy).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("a paid contract needs a paid-by uid")
				}
				return nil
			}))
	}

	m.form = huh.NewForm(huh.NewGroup(fields...)).WithWidth(45).WithShowHelp(false)

	m.state = contractsStateToggle
	m.table.Blur()
	return m, m.form.Init()
}

func (m ContractsModel) updateToggle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = contractsStateBrowse
			m.form = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m ContractsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading contracts...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Paid", "Unpaid"}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [s] Status: %s",
		activeStyle(m.typeFilterLabel()),
		activeStyle(statusLabels[m.statusFilterIdx]),
	)

	tableView := tableBorder(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == contractsStateToggle && m.form != nil {
		idx := m.table.Cursor()
		eventName := ""
		if idx >= 0 && idx < len(m.cs) {
			eventName = m.cs[idx].EventName
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(
				fmt.Sprintf("Payment Status\n\nEvent: %s\n\n%s", eventName, m.form.View()),
			)

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m ContractsModel) typeFilterLabel() string {
	if m.typeFilterIdx == 0 {
		return "All"
	}

	return string(contract.Types()[m.typeFilterIdx-1])
}

func (m *ContractsModel) applyFilter() {
	if m.typeFilterIdx == 0 {
		m.filter.Types = nil
	} else {
		m.filter.Types = []contract.Type{contract.Types()[m.typeFilterIdx-1]}
	}

	switch m.statusFilterIdx {
	case 1:
		m.filter.PaymentStatus = new(contract.StatusPaid)
	case 2:
		m.filter.PaymentStatus = new(contract.StatusUnpaid)
	default:
		m.filter.PaymentStatus = nil
	}
}

func (m *ContractsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.cs))
	for _, c := range m.cs {
		rows = append(rows, table.Row{
			FormatDate(c.StartDate),
			string(c.Type),
			c.CounterpartyName,
			c.EventName,
			string(c.PaymentDirection),
			string(c.PaymentStatus),
			FormatAmount(c.ContractValue),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadContractsMsg struct {
	cs  []*contract.Contract
	err error
}

func (m ContractsModel) loadContractsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		cs, err := m.contractService.List(ctx, m.filter)
		return loadContractsMsg{cs: cs, err: err}
	}
}

type contractSaveMsg struct {
	err error
}

func (m ContractsModel) saveCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cs) {
		return nil
	}

	c := m.cs[idx]
	paid := m.formPaid
	paidBy := m.formPaidBy

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if _, err := m.contractService.SetPaymentStatus(ctx, c.Type, c.ID, paid, paidBy); err != nil {
			return contractSaveMsg{err: err}
		}

		return contractSaveMsg{}
	}
}
