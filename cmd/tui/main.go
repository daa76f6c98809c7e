package main

import (
	"context"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/marqueehq/marquee/cmd/tui/internal/view"
	"github.com/marqueehq/marquee/internal/config"
	"github.com/marqueehq/marquee/internal/contract"
	contractStore "github.com/marqueehq/marquee/internal/contract/store"
	counterpartyStore "github.com/marqueehq/marquee/internal/counterparty/store"
	"github.com/marqueehq/marquee/internal/docstore"
	"github.com/marqueehq/marquee/internal/event"
	eventStore "github.com/marqueehq/marquee/internal/event/store"
	paymentStore "github.com/marqueehq/marquee/internal/payment/store"
)

type model struct {
	contractService *contract.Service
	eventService    *event.Service

	currentView View

	contractsView view.ContractsModel
	eventsView    view.EventsModel
}

type View int

const (
	ViewMenu      View = 0
	ViewContracts View = 1
	ViewEvents    View = 2
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	client, err := firestore.NewClient(context.Background(), cfg.Firestore.ProjectID)
	if err != nil {
		slog.Error("failed to connect to firestore", "error", err)
		os.Exit(1)
	}

	db := docstore.NewFirestore(client)

	contractSvc := contract.NewService(contractStore.New(db), paymentStore.New(db), counterpartyStore.New(db))
	eventSvc := event.NewService(eventStore.New(db))

	return model{
		contractService: contractSvc,
		eventService:    eventSvc,
		currentView:     ViewMenu,
		contractsView:   view.NewContractsModel(contractSvc),
		eventsView:      view.NewEventsModel(eventSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewContracts
				m.contractsView = view.NewContractsModel(m.contractService)

				return m, m.contractsView.Init()
			case "2":
				m.currentView = ViewEvents
				m.eventsView = view.NewEventsModel(m.eventService)

				return m, m.eventsView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewContracts:
		var newModel tea.Model
		newModel, cmd = m.contractsView.Update(msg)
		m.contractsView = newModel.(view.ContractsModel)
	case ViewEvents:
		var newModel tea.Model
		newModel, cmd = m.eventsView.Update(msg)
		m.eventsView = newModel.(view.EventsModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Marquee TUI\n\n" +
				"1. Contracts\n" +
				"2. Events\n\n" +
				"q. Quit",
		)
	case ViewContracts:
		return m.contractsView.View()
	case ViewEvents:
		return m.eventsView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
