package app

import (
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/input"
	"github.com/avencia/chatframe/internal/config"
	"github.com/avencia/chatframe/internal/core"
	"github.com/avencia/chatframe/internal/dispatcher"
	"github.com/avencia/chatframe/internal/eventbus"
	"github.com/avencia/chatframe/internal/models"
	"github.com/avencia/chatframe/ui/styles"
)

// Application manages the complete application lifecycle
type Application struct {
	config     *config.Config
	eventBus   *eventbus.EventBus
	dispatcher *dispatcher.EventDispatcher
	service    *core.ChatService
	model      *AppModel
}

type AppModel struct {
	appModel   models.AppModel
	markdown   bool
	dispatcher *dispatcher.EventDispatcher
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return nil, err
	}

	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)

	// Always create the service; without a valid profile it answers with
	// the offline echo responder.
	chatService := core.NewChatService(cfg, eb, newSpeechLog())

	coordinator := input.NewCoordinator(nil, cfg.TriggerPhrase(), func(e chat.Entity) {
		if err := eb.SendToCore(eventbus.SubmitEntityEvent{Entity: e}); err != nil {
			log.Printf("submit entity: %v", err)
		}
	})

	model := &AppModel{
		appModel:   createInitialAppModel(coordinator),
		markdown:   cfg.Chat.Markdown,
		dispatcher: disp,
	}

	return &Application{
		config:     cfg,
		eventBus:   eb,
		dispatcher: disp,
		service:    chatService,
		model:      model,
	}, nil
}

func (app *Application) Start() error {
	app.service.Start()

	p := tea.NewProgram(app.model, tea.WithAltScreen())
	_, err := p.Run()

	return err
}

func (app *Application) Stop() {
	app.model.appModel.Coordinator.StopVoice()
	app.service.Stop()
	app.dispatcher.Stop()
	app.eventBus.Close()
}

func createInitialAppModel(coordinator *input.Coordinator) models.AppModel {
	field := textinput.New()
	field.Placeholder = "Type a message"
	field.Prompt = "> "
	field.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = styles.IndicatorStyle()

	// Transcript lines arrive from the core as the single source of truth.
	return models.AppModel{
		Lines:         nil,
		Status:        "Ready",
		Expanded:      make(map[string]bool),
		Coordinator:   coordinator,
		Input:         field,
		Viewport:      viewport.New(0, 0),
		Spinner:       sp,
		BottomPadding: 4,
	}
}
