package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/avencia/chatframe/chat"
	"github.com/avencia/chatframe/export"
	"github.com/avencia/chatframe/internal/config"
	"github.com/avencia/chatframe/internal/eventbus"
	"github.com/avencia/chatframe/speech"
)

// ChatService is the host core: it owns the canonical transcript, produces
// assistant replies, drives speech output, and answers export requests. The
// UI talks to it only through the event bus.
type ChatService struct {
	client   *openai.Client
	config   *config.Config
	state    *TranscriptState
	output   *speech.Output
	commands *CommandSet
	bus      *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewChatService creates a ChatService regardless of config validity, so
// there is always a core to manage state. Without a valid profile the
// assistant falls back to a local echo responder.
func NewChatService(cfg *config.Config, bus *eventbus.EventBus, synth speech.Synthesizer) *ChatService {
	var client *openai.Client
	if cfg.IsValid() {
		clientConfig := openai.DefaultConfig(cfg.GetAPIKey())
		if cfg.GetBaseURL() != "" {
			clientConfig.BaseURL = cfg.GetBaseURL()
		}
		client = openai.NewClientWithConfig(clientConfig)
	}

	ctx, cancel := context.WithCancel(context.Background())

	output := speech.NewOutput(synth)
	output.SetMuted(cfg.Chat.Muted)

	service := &ChatService{
		client:   client,
		config:   cfg,
		state:    NewTranscriptState(cfg.Policy(), cfg.Indicator()),
		output:   output,
		commands: BuiltinCommands(),
		bus:      bus,
		ctx:      ctx,
		cancel:   cancel,
	}

	service.addWelcomeEntities(cfg)
	return service
}

// Start runs the core event loop in a goroutine and pushes initial state.
func (cs *ChatService) Start() {
	cs.pushStateToUI()
	go cs.eventLoop()
}

// Stop cancels the event loop and silences speech output, as a suspended
// host would.
func (cs *ChatService) Stop() {
	cs.output.Suspend()
	cs.cancel()
}

// IsReady reports whether a configured assistant backend is available.
func (cs *ChatService) IsReady() bool {
	return cs.client != nil
}

func (cs *ChatService) eventLoop() {
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.bus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *ChatService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitEntityEvent:
		cs.processEntity(e.Entity)
	case eventbus.ToggleMuteEvent:
		cs.output.SetMuted(!cs.output.Muted())
		cs.pushStateToUI()
	case eventbus.ExportRequestEvent:
		cs.exportTranscript(e.Format)
	}
}

// processEntity appends the user's turn, speaks/stops as the trigger rules
// demand, and produces the assistant reply as a streamed entity that is
// replaced in place until complete.
func (cs *ChatService) processEntity(entity chat.Entity) {
	cs.state.StartProcessingWithUser(entity)
	cs.pushStateToUI()
	cs.output.Observe(cs.state.Snapshot())

	// Slash commands run locally and are recorded as tool interactions.
	if command, args, ok := cs.commands.Resolve(entity.Content); ok {
		cs.runCommand(command, args)
		return
	}

	// Bookkeeping note: invisible under the default policy, but present in
	// JSON/text exports and in the view when everything is shown. Appended
	// mid-turn so the transcript never ends on a hidden entity, which would
	// keep the automatic indicator on while idle.
	cs.state.Append(chat.NewHiddenEntity("bookkeeping", fmt.Sprintf("completion requested, %d entities", cs.state.Snapshot().Len())))
	cs.pushStateToUI()

	reply, err := cs.completeReply()
	if err != nil {
		cs.state.FinishWithError(err)
		cs.pushStateToUI()
		return
	}

	streaming := cs.state.BeginAssistantStream()
	cs.pushStateToUI()
	cs.state.FinishWithAssistant(streaming, reply)
	cs.pushStateToUI()
	cs.output.Observe(cs.state.Snapshot())
}

// runCommand executes a local command and records the invocation and its
// result as a tool call / tool response pair.
func (cs *ChatService) runCommand(command Command, args []string) {
	invocation := command.Name()
	if len(args) > 0 {
		invocation += " " + strings.Join(args, " ")
	}
	cs.state.Append(chat.NewEntity(chat.ToolCall, invocation))
	cs.pushStateToUI()

	result, err := command.Execute(cs.state, args)
	if err != nil {
		result = "error: " + err.Error()
	}
	cs.state.Append(chat.NewEntity(chat.ToolResponse, result))
	cs.state.SetProcessing(false)
	cs.pushStateToUI()
}

// completeReply asks the configured backend for a reply, or echoes locally
// when no profile is configured.
func (cs *ChatService) completeReply() (string, error) {
	if cs.client == nil {
		return cs.echoReply(), nil
	}

	req := openai.ChatCompletionRequest{
		Model:    cs.config.GetModel(),
		Messages: cs.toOpenAIMessages(),
	}
	resp, err := cs.client.CreateChatCompletion(cs.ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// echoReply is the offline responder used when no API profile is set.
func (cs *ChatService) echoReply() string {
	snapshot := cs.state.Snapshot()
	for i := snapshot.Len() - 1; i >= 0; i-- {
		e := snapshot.At(i)
		if e.Role == chat.User {
			return "(echo) " + e.Content
		}
	}
	return "(echo)"
}

// toOpenAIMessages converts the transcript to the wire format. Hidden
// bookkeeping stays local; tool interactions pass through as plain text so
// the backend sees the conversation the user saw.
func (cs *ChatService) toOpenAIMessages() []openai.ChatCompletionMessage {
	snapshot := cs.state.Snapshot()
	messages := make([]openai.ChatCompletionMessage, 0, snapshot.Len())
	for _, e := range snapshot.Entities() {
		var role string
		switch {
		case e.Role == chat.User:
			role = openai.ChatMessageRoleUser
		case e.Role == chat.Assistant:
			role = openai.ChatMessageRoleAssistant
		case e.Role == chat.System:
			role = openai.ChatMessageRoleSystem
		default:
			continue
		}
		if e.Content == "" {
			continue
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: e.Content,
		})
	}
	return messages
}

func (cs *ChatService) exportTranscript(format string) {
	opts := export.DefaultOptions()
	opts.OutputDir = "./exports"
	opts.Policy = cs.config.Policy()

	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		cs.sendExportResult("", err)
		return
	}
	path, err := export.ExportToFile(cs.state.Snapshot(), exporter, opts)
	cs.sendExportResult(path, err)
}

func (cs *ChatService) sendExportResult(path string, err error) {
	if busErr := cs.bus.SendToUI(eventbus.ExportResultEvent{Path: path, Error: err}); busErr != nil {
		log.Printf("send export result: %v", busErr)
	}
}

func (cs *ChatService) pushStateToUI() {
	event := eventbus.StateUpdateEvent{
		Lines:            cs.state.Lines(),
		IndicatorVisible: cs.state.IndicatorVisible(),
		Muted:            cs.output.Muted(),
		IsProcessing:     cs.state.IsProcessing(),
		Error:            cs.state.LastError(),
	}
	if err := cs.bus.SendToUI(event); err != nil {
		log.Printf("send state to UI: %v", err)
	}
}

func (cs *ChatService) addWelcomeEntities(cfg *config.Config) {
	cs.state.Append(chat.NewEntity(chat.System, "-- CHATFRAME --"))
	if cfg.IsValid() {
		cs.state.Append(chat.NewEntity(chat.System, fmt.Sprintf("Active Profile: %s [OK]", cfg.ActiveProfile)))
		cs.state.Append(chat.NewEntity(chat.System, "Ready to chat! Type your message and press Enter"))
	} else {
		cs.state.Append(chat.NewEntity(chat.System, fmt.Sprintf("Active Profile: %s [NOT CONFIGURED]", cfg.ActiveProfile)))
		cs.state.Append(chat.NewEntity(chat.System, strings.Join([]string{
			"Running with the offline echo responder. To configure:",
			"  chatframe profile add <name>",
			"  or edit ~/.chatframe/config.json",
		}, "\n")))
	}
	cs.state.Append(chat.NewEntity(chat.System, "Controls: enter send · ctrl+s mute · ctrl+o expand tools · ctrl+e export · ctrl+c quit · /help for commands"))
}
