package dispatcher

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avencia/chatframe/internal/eventbus"
	"github.com/avencia/chatframe/internal/update"
)

// EventDispatcher bridges the core side of the event bus into Bubble Tea
// messages.
type EventDispatcher struct {
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewEventDispatcher(eventBus *eventbus.EventBus) *EventDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &EventDispatcher{
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// ListenForCoreEvents returns a command that blocks until the core emits an
// event, then delivers it to Update as a CoreEventMsg. The caller re-issues
// the command after each delivery to keep the stream flowing.
func (ed *EventDispatcher) ListenForCoreEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ed.ctx.Done():
			return nil
		case event, ok := <-ed.eventBus.CoreToUI():
			if !ok {
				return nil
			}
			return update.CoreEventMsg{Event: event}
		}
	}
}

func (ed *EventDispatcher) Stop() {
	ed.cancel()
}

func (ed *EventDispatcher) GetEventBus() *eventbus.EventBus {
	return ed.eventBus
}
