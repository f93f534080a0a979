package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCursorMoved     EventType = "CursorMoved"
	EventWindowChanged   EventType = "WindowChanged"
	EventViewportResized EventType = "ViewportResized"
	EventRedraw          EventType = "Redraw"
	EventKeyUnbound      EventType = "KeyUnbound"
	EventAccepted        EventType = "Accepted"
	EventAcceptIgnored   EventType = "AcceptIgnored"
	EventQuit            EventType = "Quit"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
	EventScanCompleted   EventType = "ScanCompleted"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CursorMovedEvent is emitted when the highlighted element changes
type CursorMovedEvent struct {
	OldIndex int
	NewIndex int
}

func (e CursorMovedEvent) Type() EventType { return EventCursorMoved }

// WindowChangedEvent is emitted when the visible range scrolls or changes size.
// End is inclusive and is Start-1 for an empty list.
type WindowChangedEvent struct {
	Start  int
	End    int
	Height int
}

func (e WindowChangedEvent) Type() EventType { return EventWindowChanged }

// ViewportResizedEvent is emitted when the event loop sees a terminal resize
type ViewportResizedEvent struct {
	Width  int
	Height int
}

func (e ViewportResizedEvent) Type() EventType { return EventViewportResized }

// RedrawEvent is emitted after a frame is painted
type RedrawEvent struct {
	Full bool
	Rows []int // rows repainted; every row when Full
}

func (e RedrawEvent) Type() EventType { return EventRedraw }

// KeyUnboundEvent is emitted for key presses that map to no action
type KeyUnboundEvent struct {
	Key string
}

func (e KeyUnboundEvent) Type() EventType { return EventKeyUnbound }

// AcceptedEvent is emitted when the user accepts the current element
type AcceptedEvent struct {
	Index   int
	Element string
}

func (e AcceptedEvent) Type() EventType { return EventAccepted }

// AcceptIgnoredEvent is emitted when accept is pressed with nothing to select
type AcceptIgnoredEvent struct {
	Reason string
}

func (e AcceptIgnoredEvent) Type() EventType { return EventAcceptIgnored }

// QuitEvent is emitted when the session is abandoned
type QuitEvent struct{}

func (e QuitEvent) Type() EventType { return EventQuit }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path    string
	Default bool // true when no file existed and defaults were used
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ScanCompletedEvent is emitted when a directory listing finishes
type ScanCompletedEvent struct {
	Root    string
	Found   int
	Skipped int // unreadable entries
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }
