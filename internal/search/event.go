package search

import "context"

// EventType identifies an outbound message kind
type EventType string

const (
	EventStatus    EventType = "status"
	EventNodeAdded EventType = "node_added"
	EventLinkAdded EventType = "link_added"
	EventPathFound EventType = "path_found"
)

// Node is a discovered page
type Node struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Depth int    `json:"depth"`
}

// Link is a discovered parent->child edge
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Event is a single message streamed to the observer
type Event struct {
	Type EventType `json:"type"`
	Msg  string    `json:"msg,omitempty"`
	Node *Node     `json:"node,omitempty"`
	Link *Link     `json:"link,omitempty"`
	Path []string  `json:"path,omitempty"`
	Time *float64  `json:"time,omitempty"` // seconds
}

// Emitter delivers events in order. Any error is fatal to the run.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// EmitterFunc adapts a function to the Emitter interface
type EmitterFunc func(ctx context.Context, event Event) error

// Emit calls f(ctx, event)
func (f EmitterFunc) Emit(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// StatusEvent builds a status message
func StatusEvent(msg string) Event {
	return Event{Type: EventStatus, Msg: msg}
}

func nodeEvent(id, title string, depth int) Event {
	return Event{Type: EventNodeAdded, Node: &Node{ID: id, Title: title, Depth: depth}}
}

func linkEvent(source, target string) Event {
	return Event{Type: EventLinkAdded, Link: &Link{Source: source, Target: target}}
}

func pathEvent(path []string, elapsed *float64) Event {
	return Event{Type: EventPathFound, Path: path, Time: elapsed}
}
