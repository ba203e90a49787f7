package resource

// EventType classifies lifecycle notifications.
type EventType uint8

const (
	EventDependencyRegistered EventType = iota
	EventDependencyDeregistered
	EventPrematureDisposal
	EventGroupCreated
	EventGroupResourceAdded
	EventGroupSealed
	EventGroupDisposed
	EventContainedDisposed
	EventResourceCreated
	EventResourceDisposed
	EventDependenciesErased
)

var eventNames = [...]string{
	EventDependencyRegistered:   "dependency_registered",
	EventDependencyDeregistered: "dependency_deregistered",
	EventPrematureDisposal:      "premature_disposal",
	EventGroupCreated:           "group_created",
	EventGroupResourceAdded:     "group_resource_added",
	EventGroupSealed:            "group_sealed",
	EventGroupDisposed:          "group_disposed",
	EventContainedDisposed:      "contained_disposed",
	EventResourceCreated:        "resource_created",
	EventResourceDisposed:       "resource_disposed",
	EventDependenciesErased:     "dependencies_erased",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a lifecycle notification.
//
// For dependency events Subject is the target and Related the dependent.
// For group events Subject is the group and Related the contained resource.
// Count carries the live dependent count for EventPrematureDisposal and the
// tracker's total edge count after the change for the other dependency events.
type Event struct {
	Subject Ident
	Related Ident
	Count   int
	Type    EventType
}

// Observer receives lifecycle notifications.
type Observer interface {
	OnResourceEvent(Event)
}

// Notifier fans events out to observers. A nil *Notifier drops events.
// It performs no locking; subscribe before sharing.
type Notifier struct {
	observers []Observer
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe adds an observer.
func (n *Notifier) Subscribe(o Observer) {
	n.observers = append(n.observers, o)
}

// Unsubscribe removes the first registration of o.
func (n *Notifier) Unsubscribe(o Observer) {
	for i, obs := range n.observers {
		if obs == o {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribed observers.
func (n *Notifier) Len() int {
	if n == nil {
		return 0
	}
	return len(n.observers)
}

// Notify delivers e to every observer in subscription order.
func (n *Notifier) Notify(e Event) {
	if n == nil {
		return
	}
	for _, o := range n.observers {
		o.OnResourceEvent(e)
	}
}
