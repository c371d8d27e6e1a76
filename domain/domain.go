package domain

// PeerStatus is the last observed liveness of a peer.
type PeerStatus string

const (
	StatusUp   PeerStatus = "UP"
	StatusDown PeerStatus = "DOWN"
)

// RouteDescriptor is one externally reachable endpoint of a service.
// Path is a template and may contain ":param" segments; Name is the logical
// handler identifier, unique per service.
type RouteDescriptor struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Name   string `json:"name"`
}

// ServiceDescriptor is what a node publishes about itself during registration.
type ServiceDescriptor struct {
	Name    string            `json:"name"`
	BaseURL string            `json:"url"`
	Routes  []RouteDescriptor `json:"routes"`
}

// FindRoute returns the route with the given logical name.
func (d ServiceDescriptor) FindRoute(name string) (RouteDescriptor, bool) {
	for _, r := range d.Routes {
		if r.Name == name {
			return r, true
		}
	}
	return RouteDescriptor{}, false
}

// PeerRecord is the local view of a remote service. Records are never deleted:
// a peer that stops answering is marked DOWN and may come back.
type PeerRecord struct {
	ServiceDescriptor
	Status PeerStatus `json:"status"`
	Reason string     `json:"reason,omitempty"` // last failure reason, empty while UP
}

// Clone returns a copy that does not share the routes slice.
func (p PeerRecord) Clone() PeerRecord {
	out := p
	out.Routes = append([]RouteDescriptor(nil), p.Routes...)
	return out
}
