package handlers

// RouteInfo is the wire form of domain.RouteDescriptor.
type RouteInfo struct {
	Path   string `json:"path"`
	Method string `json:"method"`
	Name   string `json:"name"`
}

// ServiceInfo is the wire form of domain.ServiceDescriptor; it is both the register request body
// and the register response body.
type ServiceInfo struct {
	Name   string      `json:"name"`
	Url    string      `json:"url"`
	Routes []RouteInfo `json:"routes"`
}

// RegisterRequest is the body of POST {prefix}/register.
type RegisterRequest = ServiceInfo

// PeerInfo is the wire form of domain.PeerRecord.
type PeerInfo struct {
	ServiceInfo
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// ServicesResponse is the body of GET {prefix}/services.
type ServicesResponse struct {
	ThisService    ServiceInfo         `json:"thisService"`
	ConnectedPeers map[string]PeerInfo `json:"connectedPeers"`
}

// PingResponse is the body of POST {prefix}/ping.
type PingResponse struct {
	Status string `json:"status"`
}
