package handlers

import (
	"mymesh/domain"
)

// toServiceInfo converts a domain descriptor to its wire form.
func toServiceInfo(d domain.ServiceDescriptor) ServiceInfo {
	routes := make([]RouteInfo, 0, len(d.Routes))
	for _, r := range d.Routes {
		routes = append(routes, RouteInfo{
			Path:   r.Path,
			Method: r.Method,
			Name:   r.Name,
		})
	}
	return ServiceInfo{Name: d.Name, Url: d.BaseURL, Routes: routes}
}

// toServicesResponse converts self and the peer snapshot to API response.
func toServicesResponse(self domain.ServiceDescriptor, peers map[string]domain.PeerRecord) ServicesResponse {
	out := make(map[string]PeerInfo, len(peers))
	for name, p := range peers {
		out[name] = PeerInfo{
			ServiceInfo: toServiceInfo(p.ServiceDescriptor),
			Status:      string(p.Status),
			Reason:      p.Reason,
		}
	}
	return ServicesResponse{ThisService: toServiceInfo(self), ConnectedPeers: out}
}
