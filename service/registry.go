package service

import (
	"context"
	"sync"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

const (
	// DefaultPingInterval is the health-check cadence when none is configured.
	DefaultPingInterval = 5 * time.Second
	// DefaultProbeTimeout bounds a single ping.
	DefaultProbeTimeout = 2 * time.Second
)

// UpHook is invoked on every transition of a peer to UP.
type UpHook func(name string, record domain.PeerRecord)

// DownHook is invoked on every transition of a peer to DOWN.
type DownHook func(name string, record domain.PeerRecord, reason string)

// RegistryConfig configures a Registry. Zero durations fall back to the defaults; ProbeTimeout is clamped
// to half of PingInterval when it is not strictly shorter.
type RegistryConfig struct {
	PingInterval  time.Duration
	ProbeTimeout  time.Duration
	OnServiceUp   UpHook
	OnServiceDown DownHook
}

// Registry holds the local view of every known peer. It runs the registration handshake against seed peers
// and the periodic health checks; transitions are edge-triggered and fire the configured hooks once each.
// All mutations of peers go through Register, MarkDown and the health-check transitions.
type Registry struct {
	transport    interfaces.PeerTransport
	pingInterval time.Duration
	probeTimeout time.Duration
	onUp         UpHook
	onDown       DownHook
	logger       log.Logger

	mu           sync.RWMutex
	self         domain.ServiceDescriptor
	routesLoaded bool
	peers        map[string]*domain.PeerRecord
}

// NewRegistry creates a Registry for self. Panics on empty self name or nil transport/logger.
func NewRegistry(self domain.ServiceDescriptor, transport interfaces.PeerTransport, cfg RegistryConfig, logger log.Logger) *Registry {
	helpers.StrPanic(self.Name, "service.registry.go: self name is required")

	pingInterval := cfg.PingInterval
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	probeTimeout := cfg.ProbeTimeout
	if probeTimeout <= 0 {
		probeTimeout = DefaultProbeTimeout
	}
	if probeTimeout >= pingInterval {
		probeTimeout = pingInterval / 2
	}
	onUp := cfg.OnServiceUp
	if onUp == nil {
		onUp = func(string, domain.PeerRecord) {}
	}
	onDown := cfg.OnServiceDown
	if onDown == nil {
		onDown = func(string, domain.PeerRecord, string) {}
	}

	self.Routes = append([]domain.RouteDescriptor{}, self.Routes...)
	return &Registry{
		transport:    helpers.NilPanic(transport, "service.registry.go: transport is required"),
		pingInterval: pingInterval,
		probeTimeout: probeTimeout,
		onUp:         onUp,
		onDown:       onDown,
		logger:       log.WithPrefix(helpers.NilPanic(logger, "service.registry.go: logger is required"), "component", "Registry"),
		self:         self,
		routesLoaded: len(self.Routes) > 0,
		peers:        make(map[string]*domain.PeerRecord),
	}
}

// Self returns a copy of the local descriptor.
func (r *Registry) Self() domain.ServiceDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.self
	out.Routes = append([]domain.RouteDescriptor{}, r.self.Routes...)
	return out
}

// PublishRoutes populates the local route table. Routes are write-once: a second call returns
// bad_parameter and leaves the table unchanged.
func (r *Registry) PublishRoutes(routes []domain.RouteDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.routesLoaded {
		return NewBadParameterError("routes already published", nil)
	}
	r.self.Routes = append([]domain.RouteDescriptor{}, routes...)
	r.routesLoaded = true
	return nil
}

// Register applies an incoming descriptor and returns self so the caller can complete the handshake.
// A descriptor carrying the local name is ignored. An unseen or DOWN peer becomes UP and fires the up hook;
// an UP peer is refreshed silently.
// Returns bad_parameter when name or url is missing.
func (r *Registry) Register(incoming domain.ServiceDescriptor) (domain.ServiceDescriptor, error) {
	if incoming.Name == "" {
		return domain.ServiceDescriptor{}, NewBadParameterError("name is required", nil)
	}
	if incoming.BaseURL == "" {
		return domain.ServiceDescriptor{}, NewBadParameterError("url is required", nil)
	}

	self := r.Self()
	if incoming.Name == self.Name {
		level.Debug(r.logger).Log("msg", "Ignoring self registration", "service", incoming.Name)
		return self, nil
	}

	record := domain.PeerRecord{
		ServiceDescriptor: domain.ServiceDescriptor{
			Name:    incoming.Name,
			BaseURL: incoming.BaseURL,
			Routes:  append([]domain.RouteDescriptor{}, incoming.Routes...),
		},
		Status: domain.StatusUp,
	}

	r.mu.Lock()
	existing, known := r.peers[incoming.Name]
	transition := !known || existing.Status == domain.StatusDown
	r.peers[incoming.Name] = &record
	snapshot := record.Clone()
	r.mu.Unlock()

	if transition {
		if known {
			level.Info(r.logger).Log("msg", "Service has come back online", "service", incoming.Name, "url", incoming.BaseURL)
		} else {
			level.Info(r.logger).Log("msg", "New service discovered", "service", incoming.Name, "url", incoming.BaseURL)
		}
		r.onUp(incoming.Name, snapshot)
	}
	return self, nil
}

// DiscoverPeers registers self against every seed URL in order. A failing seed is logged and skipped.
func (r *Registry) DiscoverPeers(ctx context.Context, seedURLs []string) {
	self := r.Self()
	for _, seed := range seedURLs {
		callCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
		peer, err := r.transport.Register(callCtx, seed, self)
		cancel()
		if err != nil {
			level.Warn(r.logger).Log("msg", "Failed to register with peer", "peer_url", seed, "err", err)
			continue
		}
		if _, err := r.Register(peer); err != nil {
			level.Warn(r.logger).Log("msg", "Peer answered with an invalid descriptor", "peer_url", seed, "err", err)
		}
	}
}

// StartHealthChecks pings every known peer each PingInterval until ctx is done. A tick does not wait for the
// previous tick's probes.
func (r *Registry) StartHealthChecks(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				go r.CheckPeers(ctx)
			}
		}
	}()
}

// CheckPeers runs one health-check round: one independent probe per known peer, each bounded by
// ProbeTimeout. It returns once every probe has finished. A probe result is dropped when the peer
// re-registered while the probe was in flight.
func (r *Registry) CheckPeers(ctx context.Context) {
	type target struct {
		record  *domain.PeerRecord
		baseURL string
	}
	r.mu.RLock()
	targets := make(map[string]target, len(r.peers))
	for name, p := range r.peers {
		targets[name] = target{record: p, baseURL: p.BaseURL}
	}
	r.mu.RUnlock()

	var wg sync.WaitGroup
	for name, t := range targets {
		name, probed, baseURL := name, t.record, t.baseURL
		wg.Add(1)
		go func() {
			defer wg.Done()
			probeCtx, cancel := context.WithTimeout(ctx, r.probeTimeout)
			defer cancel()
			if err := r.transport.Ping(probeCtx, baseURL); err != nil {
				r.markDown(name, probed, err.Error())
				return
			}
			r.markUp(name, probed)
		}()
	}
	wg.Wait()
}

// MarkDown transitions an UP peer to DOWN, records reason and fires the down hook. No-op for unknown or
// already DOWN peers.
func (r *Registry) MarkDown(name string, reason string) {
	r.markDown(name, nil, reason)
}

// markDown applies a failure to name. With probed set, the failure only applies while the stored record is
// still the one that was probed; Register replaces the record.
func (r *Registry) markDown(name string, probed *domain.PeerRecord, reason string) {
	r.mu.Lock()
	p, ok := r.peers[name]
	if !ok || p.Status == domain.StatusDown || (probed != nil && p != probed) {
		r.mu.Unlock()
		return
	}
	p.Status = domain.StatusDown
	p.Reason = reason
	snapshot := p.Clone()
	r.mu.Unlock()

	level.Warn(r.logger).Log("msg", "Service is now DOWN", "service", name, "reason", reason)
	r.onDown(name, snapshot, reason)
}

func (r *Registry) markUp(name string, probed *domain.PeerRecord) {
	r.mu.Lock()
	p, ok := r.peers[name]
	if !ok || p != probed || p.Status == domain.StatusUp {
		r.mu.Unlock()
		return
	}
	p.Status = domain.StatusUp
	p.Reason = ""
	snapshot := p.Clone()
	r.mu.Unlock()

	level.Info(r.logger).Log("msg", "Service is now UP", "service", name)
	r.onUp(name, snapshot)
}

// Lookup returns a copy of the record for name.
func (r *Registry) Lookup(name string) (domain.PeerRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.peers[name]
	if !ok {
		return domain.PeerRecord{}, false
	}
	return p.Clone(), true
}

// List returns a snapshot of all peer records keyed by name.
func (r *Registry) List() map[string]domain.PeerRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.PeerRecord, len(r.peers))
	for name, p := range r.peers {
		out[name] = p.Clone()
	}
	return out
}
