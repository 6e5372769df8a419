// Package module wires the gate dispatcher into the API using modkit
package module

import (
	"net/http"
	"strings"
	"time"

	"gatehouse/internal/core/ratelimit"
	modkit "gatehouse/internal/modkit"
	"gatehouse/internal/modkit/httpkit"
	str "gatehouse/internal/platform/strings"
	"gatehouse/internal/services/dispatch/domain"
	dispatchhttp "gatehouse/internal/services/dispatch/http"
	dispatchsvc "gatehouse/internal/services/dispatch/service"
)

// Ports exposes the dispatcher surface for cross wiring
type Ports struct {
	Registry domain.RegistryPort
}

// Options carry wiring the dispatcher cannot build itself
type Options struct {
	// Recorder is optional; nil disables the audit trail
	Recorder domain.Recorder
}

// Module implements the gate dispatch module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc     dispatchsvc.Service
	limiter *ratelimit.Limiter
}

// New constructs the gate dispatch module
func New(deps modkit.Deps, o Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("gate"), modkit.WithPrefix("/gate")}, opts...)...)

	cfg := deps.Cfg.Prefix("GATE_")
	limiter := ratelimit.New("general", ratelimit.Config{
		Max:    cfg.MayInt("RATE_MAX", 30),
		Window: cfg.MayDuration("RATE_WINDOW", time.Minute),
	})

	env := strings.ToLower(cfg.MayString("ENV", "development"))
	svc := dispatchsvc.New(limiter, dispatchsvc.Options{
		Production: env == "production",
		Recorder:   o.Recorder,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		limiter:   limiter,
	}
	m.ports = Ports{Registry: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dispatchhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// Registry returns the operation registry for bootstrap wiring
func (m *Module) Registry() domain.RegistryPort { return m.svc }

// Limiter returns the general limiter so main can run its sweeper
func (m *Module) Limiter() *ratelimit.Limiter { return m.limiter }

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns the module port set
func (m *Module) Ports() any { return m.ports }
