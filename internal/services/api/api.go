// Package api provides the HTTP API for the gateway
package api

import (
	"time"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	phttp "gatehouse/internal/platform/net/http"
	"gatehouse/internal/platform/store"

	"gatehouse/internal/modkit"
	"gatehouse/internal/modkit/httpkit"
	"gatehouse/internal/modkit/module"
	"gatehouse/internal/modkit/swaggerkit"

	searchadapter "gatehouse/internal/adapters/search"
	"gatehouse/internal/core/allowlist"
	"gatehouse/internal/core/ratelimit"

	metamod "gatehouse/internal/services/api/meta/module"
	auditrepo "gatehouse/internal/services/audit/repo"
	auditsvc "gatehouse/internal/services/audit/service"
	disclosesvc "gatehouse/internal/services/disclose/service"
	dispatchmod "gatehouse/internal/services/dispatch/module"
	searchsvc "gatehouse/internal/services/search/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Runtime exposes long-lived pieces main needs after mounting
type Runtime struct {
	// Limiters that want a periodic Sweep via Run
	Limiters []*ratelimit.Limiter
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) *Runtime {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}
	gateCfg := deps.Cfg.Prefix("GATE_")

	// audit trail; Record is a no-op without a store
	audit := auditsvc.New(deps.PG, auditrepo.NewPG())

	// the dispatcher owns the general per-caller budget
	gate := dispatchmod.New(deps, dispatchmod.Options{Recorder: audit})

	// outbound search stack: its own budget, sanitizer, allowlist, client
	searchCfg := gateCfg.Prefix("SEARCH_")
	searchLimiter := ratelimit.New("search", ratelimit.Config{
		Max:    searchCfg.MayInt("RATE_MAX", 5),
		Window: searchCfg.MayDuration("RATE_WINDOW", time.Minute),
	})
	apiKey := searchCfg.MayString("API_KEY", "")
	if apiKey == "" {
		logger.Named("search").Warn().Msg("GATE_SEARCH_API_KEY is empty, provider calls go out unauthenticated")
	}
	client := searchadapter.NewClient(searchadapter.Options{
		BaseURL: searchCfg.MayString("BASE_URL", ""),
		Engine:  searchCfg.MayString("ENGINE", ""),
		APIKey:  apiKey,
		Timeout: searchCfg.MayDuration("TIMEOUT", 5*time.Second),
	})
	allow := allowlist.From(searchCfg.MayCSV("DOMAINS", nil))
	searchsvc.RegisterOperation(gate.Registry(), searchsvc.New(client, allow, searchLimiter))

	// project disclosure
	fileCfg := gateCfg.Prefix("FILE_")
	disclosesvc.RegisterOperation(gate.Registry(), disclosesvc.New(disclosesvc.Options{
		Root:        fileCfg.MayString("ROOT", "."),
		ReadTimeout: fileCfg.MayDuration("TIMEOUT", 2*time.Second),
		MaxBytes:    fileCfg.MayInt64("MAX_BYTES", 1<<20),
	}))

	mods := []module.Module{
		metamod.New(deps, metamod.Options{Registry: gate.Registry()}),
		gate,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return &Runtime{Limiters: []*ratelimit.Limiter{gate.Limiter(), searchLimiter}}
}
