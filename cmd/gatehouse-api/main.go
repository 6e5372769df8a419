// @title         Gatehouse API
// @version       0.1.0
// @description   Mediation gateway between autonomous agents and the outside

package main

import (
	"context"
	"time"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	phttp "gatehouse/internal/platform/net/http"
	"gatehouse/internal/platform/store"

	"gatehouse/internal/services/api"
)

func main() {
	// service-scoped config (GATE_*)
	root := config.New()
	gateCfg := root.Prefix("GATE_")
	auditCfg := gateCfg.Prefix("AUDIT_")

	// bring up logging early
	l := logger.Get()

	// the audit trail is optional; without it the gateway runs stateless
	var st *store.Store
	if auditCfg.MayBool("ENABLED", false) {
		var err error
		st, err = store.Open(
			context.Background(),
			store.Config{
				AppName: "gatehouse",
				PG: store.PGConfig{
					Enabled:     true,
					URL:         auditCfg.MustString("DBURL"),
					MaxConns:    int32(auditCfg.MayInt("MAX_CONNS", 4)),
					SlowQueryMs: auditCfg.MayInt("SLOW_MS", 500),
					LogSQL:      auditCfg.MayBool("LOG_SQL", true),
				},
			},
			store.WithLogger(*logger.Get()),
		)
		if err != nil {
			l.Panic().Err(err).Msg("store.Open failed")
		}
		defer func() {
			if err := st.Close(context.Background()); err != nil {
				l.Error().Err(err).Msg("failed to close store")
			}
		}()
	}

	// http server (reads GATE_API_PORT)
	srv := phttp.NewServer(gateCfg)

	// mount our API
	rt := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  gateCfg.MayBool("SWAGGER", true),
			EnableProfiler: gateCfg.MayBool("PROFILER", false),
		},
	)

	// background sweepers keep limiter memory proportional to active callers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, lim := range rt.Limiters {
		go lim.Run(ctx, time.Minute)
	}

	// run
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
