// Package http provides the gate call transport
package http

import (
	stdhttp "net/http"

	"gatehouse/internal/modkit/httpkit"
	"gatehouse/internal/services/dispatch/domain"
	svc "gatehouse/internal/services/dispatch/service"
)

// Register mounts the gate endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// single entry point for every gated operation
	httpkit.PostJSON[domain.CallInput](r, "/call", h.call)

	// discovery
	httpkit.Get(r, "/operations", h.operations)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /gate/call Gate gateCall
// @Summary Dispatch one gated operation
// @Tags Gate
// @Accept json
// @Produce json
// @Param payload body domain.CallInput true "Call"
// @Success 200 {object} domain.Envelope "ok"
// @Router /gate/call [post]
func (h *handlers) call(r *stdhttp.Request, in domain.CallInput) (any, error) {
	return h.svc.Dispatch(r.Context(), in), nil
}

// swagger:route GET /gate/operations Gate gateOperations
// @Summary List registered operations
// @Tags Gate
// @Produce json
// @Success 200 {array} domain.OperationInfo "ok"
// @Router /gate/operations [get]
func (h *handlers) operations(r *stdhttp.Request) (any, error) {
	return h.svc.Operations(), nil
}
