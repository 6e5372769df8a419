package service

import (
	"context"
	"encoding/json"

	"gatehouse/internal/platform/net/http/bind"
	"gatehouse/internal/services/disclose/domain"
	dispatchdomain "gatehouse/internal/services/dispatch/domain"
)

// RegisterOperation hooks the disclosure workflow into the gate dispatcher
func RegisterOperation(reg dispatchdomain.RegistryPort, s Service) {
	reg.Register(
		"describe_project",
		"Disclose project metadata files with credentials masked",
		func(ctx context.Context, args json.RawMessage) (dispatchdomain.Result, error) {
			in, err := bind.DecodeValidate[domain.DiscloseInput](args)
			if err != nil {
				return dispatchdomain.Result{}, err
			}
			out, err := s.Disclose(ctx, in)
			if err != nil {
				return dispatchdomain.Result{}, err
			}
			return dispatchdomain.Result{Text: Render(out), Structured: out}, nil
		},
	)
}
