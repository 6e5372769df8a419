package service

import (
	"context"
	"encoding/json"

	"gatehouse/internal/platform/net/http/bind"
	dispatchdomain "gatehouse/internal/services/dispatch/domain"
	"gatehouse/internal/services/search/domain"
)

// RegisterOperation hooks the search workflow into the gate dispatcher
func RegisterOperation(reg dispatchdomain.RegistryPort, s Service) {
	reg.Register(
		"search_docs",
		"Search allowlisted documentation sites for a sanitized query",
		func(ctx context.Context, args json.RawMessage) (dispatchdomain.Result, error) {
			in, err := bind.DecodeValidate[domain.SearchInput](args)
			if err != nil {
				return dispatchdomain.Result{}, err
			}
			out, err := s.Search(ctx, in)
			if err != nil {
				return dispatchdomain.Result{}, err
			}
			return dispatchdomain.Result{Text: Summary(out), Structured: out}, nil
		},
	)
}
