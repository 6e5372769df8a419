package domain

import "context"

// ServicePort is consumed by the dispatcher registration and tests
type ServicePort interface {
	Disclose(ctx context.Context, in DiscloseInput) (DiscloseOutput, error)
}
