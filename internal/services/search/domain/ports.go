package domain

import "context"

// ServicePort is consumed by the dispatcher registration and tests
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (SearchOutput, error)
}
