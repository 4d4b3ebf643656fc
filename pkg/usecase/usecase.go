package usecase

import (
	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/infra"
)

const defaultContentConcurrency = 8

type UseCase struct {
	clients            *infra.Clients
	contentConcurrency int
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithContentConcurrency bounds parallel content writes of a single submission
func WithContentConcurrency(n int) Option {
	return func(x *UseCase) {
		if n > 0 {
			x.contentConcurrency = n
		}
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients:            clients,
		contentConcurrency: defaultContentConcurrency,
	}
	for _, opt := range options {
		opt(uc)
	}
	return uc
}
