package infra

import (
	"net/http"

	"github.com/m-mizutani/repohost/pkg/domain/interfaces"
	"github.com/m-mizutani/repohost/pkg/infra/content/memory"
	"github.com/m-mizutani/repohost/pkg/infra/resilient"
	repomemory "github.com/m-mizutani/repohost/pkg/repository/memory"
	"github.com/m-mizutani/repohost/pkg/utils/retry"
)

// Clients bundles the backends used by the use cases. Storage backends are wrapped with the
// retry policy when New returns.
type Clients struct {
	httpClient       HTTPClient
	bqClient         interfaces.BigQuery
	contentStore     interfaces.ContentStore
	directory        interfaces.Directory
	commitRepository interfaces.CommitRepository
	retryPolicy      retry.Policy
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Option func(*Clients)

// New uses in-memory storage unless a backend option is given
func New(options ...Option) *Clients {
	repo := repomemory.New()
	client := &Clients{
		httpClient:       http.DefaultClient,
		contentStore:     memory.New(),
		directory:        repo,
		commitRepository: repo,
		retryPolicy:      retry.DefaultPolicy(),
	}

	for _, opt := range options {
		opt(client)
	}

	client.contentStore = resilient.NewContentStore(client.contentStore, client.retryPolicy)
	client.directory = resilient.NewDirectory(client.directory, client.retryPolicy)
	client.commitRepository = resilient.NewCommitRepository(client.commitRepository, client.retryPolicy)

	return client
}

func (x *Clients) HTTPClient() HTTPClient {
	return x.httpClient
}
func (x *Clients) BigQuery() interfaces.BigQuery {
	return x.bqClient
}
func (x *Clients) ContentStore() interfaces.ContentStore {
	return x.contentStore
}
func (x *Clients) Directory() interfaces.Directory {
	return x.directory
}
func (x *Clients) CommitRepository() interfaces.CommitRepository {
	return x.commitRepository
}
func (x *Clients) RetryPolicy() retry.Policy {
	return x.retryPolicy
}

func WithHTTPClient(client HTTPClient) Option {
	return func(x *Clients) {
		x.httpClient = client
	}
}

func WithBigQuery(client interfaces.BigQuery) Option {
	return func(x *Clients) {
		x.bqClient = client
	}
}

func WithContentStore(store interfaces.ContentStore) Option {
	return func(x *Clients) {
		x.contentStore = store
	}
}

func WithDirectory(dir interfaces.Directory) Option {
	return func(x *Clients) {
		x.directory = dir
	}
}

func WithCommitRepository(repo interfaces.CommitRepository) Option {
	return func(x *Clients) {
		x.commitRepository = repo
	}
}

func WithRetryPolicy(policy retry.Policy) Option {
	return func(x *Clients) {
		x.retryPolicy = policy
	}
}
