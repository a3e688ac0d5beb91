package usecase

import (
	"github.com/m-mizutani/gollem"
	"github.com/secmon-lab/vantagepoint/pkg/domain/interfaces"
	"github.com/secmon-lab/vantagepoint/pkg/repository/memory"
	"github.com/secmon-lab/vantagepoint/pkg/service/synthetic"
)

type UseCases struct {
	cache     interfaces.ResultCache
	primary   interfaces.EventFetcher
	secondary interfaces.EventFetcher
	tertiary  interfaces.EventFetcher
	synthetic interfaces.SyntheticGenerator
	llmClient gollem.LLMClient

	Acquisition *AcquisitionUseCase
	Enrichment  *EnrichmentUseCase
}

type Option func(*UseCases)

// WithResultCache replaces the default in-memory cache
func WithResultCache(cache interfaces.ResultCache) Option {
	return func(uc *UseCases) {
		uc.cache = cache
	}
}

// WithPrimaryFetcher sets the first-priority live source
func WithPrimaryFetcher(f interfaces.EventFetcher) Option {
	return func(uc *UseCases) {
		uc.primary = f
	}
}

// WithSecondaryFetcher sets the keyed secondary source. Leave unset when no
// API key is configured and the source is skipped.
func WithSecondaryFetcher(f interfaces.EventFetcher) Option {
	return func(uc *UseCases) {
		uc.secondary = f
	}
}

// WithTertiaryFetcher sets the last live source
func WithTertiaryFetcher(f interfaces.EventFetcher) Option {
	return func(uc *UseCases) {
		uc.tertiary = f
	}
}

// WithSyntheticGenerator replaces the built-in demo catalog
func WithSyntheticGenerator(g interfaces.SyntheticGenerator) Option {
	return func(uc *UseCases) {
		uc.synthetic = g
	}
}

// WithLLMClient enables the AI operations. A nil client disables them.
func WithLLMClient(client gollem.LLMClient) Option {
	return func(uc *UseCases) {
		uc.llmClient = client
	}
}

func New(opts ...Option) *UseCases {
	uc := &UseCases{}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.cache == nil {
		uc.cache = memory.NewResultCache()
	}
	if uc.synthetic == nil {
		uc.synthetic = synthetic.New()
	}

	uc.Acquisition = NewAcquisitionUseCase(uc.cache, uc.synthetic,
		uc.primary, uc.secondary, uc.tertiary)
	uc.Enrichment = NewEnrichmentUseCase(uc.llmClient)

	return uc
}
