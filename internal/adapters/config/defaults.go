package config

import "go.trai.ch/tagger/internal/core/domain"

// Default values applied to absent keys.
const (
	DefaultDevice        = "cpu"
	DefaultModelName     = "model"
	DefaultModelPath     = "."
	DefaultSeed          = int64(1234)
	DefaultBreaklineType = domain.BreaklineFullstop
	DefaultBreaklineRef  = domain.BreaklineInput
	DefaultBreaklineData = "."
	DefaultMaxSentLen    = 35
	DefaultMaxSents      = 1000000
	DefaultCharMaxSize   = 500
	DefaultWordMaxSize   = 20000
	DefaultMinFreq       = 1
	DefaultSep           = "\t"
	DefaultOnDataError   = domain.DataErrorAbort

	DefaultPatience  = 5
	DefaultFactor    = 0.5
	DefaultThreshold = 0.001
	DefaultMinWeight = 0.0

	DefaultLMPatience = 2
	DefaultLMFactor   = 0.5
	DefaultLMWeight   = 0.2

	DefaultBufferSize     = 10000
	DefaultDropout        = 0.25
	DefaultEpochs         = 5
	DefaultBatchSize      = 50
	DefaultOptimizer      = "Adam"
	DefaultLR             = 0.001
	DefaultLRFactor       = 0.75
	DefaultLRPatience     = 2
	DefaultMinLR          = 1e-6
	DefaultLRScheduler    = domain.LRReduceOnPlateau
	DefaultLRTMax         = 40
	DefaultLRT0           = 10
	DefaultClipNorm       = 5.0
	DefaultReportFreq     = 200
	DefaultChecksPerEpoch = 1

	DefaultCembDim    = 150
	DefaultCembType   = domain.CembRNN
	DefaultMergeType  = domain.MergeConcat
	DefaultHiddenSize = 150
	DefaultNumLayers  = 1
	DefaultCell       = domain.CellGRU
)

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func ptr[T any](v T) *T {
	return &v
}
