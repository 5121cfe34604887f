package core

// ProcessorConfig defines the block-synchronous processing settings shared by
// the transport, modulation tracks and note modules.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the host defaults: 48 kHz, 512-sample blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// InvSampleRateMs returns the duration of one sample in milliseconds.
func (c ProcessorConfig) InvSampleRateMs() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return 1000 / c.SampleRate
}

// BlockDurationMs returns the duration of one processing block in milliseconds.
func (c ProcessorConfig) BlockDurationMs() float64 {
	return float64(c.BlockSize) * c.InvSampleRateMs()
}
