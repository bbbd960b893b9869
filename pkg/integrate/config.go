package integrate

// Config holds the path-tracing parameters a render pass is tuned by:
// maximum bounce depth and the Russian Roulette schedule.
type Config struct {
	MaxDepth                  int
	RussianRouletteMinBounces int
	Verbose                   bool
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:                  8,
		RussianRouletteMinBounces: 3,
		Verbose:                   false,
	}
}
