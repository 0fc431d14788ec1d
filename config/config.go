package config

type (
	HeadersSegment struct {
		// Size is a number of fields stored in a single header list segment.
		Size int
	}

	ArenaSpace struct {
		Default, Maximal int
	}

	TokensNumber struct {
		Default, Maximal int
	}
)

type (
	Headers struct {
		// Segment controls how response header lists are chunked.
		Segment HeadersSegment
	}

	Vary struct {
		// Space limits the amount of memory for merged Vary values of a single response.
		// Default value is an initial size of the arena.
		Space ArenaSpace
		// Tokens limits how many Vary tokens a single response may carry. Both raw tokens
		// and unique tokens are limited by it separately.
		Tokens TokensNumber
	}
)

// Config holds limitations and pre-allocations for per-response memory.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	Headers Headers
	Vary    Vary
}

// Default returns default config. Those are initially well-balanced, however maximal defaults
// are pretty permitting.
func Default() *Config {
	return &Config{
		Headers: Headers{
			Segment: HeadersSegment{
				Size: 8,
			},
		},
		Vary: Vary{
			Space: ArenaSpace{
				Default: 256,
				// real-world Vary values rarely exceed a hundred bytes, even after merging.
				Maximal: 4 * 1024,
			},
			Tokens: TokensNumber{
				Default: 16,
				Maximal: 128,
			},
		},
	}
}
