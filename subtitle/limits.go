package subtitle

// BlockCharPolicy selects which character budget applies to a whole cue.
// The hard budget gates sentence admission; the soft budget is the relaxed
// tier for cues that cannot be split any further.
type BlockCharPolicy int

const (
	// BlockHard is the strict per-cue character budget.
	BlockHard BlockCharPolicy = iota
	// BlockSoft is the relaxed budget applied before giving up on a split.
	BlockSoft
)

// Limits is the readability configuration for the segmentation pipeline.
// It is passed explicitly into every call, there is no process-wide state.
type Limits struct {
	MaxLineChars   int     `toml:"max_line_chars" json:"max_line_chars"`     // widest allowed display line
	MaxBlockChars  int     `toml:"max_block_chars" json:"max_block_chars"`   // hard per-cue character budget
	SoftBlockChars int     `toml:"soft_block_chars" json:"soft_block_chars"` // relaxed per-cue budget
	MinDuration    float64 `toml:"min_duration" json:"min_duration"`         // shortest on-screen time, seconds
	MaxDuration    float64 `toml:"max_duration" json:"max_duration"`         // longest on-screen time, seconds
	MinCPS         float64 `toml:"min_cps" json:"min_cps"`                   // slowest acceptable reading speed
	MaxCPS         float64 `toml:"max_cps" json:"max_cps"`                   // fastest acceptable reading speed
}

// DefaultLimits returns the readability limits used when no overrides are
// configured. Two lines of 42 characters give the 84-character hard budget.
func DefaultLimits() Limits {
	return Limits{
		MaxLineChars:   42,
		MaxBlockChars:  84,
		SoftBlockChars: 100,
		MinDuration:    1.0,
		MaxDuration:    7.0,
		MinCPS:         6.0,
		MaxCPS:         20.0,
	}
}

// BlockChars returns the character budget for the given policy tier.
func (l Limits) BlockChars(policy BlockCharPolicy) int {
	if policy == BlockSoft {
		return l.SoftBlockChars
	}
	return l.MaxBlockChars
}
