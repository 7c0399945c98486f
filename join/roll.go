package join

// Comparator decides whether a key of the left index matches during an as-of merge.
//
// It receives the left key, the right key at the merge cursor and the right key
// at the roll target of the cursor. order is negative, zero or positive like a
// compare function; only zero records a match. offset, usually -1, 0 or +1,
// shifts the recorded right position relative to the cursor.
type Comparator[K any] func(this, other, rollTarget K) (order int, offset int)

// RollMode selects which neighbor of the merge cursor is offered to the comparator.
type RollMode uint8

const (
	// NoRoll offers the cursor position itself; only exact matches are possible.
	NoRoll RollMode = iota
	// RollPrior offers the position before the cursor.
	RollPrior
	// RollFollowing offers the position after the cursor.
	RollFollowing
)

func (m RollMode) String() string {
	switch m {
	case NoRoll:
		return "NoRoll"
	case RollPrior:
		return "RollPrior"
	case RollFollowing:
		return "RollFollowing"
	default:
		return "Unknown"
	}
}

// PriorOf returns the position before idx, saturating at zero.
func PriorOf(idx int) int {
	return max(idx-1, 0)
}

// FollowingOf returns the position after idx, saturating at length-1.
func FollowingOf(idx, length int) int {
	return min(idx+1, length-1)
}

// targetFunc returns the roll position mapping for an index of the given length.
// The cursor handed to it may equal length, so every mapping clamps into range.
func (m RollMode) targetFunc(length int) func(int) int {
	switch m {
	case RollPrior:
		return func(idx int) int { return min(PriorOf(idx), length-1) }
	case RollFollowing:
		return func(idx int) int { return FollowingOf(idx, length) }
	default:
		return func(idx int) int { return min(idx, length-1) }
	}
}
