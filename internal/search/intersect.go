package search

const (
	MinFollowers      int64   = 0
	MaxFollowers      int64   = 1_000_000_000_000
	MinEngagementRate float64 = 0.0
	MaxEngagementRate float64 = 100.0
)

// IDSet is a set of influencer identifiers.
type IDSet map[string]struct{}

func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in no particular order.
func (s IDSet) IDs() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Intersect narrows the candidate sets down to the ids present in all of them.
// The second return is false when no set was given, meaning no id restriction applies.
func Intersect(sets []IDSet) (IDSet, bool) {
	if len(sets) == 0 {
		return nil, false
	}
	if len(sets) == 1 {
		return sets[0], true
	}

	smallest := 0
	for i, s := range sets {
		if len(s) < len(sets[smallest]) {
			smallest = i
		}
	}

	out := make(IDSet)
	for id := range sets[smallest] {
		inAll := true
		for i, s := range sets {
			if i == smallest {
				continue
			}
			if !s.Has(id) {
				inAll = false
				break
			}
		}
		if inAll {
			out[id] = struct{}{}
		}
	}
	return out, true
}

// FollowerBounds fills absent bounds with the full follower domain.
func FollowerBounds(min, max *int64) (int64, int64) {
	lo, hi := MinFollowers, MaxFollowers
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return lo, hi
}

// EngagementBounds fills absent bounds with the full engagement rate domain.
func EngagementBounds(min, max *float64) (float64, float64) {
	lo, hi := MinEngagementRate, MaxEngagementRate
	if min != nil {
		lo = *min
	}
	if max != nil {
		hi = *max
	}
	return lo, hi
}
