package scoring

// #region stage

// Stage records which pipeline stage produced a ScoreMap.
type Stage int

const (
	StageNone Stage = iota
	StageFitness
	StageLoadAdjusted
	StagePersonalized
)

func (s Stage) String() string {
	switch s {
	case StageFitness:
		return "fitness"
	case StageLoadAdjusted:
		return "load_adjusted"
	case StagePersonalized:
		return "personalized"
	default:
		return "none"
	}
}

// #endregion

// #region entry

// Entry is one strategy score.
type Entry struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// #endregion

// #region score-map

// ScoreMap maps strategy name to score. It is immutable: every stage builds
// a new map, and entries keep catalog order.
type ScoreMap struct {
	stage   Stage
	entries []Entry
	index   map[string]int
}

// NewScoreMap builds a map tagged with stage from entries. Entries are copied.
func NewScoreMap(stage Stage, entries []Entry) ScoreMap {
	m := ScoreMap{
		stage:   stage,
		entries: make([]Entry, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	copy(m.entries, entries)
	for i, e := range m.entries {
		m.index[e.Name] = i
	}
	return m
}

// Stage returns the producing stage.
func (m ScoreMap) Stage() Stage { return m.stage }

// Len returns the number of scored strategies.
func (m ScoreMap) Len() int { return len(m.entries) }

// Get returns the score for name.
func (m ScoreMap) Get(name string) (float64, bool) {
	i, ok := m.index[name]
	if !ok {
		return 0, false
	}
	return m.entries[i].Score, true
}

// Entries returns a copy of the entries in catalog order.
func (m ScoreMap) Entries() []Entry {
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Names returns strategy names in catalog order.
func (m ScoreMap) Names() []string {
	out := make([]string, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Name
	}
	return out
}

// Map returns a plain map copy of the scores.
func (m ScoreMap) Map() map[string]float64 {
	out := make(map[string]float64, len(m.entries))
	for _, e := range m.entries {
		out[e.Name] = e.Score
	}
	return out
}

// transform produces a new map at stage by applying fn to every entry.
func (m ScoreMap) transform(stage Stage, fn func(Entry) (float64, error)) (ScoreMap, error) {
	next := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		s, err := fn(e)
		if err != nil {
			return ScoreMap{}, err
		}
		next[i] = Entry{Name: e.Name, Score: s}
	}
	return NewScoreMap(stage, next), nil
}

// #endregion
