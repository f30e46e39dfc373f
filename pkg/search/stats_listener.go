package search

// Reported every time the synchronized search depth advances
type DepthStats struct {
	// The new depth
	Depth int

	// Number of states waiting at the new depth
	Remaining int

	// Frontier sizes per direction
	Frontiers [NumDirections]int
}

// Reported when a heuristic scored several directions the same
type TieStats struct {
	Heuristic int
	Name      string
	Score     float64
	Tied      []Direction
	Chosen    Direction
}

// Reported once the exploration of a single call is finished
type SearchStats struct {
	Depth       int
	Expanded    int
	Evaluations [NumDirections]int
	Legal       [NumDirections]bool
}

type ListenerFunc[T any] func(T)

// Optional callbacks of a single engine call, invoked synchronously by
// the calling goroutine. When the engine is shared between goroutines,
// callbacks must be safe for concurrent use
type StatsListener struct {
	onDepth  ListenerFunc[DepthStats]
	onTie    ListenerFunc[TieStats]
	onFinish ListenerFunc[SearchStats]
}

func NewStatsListener() StatsListener {
	return StatsListener{}
}

// Attach new on depth advance callback
func (listener *StatsListener) OnDepth(onDepth ListenerFunc[DepthStats]) *StatsListener {
	listener.onDepth = onDepth
	return listener
}

// Attach new on tie-break callback
func (listener *StatsListener) OnTie(onTie ListenerFunc[TieStats]) *StatsListener {
	listener.onTie = onTie
	return listener
}

// Attach 'exploration finished' callback, called before the votes are tallied
func (listener *StatsListener) OnFinish(onFinish ListenerFunc[SearchStats]) *StatsListener {
	listener.onFinish = onFinish
	return listener
}

func (listener *StatsListener) depth(stats DepthStats) {
	if listener != nil && listener.onDepth != nil {
		listener.onDepth(stats)
	}
}

func (listener *StatsListener) tie(stats TieStats) {
	if listener != nil && listener.onTie != nil {
		listener.onTie(stats)
	}
}

func (listener *StatsListener) finish(stats SearchStats) {
	if listener != nil && listener.onFinish != nil {
		listener.onFinish(stats)
	}
}
