package metrics

import (
	"sync/atomic"
	"time"
)

// TurnMetric describes the work done to decide a single stroke.
type TurnMetric struct {
	Turn        int
	Tier        string
	Anomaly     bool
	Candidates  int
	CacheHit    bool
	Assessments int
	Trials      int
	Duration    time.Duration
}

type GameMetric struct {
	Hole      string
	Skill     float64
	Strokes   int
	Resets    int
	Holed     bool
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	Start(turn int)
	AddTrials(n int)
	AddAssessment()
	SetCandidates(n int, cached bool)
	Complete(tier string, anomaly bool) TurnMetric
}

type collector struct {
	turn        int
	startTime   time.Time
	trials      atomic.Int64
	assessments atomic.Int32
	candidates  atomic.Int32
	cacheHit    atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(turn int) {
	m.turn = turn
	m.startTime = time.Now()
	m.trials.Store(0)
	m.assessments.Store(0)
	m.candidates.Store(0)
	m.cacheHit.Store(false)
}

func (m *collector) AddTrials(n int) {
	m.trials.Add(int64(n))
}

func (m *collector) AddAssessment() {
	m.assessments.Add(1)
}

func (m *collector) SetCandidates(n int, cached bool) {
	m.candidates.Store(int32(n))
	m.cacheHit.Store(cached)
}

func (m *collector) Complete(tier string, anomaly bool) TurnMetric {
	return TurnMetric{
		Turn:        m.turn,
		Tier:        tier,
		Anomaly:     anomaly,
		Candidates:  int(m.candidates.Load()),
		CacheHit:    m.cacheHit.Load(),
		Assessments: int(m.assessments.Load()),
		Trials:      int(m.trials.Load()),
		Duration:    time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(turn int)                                {}
func (m *dummyCollector) AddTrials(n int)                               {}
func (m *dummyCollector) AddAssessment()                                {}
func (m *dummyCollector) SetCandidates(n int, cached bool)              {}
func (m *dummyCollector) Complete(tier string, anomaly bool) TurnMetric { return TurnMetric{} }
