package arena

import (
	"context"
	"math/rand"
	"sort"

	"github.com/zeusync/strikeback/internal/core/observability/log"
	"github.com/zeusync/strikeback/pkg/concurrent"
)

// MapStats aggregates results for one layout, keyed by its fingerprint.
type MapStats struct {
	Name        string `yaml:"name"`
	Fingerprint uint64 `yaml:"fingerprint"`
	Matches     int    `yaml:"matches"`
	Wins        [2]int `yaml:"wins"`
	Timeouts    int    `yaml:"timeouts"`
	MeanTurns   int    `yaml:"mean_turns"`
}

// Report is the outcome of a batch.
type Report struct {
	Wins    [2]int     `yaml:"wins"`
	Events  uint64     `yaml:"events"`
	Maps    []MapStats `yaml:"maps"`
	Results []Result   `yaml:"results"`
}

// Run plays cfg.Matches matches on up to cfg.Workers goroutines. Match i
// draws its map and jitter from a generator seeded with cfg.Seed+i, so a
// batch is reproducible regardless of scheduling.
func Run(ctx context.Context, cfg *Config, logger log.Log) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	results, err := concurrent.Map(ctx, concurrent.Range(cfg.Matches), cfg.Workers,
		func(ctx context.Context, _ int, i int) (Result, error) {
			rng := rand.New(rand.NewSource(cfg.Seed + int64(i)))
			m := cfg.Maps[rng.Intn(len(cfg.Maps))]
			return NewMatch(m, cfg.Laps, cfg.MaxTurns, cfg.Jitter, rng, logger).Run(ctx)
		})
	if err != nil {
		return nil, err
	}

	report := summarize(results)
	logger.Info("batch finished",
		log.Int("matches", len(results)),
		log.Int("side0_wins", report.Wins[0]),
		log.Int("side1_wins", report.Wins[1]),
	)
	return report, nil
}

func summarize(results []Result) *Report {
	report := &Report{Results: results}
	byMap := make(map[uint64]*MapStats)
	turns := make(map[uint64]int)
	for _, r := range results {
		report.Wins[r.Winner]++
		report.Events += r.Bus.Published
		s, ok := byMap[r.Fingerprint]
		if !ok {
			s = &MapStats{Name: r.Map, Fingerprint: r.Fingerprint}
			byMap[r.Fingerprint] = s
		}
		s.Matches++
		s.Wins[r.Winner]++
		if r.Reason == ReasonTimeout {
			s.Timeouts++
		}
		turns[r.Fingerprint] += r.Turns
	}
	for fp, s := range byMap {
		s.MeanTurns = turns[fp] / s.Matches
		report.Maps = append(report.Maps, *s)
	}
	sort.Slice(report.Maps, func(i, j int) bool { return report.Maps[i].Name < report.Maps[j].Name })
	return report
}
