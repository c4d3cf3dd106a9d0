package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sugawarayuuta/sonnet"
	"go.uber.org/zap"

	"github.com/scottcagno/containers/pkg/hashmap/ordered"
	"github.com/scottcagno/containers/pkg/index/treemap"
)

// Config describes one benchmark workload
type Config struct {
	Seed    int64 `toml:"seed"`
	Keys    int   `toml:"keys"`
	Lookups int   `toml:"lookups"`
	Erases  int   `toml:"erases"`
}

var defaultConfig = Config{
	Seed:    1,
	Keys:    100_000,
	Lookups: 200_000,
	Erases:  25_000,
}

type phase struct {
	Name    string  `json:"name"`
	Ops     int     `json:"ops"`
	Elapsed string  `json:"elapsed"`
	NsPerOp float64 `json:"ns_per_op"`
}

type report struct {
	Container string  `json:"container"`
	Phases    []phase `json:"phases"`
	MaxProbe  uint32  `json:"max_probe_length,omitempty"`
	Load      float64 `json:"load_factor,omitempty"`
}

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML workload file")
		outPath    = flag.String("out", "", "write the JSON report here instead of stdout")
	)
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := defaultConfig
	if *configPath != "" {
		if _, err := toml.DecodeFile(*configPath, &cfg); err != nil {
			logger.Fatal("cannot read workload config", zap.String("path", *configPath), zap.Error(err))
		}
	}
	logger.Info("workload",
		zap.Int64("seed", cfg.Seed),
		zap.Int("keys", cfg.Keys),
		zap.Int("lookups", cfg.Lookups),
		zap.Int("erases", cfg.Erases),
	)

	keys := makeKeys(cfg.Seed, cfg.Keys)
	reports := []report{
		runOrdered(logger, cfg, keys),
		runTreemap(logger, cfg, keys),
	}

	out, err := sonnet.Marshal(reports)
	if err != nil {
		logger.Fatal("cannot encode report", zap.Error(err))
	}
	out = append(out, '\n')
	if *outPath == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*outPath, out, 0644); err != nil {
		logger.Fatal("cannot write report", zap.String("path", *outPath), zap.Error(err))
	}
	logger.Info("report written", zap.String("path", *outPath))
}

func makeKeys(seed int64, n int) []string {
	rng := rand.New(rand.NewSource(seed))
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%016x", rng.Int63())
	}
	return keys
}

func measure(logger *zap.Logger, container, name string, ops int, fn func()) phase {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	logger.Info("phase complete",
		zap.String("container", container),
		zap.String("phase", name),
		zap.Int("ops", ops),
		zap.Duration("elapsed", elapsed),
	)
	return phase{
		Name:    name,
		Ops:     ops,
		Elapsed: elapsed.String(),
		NsPerOp: float64(elapsed.Nanoseconds()) / float64(ops),
	}
}

func runOrdered(logger *zap.Logger, cfg Config, keys []string) report {
	const name = "hashmap/ordered"
	m := ordered.New[string, int64]()
	rep := report{Container: name}

	rep.Phases = append(rep.Phases, measure(logger, name, "insert", len(keys), func() {
		for i, k := range keys {
			m.Insert(k, int64(i))
		}
	}))
	rep.Phases = append(rep.Phases, measure(logger, name, "lookup", cfg.Lookups, func() {
		for i := 0; i < cfg.Lookups; i++ {
			m.Get(keys[i%len(keys)])
		}
	}))
	rep.Phases = append(rep.Phases, measure(logger, name, "iterate", m.Len(), func() {
		var sink int64
		m.Range(func(_ string, v int64) bool {
			sink += v
			return true
		})
		_ = sink
	}))
	erases := cfg.Erases
	if erases > len(keys) {
		erases = len(keys)
	}
	rep.Phases = append(rep.Phases, measure(logger, name, "erase", erases, func() {
		for i := 0; i < erases; i++ {
			m.Erase(keys[i])
		}
	}))

	rep.MaxProbe = m.MaxProbeLength()
	rep.Load = m.Load()
	return rep
}

func runTreemap(logger *zap.Logger, cfg Config, keys []string) report {
	const name = "index/treemap"
	m := treemap.NewMap[int64]()
	rep := report{Container: name}

	rep.Phases = append(rep.Phases, measure(logger, name, "insert", len(keys), func() {
		for i, k := range keys {
			m.Put(k, int64(i))
		}
	}))
	rep.Phases = append(rep.Phases, measure(logger, name, "lookup", cfg.Lookups, func() {
		for i := 0; i < cfg.Lookups; i++ {
			m.Get(keys[i%len(keys)])
		}
	}))
	rep.Phases = append(rep.Phases, measure(logger, name, "iterate", m.Len(), func() {
		var sink int64
		m.Range(func(_ string, v int64) bool {
			sink += v
			return true
		})
		_ = sink
	}))
	erases := cfg.Erases
	if erases > len(keys) {
		erases = len(keys)
	}
	rep.Phases = append(rep.Phases, measure(logger, name, "erase", erases, func() {
		for i := 0; i < erases; i++ {
			m.Del(keys[i])
		}
	}))
	return rep
}
