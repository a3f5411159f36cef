package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-theft-craft/treefeller/internal/compat"
	"github.com/go-theft-craft/treefeller/internal/config"
	"github.com/go-theft-craft/treefeller/internal/felling"
	"github.com/go-theft-craft/treefeller/internal/gamedata"
	"github.com/go-theft-craft/treefeller/internal/species"
	"github.com/go-theft-craft/treefeller/internal/tags"
	"github.com/go-theft-craft/treefeller/internal/world"
	"github.com/go-theft-craft/treefeller/internal/world/gen"
)

func main() {
	cfg := config.DefaultConfig()
	var configPath string

	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.IntVar(&cfg.MaxBlocks, "max-blocks", cfg.MaxBlocks, "maximum blocks removed per chop")
	flag.BoolVar(&cfg.OmitStartBlock, "omit-start", cfg.OmitStartBlock, "break the start block by hand before felling")
	flag.StringVar(&cfg.BlocksFile, "blocks", cfg.BlocksFile, "minecraft-data blocks.json (.zst allowed), empty for built-in blocks")
	flag.StringVar(&cfg.TagsFile, "tags", cfg.TagsFile, "tag pack (YAML or JSON), empty for built-in tags")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world and drop seed")
	flag.StringVar(&cfg.Terrain, "terrain", cfg.Terrain, "flat or hills")
	flag.IntVar(&cfg.Trees, "trees", cfg.Trees, "number of trees to plant")
	flag.IntVar(&cfg.ForestRadius, "radius", cfg.ForestRadius, "forest radius in blocks")
	flag.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve /metrics on this address after felling")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	flag.Parse()

	if configPath != "" {
		fromFile, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		explicit := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		config.Merge(cfg, fromFile, explicit)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := cfg.Level()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	blocks, err := loadBlocks(cfg.BlocksFile)
	if err != nil {
		log.Error("load blocks", "error", err)
		os.Exit(1)
	}
	dict, err := loadTags(cfg.TagsFile, blocks)
	if err != nil {
		log.Error("load tags", "error", err)
		os.Exit(1)
	}

	engine := felling.New(species.New(log), compat.New(log), log)
	engine.Reload(dict, compat.BlockHooks{Registry: blocks})

	generator, _ := gen.New(cfg.Terrain, cfg.Seed)
	w := world.NewWorld(generator, blocks)
	w.SetDropSeed(cfg.Seed)
	drops := newDropCounter()
	w.SetListener(drops)

	trees := gen.NewPlanter(cfg.Seed).Plant(w, generator, cfg.Trees, cfg.ForestRadius)
	log.Info("forest planted", "trees", len(trees), "radius", cfg.ForestRadius, "seed", cfg.Seed)

	var totalCost, removed int
	for _, t := range trees {
		pos := world.BlockPos{X: t.X, Y: t.Y, Z: t.Z}
		broken := w.StateAt(pos)
		if cfg.OmitStartBlock {
			broken = w.BreakBlock(pos)
		}

		res := engine.Fell(w, broken, pos, cfg.MaxBlocks, cfg.OmitStartBlock)
		totalCost += res.Cost
		removed += len(res.Trunk) + len(res.Canopy)

		log.Info("tree felled",
			"species", t.Species,
			"pos", pos,
			"trunk", len(res.Trunk),
			"canopy", len(res.Canopy),
			"steps", res.Steps,
			"truncated", res.Truncated,
			"cost", res.Cost)
	}

	for _, d := range drops.summary(blocks) {
		log.Info("drops", "item", d.name, "damage", d.damage, "count", d.count)
	}
	log.Info("done", "trees", len(trees), "blocks", removed, "cost", totalCost)

	if cfg.MetricsAddr == "" {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := serveMetrics(ctx, cfg.MetricsAddr, log); err != nil {
		log.Error("metrics server error", "error", err)
		os.Exit(1)
	}
}

func loadBlocks(path string) (*gamedata.Blocks, error) {
	if path == "" {
		return gamedata.Vanilla(), nil
	}
	return gamedata.LoadBlocks(path)
}

func loadTags(path string, blocks gamedata.BlockRegistry) (*tags.Pack, error) {
	if path == "" {
		return tags.Default(blocks), nil
	}
	return tags.Load(path, blocks)
}

func serveMetrics(ctx context.Context, addr string, log *slog.Logger) error {
	var mux http.ServeMux
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: &mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type dropKey struct {
	id     int16
	damage int16
}

// dropCounter tallies dropped items.
type dropCounter struct {
	counts map[dropKey]int
}

func newDropCounter() *dropCounter {
	return &dropCounter{counts: make(map[dropKey]int)}
}

func (d *dropCounter) BlockDropped(_ world.BlockPos, _ gamedata.State, slots []world.Slot) {
	for _, s := range slots {
		d.counts[dropKey{s.BlockID, s.ItemDamage}] += int(s.ItemCount)
	}
}

func (d *dropCounter) SoundPlayed(world.BlockPos, gamedata.State) {}

type dropLine struct {
	name   string
	damage int16
	count  int
}

func (d *dropCounter) summary(blocks gamedata.BlockRegistry) []dropLine {
	keys := make([]dropKey, 0, len(d.counts))
	for k := range d.counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}
		return keys[i].damage < keys[j].damage
	})

	lines := make([]dropLine, 0, len(keys))
	for _, k := range keys {
		name := fmt.Sprintf("#%d", k.id)
		if b, ok := blocks.ByID(int(k.id)); ok {
			name = b.Name
		}
		lines = append(lines, dropLine{name: name, damage: k.damage, count: d.counts[k]})
	}
	return lines
}
