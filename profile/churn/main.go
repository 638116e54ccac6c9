// Profiling:
// go build ./profile/churn
// ./churn -config scenario.yaml
// go tool pprof -http=":8000" ./churn cpu.pprof

package main

import (
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/TheBitDrifter/shelf"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type lifetime struct {
	Remaining int
}

type stats struct {
	Spawned   int
	Destroyed int
	Reused    int
}

type components struct {
	position shelf.AccessibleComponent[position]
	velocity shelf.AccessibleComponent[velocity]
	lifetime shelf.AccessibleComponent[lifetime]
}

func main() {
	configPath := flag.String("config", "", "YAML scenario file")
	entities := flag.Int("entities", 0, "override entity count")
	ticks := flag.Int("ticks", 0, "override tick count")
	mode := flag.String("profile", "", "override profile mode: cpu, mem, allocs or none")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sc, err := loadScenario(*configPath)
	if err != nil {
		logger.Error("load scenario", "error", err)
		os.Exit(1)
	}
	if *entities > 0 {
		sc.Entities = *entities
	}
	if *ticks > 0 {
		sc.Ticks = *ticks
	}
	if *mode != "" {
		sc.Profile = *mode
	}
	if err := sc.validate(); err != nil {
		logger.Error("invalid scenario", "error", err)
		os.Exit(1)
	}

	if opt := profileMode(sc.Profile); opt != nil {
		defer profile.Start(opt, profile.ProfilePath(sc.Output), profile.NoShutdownHook, profile.Quiet).Stop()
	}

	rng := rand.New(rand.NewPCG(sc.Seed, sc.Seed))
	for round := range sc.Rounds {
		start := time.Now()
		st, err := run(sc, rng)
		if err != nil {
			logger.Error("round failed", "round", round, "error", err)
			os.Exit(1)
		}
		logger.Info("round complete",
			"round", round,
			"entities", sc.Entities,
			"ticks", sc.Ticks,
			"spawned", st.Spawned,
			"destroyed", st.Destroyed,
			"reused", st.Reused,
			"elapsed", time.Since(start),
		)
	}
}

func profileMode(mode string) func(*profile.Profile) {
	switch mode {
	case "cpu":
		return profile.CPUProfile
	case "mem":
		return profile.MemProfileHeap
	case "allocs":
		return profile.MemProfileAllocs
	}
	return nil
}

func run(sc scenario, rng *rand.Rand) (stats, error) {
	world := shelf.Factory.NewWorld()
	comps := components{
		position: shelf.FactoryNewComponent[position](),
		velocity: shelf.FactoryNewComponent[velocity](),
		lifetime: shelf.FactoryNewComponent[lifetime](),
	}
	if err := world.RegisterComponent(comps.position, comps.velocity, comps.lifetime); err != nil {
		return stats{}, err
	}
	world.AddResource(stats{})

	for range sc.Entities {
		if err := spawn(world, sc, rng); err != nil {
			return stats{}, err
		}
	}
	for range sc.Ticks {
		if err := integrate(world, comps); err != nil {
			return stats{}, err
		}
		if err := expire(world, comps); err != nil {
			return stats{}, err
		}
		if err := respawn(world, sc, rng); err != nil {
			return stats{}, err
		}
	}
	st, _ := shelf.GetResource[stats](world)
	return st, nil
}

func spawn(world shelf.World, sc scenario, rng *rand.Rand) error {
	slots := world.Slots()
	entity, err := world.CreateEntity().
		WithComponent(position{X: rng.Float64(), Y: rng.Float64()}).
		WithComponent(velocity{X: (rng.Float64() - 0.5) * sc.Speed, Y: (rng.Float64() - 0.5) * sc.Speed}).
		WithComponent(lifetime{Remaining: 1 + rng.IntN(sc.Lifetime)}).
		Build()
	if err != nil {
		return err
	}
	st, err := shelf.RequireResource[stats](world)
	if err != nil {
		return err
	}
	st.Spawned++
	if entity.Index() < slots {
		st.Reused++
	}
	return nil
}

func integrate(world shelf.World, comps components) error {
	result, err := world.Query().
		WithComponent(comps.position).
		WithComponent(comps.velocity).
		Run()
	if err != nil {
		return err
	}
	positions, err := comps.position.Column(result)
	if err != nil {
		return err
	}
	velocities, err := comps.velocity.Column(result)
	if err != nil {
		return err
	}
	for i := range result.Indexes {
		vel, err := velocities[i].Get()
		if err != nil {
			return err
		}
		err = positions[i].Update(func(p *position) {
			p.X += vel.X
			p.Y += vel.Y
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func expire(world shelf.World, comps components) error {
	cursor := shelf.Factory.NewCursor(world.Query().WithComponent(comps.lifetime))
	for _, entity := range cursor.Entities() {
		var expired bool
		err := comps.lifetime.GetFromCursor(cursor).Update(func(l *lifetime) {
			l.Remaining--
			expired = l.Remaining <= 0
		})
		if err != nil {
			return err
		}
		if expired {
			if err := world.EnqueueDestroyEntity(entity); err != nil {
				return err
			}
		}
	}
	if err := cursor.Err(); err != nil {
		return err
	}
	return nil
}

func respawn(world shelf.World, sc scenario, rng *rand.Rand) error {
	live, err := world.Query().Count()
	if err != nil {
		return err
	}
	st, err := shelf.RequireResource[stats](world)
	if err != nil {
		return err
	}
	st.Destroyed = st.Spawned - live
	for range sc.Entities - live {
		if err := spawn(world, sc, rng); err != nil {
			return err
		}
	}
	return nil
}
