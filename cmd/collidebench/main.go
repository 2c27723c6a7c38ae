// Command collidebench exercises the collision queries on randomized shape pairs and
// reports per-query timing statistics. It is a smoke harness for eyeballing query
// cost, not a rigorous benchmark.
package main

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	goutils "go.viam.com/utils"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/kinematiclabs/collide2d/collision"
	"github.com/kinematiclabs/collide2d/spatialmath"
)

var logger = golog.NewDevelopmentLogger("collidebench")

func main() {
	goutils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Pairs   int   `flag:"pairs,default=1024,usage=number of random shape pairs"`
	Queries int   `flag:"queries,default=200000,usage=queries per worker"`
	Workers int   `flag:"workers,default=4,usage=parallel workers"`
	Seed    int64 `flag:"seed,default=1,usage=random seed"`
}

// pair is one randomized query configuration.
type pair struct {
	proxyA, proxyB collision.ShapeProxy
	tfA, tfB       spatialmath.Transform
	sweepB         collision.Sweep
}

func randomProxy(r *rand.Rand) collision.ShapeProxy {
	switch r.Intn(4) {
	case 0:
		return collision.Circle{Radius: 0.1 + r.Float64()}.Proxy()
	case 1:
		return collision.Capsule{
			Center1: r2.Point{X: -r.Float64(), Y: 0},
			Center2: r2.Point{X: r.Float64(), Y: 0},
			Radius:  0.1 + 0.5*r.Float64(),
		}.Proxy()
	case 2:
		return collision.Segment{
			Point1: r2.Point{X: -1 - r.Float64(), Y: r.Float64()},
			Point2: r2.Point{X: 1 + r.Float64(), Y: -r.Float64()},
		}.Proxy()
	default:
		box, err := collision.NewBox(0.2+r.Float64(), 0.2+r.Float64())
		if err != nil {
			// Dimensions above are always positive.
			panic(err)
		}
		return box.Proxy()
	}
}

func randomPairs(count int, seed int64) []pair {
	r := rand.New(rand.NewSource(seed))
	pairs := make([]pair, count)
	for i := range pairs {
		centerB := r2.Point{X: 4*r.Float64() - 2, Y: 4*r.Float64() - 2}
		p := pair{
			proxyA: randomProxy(r),
			proxyB: randomProxy(r),
			tfA:    spatialmath.NewZeroTransform(),
			tfB:    spatialmath.NewTransform(centerB, r.Float64()),
		}
		p.sweepB = collision.Sweep{
			C1: centerB,
			C2: r2.Point{X: 4*r.Float64() - 2, Y: 4*r.Float64() - 2},
			Q1: p.tfB.Q,
			Q2: spatialmath.NewRot(r.Float64()),
		}
		pairs[i] = p
	}
	return pairs
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}

	pairs := randomPairs(argsParsed.Pairs, argsParsed.Seed)
	logger.Infow("starting",
		"pairs", argsParsed.Pairs,
		"queries_per_worker", argsParsed.Queries,
		"workers", argsParsed.Workers,
	)

	if err := runBench(ctx, "distance", argsParsed, pairs, func(p pair, cache *collision.SimplexCache) {
		collision.Distance(collision.DistanceInput{
			ProxyA:     p.proxyA,
			ProxyB:     p.proxyB,
			TransformA: p.tfA,
			TransformB: p.tfB,
			UseRadii:   true,
		}, cache)
	}); err != nil {
		return err
	}

	if err := runBench(ctx, "shape_cast", argsParsed, pairs, func(p pair, _ *collision.SimplexCache) {
		collision.ShapeCast(collision.ShapeCastPairInput{
			ProxyA:       p.proxyA,
			ProxyB:       p.proxyB,
			TransformA:   p.tfA,
			TransformB:   p.tfB,
			TranslationB: p.sweepB.LinearVelocity(),
			MaxFraction:  1,
		})
	}); err != nil {
		return err
	}

	return runBench(ctx, "time_of_impact", argsParsed, pairs, func(p pair, _ *collision.SimplexCache) {
		collision.TimeOfImpact(collision.TOIInput{
			ProxyA:      p.proxyA,
			ProxyB:      p.proxyB,
			SweepA:      collision.Sweep{Q1: p.tfA.Q, Q2: p.tfA.Q},
			SweepB:      p.sweepB,
			MaxFraction: 1,
		})
	})
}

func runBench(
	ctx context.Context,
	name string,
	args Arguments,
	pairs []pair,
	query func(pair, *collision.SimplexCache),
) error {
	perWorker := make([]float64, args.Workers)

	group, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for worker := 0; worker < args.Workers; worker++ {
		group.Go(func() error {
			var cache collision.SimplexCache
			workerStart := time.Now()
			for i := 0; i < args.Queries; i++ {
				if i%4096 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				p := pairs[i%len(pairs)]
				cache = collision.SimplexCache{}
				query(p, &cache)
			}
			perWorker[worker] = time.Since(workerStart).Seconds()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	elapsed := time.Since(start)

	sort.Float64s(perWorker)
	total := float64(args.Workers * args.Queries)
	logger.Infow(name,
		"elapsed", elapsed,
		"queries_per_second", total/elapsed.Seconds(),
		"worker_mean_s", stat.Mean(perWorker, nil),
		"worker_stddev_s", stat.StdDev(perWorker, nil),
	)
	return nil
}
