package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/lmousom/uid"
	"github.com/oklog/ulid/v2"
	"github.com/segmentio/ksuid"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "benchmark")

// contender generates one identifier and returns its binary form.
type contender struct {
	name string
	fn   func() ([]byte, error)
}

func contenders() []contender {
	g := uid.MustNew()
	buf32 := make([]byte, uid.MaxSize)

	node, err := snowflake.NewNode(1)
	if err != nil {
		logger.Error("snowflake node", "error", err)
		os.Exit(1)
	}

	return []contender{
		{"uid-16", func() ([]byte, error) {
			id, err := g.Next()
			return id[:], err
		}},
		{"uid-32", func() ([]byte, error) {
			err := g.Fill(buf32)
			return buf32, err
		}},
		{"UUID v4", func() ([]byte, error) {
			id := uuid.New()
			return id[:], nil
		}},
		{"UUID v7", func() ([]byte, error) {
			id, err := uuid.NewV7()
			return id[:], err
		}},
		{"ULID", func() ([]byte, error) {
			id := ulid.Make()
			return id[:], nil
		}},
		{"KSUID", func() ([]byte, error) {
			id := ksuid.New()
			return id.Bytes(), nil
		}},
		{"Snowflake", func() ([]byte, error) {
			b := node.Generate().IntBytes()
			return b[:], nil
		}},
	}
}

func main() {
	fmt.Println("uid Benchmark")
	fmt.Println("=============")
	fmt.Printf("Go %s on %s/%s, %d cores\n",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Println()

	runGenerationBenchmark()
	runConcurrentBenchmark()
	runOrderingTest()
	runCollisionTest()
	runSortingComparison()
}

func runGenerationBenchmark() {
	fmt.Println("Generation Performance")
	fmt.Println("---------------------")

	const iterations = 500000

	for _, test := range contenders() {
		// Warmup
		for i := 0; i < 1000; i++ {
			test.fn()
		}

		start := time.Now()
		for i := 0; i < iterations; i++ {
			if _, err := test.fn(); err != nil {
				logger.Error("generation failed", "contender", test.name, "error", err)
			}
		}
		elapsed := time.Since(start)

		opsPerSec := float64(iterations) / elapsed.Seconds()
		nsPerOp := elapsed.Nanoseconds() / int64(iterations)

		fmt.Printf("%-12s %8.0f ops/sec  %6d ns/op\n", test.name, opsPerSec, nsPerOp)
	}
	fmt.Println()
}

func runConcurrentBenchmark() {
	fmt.Println("Concurrent Generation")
	fmt.Println("--------------------")

	const workers = 4
	const perWorker = 50000

	g := uid.MustNew()
	tests := []struct {
		name string
		fn   func() error
	}{
		{"uid", func() error {
			_, err := g.Next()
			return err
		}},
		{"UUID v7", func() error {
			_, err := uuid.NewV7()
			return err
		}},
		{"ULID", func() error {
			_ = ulid.Make()
			return nil
		}},
	}

	for _, test := range tests {
		start := time.Now()

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					if err := test.fn(); err != nil {
						logger.Error("generation failed", "contender", test.name, "error", err)
					}
				}
			}()
		}
		wg.Wait()

		rate := float64(workers*perWorker) / time.Since(start).Seconds()
		fmt.Printf("%-8s %8.0f IDs/sec (%d workers)\n", test.name, rate, workers)
	}
	fmt.Println()
}

func runOrderingTest() {
	fmt.Println("Temporal Ordering")
	fmt.Println("-----------------")

	const count = 5000

	for _, test := range contenders() {
		ids := make([][]byte, count)
		for i := 0; i < count; i++ {
			b, err := test.fn()
			if err != nil {
				logger.Error("generation failed", "contender", test.name, "error", err)
				return
			}
			ids[i] = bytes.Clone(b)
			if i%100 == 0 && i > 0 {
				time.Sleep(time.Microsecond * 10)
			}
		}

		ordered := true
		for i := 1; i < len(ids); i++ {
			if bytes.Compare(ids[i-1], ids[i]) > 0 {
				ordered = false
				break
			}
		}
		fmt.Printf("%-12s naturally ordered: %v\n", test.name, ordered)
	}
	fmt.Println()
}

func runCollisionTest() {
	fmt.Println("Collision Test")
	fmt.Println("--------------")

	const count = 500000
	seen := make(map[uid.ID]struct{}, count)
	collisions := 0

	start := time.Now()
	for i := 0; i < count; i++ {
		id := uid.MustNext()
		if _, ok := seen[id]; ok {
			collisions++
		} else {
			seen[id] = struct{}{}
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("Generated: %d IDs in %v\n", count, elapsed)
	fmt.Printf("Collisions: %d\n", collisions)
	fmt.Printf("Unique rate: %.4f%%\n", float64(len(seen))/float64(count)*100)
	fmt.Println()
}

func runSortingComparison() {
	fmt.Println("Sorting Comparison")
	fmt.Println("------------------")

	const count = 50000

	uids := make([]uid.ID, count)
	uuids := make([]uuid.UUID, count)
	for i := 0; i < count; i++ {
		uids[i] = uid.MustNext()
		uuids[i] = uuid.New()
	}

	rand.Shuffle(len(uids), func(i, j int) {
		uids[i], uids[j] = uids[j], uids[i]
	})
	rand.Shuffle(len(uuids), func(i, j int) {
		uuids[i], uuids[j] = uuids[j], uuids[i]
	})

	start := time.Now()
	sort.Slice(uids, func(i, j int) bool { return uids[i].Less(uids[j]) })
	uidSortTime := time.Since(start)

	start = time.Now()
	sort.Slice(uuids, func(i, j int) bool { return bytes.Compare(uuids[i][:], uuids[j][:]) < 0 })
	uuidSortTime := time.Since(start)

	fmt.Printf("uid sort:  %v\n", uidSortTime)
	fmt.Printf("UUID sort: %v\n", uuidSortTime)

	fmt.Println()
	fmt.Println("Note: Sorting performance can vary based on data patterns")
	fmt.Println("and system characteristics. Results may differ between runs.")
}
