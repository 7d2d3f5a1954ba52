package system

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunk keeps tiny worlds on one goroutine.
const minChunk = 16

// forChunks splits [0,n) into contiguous chunks and runs fn on each
// concurrently. It returns after every chunk is done. workers <= 0 means
// GOMAXPROCS.
func forChunks(n, workers int, fn func(chunk, lo, hi int)) {
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := max((n+workers-1)/workers, minChunk)
	if size >= n {
		fn(0, 0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for chunk, lo := 0, 0; lo < n; chunk, lo = chunk+1, lo+size {
		hi := min(lo+size, n)
		g.Go(func() error {
			fn(chunk, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

// chunkCount matches the number of fn calls forChunks makes.
func chunkCount(n, workers int) int {
	if n == 0 {
		return 0
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	size := max((n+workers-1)/workers, minChunk)
	return (n + size - 1) / size
}
