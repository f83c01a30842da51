package algorithm

import (
	"runtime"
	"sync"
)

// parallelFor вызывает fn(i) для каждого i из [0, n) на пуле горутин.
// Каждый вызов пишет только в свой элемент результата, синхронизация не нужна.
func parallelFor(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := min(runtime.GOMAXPROCS(0), n)
	next := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				fn(i)
			}
		}()
	}
	for i := 0; i < n; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}
