package main

import (
	"context"
	"flag"
	"fmt"
	spinlock "github.com/LOKESH-999/axiom-spinlock"
	"github.com/LOKESH-999/axiom-spinlock/pkg/counter"
	"os"
	"time"
)

var (
	goroutines = flag.Int("goroutines", 100, "并发协程数")
	increments = flag.Int("increments", 1_000_000, "每个协程的递增次数")
	timeout    = flag.Duration("timeout", 5*time.Minute, "整体超时时长")
)

// 压测程序：多个协程持锁递增同一共享计数，
// 校验最终值恰好等于 goroutines × increments，用以验证互斥并观测争用行为。
func main() {
	flag.Parse()

	lock := spinlock.New(int64(0))
	inflight := counter.New()

	fmt.Println("starting spinlock stress...")
	begin := time.Now()

	for i := 0; i < *goroutines; i++ {
		inflight.Incr()
		go func() {
			defer inflight.Decr()
			for n := 0; n < *increments; n++ {
				guard := lock.Lock()
				value := guard.Value()
				*value = *value + 1
				guard.Unlock()
			}
		}()
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := inflight.WaitDownTo(ctx, 0); err != nil {
		fmt.Println("stress wait failed:", err)
		os.Exit(1)
	}
	elapsed := time.Since(begin)

	final := spinlock.WithLock(lock, func(value *int64) int64 {
		return *value
	})
	want := int64(*goroutines) * int64(*increments)

	fmt.Println("final counter value:", final)
	fmt.Println("elapsed:", elapsed)
	if final != want {
		fmt.Println("mutual exclusion violated: want", want)
		os.Exit(1)
	}
}
