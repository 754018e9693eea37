package counter

import (
	"context"
	"github.com/brickingsoft/errors"
	"runtime"
	"sync/atomic"
	"time"
)

const (
	ns500 = 500 * time.Nanosecond
)

var (
	// ErrWaitCanceled 等待未达标前上下文被取消
	ErrWaitCanceled = errors.Define("counter wait canceled", errors.WithMeta("pkg", "spinlock"))
)

// IsWaitCanceled
// 是否为 ErrWaitCanceled 错误
func IsWaitCanceled(err error) bool {
	return errors.Is(err, ErrWaitCanceled)
}

func New() *Counter {
	return new(Counter)
}

// Counter
// 原子计数器。
//
// 用于追踪在途工作者数量：启动时 Incr，退出时 Decr，
// 等待方通过 WaitDownTo 轮询至计数回落。
type Counter struct {
	n int64
}

func (c *Counter) Incr() int64 {
	return atomic.AddInt64(&c.n, 1)
}

func (c *Counter) Decr() int64 {
	return atomic.AddInt64(&c.n, -1)
}

func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.n)
}

// WaitDownTo
// 轮询等待计数回落到不大于 n。
//
// 上下文被取消时返回 ErrWaitCanceled 并包装取消原因。
func (c *Counter) WaitDownTo(ctx context.Context, n int64) (err error) {
	times := 10
	for {
		v := c.Value()
		if v <= n {
			break
		}
		if cause := ctx.Err(); cause != nil {
			err = errors.From(ErrWaitCanceled, errors.WithWrap(cause))
			return
		}
		time.Sleep(ns500)
		times--
		if times < 1 {
			times = 10
			runtime.Gosched()
		}
	}
	return
}
