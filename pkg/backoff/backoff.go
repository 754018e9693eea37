package backoff

import (
	"sync/atomic"
)

const (
	// MinSpin
	// 最小自旋次数。Relax 与 ResetTo 不会把计数降到该值以下。
	MinSpin uint32 = 1 << 2
	// DefaultSpin
	// 默认起始自旋次数。
	DefaultSpin uint32 = 1 << 5
	// MaxSpin
	// 最大自旋次数。Wait 的倍增在此封顶，以约束单次等待的最坏时长。
	MaxSpin uint32 = 1 << 22

	// 超过该值后，Wait 在具备调度器让步能力的构建中会让出时间片。
	yieldThreshold uint32 = 1 << 10

	relaxShift = 1
)

// New
// 以默认起始值创建一个指数退避计数器。
//
// 退避计数器用于忙等循环中对重试进行节流：
// 每次 Wait 自旋当前计数次并倍增计数（封顶于 MaxSpin），
// 从而随着持续争用拉开重试间隔，降低共享缓存行上的压力。
// 计数器与任何锁无关，可独立用于任意忙等循环。
func New() *BackOff {
	b := new(BackOff)
	b.spin.Store(DefaultSpin)
	return b
}

// NewWith
// 以指定起始值创建一个指数退避计数器，起始值被钳制到 [MinSpin, MaxSpin]。
func NewWith(start uint32) *BackOff {
	b := new(BackOff)
	b.spin.Store(clamp(start))
	return b
}

// BackOff
// 指数退避计数器。
//
// 计数存储为原子值，故并发读写不破坏内存安全；
// 但退避策略只对实际执行重试的那个协程有意义，状态迁移按单持有者使用。
type BackOff struct {
	spin atomic.Uint32
}

// Wait
// 执行一次退避：自旋当前计数次，然后把计数倍增（封顶于 MaxSpin）。
//
// 当计数超过让步阈值且构建具备调度器让步能力时，
// 每次调用还会让出一次时间片，以 CPU 空转换取调度公平。
// 在 spin_noyield 构建下退化为纯自旋。
func (b *BackOff) Wait() {
	end := b.spin.Load()
	for i := uint32(0); i < end; i++ {
		spinHint()
	}
	next := end << 1
	if next > MaxSpin {
		next = MaxSpin
	}
	b.spin.Store(next)
	if end > yieldThreshold {
		yieldHint()
	}
}

// Relax
// 把计数减半，下限为 MinSpin。在察觉争用缓解后调用，使后续等待更短。
func (b *BackOff) Relax() {
	next := b.spin.Load() >> relaxShift
	if next < MinSpin {
		next = MinSpin
	}
	b.spin.Store(next)
}

// Current
// 当前计数值。
func (b *BackOff) Current() uint32 {
	return b.spin.Load()
}

// Reset
// 把计数恢复到默认起始值。
func (b *BackOff) Reset() {
	b.spin.Store(DefaultSpin)
}

// ResetTo
// 把计数设为指定值，钳制到 [MinSpin, MaxSpin]。
func (b *BackOff) ResetTo(spin uint32) {
	b.spin.Store(clamp(spin))
}

func clamp(v uint32) uint32 {
	if v < MinSpin {
		return MinSpin
	}
	if v > MaxSpin {
		return MaxSpin
	}
	return v
}

//go:noinline
func spinHint() {}
