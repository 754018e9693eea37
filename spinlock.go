package spinlock

import (
	"github.com/LOKESH-999/axiom-spinlock/pkg/backoff"
	"sync/atomic"
)

// New
// 创建一个持有 value 的自旋锁，初始为未持有状态。
//
// SpinLock 是一个基于忙等的互斥原语：等待方通过反复轮询标志位获取锁，
// 而不是挂起到调度器。适用于不可用或不宜使用阻塞式同步的场景，
// 比如中断上下文与延迟敏感的执行器。临界区应当短小，
// 不要跨越系统调用或长耗时操作持锁。
//
// 该锁不公平，持续争用下等待方可能饥饿；也不可重入，
// 同一协程重复获取会与自身死锁。这些都是设计取舍，不是缺陷。
//
// SpinLock 的零值同样可用，受保护的值为 T 的零值。
func New[T any](value T) *SpinLock[T] {
	return &SpinLock[T]{value: value}
}

// SpinLock
// 自旋互斥锁，独占保护一个 T 类型的值。
//
// 受保护的值仅能通过获取成功后返回的 Guard 访问，
// 任意时刻至多存在一个存活的 Guard。
type SpinLock[T any] struct {
	locked atomic.Bool
	value  T
}

// Lock
// 获取锁，自旋直到可用，返回绑定本锁的 Guard。
//
// 每次抢占失败后由局部退避计数器节流下一次重试，
// 自旋强度随持续争用渐增。成功抢占建立与上一次释放的 happens-before 关系，
// 新持有者可见前一持有者在持锁期间的全部写入。
// 病态争用下可能无限自旋，需要有界等待的调用方应使用 TryLockFor。
func (sl *SpinLock[T]) Lock() *Guard[T] {
	bo := backoff.New()
	for !sl.locked.CompareAndSwap(false, true) {
		bo.Wait()
	}
	return &Guard[T]{lock: sl}
}

// TryLock
// 尝试获取锁，仅抢占一次，不重试不退避。
//
// 锁空闲时返回 Guard 与 true，已被持有时返回 nil 与 false，从不阻塞。
func (sl *SpinLock[T]) TryLock() (guard *Guard[T], ok bool) {
	if sl.locked.CompareAndSwap(false, true) {
		guard = &Guard[T]{lock: sl}
		ok = true
	}
	return
}

// TryLockFor
// 在至多 spins 次抢占内尝试获取锁。
//
// 除第一次外，每次抢占前执行一次退避等待，
// 即以尝试次数而非墙钟时间作为等待上界。
// TryLockFor(0) 等价于单次 TryLock，不执行任何退避。
// 超出次数仍未获取则返回 nil 与 false。
func (sl *SpinLock[T]) TryLockFor(spins int) (guard *Guard[T], ok bool) {
	if spins < 1 {
		return sl.TryLock()
	}
	bo := backoff.New()
	for i := 0; i < spins; i++ {
		if i > 0 {
			bo.Wait()
		}
		if sl.locked.CompareAndSwap(false, true) {
			guard = &Guard[T]{lock: sl}
			ok = true
			return
		}
	}
	return
}

// Unlock
// 不经 Guard 直接把锁置为未持有。
//
// 这是一个不做检查的逃生口：调用方必须当前持有该锁，
// 否则会破坏单写者不变式，后果未定义。常规释放请走 Guard.Unlock。
func (sl *SpinLock[T]) Unlock() {
	sl.locked.Store(false)
}

// IsLocked
// 锁是否处于持有状态的快照。
//
// 对并发获取者而言天然存在竞态，仅作参考，
// 不可用作获取前的预检查。
func (sl *SpinLock[T]) IsLocked() bool {
	return sl.locked.Load()
}

// WithLock
// 获取 sl，以受保护值的独占访问执行 fn，之后释放并返回 fn 的结果。
//
// 释放经由 defer 保证，即使 fn 发生 panic 锁也不会滞留在持有状态。
func WithLock[T any, R any](sl *SpinLock[T], fn func(value *T) R) R {
	guard := sl.Lock()
	defer guard.Unlock()
	return fn(guard.Value())
}
