package spinlock

// Guard
// 对锁内值的独占、限定作用域的访问凭据。
//
// 仅能由获取成功产生，不可自行构造，不应复制。
// 在其存活期间对受保护值拥有读写权；
// 用毕必须调用 Unlock 释放，建议配合 defer，
// 以保证任何退出路径（正常返回、提前返回、panic 展开）都会释放锁。
type Guard[T any] struct {
	lock *SpinLock[T]
}

// Value
// 受保护值的指针，在 Guard 存活期间可读写。
//
// 不要把该指针保留到 Unlock 之后。
func (g *Guard[T]) Value() *T {
	return &g.lock.value
}

// Unlock
// 释放锁。每个 Guard 仅能释放一次，释放后该 Guard 即失效。
func (g *Guard[T]) Unlock() {
	g.lock.locked.Store(false)
}
