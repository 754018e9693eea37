//go:build !spin_noyield

package backoff

import "runtime"

// YieldNow
// 显式让出当前协程的剩余时间片。仅在具备调度器让步能力的构建中提供，
// 在 spin_noyield 构建（面向无调度器环境）中不存在。
func (b *BackOff) YieldNow() {
	runtime.Gosched()
}

func yieldHint() {
	runtime.Gosched()
}
