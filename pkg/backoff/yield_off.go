//go:build spin_noyield

package backoff

// 无调度器让步能力的构建：所有等待均为纯自旋。
func yieldHint() {}
