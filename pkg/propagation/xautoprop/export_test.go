package xautoprop

// ResetB3MultiExtForTest 清除进程级实例（仅用于测试）。
func ResetB3MultiExtForTest() { b3multi.Store(nil) }
