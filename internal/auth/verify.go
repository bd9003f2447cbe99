package auth

import (
	"hash/fnv"
	"math/rand"
)

// VerifyPolicy 决定新账号的初始认证状态。注册后不再改写该标记。
// 上游原型在建号时直接掷随机数，这里收敛为显式可注入的策略，
// 默认一律待认证，演示场景用 VerifySeeded 复现抽签且可测。
type VerifyPolicy func(email string) bool

// VerifyNone 新账号一律未认证（生产默认）
func VerifyNone() VerifyPolicy {
	return func(string) bool { return false }
}

// VerifyAll 新账号一律已认证（测试用）
func VerifyAll() VerifyPolicy {
	return func(string) bool { return true }
}

// VerifySeeded 按 email 派生的可复现“抽签”：同一 (seed, ratio, email)
// 永远得到同一结果。ratio 为判定已认证的比例，0~1。
func VerifySeeded(seed int64, ratio float64) VerifyPolicy {
	return func(email string) bool {
		h := fnv.New64a()
		h.Write([]byte(email))
		r := rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
		return r.Float64() < ratio
	}
}
