// Package policy 领取资格判定。纯函数，无副作用；
// 每次领取尝试前必须先过这里，Claim 服务不得绕开。
package policy

import "benefitup/internal/domain"

// DenyReason 拒绝原因
type DenyReason string

const (
	DenyNone                 DenyReason = "NONE"
	DenyNotLoggedIn          DenyReason = "NOT_LOGGED_IN"
	DenyVerificationRequired DenyReason = "VERIFICATION_REQUIRED"
)

// Decision 判定结果
type Decision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason"`
}

// CanClaim user 为 nil 表示未登录。
// 规则：未登录一律拒绝；locked 权益要求已认证；其余放行。
func CanClaim(deal domain.Deal, user *domain.User) Decision {
	if user == nil {
		return Decision{Allowed: false, Reason: DenyNotLoggedIn}
	}
	if deal.AccessLevel == domain.AccessLocked && !user.IsVerified {
		return Decision{Allowed: false, Reason: DenyVerificationRequired}
	}
	return Decision{Allowed: true, Reason: DenyNone}
}
