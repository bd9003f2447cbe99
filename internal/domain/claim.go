package domain

import "time"

// ClaimStatus 领取记录状态。本服务只会写入 pending，
// approved/rejected 由后续人工审核流程落库（不在本仓库范围内）。
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "pending"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// Claim 用户对某个权益的领取记录。
// DealTitle/PartnerName/Logo 是创建时刻的快照：之后目录变更不影响历史记录。
type Claim struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	DealID      string      `json:"dealId"`
	Status      ClaimStatus `json:"status"`
	ClaimedAt   time.Time   `json:"claimedAt"`
	DealTitle   string      `json:"dealTitle"`
	PartnerName string      `json:"partnerName"`
	Logo        string      `json:"logo"`
}
