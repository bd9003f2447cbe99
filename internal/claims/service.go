// Package claims 领取记录：校验权益存在后落一条 pending 记录。
// 资格判定（policy.CanClaim）由调用方先行执行，这里只管存在性与落库。
package claims

import (
	"context"
	"time"

	"github.com/google/uuid"

	"benefitup/internal/catalog"
	"benefitup/internal/domain"
	"benefitup/internal/store"
)

type Service struct {
	db      *store.Locked
	catalog *catalog.Service
	now     func() time.Time
	newID   func() string
}

func NewService(db *store.Locked, cat *catalog.Service) *Service {
	return &Service{db: db, catalog: cat, now: time.Now, newID: uuid.NewString}
}

// Claim 创建领取记录。dealId 解析不到 → domain.ErrDealNotFound，且不写库。
// 记录冗余保存权益当时的展示字段，之后目录变更不回溯影响历史记录。
// 同一 (user, deal) 允许重复领取，与上游行为一致。
func (s *Service) Claim(ctx context.Context, userID, dealID string) (domain.Claim, error) {
	deal, err := s.catalog.GetDeal(ctx, dealID)
	if err != nil {
		return domain.Claim{}, err
	}

	c := domain.Claim{
		ID:          s.newID(),
		UserID:      userID,
		DealID:      dealID,
		Status:      domain.ClaimPending,
		ClaimedAt:   s.now(),
		DealTitle:   deal.Title,
		PartnerName: deal.PartnerName,
		Logo:        deal.Logo,
	}
	// 追加 + 落盘在同一次 Update 里完成：要么整条写入，要么什么都没发生
	err = s.db.Update(ctx, func(snap *store.Snapshot) error {
		snap.Claims = append(snap.Claims, c)
		return nil
	})
	if err != nil {
		return domain.Claim{}, err
	}
	return c, nil
}

// ListClaims 按 userID 过滤，保持追加顺序（最新的在最后）。
// 需要最新在前的展示序由调用方自行反转，服务层不重排。
func (s *Service) ListClaims(ctx context.Context, userID string) ([]domain.Claim, error) {
	snap, err := s.db.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Claim, 0, len(snap.Claims))
	for _, c := range snap.Claims {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListAll 全量记录（管理端）
func (s *Service) ListAll(ctx context.Context) ([]domain.Claim, error) {
	snap, err := s.db.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Claims, nil
}
