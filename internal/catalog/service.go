// Package catalog 权益目录：固定列表上的只读查询。
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"benefitup/internal/domain"
)

// Service 目录服务。deals 启动时定型，之后只读，无需加锁。
type Service struct {
	deals []domain.Deal
	delay time.Duration // 模拟网络延迟，0 表示关闭
}

type Option func(*Service)

// WithDelay 人为延迟每次查询，便于联调前端的 loading 态
func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithDeals 替换内置目录
func WithDeals(deals []domain.Deal) Option {
	return func(s *Service) { s.deals = deals }
}

func New(opts ...Option) *Service {
	s := &Service{deals: DefaultDeals()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LoadDeals 从 JSON 文件读目录（运维覆盖内置数据用）
func LoadDeals(path string) ([]domain.Deal, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var deals []domain.Deal
	if err := json.Unmarshal(b, &deals); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, d := range deals {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if !d.Category.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown category %q", d.ID, d.Category)
		}
	}
	return deals, nil
}

// ListDeals 返回完整目录，定义顺序
func (s *Service) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	out := make([]domain.Deal, len(s.deals))
	copy(out, s.deals)
	return out, nil
}

// GetDeal 按 id 线性查找
func (s *Service) GetDeal(ctx context.Context, id string) (domain.Deal, error) {
	if err := s.sleep(ctx); err != nil {
		return domain.Deal{}, err
	}
	for _, d := range s.deals {
		if d.ID == id {
			return d, nil
		}
	}
	return domain.Deal{}, domain.ErrDealNotFound
}

// Filters 列表页筛选条件，零值表示不过滤
type Filters struct {
	Query       string             // title / partnerName 的子串匹配（不区分大小写）
	Category    domain.Category    // 精确匹配
	AccessLevel domain.AccessLevel // 精确匹配
}

// Find 按条件过滤，保持定义顺序
func (s *Service) Find(ctx context.Context, f Filters) ([]domain.Deal, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]domain.Deal, 0, len(s.deals))
	for _, d := range s.deals {
		if q != "" &&
			!strings.Contains(strings.ToLower(d.Title), q) &&
			!strings.Contains(strings.ToLower(d.PartnerName), q) {
			continue
		}
		if f.Category != "" && d.Category != f.Category {
			continue
		}
		if f.AccessLevel != "" && d.AccessLevel != f.AccessLevel {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) sleep(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
