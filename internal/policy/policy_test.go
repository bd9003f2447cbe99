package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"benefitup/internal/domain"
)

func TestCanClaim(t *testing.T) {
	lockedDeal := domain.Deal{ID: "d1", AccessLevel: domain.AccessLocked}
	publicDeal := domain.Deal{ID: "d2", AccessLevel: domain.AccessPublic}
	verified := &domain.User{ID: "u1", IsVerified: true}
	unverified := &domain.User{ID: "u2", IsVerified: false}

	tests := []struct {
		name    string
		deal    domain.Deal
		user    *domain.User
		allowed bool
		reason  DenyReason
	}{
		{"nil user on public deal", publicDeal, nil, false, DenyNotLoggedIn},
		{"nil user on locked deal", lockedDeal, nil, false, DenyNotLoggedIn},
		{"unverified on locked deal", lockedDeal, unverified, false, DenyVerificationRequired},
		{"verified on locked deal", lockedDeal, verified, true, DenyNone},
		{"unverified on public deal", publicDeal, unverified, true, DenyNone},
		{"verified on public deal", publicDeal, verified, true, DenyNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanClaim(tt.deal, tt.user)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestCanClaimHasNoSideEffects(t *testing.T) {
	deal := domain.Deal{ID: "d1", AccessLevel: domain.AccessLocked}
	user := domain.User{ID: "u1", IsVerified: false}

	_ = CanClaim(deal, &user)

	assert.False(t, user.IsVerified)
	assert.Equal(t, domain.AccessLocked, deal.AccessLevel)
}
