package domain

import "github.com/shopspring/decimal"

// MaxReferralDepth bounds the invite tree traversal. Invitees beyond the
// third hop earn the root nothing.
const MaxReferralDepth = 3

type ReferralEdge struct {
	InviterID string
	InviteeID string
}

type ReferralMember struct {
	OwnerID string
	Level   int
}

type ReferralTree struct {
	RootID   string
	Members  []ReferralMember
	TeamSize int
}

// MembersAtLevel returns the distinct members at the given level.
func (t ReferralTree) MembersAtLevel(level int) []ReferralMember {
	var out []ReferralMember
	for _, m := range t.Members {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}

type CommissionAttribution struct {
	BeneficiaryID       string
	SourceTransactionID string
	SourceOwnerID       string
	Level               int
	Amount              decimal.Decimal
}

// CommissionSchedule holds the per-level rates. Rates come from configuration
// and must decrease with level.
type CommissionSchedule struct {
	Rates [MaxReferralDepth]decimal.Decimal
}

func (s CommissionSchedule) RateForLevel(level int) decimal.Decimal {
	if level < 1 || level > MaxReferralDepth {
		return decimal.Zero
	}
	return s.Rates[level-1]
}
