package plans

// Unlimited marks a plan with no monthly generation ceiling.
const Unlimited = -1

// Rule is the immutable per-plan configuration: how many generations a
// month, and which output channels the plan may request.
type Rule struct {
	Plan         string
	MaxGenerates int
	Channels     []string
}

func (r Rule) IsUnlimited() bool {
	return r.MaxGenerates == Unlimited
}

func (r Rule) Allows(channel string) bool {
	for _, ch := range r.Channels {
		if ch == channel {
			return true
		}
	}
	return false
}

var rules = map[string]Rule{
	PlanFree: {
		Plan:         PlanFree,
		MaxGenerates: 3,
		Channels: []string{
			ChannelSEO, ChannelDescription, ChannelSubjects, ChannelBullets,
		},
	},
	PlanBasic: {
		Plan:         PlanBasic,
		MaxGenerates: 20,
		Channels: []string{
			ChannelSEO, ChannelDescription, ChannelSubjects, ChannelBullets,
		},
	},
	PlanPro: {
		Plan:         PlanPro,
		MaxGenerates: 75,
		Channels: []string{
			ChannelSEO, ChannelDescription, ChannelSubjects, ChannelBullets,
			ChannelInstagram, ChannelTikTok,
		},
	},
	PlanPremium: {
		Plan:         PlanPremium,
		MaxGenerates: Unlimited,
		Channels: []string{
			ChannelSEO, ChannelDescription, ChannelSubjects, ChannelBullets,
			ChannelInstagram, ChannelTikTok, ChannelEmailsFull,
		},
	},
}

// RuleFor returns the rule for a plan. Unknown plans get the free rule so
// a corrupted row can never unlock more than the trial allows.
func RuleFor(plan string) Rule {
	if r, ok := rules[plan]; ok {
		return r
	}
	return rules[PlanFree]
}
