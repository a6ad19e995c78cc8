package plans

import "strings"

// Channel names a single output category a caller may request.
const (
	ChannelSEO         = "seo"
	ChannelDescription = "description"
	ChannelBullets     = "bullets"
	ChannelTikTok      = "tiktok"
	ChannelInstagram   = "instagram"
	ChannelSubjects    = "subjects"
	ChannelEmailsFull  = "emails_full"
)

// AllChannels is the default channel set for a request that does not name
// any. It deliberately excludes emails_full, which must be asked for.
func AllChannels() []string {
	return []string{
		ChannelSEO,
		ChannelDescription,
		ChannelBullets,
		ChannelTikTok,
		ChannelInstagram,
		ChannelSubjects,
	}
}

func ParseChannel(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case ChannelSEO:
		return ChannelSEO, true
	case ChannelDescription:
		return ChannelDescription, true
	case ChannelBullets:
		return ChannelBullets, true
	case ChannelTikTok:
		return ChannelTikTok, true
	case ChannelInstagram:
		return ChannelInstagram, true
	case ChannelSubjects:
		return ChannelSubjects, true
	case ChannelEmailsFull:
		return ChannelEmailsFull, true
	}
	return "", false
}
