package matching

type Badge string

const (
	BadgeStrong Badge = "strong"
	BadgeGood   Badge = "good"
	BadgeFair   Badge = "fair"
	BadgeLow    Badge = "low"
)

func BadgeFor(score int) Badge {
	switch {
	case score >= 80:
		return BadgeStrong
	case score >= 60:
		return BadgeGood
	case score >= 40:
		return BadgeFair
	default:
		return BadgeLow
	}
}
