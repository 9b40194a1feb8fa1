package model

// AthleteRole distinguishes high-school students from college athletes.
type AthleteRole string

// Supported athlete roles.
const (
	RoleHighSchool AthleteRole = "hs_student"
	RoleCollege    AthleteRole = "college_athlete"
)

// SchoolLevel mirrors AthleteRole in agency-facing targeting terms.
type SchoolLevel string

// Supported school levels.
const (
	LevelHighSchool SchoolLevel = "high_school"
	LevelCollege    SchoolLevel = "college"
)

// Level maps an athlete role to its school level.
func (r AthleteRole) Level() SchoolLevel {
	if r == RoleHighSchool {
		return LevelHighSchool
	}
	return LevelCollege
}

// AthleteContext is the athlete-side context a deal is scored against.
type AthleteContext struct {
	AthleteID          string      `json:"athlete_id"`
	Role               AthleteRole `json:"role"`
	IsMinor            bool        `json:"is_minor"`
	HasGuardianConsent bool        `json:"has_guardian_consent"`
	State              string      `json:"state"`
	Sport              string      `json:"sport"`
	FollowerCount      int         `json:"follower_count"`
	EngagementRate     float64     `json:"engagement_rate"` // percent, e.g. 3.5

	HasAcknowledgedTaxObligations bool `json:"has_acknowledged_tax_obligations"`
}
