package model

// DealScoreRequest pairs a deal with its athlete context for scoring.
type DealScoreRequest struct {
	Deal    DealInput      `json:"deal"`
	Athlete AthleteContext `json:"athlete"`
}

// MatchJob is one matchmaking request: an agency's criteria plus the
// candidate pool to rank against it.
type MatchJob struct {
	Criteria   AgencyCriteria          `json:"criteria"`
	Candidates []AthleteMatchCandidate `json:"candidates"`
	MinScore   int                     `json:"min_score"`
	Limit      int                     `json:"limit"`
}
