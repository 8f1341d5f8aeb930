package dto

// MatchItemResponse is one scored job in the public match response,
// ordered by descending match_score.
type MatchItemResponse struct {
	JobID          int64    `json:"job_id"`
	Title          string   `json:"title"`
	MatchScore     int      `json:"match_score"`
	SkillsRequired []string `json:"skills_required,omitempty"`
	Reasoning      string   `json:"reasoning"`
	FitSkills      []string `json:"fit_skills"`
	MissingSkills  []string `json:"missing_skills"`
}
