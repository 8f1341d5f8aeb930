package matching

// Reasoning is the qualitative fit explanation produced by the
// reasoning service for one (resume, job) pair.
type Reasoning struct {
	Reasoning     string   `json:"reasoning"`
	FitSkills     []string `json:"fit_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// FallbackReasoning is substituted when the service omits a job from
// its structured response.
func FallbackReasoning() Reasoning {
	return Reasoning{
		Reasoning:     "Analysis not available or failed.",
		FitSkills:     []string{},
		MissingSkills: []string{},
	}
}
