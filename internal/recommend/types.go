package recommend

// Priority is the urgency tier of a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting: high before medium before low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// ReasonCode says which rule produced a recommendation.
type ReasonCode string

const (
	ReasonFoundational      ReasonCode = "foundational"
	ReasonWeakArea          ReasonCode = "weak_area"
	ReasonNextConcept       ReasonCode = "next_concept"
	ReasonAdvancedExtension ReasonCode = "advanced_extension"
)

// Recommendation is one entry of a learning path. It is computed fresh on
// every request and never persisted.
type Recommendation struct {
	ConceptID   int64      `json:"concept_id"`
	ConceptName string     `json:"concept_name"`
	Reason      ReasonCode `json:"reason"`
	// Detail is the human-readable reason, e.g. the current mastery
	// percentage of a weak area.
	Detail        string   `json:"detail"`
	Priority      Priority `json:"priority"`
	EstimatedTime int      `json:"estimated_time"` // minutes
}

// AssignmentKind identifies the rule that chose an assignment.
type AssignmentKind string

const (
	KindBeginner      AssignmentKind = "beginner"
	KindReinforcement AssignmentKind = "reinforcement"
	KindChallenge     AssignmentKind = "challenge"
)

// AssignmentSuggestion is the next piece of work to serve a student.
type AssignmentSuggestion struct {
	AssignmentID int64          `json:"assignment_id"`
	ConceptID    int64          `json:"concept_id,omitempty"` // 0 for generic assignments
	Kind         AssignmentKind `json:"kind"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	// DifficultyLevel is in [1, 5].
	DifficultyLevel int `json:"difficulty_level"`
	EstimatedTime   int `json:"estimated_time"` // minutes
}
