// Package interview holds the screening session state and the dialogue
// orchestrator that drives it.
package interview

// Stage is a named state in the dialogue state machine. Exactly one stage is
// active per session at any time.
type Stage string

const (
	StageGreeting            Stage = "greeting"
	StageGatheringName       Stage = "gathering_name"
	StageGatheringEmail      Stage = "gathering_email"
	StageGatheringPhone      Stage = "gathering_phone"
	StageGatheringExperience Stage = "gathering_experience"
	StageGatheringPosition   Stage = "gathering_position"
	StageGatheringLocation   Stage = "gathering_location"
	StageGatheringTechStack  Stage = "gathering_tech_stack"
	StageAssessmentStart     Stage = "assessment_start"
	StageInAssessment        Stage = "in_assessment"
	StageCodingChallenge     Stage = "coding_challenge"
	StageConclusion          Stage = "conclusion"
	// StageFinished is terminal: no further transitions happen.
	StageFinished Stage = "finished"
)

var stageOrder = []Stage{
	StageGreeting,
	StageGatheringName,
	StageGatheringEmail,
	StageGatheringPhone,
	StageGatheringExperience,
	StageGatheringPosition,
	StageGatheringLocation,
	StageGatheringTechStack,
	StageAssessmentStart,
	StageInAssessment,
	StageCodingChallenge,
	StageConclusion,
	StageFinished,
}

func (s Stage) String() string { return string(s) }

// Next returns the literal successor in the dialogue order. The terminal
// stage returns itself.
func (s Stage) Next() Stage {
	for i, stage := range stageOrder {
		if stage == s && i+1 < len(stageOrder) {
			return stageOrder[i+1]
		}
	}
	return StageFinished
}

// Terminal reports whether no further transitions can happen from s.
func (s Stage) Terminal() bool { return s == StageFinished }
