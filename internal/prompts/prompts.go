// Package prompts builds the instruction documents sent to the model. Every
// builder is pure text formatting over an embedded template: no network, no
// state. Each template ends with a mandatory JSON output contract naming the
// exact keys the model must return.
package prompts

import (
	_ "embed"
	"strconv"
	"strings"
)

var (
	//go:embed templates/name.md
	nameTemplate string
	//go:embed templates/email.md
	emailTemplate string
	//go:embed templates/phone.md
	phoneTemplate string
	//go:embed templates/experience.md
	experienceTemplate string
	//go:embed templates/position.md
	positionTemplate string
	//go:embed templates/position_choice.md
	positionChoiceTemplate string
	//go:embed templates/location.md
	locationTemplate string
	//go:embed templates/tech_stack.md
	techStackTemplate string
	//go:embed templates/first_question.md
	firstQuestionTemplate string
	//go:embed templates/assessment.md
	assessmentTemplate string
	//go:embed templates/coding.md
	codingTemplate string
	//go:embed templates/conclusion.md
	conclusionTemplate string
	//go:embed templates/summary.md
	summaryTemplate string
)

// Profile carries the candidate fields the assessment builders interpolate.
// Empty fields render as "N/A" so the documents stay well-formed mid-interview.
type Profile struct {
	FullName        string
	DesiredPosition string
	ExperienceYears string
	TechStack       string
}

func (p Profile) field(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}

func render(template string, replacements map[string]string) string {
	out := template
	for token, value := range replacements {
		out = strings.ReplaceAll(out, "{{"+token+"}}", value)
	}
	return out
}

func gathering(template, history, input string) string {
	return render(template, map[string]string{
		"CHAT_HISTORY": history,
		"USER_INPUT":   input,
	})
}

// Name asks the model to judge and respond to a full-name answer.
func Name(history, input string) string {
	return gathering(nameTemplate, history, input)
}

// Email asks the model to re-prompt for a valid email address.
func Email(history, input string) string {
	return gathering(emailTemplate, history, input)
}

// Phone asks the model to re-prompt for a valid 10-digit phone number.
func Phone(history, input string) string {
	return gathering(phoneTemplate, history, input)
}

// Experience asks the model to re-prompt for a whole number of years in range.
func Experience(history, input string) string {
	return gathering(experienceTemplate, history, input)
}

// Position asks the model to identify the desired role(s). When the candidate
// previously listed several roles, the clarification variant is produced and
// the model must return the single chosen role.
func Position(history, input string, awaitingChoice bool) string {
	if awaitingChoice {
		return gathering(positionChoiceTemplate, history, input)
	}
	return gathering(positionTemplate, history, input)
}

// Location asks the model to acknowledge the location and request the stack.
func Location(history, input string) string {
	return gathering(locationTemplate, history, input)
}

// TechStack asks the model to acknowledge the stack and announce the
// technical assessment.
func TechStack(history, input string) string {
	return gathering(techStackTemplate, history, input)
}

// FirstQuestion requests the opening technical question for the given topic.
func FirstQuestion(profile Profile, topic string) string {
	return render(firstQuestionTemplate, map[string]string{
		"TOPIC":      topic,
		"EXPERIENCE": profile.field(profile.ExperienceYears),
		"POSITION":   profile.field(profile.DesiredPosition),
	})
}

// Assessment requests an evaluation of the last answer plus the next
// question. questionsAsked counts questions already asked on the topic;
// questionHistory is fed back so the model avoids repeats.
func Assessment(profile Profile, topic string, questionsAsked int, lastQuestion, answer string, questionHistory []string) string {
	return render(assessmentTemplate, map[string]string{
		"POSITION":         profile.field(profile.DesiredPosition),
		"EXPERIENCE":       profile.field(profile.ExperienceYears),
		"TOPIC":            topic,
		"QUESTION_NUMBER":  strconv.Itoa(questionsAsked + 1),
		"LAST_QUESTION":    lastQuestion,
		"USER_ANSWER":      answer,
		"QUESTION_HISTORY": strings.Join(questionHistory, "\n"),
	})
}

// Coding requests one of the two closing logic questions.
func Coding(profile Profile, questionsAsked int) string {
	return render(codingTemplate, map[string]string{
		"POSITION":        profile.field(profile.DesiredPosition),
		"EXPERIENCE":      profile.field(profile.ExperienceYears),
		"TECH_STACK":      profile.field(profile.TechStack),
		"QUESTION_NUMBER": strconv.Itoa(questionsAsked + 1),
	})
}

// Conclusion requests the closing statement.
func Conclusion(profile Profile) string {
	name := strings.TrimSpace(profile.FullName)
	if name == "" {
		name = "the candidate"
	}
	return render(conclusionTemplate, map[string]string{
		"FULL_NAME": name,
	})
}

// Summary requests the hiring-manager digest of the whole transcript.
func Summary(profile Profile, history string) string {
	return render(summaryTemplate, map[string]string{
		"FULL_NAME":    profile.field(profile.FullName),
		"POSITION":     profile.field(profile.DesiredPosition),
		"EXPERIENCE":   profile.field(profile.ExperienceYears),
		"TECH_STACK":   profile.field(profile.TechStack),
		"CHAT_HISTORY": history,
	})
}
