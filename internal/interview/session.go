package interview

import (
	"strings"
)

// Message roles, mirroring the chat-completion wire shape.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Greeting is the assistant message every fresh session opens with.
const Greeting = "Hello! I'm the AI Hiring Assistant from TalentScout. To start, could you please tell me your full name?"

// Message is one chronological entry of the conversation transcript.
type Message struct {
	Role    string
	Content string
}

// Candidate is the profile assembled during the gathering stages. Each field
// starts empty and is written exactly once, by the orchestrator, after the
// corresponding input passed validation.
type Candidate struct {
	FullName        string
	Email           string
	PhoneNumber     string
	ExperienceYears string
	DesiredPosition string
	CurrentLocation string
	TechStack       string
}

// Session is the whole state of one screening conversation. It is an explicit
// value passed into every orchestrator step; nothing about it is global.
type Session struct {
	ID    string
	Stage Stage

	// Messages is append-only within a session; its order is what gets
	// rendered and what is serialized into prompt context.
	Messages  []Message
	Candidate Candidate

	// AwaitingPositionChoice is set between "multiple roles detected" and
	// "single role chosen".
	AwaitingPositionChoice bool

	// QuestionPlan is the shuffled topic list derived from the tech stack.
	// Fixed once set; consumed by index.
	QuestionPlan          []string
	CurrentTopicIndex     int
	QuestionsAskedOnTopic int

	CodingQuestionsAsked int

	LastQuestionAsked string
	// QuestionHistory records every question asked, to avoid repeats.
	QuestionHistory []string
}

// NewSession returns a session at the greeting stage, pre-seeded with the
// opening assistant message.
func NewSession(id string) *Session {
	s := &Session{ID: id}
	s.Reset()
	return s
}

// Reset restores the session to a fresh greeting state, dropping all
// collected data and history. The ID is kept.
func (s *Session) Reset() {
	*s = Session{ID: s.ID}
	s.Stage = StageGreeting
	s.appendAssistant(Greeting)
}

func (s *Session) appendUser(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleUser, Content: content})
}

func (s *Session) appendAssistant(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
}

// HistoryText serializes the transcript as "role: content" lines for prompt
// context.
func (s *Session) HistoryText() string {
	var b strings.Builder
	for i, m := range s.Messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

// MessagesSince returns the transcript entries appended after position n.
// The presentation shell uses it to render only the new turns of a step.
func (s *Session) MessagesSince(n int) []Message {
	if n < 0 || n > len(s.Messages) {
		return nil
	}
	return s.Messages[n:]
}

// TopicsRemain reports whether the topic cursor still points inside the
// question plan.
func (s *Session) TopicsRemain() bool {
	return s.CurrentTopicIndex < len(s.QuestionPlan)
}

// CurrentTopic returns the topic under assessment. It must only be called
// while TopicsRemain reports true.
func (s *Session) CurrentTopic() string {
	return s.QuestionPlan[s.CurrentTopicIndex]
}
