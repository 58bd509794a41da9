package interview

import (
	"context"
	"math/rand"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/talentscout/screening-assistant/internal/ai"
	"github.com/talentscout/screening-assistant/internal/prompts"
	"github.com/talentscout/screening-assistant/internal/validate"
)

const (
	questionsPerTopic  = 2
	codingQuestionsMax = 2
)

// Stage-appropriate fallback lines for gateway and schema failures. The
// conversation always stays usable; the candidate's next turn is the retry.
const (
	fallbackName       = "I had a little hiccup. Could you please repeat your name?"
	fallbackEmail      = "I had a little hiccup. Could you provide your email again?"
	fallbackPhone      = "I had a little hiccup. Could you provide your phone number again?"
	fallbackExperience = "I had a little hiccup. Could you provide your experience again?"
	fallbackPosition   = "I had a little hiccup. Could you clarify your desired position?"
	fallbackLocation   = "I had a little hiccup. Could you repeat your location?"
	fallbackTechStack  = "I had a little hiccup. Could you list your tech stack again?"
	fallbackAssessment = "I'm having a moment of writer's block. Let's try that again. Are you ready?"
	fallbackTrainLost  = "My apologies, I lost my train of thought. Let's move on."
	fallbackConclusion = "Thank you for your time. The recruiting team will be in touch."

	transitionPhone      = "Thank you. Your email is recorded. Now, could you please provide your 10-digit phone number?"
	transitionExperience = "Thanks. How many years of professional experience do you have?"
	transitionCoding     = "Great, thank you. To wrap up, I have a couple of brief logic questions for you."
	acknowledgeCoding    = "Okay, thank you for that."

	finishedMessage = "This concludes our conversation. Thank you again! Restart the interview if you would like to start over."
)

// Orchestrator drives the dialogue state machine. It holds no per-session
// state itself; every step receives the session explicitly.
type Orchestrator struct {
	completer  ai.Completer
	summarizer ai.Summarizer
	logger     *zap.Logger
	rand       *rand.Rand
}

// NewOrchestrator wires the orchestrator's collaborators. The random source
// is injected so topic shuffles are seedable in tests; a nil source falls
// back to a self-seeded one.
func NewOrchestrator(completer ai.Completer, summarizer ai.Summarizer, log *zap.Logger, rnd *rand.Rand) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}

	return &Orchestrator{
		completer:  completer,
		summarizer: summarizer,
		logger:     log,
		rand:       rnd,
	}
}

// Step advances the session by exactly one user turn. At most one model call
// is issued per gathering turn and awaited before returning. Conversational
// failures never surface as errors; they become fallback messages on the
// transcript.
func (o *Orchestrator) Step(ctx context.Context, s *Session, input string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	if s.Stage.Terminal() {
		s.appendUser(input)
		s.appendAssistant(finishedMessage)
		return
	}

	// The first user turn promotes the greeting into name gathering.
	if s.Stage == StageGreeting {
		s.Stage = StageGatheringName
	}

	s.appendUser(input)

	o.logger.Debug("orchestrator step",
		zap.String("session_id", s.ID),
		zap.String("stage", s.Stage.String()),
	)

	switch s.Stage {
	case StageGatheringName:
		o.gatherName(ctx, s, input)
	case StageGatheringEmail:
		o.gatherEmail(ctx, s, input)
	case StageGatheringPhone:
		o.gatherPhone(ctx, s, input)
	case StageGatheringExperience:
		o.gatherExperience(ctx, s, input)
	case StageGatheringPosition:
		o.gatherPosition(ctx, s, input)
	case StageGatheringLocation:
		o.gatherLocation(ctx, s, input)
	case StageGatheringTechStack:
		o.gatherTechStack(ctx, s, input)
	case StageAssessmentStart:
		o.startAssessment(ctx, s)
	case StageInAssessment:
		o.assess(ctx, s, input)
	case StageCodingChallenge:
		o.codingChallenge(ctx, s)
	}

	// The conclusion runs in the same turn that reaches it.
	if s.Stage == StageConclusion {
		o.conclude(ctx, s)
	}
}

func (o *Orchestrator) gatherName(ctx context.Context, s *Session, input string) {
	raw, ok := o.complete(ctx, s, prompts.Name(s.HistoryText(), input), fallbackName)
	if !ok {
		return
	}

	reply, err := parseValidationReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallbackName)
		return
	}

	s.appendAssistant(reply.Response)
	// The model's verdict is backstopped by the local shape check so a
	// too-lenient reply cannot record junk as a name.
	if reply.IsValid && validate.FullName(input) {
		s.Candidate.FullName = input
		s.Stage = StageGatheringEmail
	}
}

func (o *Orchestrator) gatherEmail(ctx context.Context, s *Session, input string) {
	if validate.Email(input) {
		s.Candidate.Email = input
		s.appendAssistant(transitionPhone)
		s.Stage = StageGatheringPhone
		return
	}

	o.reprompt(ctx, s, prompts.Email(s.HistoryText(), input), fallbackEmail)
}

func (o *Orchestrator) gatherPhone(ctx context.Context, s *Session, input string) {
	if validate.Phone(input) {
		s.Candidate.PhoneNumber = input
		s.appendAssistant(transitionExperience)
		s.Stage = StageGatheringExperience
		return
	}

	o.reprompt(ctx, s, prompts.Phone(s.HistoryText(), input), fallbackPhone)
}

func (o *Orchestrator) gatherExperience(ctx context.Context, s *Session, input string) {
	if validate.Experience(input) {
		s.Candidate.ExperienceYears = strings.TrimSpace(input)
		s.appendAssistant("Great, " + s.Candidate.ExperienceYears + " years. Which position(s) are you interested in?")
		s.Stage = StageGatheringPosition
		return
	}

	o.reprompt(ctx, s, prompts.Experience(s.HistoryText(), input), fallbackExperience)
}

// reprompt forwards locally-invalid input to the model for a conversational
// re-ask. The stage never changes on this path.
func (o *Orchestrator) reprompt(ctx context.Context, s *Session, prompt, fallback string) {
	raw, ok := o.complete(ctx, s, prompt, fallback)
	if !ok {
		return
	}

	reply, err := parseValidationReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallback)
		return
	}

	s.appendAssistant(reply.Response)
}

func (o *Orchestrator) gatherPosition(ctx context.Context, s *Session, input string) {
	prompt := prompts.Position(s.HistoryText(), input, s.AwaitingPositionChoice)
	raw, ok := o.complete(ctx, s, prompt, fallbackPosition)
	if !ok {
		return
	}

	if s.AwaitingPositionChoice {
		reply, err := parsePositionChoiceReply(raw)
		if err != nil {
			o.schemaFailure(s, err, fallbackPosition)
			return
		}

		s.appendAssistant(reply.Response)
		s.Candidate.DesiredPosition = reply.RoleChosen
		s.AwaitingPositionChoice = false
		s.Stage = StageGatheringLocation
		return
	}

	reply, err := parsePositionReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallbackPosition)
		return
	}

	s.appendAssistant(reply.Response)

	switch {
	case reply.RoleCount > 1:
		s.AwaitingPositionChoice = true
	case reply.RoleCount == 1:
		role := input
		if len(reply.Roles) > 0 {
			role = reply.Roles[0]
		}
		s.Candidate.DesiredPosition = role
		s.Stage = StageGatheringLocation
	}
}

func (o *Orchestrator) gatherLocation(ctx context.Context, s *Session, input string) {
	raw, ok := o.complete(ctx, s, prompts.Location(s.HistoryText(), input), fallbackLocation)
	if !ok {
		return
	}

	reply, err := parseMessageReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallbackLocation)
		return
	}

	s.Candidate.CurrentLocation = input
	s.appendAssistant(reply.Response)
	s.Stage = StageGatheringTechStack
}

func (o *Orchestrator) gatherTechStack(ctx context.Context, s *Session, input string) {
	raw, ok := o.complete(ctx, s, prompts.TechStack(s.HistoryText(), input), fallbackTechStack)
	if !ok {
		return
	}

	reply, err := parseMessageReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallbackTechStack)
		return
	}

	s.Candidate.TechStack = input
	s.appendAssistant(reply.Response)
	s.Stage = StageAssessmentStart
}

// startAssessment derives the shuffled question plan from the stated tech
// stack and requests the opening question for the first topic.
func (o *Orchestrator) startAssessment(ctx context.Context, s *Session) {
	if s.QuestionPlan == nil {
		s.QuestionPlan = o.shuffledTopics(s.Candidate.TechStack)
		s.CurrentTopicIndex = 0
		s.QuestionsAskedOnTopic = 0
	}

	if !s.TopicsRemain() {
		// Nothing assessable in the stated stack.
		s.Stage = StageCodingChallenge
		o.askCodingQuestion(ctx, s, transitionCoding)
		return
	}

	prompt := prompts.FirstQuestion(o.profile(s), s.CurrentTopic())
	raw, ok := o.complete(ctx, s, prompt, fallbackAssessment)
	if !ok {
		return
	}

	reply, err := parseQuestionReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallbackAssessment)
		return
	}

	s.LastQuestionAsked = reply.Question
	s.QuestionHistory = append(s.QuestionHistory, reply.Question)
	s.appendAssistant(reply.Question)
	s.Stage = StageInAssessment
}

func (o *Orchestrator) assess(ctx context.Context, s *Session, input string) {
	if !s.TopicsRemain() {
		s.Stage = StageCodingChallenge
		o.askCodingQuestion(ctx, s, transitionCoding)
		return
	}

	prompt := prompts.Assessment(
		o.profile(s),
		s.CurrentTopic(),
		s.QuestionsAskedOnTopic,
		s.LastQuestionAsked,
		input,
		s.QuestionHistory,
	)

	raw, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		// Gateway failure holds position; only schema failures trade
		// continuity for forward progress.
		o.gatewayFailure(s, err, fallbackAssessment)
		return
	}

	reply, action, parseErr := parseAssessmentReply(raw)
	if parseErr != nil {
		o.logger.Warn("assessment reply failed to parse, advancing topic",
			zap.String("session_id", s.ID),
			zap.Error(parseErr),
		)
		s.appendAssistant(fallbackTrainLost)
		s.CurrentTopicIndex++
		s.QuestionsAskedOnTopic = 0
		if !s.TopicsRemain() {
			s.Stage = StageCodingChallenge
			o.askCodingQuestion(ctx, s, transitionCoding)
		}
		return
	}

	s.appendAssistant(reply.FullResponse)
	s.LastQuestionAsked = reply.NewQuestionAsked

	if action == ActionMoveOn {
		s.QuestionHistory = append(s.QuestionHistory, reply.NewQuestionAsked)
		s.QuestionsAskedOnTopic++
		if s.QuestionsAskedOnTopic >= questionsPerTopic {
			s.CurrentTopicIndex++
			s.QuestionsAskedOnTopic = 0
		}
	}

	if !s.TopicsRemain() {
		s.Stage = StageCodingChallenge
		o.askCodingQuestion(ctx, s, transitionCoding)
	}
}

func (o *Orchestrator) codingChallenge(ctx context.Context, s *Session) {
	s.appendAssistant(acknowledgeCoding)
	s.CodingQuestionsAsked++

	if s.CodingQuestionsAsked >= codingQuestionsMax {
		s.Stage = StageConclusion
		return
	}

	prompt := prompts.Coding(o.profile(s), s.CodingQuestionsAsked)
	raw, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		o.gatewayFailure(s, err, fallbackAssessment)
		return
	}

	reply, parseErr := parseQuestionReply(raw)
	if parseErr != nil {
		// Don't stall the wrap-up on a malformed question.
		o.logger.Warn("coding question failed to parse, concluding",
			zap.String("session_id", s.ID),
			zap.Error(parseErr),
		)
		s.Stage = StageConclusion
		return
	}

	s.appendAssistant("For the final question: " + reply.Question)
	s.LastQuestionAsked = reply.Question
	s.QuestionHistory = append(s.QuestionHistory, reply.Question)
}

// askCodingQuestion requests the next logic question right after the topical
// assessment ends, prefixed with the given transition line.
func (o *Orchestrator) askCodingQuestion(ctx context.Context, s *Session, transition string) {
	prompt := prompts.Coding(o.profile(s), s.CodingQuestionsAsked)
	raw, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		o.gatewayFailure(s, err, fallbackAssessment)
		return
	}

	reply, parseErr := parseQuestionReply(raw)
	if parseErr != nil {
		o.schemaFailure(s, parseErr, fallbackAssessment)
		return
	}

	s.appendAssistant(transition)
	s.appendAssistant(reply.Question)
	s.LastQuestionAsked = reply.Question
	s.QuestionHistory = append(s.QuestionHistory, reply.Question)
}

func (o *Orchestrator) conclude(ctx context.Context, s *Session) {
	raw, ok := o.complete(ctx, s, prompts.Conclusion(o.profile(s)), fallbackConclusion)
	if !ok {
		return
	}

	reply, err := parseMessageReply(raw)
	if err != nil {
		o.schemaFailure(s, err, fallbackConclusion)
		return
	}

	s.appendAssistant(reply.Response)
	s.Stage = StageFinished
}

// Summarize produces the hiring-manager digest of the transcript so far.
func (o *Orchestrator) Summarize(ctx context.Context, s *Session) (*ai.Summary, error) {
	return o.summarizer.Summarize(ctx, prompts.Summary(o.profile(s), s.HistoryText()))
}

// complete issues one model call and applies the gateway-failure policy:
// on error the fallback is appended, the stage untouched, and ok is false.
func (o *Orchestrator) complete(ctx context.Context, s *Session, prompt, fallback string) (string, bool) {
	raw, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		o.gatewayFailure(s, err, fallback)
		return "", false
	}
	return raw, true
}

func (o *Orchestrator) gatewayFailure(s *Session, err error, fallback string) {
	o.logger.Warn("model call failed",
		zap.String("session_id", s.ID),
		zap.String("stage", s.Stage.String()),
		zap.Error(err),
	)
	s.appendAssistant(fallback)
}

func (o *Orchestrator) schemaFailure(s *Session, err error, fallback string) {
	o.logger.Warn("model reply failed schema parse",
		zap.String("session_id", s.ID),
		zap.String("stage", s.Stage.String()),
		zap.Error(err),
	)
	s.appendAssistant(fallback)
}

func (o *Orchestrator) profile(s *Session) prompts.Profile {
	return prompts.Profile{
		FullName:        s.Candidate.FullName,
		DesiredPosition: s.Candidate.DesiredPosition,
		ExperienceYears: s.Candidate.ExperienceYears,
		TechStack:       s.Candidate.TechStack,
	}
}

// shuffledTopics splits the free-text stack on commas and whitespace, drops
// empties, and shuffles uniformly so the first-listed technology carries no
// bias.
func (o *Orchestrator) shuffledTopics(techStack string) []string {
	topics := strings.FieldsFunc(techStack, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	o.rand.Shuffle(len(topics), func(i, j int) {
		topics[i], topics[j] = topics[j], topics[i]
	})

	return topics
}
