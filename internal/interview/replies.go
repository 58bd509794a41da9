package interview

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/talentscout/screening-assistant/internal/ai"
)

// Action is the assessment-stage verdict the model must return.
type Action string

const (
	// ActionMoveOn consumes one question slot on the current topic.
	ActionMoveOn Action = "move_on"
	// ActionElaborationRequired challenges a vague answer; no slot consumed.
	ActionElaborationRequired Action = "elaboration_required"
	// ActionClarificationProvided rephrases the question; no slot consumed.
	ActionClarificationProvided Action = "clarification_provided"
)

// One reply struct per stage schema. Parsing is fail-closed: a reply missing
// a required key or failing to decode is a schema parse failure, never a
// silently defaulted value.

type validationReply struct {
	IsValid  bool   `mapstructure:"is_valid"`
	Response string `mapstructure:"response"`
}

type positionReply struct {
	RoleCount int      `mapstructure:"role_count"`
	Roles     []string `mapstructure:"roles"`
	Response  string   `mapstructure:"response"`
}

type positionChoiceReply struct {
	RoleChosen string `mapstructure:"role_chosen"`
	Response   string `mapstructure:"response"`
}

type messageReply struct {
	Response string `mapstructure:"response"`
}

type questionReply struct {
	Question string
}

type assessmentReply struct {
	ActionNeeded     string `mapstructure:"action_needed"`
	FullResponse     string `mapstructure:"full_response"`
	NewQuestionAsked string `mapstructure:"new_question_asked"`
}

func (r *assessmentReply) action() (Action, error) {
	switch Action(r.ActionNeeded) {
	case ActionMoveOn, ActionElaborationRequired, ActionClarificationProvided:
		return Action(r.ActionNeeded), nil
	default:
		return "", fmt.Errorf("unexpected action_needed %q", r.ActionNeeded)
	}
}

// decodeReply unmarshals a raw model reply into a generic map, verifies the
// required keys are present, and decodes the map into the typed reply.
func decodeReply(raw string, out any, required ...string) error {
	data, err := replyMap(raw)
	if err != nil {
		return err
	}

	for _, key := range required {
		if _, ok := data[key]; !ok {
			return fmt.Errorf("reply is missing key %q", key)
		}
	}

	if err := mapstructure.Decode(data, out); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}

	return nil
}

func replyMap(raw string) (map[string]any, error) {
	cleaned := ai.ExtractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse reply: %w", err)
	}

	return data, nil
}

func parseValidationReply(raw string) (*validationReply, error) {
	var reply validationReply
	if err := decodeReply(raw, &reply, "is_valid", "response"); err != nil {
		return nil, err
	}
	return &reply, nil
}

func parsePositionReply(raw string) (*positionReply, error) {
	// roles is allowed to be absent; the orchestrator falls back to the
	// candidate's own wording when the model omits it.
	var reply positionReply
	if err := decodeReply(raw, &reply, "role_count", "response"); err != nil {
		return nil, err
	}
	return &reply, nil
}

func parsePositionChoiceReply(raw string) (*positionChoiceReply, error) {
	var reply positionChoiceReply
	if err := decodeReply(raw, &reply, "role_chosen", "response"); err != nil {
		return nil, err
	}
	return &reply, nil
}

func parseMessageReply(raw string) (*messageReply, error) {
	var reply messageReply
	if err := decodeReply(raw, &reply, "response"); err != nil {
		return nil, err
	}
	return &reply, nil
}

func parseAssessmentReply(raw string) (*assessmentReply, Action, error) {
	var reply assessmentReply
	if err := decodeReply(raw, &reply, "action_needed", "full_response", "new_question_asked"); err != nil {
		return nil, "", err
	}

	action, err := reply.action()
	if err != nil {
		return nil, "", err
	}

	return &reply, action, nil
}

// parseQuestionReply extracts the "question" value. Models occasionally nest
// the question inside an object; the description field, or failing that the
// first value in key order, is flattened to a string.
func parseQuestionReply(raw string) (*questionReply, error) {
	data, err := replyMap(raw)
	if err != nil {
		return nil, err
	}

	value, ok := data["question"]
	if !ok {
		return nil, fmt.Errorf("reply is missing key %q", "question")
	}

	question := flattenQuestion(value)
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("reply has empty question")
	}

	return &questionReply{Question: question}, nil
}

func flattenQuestion(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if desc, ok := v["description"].(string); ok {
			return desc
		}
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := flattenQuestion(v[k]); strings.TrimSpace(s) != "" {
				return s
			}
		}
		return ""
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
