package interview

import (
	"testing"
)

func TestParseValidationReply(t *testing.T) {
	t.Parallel()

	reply, err := parseValidationReply(`{"is_valid": true, "response": "Thanks John!"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reply.IsValid {
		t.Fatal("expected is_valid to be true")
	}

	if reply.Response != "Thanks John!" {
		t.Fatalf("unexpected response: %q", reply.Response)
	}
}

func TestParseValidationReplyFailsClosed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
	}{
		{"not json", "sorry, something went wrong"},
		{"missing is_valid", `{"response": "hello"}`},
		{"missing response", `{"is_valid": false}`},
		{"json array", `["is_valid", "response"]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := parseValidationReply(tc.raw); err == nil {
				t.Fatalf("expected parse failure for %q", tc.raw)
			}
		})
	}
}

func TestParseValidationReplyStripsCodeFences(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"is_valid\": true, \"response\": \"ok\"}\n```"
	reply, err := parseValidationReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reply.IsValid || reply.Response != "ok" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestParsePositionReply(t *testing.T) {
	t.Parallel()

	reply, err := parsePositionReply(`{"role_count": 2, "roles": ["Backend Engineer", "SRE"], "response": "Which one?"}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.RoleCount != 2 {
		t.Fatalf("expected role_count 2, got %d", reply.RoleCount)
	}

	if len(reply.Roles) != 2 || reply.Roles[0] != "Backend Engineer" {
		t.Fatalf("unexpected roles: %+v", reply.Roles)
	}
}

func TestParsePositionReplyRolesOptional(t *testing.T) {
	t.Parallel()

	reply, err := parsePositionReply(`{"role_count": 1, "response": "Great choice."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.RoleCount != 1 || len(reply.Roles) != 0 {
		t.Fatalf("unexpected reply: %+v", reply)
	}
}

func TestParsePositionChoiceReply(t *testing.T) {
	t.Parallel()

	reply, err := parsePositionChoiceReply(`{"role_chosen": "Software Engineer", "response": "Noted."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.RoleChosen != "Software Engineer" {
		t.Fatalf("unexpected role: %q", reply.RoleChosen)
	}

	if _, err := parsePositionChoiceReply(`{"response": "Noted."}`); err == nil {
		t.Fatal("expected failure when role_chosen is missing")
	}
}

func TestParseAssessmentReply(t *testing.T) {
	t.Parallel()

	raw := `{"action_needed": "move_on", "full_response": "Good. Next: what is a goroutine?", "new_question_asked": "What is a goroutine?"}`
	reply, action, err := parseAssessmentReply(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if action != ActionMoveOn {
		t.Fatalf("unexpected action: %q", action)
	}

	if reply.NewQuestionAsked != "What is a goroutine?" {
		t.Fatalf("unexpected question: %q", reply.NewQuestionAsked)
	}
}

func TestParseAssessmentReplyRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	raw := `{"action_needed": "skip_topic", "full_response": "x", "new_question_asked": "y"}`
	if _, _, err := parseAssessmentReply(raw); err == nil {
		t.Fatal("expected unknown action to fail closed")
	}
}

func TestParseQuestionReply(t *testing.T) {
	t.Parallel()

	reply, err := parseQuestionReply(`{"question": "Describe the logic to reverse a list."}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Question != "Describe the logic to reverse a list." {
		t.Fatalf("unexpected question: %q", reply.Question)
	}
}

func TestParseQuestionReplyFlattensObject(t *testing.T) {
	t.Parallel()

	reply, err := parseQuestionReply(`{"question": {"description": "Explain indexes.", "difficulty": "easy"}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Question != "Explain indexes." {
		t.Fatalf("unexpected question: %q", reply.Question)
	}
}

func TestParseQuestionReplyObjectWithoutDescription(t *testing.T) {
	t.Parallel()

	reply, err := parseQuestionReply(`{"question": {"text": "Explain joins."}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reply.Question != "Explain joins." {
		t.Fatalf("unexpected question: %q", reply.Question)
	}
}

func TestParseQuestionReplyRejectsEmpty(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{}`, `{"question": ""}`, `{"question": null}`} {
		if _, err := parseQuestionReply(raw); err == nil {
			t.Fatalf("expected failure for %q", raw)
		}
	}
}
