package prompts

import (
	"strings"
	"testing"
)

func TestGatheringBuildersInterpolate(t *testing.T) {
	t.Parallel()

	history := "assistant: hello\nuser: hi"
	input := "John Smith"

	builders := map[string]func(string, string) string{
		"name":       Name,
		"email":      Email,
		"phone":      Phone,
		"experience": Experience,
		"location":   Location,
		"tech stack": TechStack,
	}

	for name, build := range builders {
		name, build := name, build
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			prompt := build(history, input)

			if !strings.Contains(prompt, history) {
				t.Fatal("expected chat history in prompt")
			}
			if !strings.Contains(prompt, `"`+input+`"`) {
				t.Fatal("expected quoted user input in prompt")
			}
			if strings.Contains(prompt, "{{") {
				t.Fatalf("unreplaced token left in prompt: %q", prompt)
			}
			if !strings.Contains(prompt, `"response"`) {
				t.Fatal("expected the response key contract in prompt")
			}
		})
	}
}

func TestNamePromptContract(t *testing.T) {
	t.Parallel()

	prompt := Name("history", "John")
	for _, key := range []string{`"is_valid"`, `"response"`} {
		if !strings.Contains(prompt, key) {
			t.Fatalf("expected %s in the name contract", key)
		}
	}
}

func TestPositionPromptVariants(t *testing.T) {
	t.Parallel()

	initial := Position("history", "backend or SRE", false)
	if !strings.Contains(initial, `"role_count"`) {
		t.Fatal("expected role_count contract in the initial variant")
	}
	if strings.Contains(initial, `"role_chosen"`) {
		t.Fatal("initial variant must not carry the choice contract")
	}

	choice := Position("history", "SRE please", true)
	if !strings.Contains(choice, `"role_chosen"`) {
		t.Fatal("expected role_chosen contract in the choice variant")
	}
}

func TestFirstQuestionUsesTopicAndProfile(t *testing.T) {
	t.Parallel()

	profile := Profile{DesiredPosition: "Backend Engineer", ExperienceYears: "5"}
	prompt := FirstQuestion(profile, "Go")

	for _, want := range []string{"Go", "Backend Engineer", "5", `"question"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in first-question prompt", want)
		}
	}
}

func TestAssessmentPromptCarriesState(t *testing.T) {
	t.Parallel()

	profile := Profile{DesiredPosition: "Backend Engineer", ExperienceYears: "5"}
	prompt := Assessment(profile, "SQL", 1, "What is an index?", "it speeds up lookups", []string{"What is an index?"})

	for _, want := range []string{
		"SQL",
		"What is an index?",
		"it speeds up lookups",
		`"action_needed"`,
		`"full_response"`,
		`"new_question_asked"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in assessment prompt", want)
		}
	}
}

func TestCodingPromptNumbersQuestions(t *testing.T) {
	t.Parallel()

	profile := Profile{TechStack: "Go, SQL"}

	if prompt := Coding(profile, 0); !strings.Contains(prompt, "question #1 of 2") {
		t.Fatalf("expected first question framing, got %q", prompt)
	}
	if prompt := Coding(profile, 1); !strings.Contains(prompt, "question #2 of 2") {
		t.Fatalf("expected second question framing, got %q", prompt)
	}
}

func TestConclusionFallsBackWithoutName(t *testing.T) {
	t.Parallel()

	if prompt := Conclusion(Profile{FullName: "John Smith"}); !strings.Contains(prompt, "John Smith") {
		t.Fatal("expected candidate name in conclusion prompt")
	}
	if prompt := Conclusion(Profile{}); !strings.Contains(prompt, "the candidate") {
		t.Fatal("expected neutral fallback for a missing name")
	}
}

func TestSummaryPromptContract(t *testing.T) {
	t.Parallel()

	profile := Profile{FullName: "John Smith", DesiredPosition: "SRE", ExperienceYears: "7", TechStack: "Go"}
	prompt := Summary(profile, "assistant: hello\nuser: hi")

	for _, want := range []string{
		"John Smith",
		"SRE",
		`"overall_summary"`,
		`"technical_strengths"`,
		`"areas_for_improvement"`,
		`"final_recommendation"`,
		"assistant: hello",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected %q in summary prompt", want)
		}
	}
}

func TestEmptyProfileFieldsRenderNA(t *testing.T) {
	t.Parallel()

	prompt := Coding(Profile{}, 0)
	if !strings.Contains(prompt, "N/A") {
		t.Fatal("expected empty profile fields to render as N/A")
	}
}
