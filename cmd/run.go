package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/talentscout/screening-assistant/internal/ai/gemini"
	"github.com/talentscout/screening-assistant/internal/interview"
	"github.com/talentscout/screening-assistant/internal/logger"
	"github.com/talentscout/screening-assistant/internal/secrets"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowSummary = "Show interview summary"
	PromptRestart     = "Restart the interview"
	PromptExit        = "Exit"

	assistantLabel = "TalentScout"
)

var errExit = errors.New("exit requested")

var finishedPrompt = promptui.Select{
	Label: "The screening is complete. What next?",
	Items: []string{PromptShowSummary, PromptRestart, PromptExit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the screening interview in the terminal",
	Run: func(_ *cobra.Command, _ []string) {
		run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("model", "m", "", "gemini model to use for the interview")

	viper.BindPFlag("ai.gemini.model", runCmd.Flags().Lookup("model"))
}

// run is the main command for the cli.
func run() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the screening assistant", zap.String("version", version))

	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	apiKey, err := resolveAPIKey(config.AI.Gemini)
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE, or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	orchestrator, err := buildOrchestrator(ctx, config.AI.Gemini, apiKey, logger)
	if err != nil {
		logger.Fatal("building the interview orchestrator", zap.Error(err))
	}

	sessions := interview.NewManager()
	session := sessions.Create()

	logger.Debug("session created", zap.String("session_id", session.ID))

	company := strings.TrimSpace(config.Company)
	if company == "" {
		company = "TalentScout"
	}

	fmt.Printf("Welcome to the %s hiring assistant. Type your answers and press ENTER.\n\n", company)
	say(interview.Greeting)

	if err := converse(ctx, orchestrator, sessions, session, logger); err != nil && !errors.Is(err, errExit) {
		logger.Fatal("exiting", zap.Error(err))
	}
}

// converse runs the turn loop until the candidate exits. Each iteration reads
// one line, advances the session by one step, and prints whatever the
// orchestrator appended to the transcript.
func converse(ctx context.Context, orchestrator *interview.Orchestrator, sessions *interview.Manager, session *interview.Session, logger *zap.Logger) error {
	input := promptui.Prompt{Label: "You"}

	for {
		line, err := input.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return errExit
			}
			return fmt.Errorf("reading input: %w", err)
		}

		mark := len(session.Messages)
		orchestrator.Step(ctx, session, line)

		for _, msg := range session.MessagesSince(mark) {
			if msg.Role == interview.RoleAssistant {
				say(msg.Content)
			}
		}

		if session.Stage.Terminal() {
			if err := handleFinished(ctx, orchestrator, sessions, session, logger); err != nil {
				return err
			}
		}
	}
}

// handleFinished offers the post-interview menu until the candidate restarts
// or exits.
func handleFinished(ctx context.Context, orchestrator *interview.Orchestrator, sessions *interview.Manager, session *interview.Session, logger *zap.Logger) error {
	for {
		_, action, err := finishedPrompt.Run()
		if err != nil {
			return errExit
		}

		switch action {
		case PromptShowSummary:
			summary, err := orchestrator.Summarize(ctx, session)
			if err != nil {
				logger.Warn("generating the interview summary", zap.Error(err))
				say("I could not produce a summary right now. Please try again.")
				continue
			}

			pretty, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("rendering summary: %w", err)
			}
			fmt.Printf("\n%s\n\n", pretty)
		case PromptRestart:
			if err := sessions.Reset(session.ID); err != nil {
				return fmt.Errorf("restarting the interview: %w", err)
			}
			logger.Debug("session restarted", zap.String("session_id", session.ID))
			say(interview.Greeting)
			return nil
		case PromptExit:
			return errExit
		default:
			return fmt.Errorf("invalid action: %s", action)
		}
	}
}

func buildOrchestrator(ctx context.Context, cfg *GeminiConfig, apiKey string, log *zap.Logger) (*interview.Orchestrator, error) {
	genLogger := logger.WithCommonFields(log, "gemini", cfg.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, gemini.Config{
		Model:           cfg.Model,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Timeout:         time.Duration(cfg.TimeoutSeconds) * time.Second,
		MaxRetries:      cfg.MaxRetries,
		MaxLogLength:    cfg.MaxLogLength,
	}, genLogger)
	if err != nil {
		return nil, fmt.Errorf("building gemini generator: %w", err)
	}

	summarizer := gemini.NewSummarizer(generator, genLogger)

	return interview.NewOrchestrator(generator, summarizer, log, nil), nil
}

func resolveAPIKey(cfg *GeminiConfig) (string, error) {
	apiKeyFile := strings.TrimSpace(cfg.APIKeyFile)
	if apiKeyFile == "" {
		apiKeyFile = strings.TrimSpace(viper.GetString("ai.gemini.api-key-file"))
	}

	return secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: apiKeyFile,
		Env:  "GEMINI_API_KEY",
	})
}

func say(message string) {
	fmt.Printf("%s: %s\n", assistantLabel, message)
}
