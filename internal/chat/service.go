package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"callhelper/internal/matching"
	"callhelper/internal/metrics"
	"callhelper/internal/models"
)

const contextCurrentTopic = "current_topic"

// Escalator hands a conversation to a human agent.
type Escalator interface {
	NotifyEscalation(ctx context.Context, e models.Escalation) error
}

// Request is one incoming chat turn.
type Request struct {
	Message   string
	UserType  string
	SessionID string
	IsFirst   bool
}

// Response is the bot's answer to a turn.
type Response struct {
	Text         string
	QuickReplies []string
	SessionID    string
}

// Options configures a Service. Zero values use the built-in content.
type Options struct {
	Topics          []Topic
	Solutions       []Solution
	Escalator       Escalator
	DefaultUserType string
}

// Service answers chat turns from canned content first and the case
// knowledge base second.
type Service struct {
	store           *SessionStore
	gate            *matching.Gate
	topics          []Topic
	solutions       []Solution
	escalator       Escalator
	defaultUserType string
}

// NewService creates a chat service.
func NewService(store *SessionStore, gate *matching.Gate, opts Options) *Service {
	s := &Service{
		store:           store,
		gate:            gate,
		topics:          opts.Topics,
		solutions:       opts.Solutions,
		escalator:       opts.Escalator,
		defaultUserType: opts.DefaultUserType,
	}
	if len(s.topics) == 0 {
		s.topics = DefaultTopics()
	}
	if len(s.solutions) == 0 {
		s.solutions = DefaultSolutions()
	}
	if s.defaultUserType == "" {
		s.defaultUserType = matching.LabelUmrahCompany
	}
	return s
}

// Respond handles one turn and persists the session.
func (s *Service) Respond(ctx context.Context, req Request) (*Response, error) {
	sess, err := s.store.GetOrCreate(strings.TrimSpace(req.SessionID))
	if err != nil {
		return nil, err
	}

	message := strings.TrimSpace(req.Message)
	userType := strings.TrimSpace(req.UserType)
	if userType == "" {
		userType = s.defaultUserType
	}

	var text string
	var replies []string

	if req.IsFirst || message == "" {
		text, replies = s.welcome()
	} else {
		sess.AddMessage(models.RoleUser, message)
		text, replies = s.reply(ctx, sess, message, userType)
		sess.AddMessage(models.RoleBot, text)
	}

	if err := s.store.Save(sess); err != nil {
		return nil, err
	}

	return &Response{Text: text, QuickReplies: replies, SessionID: sess.ID}, nil
}

func (s *Service) reply(ctx context.Context, sess *Session, message, userType string) (string, []string) {
	normalized := matching.Normalize(message)

	switch {
	case strings.Contains(normalized, ReplyRestart):
		sess.SetContext(contextCurrentTopic, "")
		return s.welcome()
	case strings.Contains(normalized, ReplyTalkToAgent):
		return s.escalate(ctx, sess, userType, message)
	case isThanks(normalized):
		return thanksText, []string{ReplyRestart}
	case isFeedback(normalized):
		if isPositive(normalized) {
			return positiveFeedbackText, positiveFeedbackReplies
		}
		return negativeFeedbackText, negativeFeedbackReplies
	}

	for _, sol := range s.solutions {
		if strings.Contains(normalized, matching.Normalize(sol.Key)) {
			return sol.Text, solutionReplies
		}
	}

	for _, topic := range s.topics {
		for _, kw := range topic.Keywords {
			if strings.Contains(normalized, matching.Normalize(kw)) {
				sess.SetContext(contextCurrentTopic, topic.Name)
				return topic.Response, topic.QuickReplies
			}
		}
	}

	return s.lookup(ctx, message, userType)
}

// lookup answers from the knowledge base and records the interaction.
func (s *Service) lookup(ctx context.Context, message, userType string) (string, []string) {
	policy, ok := s.gate.SelectPolicy(userType)
	if !ok {
		return s.welcome()
	}

	start := time.Now()
	best, _ := policy.FindBestRow(ctx, message)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	in := models.Interaction{
		Type:           models.InteractionChat,
		UserType:       userType,
		Query:          message,
		Success:        best != nil,
		ResponseTimeMS: &elapsed,
	}

	if best == nil {
		metrics.RecordInteraction(in)
		return noAnswerText, noAnswerReplies
	}

	caseID := best.Case.CaseID
	in.MatchedCaseID = &caseID
	metrics.RecordInteraction(in)

	text := best.Case.ResponseText
	if text == "" {
		text = noInfoText
	}
	if best.Case.Category != "" {
		text = fmt.Sprintf("📌 **%s**\n\n%s", best.Case.Category, text)
	}
	return text, answerReplies
}

func (s *Service) escalate(ctx context.Context, sess *Session, userType, message string) (string, []string) {
	if s.escalator == nil {
		return escalationUnavailableText, []string{ReplyRestart}
	}

	e := models.Escalation{
		SessionID:   sess.ID,
		UserType:    userType,
		Message:     message,
		History:     append([]models.ChatMessage(nil), sess.History...),
		RequestedAt: time.Now().UTC(),
	}
	if err := s.escalator.NotifyEscalation(ctx, e); err != nil {
		slog.Error("failed to escalate chat session", "session_id", sess.ID, "error", err)
		return escalationUnavailableText, []string{ReplyRestart}
	}
	slog.Info("chat session escalated", "session_id", sess.ID, "user_type", userType)
	return escalationText, []string{ReplyRestart}
}

func (s *Service) welcome() (string, []string) {
	return welcomeText, welcomeReplies(s.topics)
}

func isFeedback(msg string) bool {
	return isPositive(msg) || hasWord(msg, "لا")
}

func isPositive(msg string) bool {
	return strings.Contains(msg, "ساعد") || strings.Contains(msg, "نعم") || strings.Contains(msg, "إيه")
}

func isThanks(msg string) bool {
	return strings.Contains(msg, "شكرا")
}

// hasWord reports whether word appears as a whole token. Short particles
// like "لا" are otherwise found inside unrelated words.
func hasWord(msg, word string) bool {
	tokens := strings.FieldsFunc(msg, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	for _, tok := range tokens {
		if tok == word {
			return true
		}
	}
	return false
}
