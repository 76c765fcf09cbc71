// Package bootstrap assembles the matching gate, chat service and session
// storage from configuration. Both binaries share it.
package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/memory/v2"
	"github.com/gofiber/storage/redis/v3"

	"callhelper/internal/chat"
	"callhelper/internal/config"
	"callhelper/internal/matching"
	"callhelper/internal/resilience"
)

// GuardSource wraps source with retry and, when enabled, a circuit breaker.
func GuardSource(cfg *config.Config, source matching.CaseSource) matching.CaseSource {
	rc := resilience.DefaultConfig()
	if cfg.RepoRetryAttempts > 0 {
		rc.Attempts = cfg.RepoRetryAttempts
	}
	rc.BreakerEnabled = cfg.RepoBreakerEnabled
	return resilience.NewGuardedSource(source, resilience.NewGuard(rc))
}

// BuildGate registers the keyword policy over source and routes the
// configured user types to it. Without configured routes the built-in
// labels are used.
func BuildGate(source matching.CaseSource, yc *config.YAMLConfig) (*matching.Gate, error) {
	messages := matching.DefaultMessages().With(yc.GetMessages())

	policies := map[string]matching.Policy{
		matching.PolicyUmrah: matching.NewKeywordPolicy(matching.PolicyUmrah, source, messages),
	}

	configured := yc.GetUserTypes()
	if len(configured) == 0 {
		return matching.NewGate(messages, matching.DefaultRoutes(policies[matching.PolicyUmrah])...), nil
	}

	routes := make([]matching.Route, 0, len(configured))
	for _, ut := range configured {
		p, ok := policies[ut.Policy]
		if !ok {
			return nil, fmt.Errorf("user type %q: unknown policy %q", ut.Label, ut.Policy)
		}
		routes = append(routes, matching.Route{Label: ut.Label, Policy: p})
	}
	slog.Info("user type routes loaded", "count", len(routes))
	return matching.NewGate(messages, routes...), nil
}

// Storage returns the key-value store for chat and web sessions. The second
// value is nil when Fiber's session middleware should use its own memory store.
func Storage(cfg *config.Config) (chat.Storage, fiber.Storage) {
	if cfg.RedisURL != "" {
		store := redis.New(redis.Config{URL: cfg.RedisURL})
		slog.Info("using redis session storage")
		return store, store
	}
	return memory.New(), nil
}

// NewChatService builds the chatbot over gate. escalator may be nil.
func NewChatService(cfg *config.Config, yc *config.YAMLConfig, gate *matching.Gate, storage chat.Storage, escalator chat.Escalator) *chat.Service {
	return chat.NewService(
		chat.NewSessionStore(storage, cfg.ChatSessionTTL),
		gate,
		chat.Options{
			Topics:          chat.TopicsFromConfig(yc.GetFAQ()),
			Escalator:       escalator,
			DefaultUserType: cfg.ChatDefaultUserType,
		},
	)
}
