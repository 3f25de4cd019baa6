package bootstrap

import (
	"context"
	"testing"

	appconfig "github.com/ahrie-ai/platform/internal/config"
	"github.com/ahrie-ai/platform/internal/conversation"
	"github.com/ahrie-ai/platform/pkg/logging"
)

func TestBuildQueueDefaultsToMemory(t *testing.T) {
	cfg := &appconfig.Config{UseMemoryQueue: true}

	queue, err := BuildQueue(context.Background(), cfg, logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := queue.(*conversation.MemoryQueue); !ok {
		t.Fatalf("expected memory queue, got %T", queue)
	}
}

func TestBuildQueueMemoryWhenNoQueueURL(t *testing.T) {
	cfg := &appconfig.Config{UseMemoryQueue: false, ConversationQueueURL: ""}

	queue, err := BuildQueue(context.Background(), cfg, logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := queue.(*conversation.MemoryQueue); !ok {
		t.Fatalf("expected memory queue fallback, got %T", queue)
	}
}

func TestBuildLLMClientRequiresProvider(t *testing.T) {
	cfg := &appconfig.Config{}

	if _, _, err := BuildLLMClient(context.Background(), cfg, logging.New("error")); err == nil {
		t.Fatal("expected error when no provider keys are set")
	}
}

func TestBuildEngineRequiresRedis(t *testing.T) {
	cfg := &appconfig.Config{}

	if _, _, _, err := BuildEngine(cfg, nil, nil, nil, nil, nil, logging.New("error")); err == nil {
		t.Fatal("expected error without orchestrator and redis")
	}
}

func TestBuildKnowledgeWithoutRedis(t *testing.T) {
	repo, store := BuildKnowledge(context.Background(), &appconfig.Config{}, nil, nil, logging.New("error"))
	if repo != nil || store != nil {
		t.Fatal("expected nil knowledge components without redis")
	}
}

func TestBuildTelegramClientWithoutToken(t *testing.T) {
	client, err := BuildTelegramClient(&appconfig.Config{}, logging.New("error"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client without token")
	}
}

func TestBuildRedisClientNilWithoutAddr(t *testing.T) {
	if c := BuildRedisClient(context.Background(), &appconfig.Config{}, logging.New("error"), false); c != nil {
		t.Fatal("expected nil client without an address")
	}
}
