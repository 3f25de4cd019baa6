package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ahrie-ai/platform/internal/llm"
)

// Smoke test for the configured LLM providers. Run it locally to check
// API keys and model IDs before deploying:
//
//	go run ./cmd/llmtest
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messages := []llm.ChatMessage{
		{Role: llm.ChatRoleUser, Content: "مرحبا، كم تكلفة عملية تجميل الأنف في سيول؟"},
		{Role: llm.ChatRoleAssistant, Content: "أهلاً بك! تتراوح تكلفة عملية تجميل الأنف في سيول عادة بين 3,000 و8,000 دولار حسب العيادة وتعقيد الحالة. هل تودين معرفة المزيد عن عيادات معينة؟"},
		{Role: llm.ChatRoleUser, Content: "نعم، وهل توجد طبيبات جراحات؟"},
	}

	req := llm.Request{
		System: []string{
			"You are a K-beauty medical tourism assistant. Answer in the language of the user. Keep responses brief.",
		},
		Messages:    messages,
		MaxTokens:   300,
		Temperature: 0.7,
	}

	fmt.Println("LLM Provider Smoke Test")
	fmt.Println("=======================")

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey != "" {
		fmt.Println("\n[1] Testing OpenAI...")
		client, err := llm.NewOpenAIClient(openaiKey, os.Getenv("OPENAI_MODEL"), "", os.Getenv("OPENAI_BASE_URL"))
		if err != nil {
			fmt.Printf("    create client: %v\n", err)
		} else {
			runCompletion(ctx, client, req)
		}
	} else {
		fmt.Println("\n[1] Skipping OpenAI (OPENAI_API_KEY not set)")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey != "" {
		fmt.Println("\n[2] Testing Gemini...")
		client, err := llm.NewGeminiClient(ctx, geminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			fmt.Printf("    create client: %v\n", err)
		} else {
			runCompletion(ctx, client, req)
			_ = client.Close()
		}
	} else {
		fmt.Println("\n[2] Skipping Gemini (GEMINI_API_KEY not set)")
	}

	fmt.Println("\nIf a provider responded above, the fallback chain in the full app will work.")
	fmt.Println("The full app prefers LLM_PROVIDER and falls back to the other provider on errors.")
}

func runCompletion(ctx context.Context, client llm.Client, req llm.Request) {
	start := time.Now()
	resp, err := client.Complete(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Printf("    completion error: %v\n", err)
		return
	}
	fmt.Printf("    response (%v):\n", elapsed.Round(time.Millisecond))
	fmt.Printf("    %s\n", resp.Text)
	fmt.Printf("    tokens: in=%d, out=%d\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
}
