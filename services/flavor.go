package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"hunter-system/models"
	"hunter-system/utils"
)

const maxFlavorLength = 280

// FlavorProvider writes a quest description from its title and difficulty.
// Implementations never fail; they fall back to canned text.
type FlavorProvider interface {
	QuestFlavor(ctx context.Context, title string, d models.Difficulty) string
}

var questFlavorTemplates = map[models.Difficulty][]string{
	models.DifficultyE: {
		"A small task, but every hunter started with one just like it.",
		"Routine work. The System still keeps count.",
		"Warm-up material. Clear it and move on.",
	},
	models.DifficultyD: {
		"A standard contract for a hunter finding their footing.",
		"Steady effort is what this one asks for.",
		"Nothing heroic, but it will not finish itself.",
	},
	models.DifficultyC: {
		"This one needs real focus. Plan before you start.",
		"A proper challenge. Capable hunters only.",
		"Growth comes faster from quests like this.",
	},
	models.DifficultyB: {
		"A hard trial that will stretch your limits.",
		"Most hunters turn this kind of contract down.",
		"Push through and the rewards will follow.",
	},
	models.DifficultyA: {
		"A critical mission. Few are trusted with it.",
		"Clear this and people will start to notice.",
		"The kind of quest that rank promotions are built on.",
	},
	models.DifficultyS: {
		"A gate-break level threat. Everything else waits.",
		"Only the strongest walk out of missions like this.",
		"Finish this and the System will remember your name.",
	},
}

// TemplateFlavor picks from the canned pool for the difficulty.
type TemplateFlavor struct {
	roller Roller
}

func NewTemplateFlavor(roller Roller) *TemplateFlavor {
	return &TemplateFlavor{roller: roller}
}

func (t *TemplateFlavor) QuestFlavor(_ context.Context, _ string, d models.Difficulty) string {
	pool, ok := questFlavorTemplates[d]
	if !ok {
		pool = questFlavorTemplates[models.DifficultyE]
	}
	return pool[t.roller.Intn(len(pool))]
}

// OllamaFlavor asks a local Ollama server for a description and falls back
// when the call fails, times out or returns nothing usable.
type OllamaFlavor struct {
	baseURL  string
	model    string
	timeout  time.Duration
	client   *http.Client
	fallback FlavorProvider
}

func NewOllamaFlavor(baseURL, model string, timeout time.Duration, client *http.Client, fallback FlavorProvider) *OllamaFlavor {
	return &OllamaFlavor{
		baseURL:  strings.TrimRight(baseURL, "/"),
		model:    model,
		timeout:  timeout,
		client:   client,
		fallback: fallback,
	}
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

func (o *OllamaFlavor) QuestFlavor(ctx context.Context, title string, d models.Difficulty) string {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	req := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  flavorPrompt(title, d),
		Stream:  false,
		Options: map[string]any{"temperature": 0.8},
	}
	var resp ollamaGenerateResponse
	if err := utils.PostJSON(ctx, o.client, o.baseURL+"/api/generate", req, &resp); err != nil {
		log.Printf("⚠️ [Flavor] Ollama unavailable, using templates: %v", err)
		return o.fallback.QuestFlavor(ctx, title, d)
	}

	text := cleanFlavor(resp.Response)
	if text == "" {
		log.Printf("⚠️ [Flavor] Ollama returned empty text for %q, using templates", title)
		return o.fallback.QuestFlavor(ctx, title, d)
	}
	return text
}

func flavorPrompt(title string, d models.Difficulty) string {
	return fmt.Sprintf(
		"You are the System from a hunter-ranking world. Write one or two dramatic sentences "+
			"describing a %s-rank quest titled %q. Reply with the description only.",
		d, title,
	)
}

func cleanFlavor(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'")
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > maxFlavorLength {
		s = strings.TrimSpace(string(r[:maxFlavorLength]))
	}
	return s
}
