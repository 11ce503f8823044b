package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunter-system/models"
)

func TestTemplateFlavor(t *testing.T) {
	f := NewTemplateFlavor(&scriptedRoller{ints: []int{2}})
	assert.Equal(t, questFlavorTemplates[models.DifficultyS][2], f.QuestFlavor(context.Background(), "x", models.DifficultyS))
	assert.Equal(t, questFlavorTemplates[models.DifficultyE][0], f.QuestFlavor(context.Background(), "x", models.Difficulty("Z")))
}

func TestOllamaFlavor(t *testing.T) {
	fallback := NewTemplateFlavor(constRoller{})
	fallbackText := questFlavorTemplates[models.DifficultyC][0]

	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    string
	}{
		{
			name: "uses model output",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var req ollamaGenerateRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					http.Error(w, err.Error(), http.StatusBadRequest)
					return
				}
				if r.URL.Path != "/api/generate" || req.Model != "llama3" || req.Stream || !strings.Contains(req.Prompt, "Clean the garage") {
					http.Error(w, "unexpected request", http.StatusBadRequest)
					return
				}
				_ = json.NewEncoder(w).Encode(map[string]string{"response": "  \"The garage hides a dungeon.\"\n"})
			},
			want: "The garage hides a dungeon.",
		},
		{
			name: "server error falls back",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
			want: fallbackText,
		},
		{
			name: "empty output falls back",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(map[string]string{"response": "   "})
			},
			want: fallbackText,
		},
		{
			name: "slow server falls back",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			want:    fallbackText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			timeout := tt.timeout
			if timeout == 0 {
				timeout = time.Second
			}
			f := NewOllamaFlavor(srv.URL+"/", "llama3", timeout, srv.Client(), fallback)
			got := f.QuestFlavor(context.Background(), "Clean the garage", models.DifficultyC)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanFlavor(t *testing.T) {
	long := strings.Repeat("ä", maxFlavorLength+20)
	got := cleanFlavor(long)
	require.Len(t, []rune(got), maxFlavorLength)
	assert.Equal(t, "Go.", cleanFlavor(" 'Go.' "))
}
