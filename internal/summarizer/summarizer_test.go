package summarizer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/coachbrief/internal/config"
	"github.com/omarshaarawi/coachbrief/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completion(content string) string {
	body, _ := sonic.MarshalString(map[string]any{
		"id":     "chatcmpl-1",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return body
}

func newTestClient(t *testing.T, timeout time.Duration, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(config.LLM{APIKey: "test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1", Timeout: timeout})
}

func sampleBrief() models.CoachBrief {
	return models.CoachBrief{
		Week:         5,
		TeamName:     "Gridiron Gang",
		OpponentName: "Rivals",
		Risk:         60,
		StartSit: []models.StartSitAdvice{{
			Slot:        models.PositionWR,
			Current:     models.PlayerProjection{Name: "Flex WR", Projected: 6, RiskAdjusted: 6.2},
			Alternative: &models.Alternative{Name: "Bench WR", Projected: 13, RiskAdjusted: 13.4, Reason: "Better risk-adjusted projection"},
			Delta:       7.2,
		}},
		Mismatches:     []models.Mismatch{{Position: models.PositionRB, You: 21, Opp: 10, Delta: 11}},
		Streamers:      []models.StreamerAdvice{},
		SummaryBullets: []string{"not sent"},
	}
}

func TestSummarize(t *testing.T) {
	var gotBody string
	client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion(`{"headline":"Lean on the run game","bullets":["Start Bench WR over Flex WR."],"moves":[{"label":"Swap WR","reason":"+7.2"}]}`))
	})

	narrative, err := client.Summarize(context.Background(), sampleBrief())
	require.NoError(t, err)
	assert.Equal(t, "Lean on the run game", narrative.Headline)
	assert.Equal(t, []string{"Start Bench WR over Flex WR."}, narrative.Bullets)
	assert.Equal(t, []models.Move{{Label: "Swap WR", Reason: "+7.2"}}, narrative.Moves)

	assert.Contains(t, gotBody, `"json_object"`)
	assert.Contains(t, gotBody, "Gridiron Gang")
	assert.NotContains(t, gotBody, "not sent")
}

func TestSummarizeRejectsInvalidNarratives(t *testing.T) {
	cases := map[string]string{
		"not json":         "Start your best players!",
		"missing headline": `{"bullets":["a"]}`,
		"no bullets":       `{"headline":"h","bullets":[]}`,
		"too many bullets": `{"headline":"h","bullets":["1","2","3","4","5","6","7"]}`,
		"empty bullet":     `{"headline":"h","bullets":[""]}`,
		"move sans label":  `{"headline":"h","bullets":["a"],"moves":[{"reason":"r"}]}`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, completion(content))
			})

			_, err := client.Summarize(context.Background(), sampleBrief())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedNarrative), err.Error())
		})
	}
}

func TestSummarizeTimeout(t *testing.T) {
	client := newTestClient(t, 50*time.Millisecond, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	start := time.Now()
	_, err := client.Summarize(context.Background(), sampleBrief())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamTimeout), err.Error())
	assert.Less(t, time.Since(start), time.Second)
}

func TestSummarizeUpstreamFailure(t *testing.T) {
	client := newTestClient(t, time.Second, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"message":"boom","type":"server_error"}}`)
	})

	_, err := client.Summarize(context.Background(), sampleBrief())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamFailure), err.Error())
	assert.False(t, errors.Is(err, ErrUpstreamTimeout))
	assert.True(t, strings.Contains(err.Error(), "chat completion"))
}
