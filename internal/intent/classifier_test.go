package intent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/avetrov/readmentor/internal/llm"
)

func TestLLMClassifier_ParsesActionAndParams(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"intent":"GENERATE_EXERCISE","level":"advanced","topic":"glaciers","question_id":0,"skip":false}`),
	})
	c := NewLLMClassifier(mock)

	action, err := c.Classify(context.Background(), "something tougher about glaciers?", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if action.Kind != KindGeneratePractice {
		t.Fatalf("Kind = %v, want GeneratePractice", action.Kind)
	}
	if action.Params.Level != "advanced" || action.Params.Topic != "glaciers" {
		t.Fatalf("params = %+v", action.Params)
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "message-intent" {
		t.Fatal("classifier request did not carry the intent schema")
	}
}

func TestLLMClassifier_ChitchatMapsToGeneralChat(t *testing.T) {
	for _, tag := range []string{"CHITCHAT", "ANSWER_GENERAL_QUESTION"} {
		mock := llm.NewMockProvider(llm.MockResponse{
			Content: json.RawMessage(`{"intent":"` + tag + `"}`),
		})
		action, err := NewLLMClassifier(mock).Classify(context.Background(), "nice weather", nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tag, err)
		}
		if action.Kind != KindGeneralChat {
			t.Errorf("%s: Kind = %v, want GeneralChat", tag, action.Kind)
		}
	}
}

func TestLLMClassifier_UnknownTagErrors(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"intent":"DO_A_BACKFLIP"}`),
	})
	if _, err := NewLLMClassifier(mock).Classify(context.Background(), "hm", nil); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}

func TestLLMClassifier_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("down")},
	})
	if _, err := NewLLMClassifier(mock).Classify(context.Background(), "hm", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestLLMClassifier_TruncatesHistory(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"intent":"CHITCHAT"}`),
	})
	history := make([]llm.Message, 20)
	for i := range history {
		history[i] = llm.Message{Role: llm.RoleUser, Content: "older"}
	}

	if _, err := NewLLMClassifier(mock).Classify(context.Background(), "latest", history); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	msgs := mock.Calls[0].Messages
	if len(msgs) != classifierHistory+1 {
		t.Fatalf("sent %d messages, want %d", len(msgs), classifierHistory+1)
	}
	if msgs[len(msgs)-1].Content != "latest" {
		t.Fatal("latest message is not last")
	}
}
