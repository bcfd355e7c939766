package discord

import (
	"strings"
	"testing"

	"github.com/AkshayMandhan17/flexiplan/internal/llm"
)

// --- stripMention ---

func TestStripMention_Standard(t *testing.T) {
	got := stripMention("<@123456> hello", "123456")
	want := " hello"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripMention_Nickname(t *testing.T) {
	got := stripMention("<@!123456> hello", "123456")
	want := " hello"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStripMention_NoMention(t *testing.T) {
	got := stripMention("just text", "123")
	if got != "just text" {
		t.Errorf("got %q, want %q", got, "just text")
	}
}

func TestStripMention_WrongUser(t *testing.T) {
	input := "<@999> hello"
	got := stripMention(input, "123")
	if got != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

// --- splitMessage ---

func TestSplitMessage_Short(t *testing.T) {
	chunks := splitMessage("hello", 2000)
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Errorf("expected single chunk 'hello', got %v", chunks)
	}
}

func TestSplitMessage_SplitsAtNewline(t *testing.T) {
	s := strings.Repeat("a", 15) + "\n" + strings.Repeat("b", 15)
	chunks := splitMessage(s, 20)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != strings.Repeat("a", 15)+"\n" {
		t.Errorf("chunk[0] = %q", chunks[0])
	}
	if chunks[1] != strings.Repeat("b", 15) {
		t.Errorf("chunk[1] = %q", chunks[1])
	}
}

func TestSplitMessage_NoNewlineFallback(t *testing.T) {
	// No newlines — should hard-split at maxLen
	s := strings.Repeat("x", 50)
	chunks := splitMessage(s, 20)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[2] != strings.Repeat("x", 10) {
		t.Errorf("chunk[2] length = %d, want 10", len(chunks[2]))
	}
}

func TestSplitMessage_Empty(t *testing.T) {
	chunks := splitMessage("", 2000)
	if len(chunks) != 1 || chunks[0] != "" {
		t.Errorf("expected single empty chunk, got %v", chunks)
	}
}

// --- capHistory ---

func TestCapHistory_UnderLimit(t *testing.T) {
	msgs := []llm.Message{{Role: "user", Content: "hi"}}
	got := capHistory(msgs, 10)
	if len(got) != 1 {
		t.Errorf("expected untouched history, got %d messages", len(got))
	}
}

func TestCapHistory_KeepsMostRecent(t *testing.T) {
	var msgs []llm.Message
	for i := 0; i < 10; i++ {
		msgs = append(msgs, llm.Message{Role: "user", Content: strings.Repeat("x", i+1)})
	}
	got := capHistory(msgs, 4)
	if len(got) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(got))
	}
	if got[3].Content != msgs[9].Content {
		t.Error("newest message lost")
	}
}

func TestCapHistory_NeverStartsWithToolResult(t *testing.T) {
	msgs := []llm.Message{
		{Role: "user", Content: "a"},
		{Role: "assistant", ToolCalls: []llm.ToolCall{{ID: "1", Name: "list_tasks"}}},
		{Role: "user", Content: "[]", ToolCallID: "1"},
		{Role: "assistant", Content: "no tasks"},
		{Role: "user", Content: "b"},
	}
	got := capHistory(msgs, 3)
	if len(got) == 0 || got[0].ToolCallID != "" {
		t.Errorf("history starts with an orphaned tool result: %+v", got)
	}
}
