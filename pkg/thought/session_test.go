package thought

import (
	"testing"
)

func TestSessionOutlineTransitions(t *testing.T) {
	s := NewSession("user-1", "gpt-3.5-turbo")

	if s.Mode != ModeRegular {
		t.Fatalf("new session mode = %q, want %q", s.Mode, ModeRegular)
	}

	s.EnterOutline()
	if s.Mode != ModeOutline {
		t.Errorf("mode after enter = %q", s.Mode)
	}
	if s.OutlineLines == nil || len(s.OutlineLines) != 0 {
		t.Errorf("outline lines after enter = %v, want empty document", s.OutlineLines)
	}

	s.OutlineLines = append(s.OutlineLines, "* 第一行")
	s.ExitOutline()
	if s.Mode != ModeRegular {
		t.Errorf("mode after exit = %q", s.Mode)
	}
	if s.OutlineLines != nil {
		t.Errorf("outline lines survive exit: %v", s.OutlineLines)
	}

	// Re-entering starts a fresh draft, not the discarded one.
	s.EnterOutline()
	if len(s.OutlineLines) != 0 {
		t.Errorf("re-entered outline not empty: %v", s.OutlineLines)
	}
}

func TestSessionLastRecord(t *testing.T) {
	s := NewSession("user-1", "gpt-3.5-turbo")
	if s.LastRecord() != nil {
		t.Error("empty history should have no last record")
	}

	first := NewSetMessage("一")
	second := NewSetMessage("二")
	s.Append(first)
	s.Append(second)

	if s.LastRecord() != second {
		t.Error("LastRecord is not the most recent append")
	}
}

func TestSessionClearKeepsModel(t *testing.T) {
	s := NewSession("user-1", "gpt-3.5-turbo")
	s.ActiveModel = "gpt-4"
	s.Append(NewSetMessage("内容"))
	s.EnterOutline()

	s.Clear()

	if len(s.History) != 0 {
		t.Errorf("history after clear = %d records", len(s.History))
	}
	if s.Mode != ModeRegular {
		t.Errorf("mode after clear = %q", s.Mode)
	}
	if s.OutlineLines != nil {
		t.Errorf("outline lines after clear = %v", s.OutlineLines)
	}
	if s.ActiveModel != "gpt-4" {
		t.Errorf("clear reset the chosen model to %q", s.ActiveModel)
	}
}
