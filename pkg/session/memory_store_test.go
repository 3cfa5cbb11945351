package session

import (
	"context"
	"testing"

	"voicenote-be/pkg/thought"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, found, err := store.Load(ctx, "u1"); err != nil || found {
		t.Fatalf("Load on empty store: found=%v err=%v", found, err)
	}

	sess := thought.NewSession("u1", "gpt-3.5-turbo")
	sess.Append(thought.NewSetMessage("内容"))
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, found, err := store.Load(ctx, "u1")
	if err != nil || !found {
		t.Fatalf("Load after save: found=%v err=%v", found, err)
	}
	if got.UserID != "u1" || len(got.History) != 1 {
		t.Errorf("loaded session = %+v", got)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := store.Load(ctx, "u1"); found {
		t.Error("session survived delete")
	}
}
