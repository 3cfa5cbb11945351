package thought

import (
	"testing"
)

// checkShape verifies the structural rules every record obeys: each name
// in the derivation order is a stored field, and the cursor points at a
// stored field.
func checkShape(t *testing.T, r *Record) {
	t.Helper()
	for _, name := range r.DerivationOrder {
		if _, ok := r.Fields[name]; !ok {
			t.Errorf("derivation order names %q but the field is missing", name)
		}
	}
	if _, ok := r.Fields[r.ActiveField]; !ok {
		t.Errorf("active field %q is not a stored field", r.ActiveField)
	}
}

func TestNewRecord(t *testing.T) {
	r := NewRecord("想法", "今天天气真好", "嘎嘎嘎想法 今天天气真好", "gpt-3.5-turbo")

	if r.Tag != "想法" {
		t.Errorf("Tag = %q, want 想法", r.Tag)
	}
	if r.Fields[FieldContent] != "今天天气真好" {
		t.Errorf("content = %q", r.Fields[FieldContent])
	}
	if r.Fields[FieldTranscribed] != "嘎嘎嘎想法 今天天气真好" {
		t.Errorf("transcribed = %q", r.Fields[FieldTranscribed])
	}
	if r.ActiveField != FieldTranscribed {
		t.Errorf("ActiveField = %q, want %q", r.ActiveField, FieldTranscribed)
	}

	wantOrder := []string{FieldTag, FieldModel, FieldTranscribed}
	if len(r.DerivationOrder) != len(wantOrder) {
		t.Fatalf("DerivationOrder = %v, want %v", r.DerivationOrder, wantOrder)
	}
	for i, name := range wantOrder {
		if r.DerivationOrder[i] != name {
			t.Errorf("DerivationOrder[%d] = %q, want %q", i, r.DerivationOrder[i], name)
		}
	}
	if r.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	checkShape(t, r)
}

func TestNewSetMessage(t *testing.T) {
	r := NewSetMessage("一段手打的文字")

	if r.ActiveField != FieldContent {
		t.Errorf("ActiveField = %q, want %q", r.ActiveField, FieldContent)
	}
	if r.ActiveText() != "一段手打的文字" {
		t.Errorf("ActiveText = %q", r.ActiveText())
	}
	if len(r.DerivationOrder) != 1 || r.DerivationOrder[0] != FieldContent {
		t.Errorf("DerivationOrder = %v", r.DerivationOrder)
	}
	checkShape(t, r)
}

func TestAppendField(t *testing.T) {
	tests := []struct {
		name       string
		advance    bool
		wantActive string
	}{
		{name: "advancing derivation moves the cursor", advance: true, wantActive: FieldParaphrased},
		{name: "non-continuing derivation keeps the cursor", advance: false, wantActive: FieldTranscribed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecord("思考", "内容", "内容", "gpt-3.5-turbo")
			before := len(r.DerivationOrder)

			r.AppendField(FieldParaphrased, "整理后的文字", tt.advance)

			if r.Fields[FieldParaphrased] != "整理后的文字" {
				t.Errorf("field value = %q", r.Fields[FieldParaphrased])
			}
			if len(r.DerivationOrder) != before+1 {
				t.Errorf("DerivationOrder length = %d, want %d", len(r.DerivationOrder), before+1)
			}
			if r.DerivationOrder[len(r.DerivationOrder)-1] != FieldParaphrased {
				t.Errorf("last derivation = %q", r.DerivationOrder[len(r.DerivationOrder)-1])
			}
			if r.ActiveField != tt.wantActive {
				t.Errorf("ActiveField = %q, want %q", r.ActiveField, tt.wantActive)
			}
			checkShape(t, r)
		})
	}
}

func TestActiveTextFollowsCursor(t *testing.T) {
	r := NewRecord("思考", "原始内容", "原始内容", "gpt-3.5-turbo")
	r.AppendField(FieldParaphrased, "整理后", true)

	if r.ActiveText() != "整理后" {
		t.Errorf("ActiveText = %q, want 整理后", r.ActiveText())
	}

	// A derived style field layers on top of the current cursor position.
	r.AppendField(FieldParaphrased+"_海明威", "改写", true)
	if r.ActiveText() != "改写" {
		t.Errorf("ActiveText = %q, want 改写", r.ActiveText())
	}
	checkShape(t, r)
}
