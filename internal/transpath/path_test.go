package transpath

import "testing"

func TestParse(t *testing.T) {
	p, err := Parse("events.5.pages.0.list.12")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Len() != 6 {
		t.Fatalf("len = %d, want 6", p.Len())
	}
	segs := p.Segments()
	if segs[0].Kind != KeySegment || segs[0].Key != "events" {
		t.Fatalf("segs[0] = %+v", segs[0])
	}
	if segs[1].Kind != IndexSegment || segs[1].Index != 5 {
		t.Fatalf("segs[1] = %+v", segs[1])
	}
}

func TestParseEmpty(t *testing.T) {
	p, err := Parse("")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !p.IsEmpty() {
		t.Fatal("expected empty path")
	}
}

func TestParseRejectsEmptySegment(t *testing.T) {
	if _, err := Parse("events..5"); err == nil {
		t.Fatal("expected error for empty segment")
	}
}

func TestAppend(t *testing.T) {
	p := New().AppendKey("events").AppendIndex(5)
	if p.String() != "events.5" {
		t.Fatalf("string = %q", p.String())
	}
}

func TestGet(t *testing.T) {
	json := map[string]interface{}{
		"events": []interface{}{
			nil,
			map[string]interface{}{
				"name": "Event 1",
				"pages": []interface{}{
					map[string]interface{}{
						"list": []interface{}{
							map[string]interface{}{"code": float64(401)},
						},
					},
				},
			},
		},
	}

	p, _ := Parse("events.1.name")
	v, ok := p.Get(json)
	if !ok || v != "Event 1" {
		t.Fatalf("get name = %v, %v", v, ok)
	}

	p, _ = Parse("events.1.pages.0.list.0.code")
	v, ok = p.Get(json)
	if !ok || v != float64(401) {
		t.Fatalf("get code = %v, %v", v, ok)
	}

	p, _ = Parse("events.99")
	if _, ok := p.Get(json); ok {
		t.Fatal("expected out-of-range index to miss")
	}
}

func TestSet(t *testing.T) {
	var root interface{} = map[string]interface{}{
		"events": []interface{}{
			map[string]interface{}{"name": "Old Name"},
		},
	}

	p, _ := Parse("events.0.name")
	if err := p.Set(&root, "New Name"); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, _ := p.Get(root)
	if got != "New Name" {
		t.Fatalf("name = %v", got)
	}
}

func TestSetRoot(t *testing.T) {
	var root interface{} = map[string]interface{}{"a": 1}
	p := New()
	if err := p.Set(&root, "replaced"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if root != "replaced" {
		t.Fatalf("root = %v", root)
	}
}

func TestSetIndexOutOfRange(t *testing.T) {
	var root interface{} = map[string]interface{}{
		"list": []interface{}{1, 2},
	}
	p, _ := Parse("list.5")
	if err := p.Set(&root, 9); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestPatternArray(t *testing.T) {
	p := NewPattern("events.|ARY|.pages.|ARY|.list.|ARY|.parameters.|ARY|")
	if !p.Matches("events.5.pages.0.list.12.parameters.0") {
		t.Fatal("expected match")
	}
	if !p.Matches("events.0.pages.2.list.100.parameters.3") {
		t.Fatal("expected match")
	}
	if p.Matches("events.5.pages.0.list.12") {
		t.Fatal("expected no match (too short)")
	}
	if p.Matches("other.5.pages.0.list.12.parameters.0") {
		t.Fatal("expected no match (wrong prefix)")
	}
}

func TestPatternObject(t *testing.T) {
	p := NewPattern("plugins.|OBJ|.parameters")
	if !p.Matches("plugins.QuestSystem.parameters") {
		t.Fatal("expected match")
	}
	if !p.Matches("plugins.NUUN_EnemyBook.parameters") {
		t.Fatal("expected match")
	}
	if p.Matches("plugins.parameters") {
		t.Fatal("expected no match")
	}
}

func TestUnitID(t *testing.T) {
	p, _ := Parse("events.1.pages.0.list.5")
	if got := p.UnitID("dialogue"); got != "events.1.pages.0.list.5_dialogue" {
		t.Fatalf("unit id = %q", got)
	}
	if got := p.UnitID(""); got != "events.1.pages.0.list.5" {
		t.Fatalf("unit id = %q", got)
	}
}
