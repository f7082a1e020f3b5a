package game

import (
	"reflect"
	"testing"
)

// MockScene 记录生命周期调用的场景
type MockScene struct {
	name    string
	journal *[]string
	next    SceneOp
	lastMsg Message
	updates int
	preren  int
}

func newMockScene(name string, journal *[]string) *MockScene {
	return &MockScene{name: name, journal: journal}
}

func (m *MockScene) Init(_ *Context, msg Message) {
	m.lastMsg = msg
	*m.journal = append(*m.journal, m.name+".Init")
}

func (m *MockScene) Update(_ *Context, _ float64) SceneOp {
	m.updates++
	op := m.next
	m.next = None()
	return op
}

func (m *MockScene) Deinit(_ *Context) {
	*m.journal = append(*m.journal, m.name+".Deinit")
}

func (m *MockScene) Prerender(_ *Context, _ float64) {
	m.preren++
}

func TestSceneStackPushKeepsOldScene(t *testing.T) {
	var journal []string
	s := NewSceneStack(&Context{})
	a := newMockScene("a", &journal)
	b := newMockScene("b", &journal)

	s.Apply(Push(a, nil))
	s.Apply(Push(b, NewMessage().With("k", IntValue(1))))

	want := []string{"a.Init", "b.Init"}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("journal: got %v, want %v", journal, want)
	}
	if s.Len() != 2 || s.Top() != b {
		t.Errorf("stack: got len %d top %v", s.Len(), s.Top())
	}
	if v, ok := b.lastMsg.Int("k"); !ok || v != 1 {
		t.Errorf("message not delivered to pushed scene: %v", b.lastMsg)
	}
}

func TestSceneStackPopTwoDeinitsTopDown(t *testing.T) {
	var journal []string
	s := NewSceneStack(&Context{})
	a := newMockScene("a", &journal)
	b := newMockScene("b", &journal)
	c := newMockScene("c", &journal)
	s.Apply(Push(a, nil))
	s.Apply(Push(b, nil))
	s.Apply(Push(c, nil))
	journal = journal[:0]

	msg := NewMessage().With(KeyStartBGM, BoolValue(false))
	s.Apply(Pop(2, msg))

	want := []string{"c.Deinit", "b.Deinit", "a.Init"}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("journal: got %v, want %v", journal, want)
	}
	if s.Len() != 1 || s.Top() != a {
		t.Fatalf("stack: got len %d", s.Len())
	}
	if a.lastMsg.BoolOr(KeyStartBGM, true) {
		t.Error("exposed scene did not receive the pop message")
	}
}

func TestSceneStackReplace(t *testing.T) {
	var journal []string
	s := NewSceneStack(&Context{})
	a := newMockScene("a", &journal)
	b := newMockScene("b", &journal)
	c := newMockScene("c", &journal)
	s.Apply(Push(a, nil))
	s.Apply(Push(b, nil))
	journal = journal[:0]

	s.Apply(Replace(c, nil))

	want := []string{"b.Deinit", "c.Init"}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("journal: got %v, want %v", journal, want)
	}
	if s.Len() != 2 || s.Top() != c {
		t.Errorf("stack: got len %d", s.Len())
	}
}

func TestSceneStackUpdateOnlyTop(t *testing.T) {
	var journal []string
	s := NewSceneStack(&Context{})
	a := newMockScene("a", &journal)
	b := newMockScene("b", &journal)
	s.Apply(Push(a, nil))
	s.Apply(Push(b, nil))

	if !s.Update(0.016) {
		t.Fatal("Update reported empty stack")
	}
	s.Prerender(0.016)

	if a.updates != 0 || b.updates != 1 {
		t.Errorf("updates: a=%d b=%d, want 0 and 1", a.updates, b.updates)
	}
	if a.preren != 0 || b.preren != 1 {
		t.Errorf("prerender: a=%d b=%d, want 0 and 1", a.preren, b.preren)
	}
}

func TestSceneStackPopLastEndsProgram(t *testing.T) {
	var journal []string
	s := NewSceneStack(&Context{})
	a := newMockScene("a", &journal)
	b := newMockScene("b", &journal)
	s.Apply(Push(a, nil))
	s.Apply(Push(b, nil))

	b.next = PopAll()
	if s.Update(0.016) {
		t.Error("Update should report an empty stack after PopAll")
	}
	if !s.IsEmpty() || s.Top() != nil {
		t.Errorf("stack not empty: len %d", s.Len())
	}
	want := []string{"a.Init", "b.Init", "b.Deinit", "a.Deinit"}
	if !reflect.DeepEqual(journal, want) {
		t.Errorf("journal: got %v, want %v", journal, want)
	}

	// 空栈上的 Update/Prerender 不应 panic
	s.Prerender(0.016)
	if s.Update(0.016) {
		t.Error("Update on empty stack should return false")
	}
}

func TestSceneStackPopMoreThanDepth(t *testing.T) {
	var journal []string
	s := NewSceneStack(&Context{})
	s.Apply(Push(newMockScene("a", &journal), nil))
	s.Apply(Pop(5, nil))
	if !s.IsEmpty() {
		t.Errorf("expected empty stack, got %d", s.Len())
	}
}

func TestMessageGetters(t *testing.T) {
	m := NewMessage().
		With("s", StringValue("x")).
		With("i", IntValue(3)).
		With("f", FloatValue(1.5)).
		With("b", BoolValue(true))

	if v, ok := m.String("s"); !ok || v != "x" {
		t.Errorf("String: got %q %v", v, ok)
	}
	if v, ok := m.Int("i"); !ok || v != 3 {
		t.Errorf("Int: got %d %v", v, ok)
	}
	if v, ok := m.Float("f"); !ok || v != 1.5 {
		t.Errorf("Float: got %v %v", v, ok)
	}
	if v, ok := m.Float("i"); !ok || v != 3 {
		t.Errorf("Float from int: got %v %v", v, ok)
	}
	if _, ok := m.Int("s"); ok {
		t.Error("Int on string value should fail")
	}
	if _, ok := m.Bool("missing"); ok {
		t.Error("missing key should fail")
	}

	var nilMsg Message
	if _, ok := nilMsg.Int("i"); ok {
		t.Error("nil message lookup should fail")
	}
	if !nilMsg.BoolOr(KeyStartBGM, true) {
		t.Error("BoolOr on nil message should return default")
	}
}
