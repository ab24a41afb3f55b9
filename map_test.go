package opencli

import (
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

func TestMapSetGet(t *testing.T) {
	m := NewMap[int]()
	m.Set("a", 1).Set("b", 2)

	v, ok := m.Get("a")
	if !ok || v != 1 {
		t.Errorf("Get(a) = %v, %v, want 1, true", v, ok)
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) reported present")
	}
	if !m.Has("b") {
		t.Error("Has(b) = false, want true")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMapPreservesInsertionOrder(t *testing.T) {
	m := NewMap[int]()
	m.Set("zebra", 1).Set("apple", 2).Set("mango", 3)

	want := []string{"zebra", "apple", "mango"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestMapReplaceKeepsPosition(t *testing.T) {
	m := NewMap[int]()
	m.Set("a", 1).Set("b", 2).Set("a", 10)

	want := []string{"a", "b"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if v, _ := m.Get("a"); v != 10 {
		t.Errorf("Get(a) = %d, want 10", v)
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap[int]()
	m.Set("a", 1).Set("b", 2).Set("c", 3)
	m.Delete("b")

	want := []string{"a", "c"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after delete = %v, want %v", got, want)
	}
	if m.Has("b") {
		t.Error("Has(b) = true after delete")
	}
}

func TestMapEachVisitsInOrder(t *testing.T) {
	m := NewMap[string]()
	m.Set("first", "1").Set("second", "2")

	var visited []string
	m.Each(func(k, v string) {
		visited = append(visited, k+"="+v)
	})
	want := []string{"first=1", "second=2"}
	if !reflect.DeepEqual(visited, want) {
		t.Errorf("Each visited %v, want %v", visited, want)
	}
}

func TestMapNilSafe(t *testing.T) {
	var m *Map[int]
	if m.Len() != 0 {
		t.Errorf("nil map Len() = %d, want 0", m.Len())
	}
	if keys := m.Keys(); len(keys) != 0 {
		t.Errorf("nil map Keys() = %v, want empty", keys)
	}
	if _, ok := m.Get("a"); ok {
		t.Error("nil map Get() reported present")
	}
	if m.Has("a") {
		t.Error("nil map Has() = true, want false")
	}
	m.Each(func(string, int) {
		t.Error("Each on nil map visited an entry")
	})
}

func TestMapMarshalJSONOrder(t *testing.T) {
	m := NewMap[int]()
	m.Set("zebra", 1).Set("apple", 2)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"zebra":1,"apple":2}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestMapJSONRoundTrip(t *testing.T) {
	in := `{"b":"two","a":"one","c":"three"}`
	m := NewMap[string]()
	if err := json.Unmarshal([]byte(in), m); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	want := []string{"b", "a", "c"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after unmarshal = %v, want %v", got, want)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %s, want %s", out, in)
	}
}

func TestMapYAMLRoundTrip(t *testing.T) {
	m := NewMap[string]()
	m.Set("zebra", "z").Set("apple", "a")

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}

	decoded := NewMap[string]()
	if err := yaml.Unmarshal(data, decoded); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded.Keys(), m.Keys()) {
		t.Errorf("round trip keys = %v, want %v", decoded.Keys(), m.Keys())
	}
	if v, _ := decoded.Get("zebra"); v != "z" {
		t.Errorf("Get(zebra) = %q, want z", v)
	}
}
