package ir

import "testing"

func TestOptionalDescriptor_Kind(t *testing.T) {
	o := &OptionalDescriptor{}
	if o.Kind() != KindOptional {
		t.Errorf("OptionalDescriptor.Kind() = %v, want KindOptional", o.Kind())
	}
}

func TestOptionalConstructor(t *testing.T) {
	o := Optional(String())
	if o.Element.Kind() != KindLeaf {
		t.Errorf("Optional element kind = %v, want KindLeaf", o.Element.Kind())
	}
}

func TestSequenceDescriptor_Kind(t *testing.T) {
	s := &SequenceDescriptor{}
	if s.Kind() != KindSequence {
		t.Errorf("SequenceDescriptor.Kind() = %v, want KindSequence", s.Kind())
	}
}

func TestSequenceConstructor(t *testing.T) {
	s := Sequence(Int(32))
	if s.Element.Kind() != KindLeaf {
		t.Errorf("Sequence element kind = %v, want KindLeaf", s.Element.Kind())
	}
}

func TestMapDescriptor_Kind(t *testing.T) {
	m := &MapDescriptor{}
	if m.Kind() != KindMap {
		t.Errorf("MapDescriptor.Kind() = %v, want KindMap", m.Kind())
	}
}

func TestMapOfConstructor(t *testing.T) {
	m := MapOf(String(), Ref("User"))
	if m.Key.Kind() != KindLeaf {
		t.Errorf("Map key kind = %v, want KindLeaf", m.Key.Kind())
	}
	if m.Value.Kind() != KindReference {
		t.Errorf("Map value kind = %v, want KindReference", m.Value.Kind())
	}
}

func TestIndirectionDescriptor_Kind(t *testing.T) {
	i := &IndirectionDescriptor{}
	if i.Kind() != KindIndirection {
		t.Errorf("IndirectionDescriptor.Kind() = %v, want KindIndirection", i.Kind())
	}
}

func TestIndirectionConstructor(t *testing.T) {
	i := Indirection(Ref("Node"))
	if i.Element.Kind() != KindReference {
		t.Errorf("Indirection element kind = %v, want KindReference", i.Element.Kind())
	}
}

func TestIndirection_Nested(t *testing.T) {
	// Optional<Indirection<T>>
	o := Optional(Indirection(String()))
	inner := o.Element.(*IndirectionDescriptor)
	if inner.Element.Kind() != KindLeaf {
		t.Errorf("innermost kind = %v, want KindLeaf", inner.Element.Kind())
	}
}

func TestPlaceholderDescriptor_Kind(t *testing.T) {
	p := &PlaceholderDescriptor{}
	if p.Kind() != KindPlaceholder {
		t.Errorf("PlaceholderDescriptor.Kind() = %v, want KindPlaceholder", p.Kind())
	}
}

func TestPlaceholderConstructor(t *testing.T) {
	p := Placeholder(1)
	if p.Index != 1 {
		t.Errorf("Placeholder.Index = %d, want 1", p.Index)
	}
	if p.Default != nil {
		t.Error("Placeholder.Default should be nil by default")
	}
}

func TestRefDescriptor_Kind(t *testing.T) {
	r := &RefDescriptor{}
	if r.Kind() != KindReference {
		t.Errorf("RefDescriptor.Kind() = %v, want KindReference", r.Kind())
	}
}

func TestRefConstructor(t *testing.T) {
	r := Ref("User")
	if r.Target != "User" {
		t.Errorf("Ref.Target = %q, want User", r.Target)
	}
	if r.TypeName() != "User" {
		t.Errorf("Ref.TypeName() = %q, want User", r.TypeName())
	}
}

func TestExprDescriptors_NoTypeName(t *testing.T) {
	exprs := []TypeDescriptor{
		Optional(String()),
		Sequence(String()),
		MapOf(String(), String()),
		Indirection(String()),
		Placeholder(0),
	}
	for _, e := range exprs {
		if e.TypeName() != "" {
			t.Errorf("%v.TypeName() = %q, want empty", e.Kind(), e.TypeName())
		}
	}
}
