package ir

import "testing"

func TestLeafKind_String(t *testing.T) {
	tests := []struct {
		kind LeafKind
		want string
	}{
		{LeafBool, "Bool"},
		{LeafInt, "Int"},
		{LeafUint, "Uint"},
		{LeafFloat, "Float"},
		{LeafString, "String"},
		{LeafKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("LeafKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLeafDescriptor_Kind(t *testing.T) {
	l := &LeafDescriptor{}
	if l.Kind() != KindLeaf {
		t.Errorf("LeafDescriptor.Kind() = %v, want KindLeaf", l.Kind())
	}
}

func TestLeafConstructors(t *testing.T) {
	tests := []struct {
		name    string
		leaf    *LeafDescriptor
		kind    LeafKind
		bitSize int
	}{
		{"Bool", Bool(), LeafBool, 0},
		{"String", String(), LeafString, 0},
		{"Int64", Int(64), LeafInt, 64},
		{"Int0", Int(0), LeafInt, 0},
		{"Uint32", Uint(32), LeafUint, 32},
		{"Float64", Float(64), LeafFloat, 64},
		{"Float32", Float(32), LeafFloat, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.leaf.LeafKind != tt.kind {
				t.Errorf("LeafKind = %v, want %v", tt.leaf.LeafKind, tt.kind)
			}
			if tt.leaf.BitSize != tt.bitSize {
				t.Errorf("BitSize = %d, want %d", tt.leaf.BitSize, tt.bitSize)
			}
		})
	}
}

func TestLeafDescriptor_NoTypeName(t *testing.T) {
	if name := Int(64).TypeName(); name != "" {
		t.Errorf("LeafDescriptor.TypeName() = %q, want empty", name)
	}
}
