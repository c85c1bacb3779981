package goast

import "testing"

func TestTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		want string
	}{
		{"scalar", Uint32, "uint32"},
		{"slice", Slice(Uint8), "[]uint8"},
		{"map", Map(String, EmptyIface), "map[string]interface{}"},
		{"pointer", Pointer(Named("Foo")), "*Foo"},
		{"array", Array(4, Uint8), "[4]uint8"},
		{"nested slice of slice", Slice(Slice(Uint8)), "[][]uint8"},
		{"nil type", nil, "interface{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Uint32, Named("uint32")) {
		t.Errorf("Equal should compare by rendered string")
	}
	if Equal(Uint32, Uint64) {
		t.Errorf("Uint32 should not equal Uint64")
	}
}

func TestIsWiderInt(t *testing.T) {
	if !IsWiderInt(Uint32, Uint8) {
		t.Errorf("uint32 should be wider than uint8")
	}
	if IsWiderInt(Uint8, Uint32) {
		t.Errorf("uint8 should not be wider than uint32")
	}
	if IsWiderInt(Float32, Uint32) {
		t.Errorf("non-integer types should never compare wider")
	}
}

func TestIsUnsignedSignedNumeric(t *testing.T) {
	for _, typ := range []*Type{Uint8, Uint16, Uint32, Uint64} {
		if !IsUnsignedInt(typ) {
			t.Errorf("%s should be unsigned", typ)
		}
		if IsSignedInt(typ) {
			t.Errorf("%s should not be signed", typ)
		}
	}
	for _, typ := range []*Type{Int, Int8, Int16, Int32, Int64} {
		if !IsSignedInt(typ) {
			t.Errorf("%s should be signed", typ)
		}
	}
	for _, typ := range []*Type{Uint32, Int32, Float32, Float64} {
		if !IsNumeric(typ) {
			t.Errorf("%s should be numeric", typ)
		}
	}
	if IsNumeric(String) || IsNumeric(Bool) {
		t.Errorf("string/bool should not be numeric")
	}
}

func TestIsInterface(t *testing.T) {
	if !IsInterface(EmptyIface) || !IsInterface(Any) {
		t.Errorf("interface{} and any should both report IsInterface")
	}
	if IsInterface(String) {
		t.Errorf("string should not report IsInterface")
	}
}

func TestUnsignedCounterpart(t *testing.T) {
	tests := map[*Type]*Type{
		Int8:  Uint8,
		Int16: Uint16,
		Int32: Uint32,
		Int:   Uint32,
		Int64: Uint64,
	}
	for signed, wantUnsigned := range tests {
		if got := UnsignedCounterpart(signed); !Equal(got, wantUnsigned) {
			t.Errorf("UnsignedCounterpart(%s) = %s, want %s", signed, got, wantUnsigned)
		}
	}
	if got := UnsignedCounterpart(nil); !Equal(got, Uint32) {
		t.Errorf("UnsignedCounterpart(nil) = %s, want uint32", got)
	}
}
