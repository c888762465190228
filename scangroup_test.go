package memscan

import "testing"

func TestTypeTagStringAndWidth(t *testing.T) {
	tests := []struct {
		tag   TypeTag
		name  string
		width int
	}{
		{TagU8, "u8", 1},
		{TagU16, "u16", 2},
		{TagU32, "u32", 4},
		{TagU64, "u64", 8},
		{TagI8, "i8", 1},
		{TagI16, "i16", 2},
		{TagI32, "i32", 4},
		{TagI64, "i64", 8},
		{TagF32, "f32", 4},
		{TagF64, "f64", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.tag.Width(); got != tt.width {
				t.Errorf("Width() = %d, want %d", got, tt.width)
			}
		})
	}
}

func TestParseTypeTagRoundTrip(t *testing.T) {
	for _, tag := range AllTypeTags {
		got, ok := ParseTypeTag(tag.String())
		if !ok {
			t.Errorf("ParseTypeTag(%q) ok = false", tag.String())
		}
		if got != tag {
			t.Errorf("ParseTypeTag(%q) = %v, want %v", tag.String(), got, tag)
		}
	}

	if _, ok := ParseTypeTag("u128"); ok {
		t.Error("ParseTypeTag(\"u128\") ok = true, want false")
	}
}

func TestNewScanGroupDefaultsToEveryType(t *testing.T) {
	g := NewScanGroup(nil, 0)

	active := g.Active()
	if len(active) != len(AllTypeTags) {
		t.Fatalf("Active() has %d types, want %d", len(active), len(AllTypeTags))
	}

	for _, tag := range AllTypeTags {
		set := g.Set(tag)
		if set == nil {
			t.Fatalf("Set(%s) = nil in default group", tag)
		}
		if got, want := set.Align(), uint64(tag.Width()); got != want {
			t.Errorf("Set(%s).Align() = %d, want default width %d", tag, got, want)
		}
	}
}

func TestNewScanGroupRestrictsToRequestedTypes(t *testing.T) {
	g := NewScanGroup([]TypeTag{TagU32, TagF64}, 0)

	if g.Set(TagU32) == nil {
		t.Error("Set(TagU32) = nil, want non-nil")
	}
	if g.Set(TagF64) == nil {
		t.Error("Set(TagF64) = nil, want non-nil")
	}
	if g.Set(TagU8) != nil {
		t.Error("Set(TagU8) != nil, want nil for group not requesting it")
	}

	if got, want := len(g.Active()), 2; got != want {
		t.Errorf("Active() has %d types, want %d", got, want)
	}
}

func TestNewScanGroupExplicitAlignOverridesWidth(t *testing.T) {
	g := NewScanGroup([]TypeTag{TagU64}, 1)

	if got, want := g.Set(TagU64).Align(), uint64(1); got != want {
		t.Errorf("Align() = %d, want %d", got, want)
	}
}

func TestScanGroupInsertForwardsToAllActiveSets(t *testing.T) {
	g := NewScanGroup([]TypeTag{TagU8, TagU32}, 1)
	g.Insert(0, 8)

	if got, want := g.Set(TagU8).Len(), 8; got != want {
		t.Errorf("Set(TagU8).Len() = %d, want %d", got, want)
	}
	if got, want := g.Set(TagU32).Len(), 8; got != want {
		t.Errorf("Set(TagU32).Len() = %d, want %d", got, want)
	}
}
