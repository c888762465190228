package memscan

import "testing"

func TestAddressString(t *testing.T) {
	tests := []struct {
		input    Address
		expected string
	}{
		{0x0, "0x0"},
		{0x1234, "0x1234"},
		{0x7FFFFFFFFFFF, "0x7FFFFFFFFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.input.String(); got != tt.expected {
				t.Errorf("Address(%d).String() = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRegionSize(t *testing.T) {
	r := Region{Start: 0x1000, End: 0x2000}
	if got := r.Size(); got != 0x1000 {
		t.Errorf("Size() = %d, want 0x1000", got)
	}
}

func TestRegionContains(t *testing.T) {
	r := Region{Start: 0x1000, End: 0x2000}

	tests := []struct {
		addr Address
		want bool
	}{
		{0x0fff, false},
		{0x1000, true},
		{0x1fff, true},
		{0x2000, false},
	}

	for _, tt := range tests {
		if got := r.Contains(tt.addr); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestRegionPerms(t *testing.T) {
	tests := []struct {
		name   string
		region Region
		want   string
	}{
		{"none", Region{}, "---"},
		{"read only", Region{Read: true}, "r--"},
		{"read write", Region{Read: true, Write: true}, "rw-"},
		{"full", Region{Read: true, Write: true, Exec: true}, "rwx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.region.Perms(); got != tt.want {
				t.Errorf("Perms() = %q, want %q", got, tt.want)
			}
		})
	}
}
