package updater

import "testing"

func TestParseSemver(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Semver
		wantErr bool
	}{
		{name: "plain", input: "1.2.3", want: Semver{1, 2, 3}},
		{name: "v prefix", input: "v0.4.10", want: Semver{0, 4, 10}},
		{name: "missing patch", input: "1.2", wantErr: true},
		{name: "dev build", input: "dev", wantErr: true},
		{name: "non-numeric", input: "1.x.3", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSemver(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseSemver(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSemver(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSemver(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSemverLessThan(t *testing.T) {
	tests := []struct {
		name string
		a, b Semver
		want bool
	}{
		{name: "major", a: Semver{1, 9, 9}, b: Semver{2, 0, 0}, want: true},
		{name: "minor", a: Semver{1, 2, 9}, b: Semver{1, 3, 0}, want: true},
		{name: "patch", a: Semver{1, 2, 3}, b: Semver{1, 2, 4}, want: true},
		{name: "equal", a: Semver{1, 2, 3}, b: Semver{1, 2, 3}, want: false},
		{name: "greater", a: Semver{2, 0, 0}, b: Semver{1, 9, 9}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.LessThan(tt.b); got != tt.want {
				t.Errorf("%v.LessThan(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
