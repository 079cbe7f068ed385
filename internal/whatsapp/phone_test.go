package whatsapp

import "testing"

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "local with leading zero", input: "0241234567", want: "233241234567"},
		{name: "already international", input: "233241234567", want: "233241234567"},
		{name: "nine digits without prefix", input: "241234567", want: "233241234567"},
		{name: "with plus and spaces", input: "+233 24 123 4567", want: "233241234567"},
		{name: "too short", input: "1234567", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "letters only", input: "not-a-phone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatPhone(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
