package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "Plain text", input: "Audiência de conciliação", want: "Audiência de conciliação"},
		{name: "Ampersand kept", input: "Silva & Souza", want: "Silva & Souza"},
		{name: "Script removed", input: "ok<script>alert(1)</script>", want: "ok"},
		{name: "Tags stripped", input: "<b>urgent</b> filing", want: "urgent filing"},
		{name: "Trimmed", input: "  note  ", want: "note"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}
