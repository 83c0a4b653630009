package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "Просто текст.", "Просто текст."},
		{"bold stripped", "Це **важливо** і *цікаво*", "Це важливо і цікаво"},
		{"html tags stripped", "Текст <b>жирний</b> і <i>курсив</i>", "Текст жирний і курсив"},
		{"code marks stripped", "команда `go build`", "команда go build"},
		{"double underscore stripped", "__підкреслення__", "підкреслення"},
		{"hashtag underscores survive", "#саморозвиток_щодня", "#саморозвиток_щодня"},
		{"surrounding space trimmed", "  текст  \n", "текст"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}
