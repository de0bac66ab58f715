package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xoaadil/blogy/internal/platform/validator"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "simple title",
			text: "My First Post",
			want: "my-first-post",
		},
		{
			name: "punctuation stripped",
			text: "Hello, World! (Again)",
			want: "hello-world-again",
		},
		{
			name: "collapses repeated separators",
			text: "too   many    spaces",
			want: "too-many-spaces",
		},
		{
			name: "trims leading and trailing separators",
			text: "  padded title  ",
			want: "padded-title",
		},
		{
			name: "keeps digits",
			text: "Top 10 Tips for 2026",
			want: "top-10-tips-for-2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validator.GenerateSlug(tt.text, 250))
		})
	}
}

func TestGenerateSlug_Truncates(t *testing.T) {
	long := strings.Repeat("word ", 100)
	slug := validator.GenerateSlug(long, 30)

	assert.LessOrEqual(t, len(slug), 30)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestValidateSlugFormat(t *testing.T) {
	assert.NoError(t, validator.ValidateSlugFormat("my-post-2", 250))
	assert.ErrorIs(t, validator.ValidateSlugFormat("", 250), validator.ErrSlugEmpty)
	assert.ErrorIs(t, validator.ValidateSlugFormat("Has Capitals", 250), validator.ErrInvalidSlugFormat)
	assert.ErrorIs(t, validator.ValidateSlugFormat(strings.Repeat("a", 300), 250), validator.ErrSlugTooLong)
}

func TestMakeSlugUnique(t *testing.T) {
	assert.Equal(t, "my-post", validator.MakeSlugUnique("my-post", 0))
	assert.Equal(t, "my-post-1", validator.MakeSlugUnique("my-post", 1))
	assert.Equal(t, "my-post-12", validator.MakeSlugUnique("my-post", 12))
}

func TestMakeSlugUniqueWithMaxLength(t *testing.T) {
	// Suffix fits without truncation
	assert.Equal(t, "my-post-2", validator.MakeSlugUniqueWithMaxLength("my-post", 2, 250))

	// Base is truncated to make room for the suffix
	result := validator.MakeSlugUniqueWithMaxLength(strings.Repeat("a", 250), 7, 250)
	assert.LessOrEqual(t, len(result), 250)
	assert.True(t, strings.HasSuffix(result, "-7"))
}
