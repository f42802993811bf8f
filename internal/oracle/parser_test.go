package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `{
	"chapter": {"code": "69", "name": "Ceramic products", "confidence": 0.9},
	"heading": {"code": "6912", "name": "Ceramic tableware", "confidence": 0.8}
}`

func TestParseOracleResponse(t *testing.T) {
	resp, err := parseOracleResponse(validResponse)
	require.NoError(t, err)

	assert.Equal(t, "69", resp.Chapter.Code)
	assert.Equal(t, "Ceramic products", resp.Chapter.Name)
	assert.InDelta(t, 0.9, resp.Chapter.Confidence, 0.0001)
	assert.Equal(t, "6912", resp.Heading.Code)
	assert.InDelta(t, 0.8, resp.Heading.Confidence, 0.0001)
}

func TestParseOracleResponseMarkdownWrapped(t *testing.T) {
	wrapped := "```json\n" + validResponse + "\n```"
	resp, err := parseOracleResponse(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "6912", resp.Heading.Code)
}

func TestParseOracleResponseClampsConfidence(t *testing.T) {
	resp, err := parseOracleResponse(`{
		"chapter": {"code": "69", "confidence": 1.7},
		"heading": {"code": "6912", "confidence": -0.2}
	}`)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, resp.Chapter.Confidence, 0.0001)
	assert.Zero(t, resp.Heading.Confidence)
}

func TestParseOracleResponseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "not json",
			content: "the product is ceramic tableware",
			wantErr: "failed to parse",
		},
		{
			name:    "chapter wrong length",
			content: `{"chapter": {"code": "691"}, "heading": {"code": "6912"}}`,
			wantErr: "must be 2 digits",
		},
		{
			name:    "heading wrong length",
			content: `{"chapter": {"code": "69"}, "heading": {"code": "69"}}`,
			wantErr: "must be 4 digits",
		},
		{
			name:    "non-digit code",
			content: `{"chapter": {"code": "6A"}, "heading": {"code": "6912"}}`,
			wantErr: "non-digit",
		},
		{
			name:    "heading outside chapter",
			content: `{"chapter": {"code": "69"}, "heading": {"code": "7013"}}`,
			wantErr: "does not start with chapter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOracleResponse(tt.content)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCleanMarkdownWrapper(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("  {\"a\":1}  "))
}
