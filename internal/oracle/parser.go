package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// parseOracleResponse extracts the chapter/heading answer from the
// model's text output.
func parseOracleResponse(content string) (service.OracleResponse, error) {
	var jsonResp struct {
		Chapter struct {
			Code       string  `json:"code"`
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"chapter"`
		Heading struct {
			Code       string  `json:"code"`
			Name       string  `json:"name"`
			Confidence float64 `json:"confidence"`
		} `json:"heading"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return service.OracleResponse{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateCode(jsonResp.Chapter.Code, 2, "chapter"); err != nil {
		return service.OracleResponse{}, err
	}
	if err := validateCode(jsonResp.Heading.Code, 4, "heading"); err != nil {
		return service.OracleResponse{}, err
	}
	if !strings.HasPrefix(jsonResp.Heading.Code, jsonResp.Chapter.Code) {
		return service.OracleResponse{}, fmt.Errorf("heading %s does not start with chapter %s", jsonResp.Heading.Code, jsonResp.Chapter.Code)
	}

	return service.OracleResponse{
		Chapter: service.OracleCode{
			Code:       jsonResp.Chapter.Code,
			Name:       jsonResp.Chapter.Name,
			Confidence: clampConfidence(jsonResp.Chapter.Confidence),
		},
		Heading: service.OracleCode{
			Code:       jsonResp.Heading.Code,
			Name:       jsonResp.Heading.Name,
			Confidence: clampConfidence(jsonResp.Heading.Confidence),
		},
	}, nil
}

// validateCode checks a code is exactly n digits.
func validateCode(code string, n int, what string) error {
	if len(code) != n {
		return fmt.Errorf("%s code %q must be %d digits", what, code, n)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%s code %q contains non-digit characters", what, code)
		}
	}
	return nil
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// cleanMarkdownWrapper strips markdown code fences that models sometimes
// wrap JSON responses in.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}
