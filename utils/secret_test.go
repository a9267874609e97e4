package utils_test

import (
	"testing"

	"reelist/utils"
)

func TestGenerateTokenSecret(t *testing.T) {
	first, err := utils.GenerateTokenSecret()
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	if len(first) < 40 {
		t.Fatalf("expected at least 40 characters of encoded entropy, got %d", len(first))
	}

	second, err := utils.GenerateTokenSecret()
	if err != nil {
		t.Fatalf("generate returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct secrets")
	}
}
