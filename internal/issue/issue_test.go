// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		FuzzyFinderMissingId,
		CatalogMissingId,
		CatalogParseErrorId,
		EmptyCatalogId,
		NotArchLinuxId,
		DependencyInstallFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if FuzzyFinderMissingId != 1 {
		t.Errorf("FuzzyFinderMissingId = %d, want 1", FuzzyFinderMissingId)
	}
}

func TestGet_AllRegistered(t *testing.T) {
	for _, id := range []Id{
		FuzzyFinderMissingId,
		CatalogMissingId,
		CatalogParseErrorId,
		EmptyCatalogId,
		NotArchLinuxId,
		DependencyInstallFailedId,
	} {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("Get(%d) returned nil", id)
		}
		if iss.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, iss.Id())
		}
		if iss.MarkdownMsg() == "" {
			t.Errorf("issue %d has empty markdown message", id)
		}
	}
}

func TestIssue_MarkdownMsg(t *testing.T) {
	iss := Get(CatalogParseErrorId)
	if iss == nil {
		t.Fatal("Get(CatalogParseErrorId) returned nil")
	}

	if !strings.Contains(string(iss.MarkdownMsg()), "all-or-nothing") {
		t.Error("parse error issue should explain the all-or-nothing contract")
	}
}

func TestValues_ReturnsAll(t *testing.T) {
	if got := len(Values()); got != len(issues) {
		t.Errorf("Values() returned %d issues, want %d", got, len(issues))
	}
}

func TestIssue_Render(t *testing.T) {
	// Swap the renderer so the test does not depend on terminal detection.
	origRender := render
	render = func(in, _ string) (string, error) { return in, nil }
	defer func() { render = origRender }()

	iss := Get(FuzzyFinderMissingId)
	out, err := iss.Render("auto")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "fzf") {
		t.Errorf("rendered issue should mention fzf, got %q", out)
	}
	if !strings.Contains(out, "See also") {
		t.Errorf("rendered issue should include ext links section, got %q", out)
	}
}
