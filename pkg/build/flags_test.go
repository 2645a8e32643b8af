// SPDX-License-Identifier: MIT
package build

import "testing"

func TestInitializeDevDefaults(t *testing.T) {
	// Without ldflags every field keeps its development placeholder.
	Initialize()

	got := GetInfo()
	if got.Name == "" {
		t.Error("expected non-empty build name")
	}
	if got.Version != "dev" {
		t.Errorf("expected dev version placeholder, got %q", got.Version)
	}
}

func TestInitializeAppliesFlags(t *testing.T) {
	defer func() {
		buildName, buildTime, buildCommit, buildVersion = "", "", "", ""
		Initialize()
	}()

	buildName = "visualizer"
	buildTime = "2026-01-01T00:00:00Z"
	buildCommit = "abc1234"
	buildVersion = "1.2.3"
	Initialize()

	got := GetInfo()
	if got.Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %q", got.Version)
	}
	if got.Commit != "abc1234" {
		t.Errorf("expected commit abc1234, got %q", got.Commit)
	}
}
