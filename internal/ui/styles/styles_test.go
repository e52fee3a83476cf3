// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"
)

func TestNewThemeModes(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error("dark theme should be dark")
	}
	if NewTheme("LIGHT").IsDark {
		t.Error("light theme should not be dark")
	}
}

func TestLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}

	theme := NewTheme("dark")
	for _, tc := range tests {
		theme.SetSize(tc.width, 24)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestBubbleWidth(t *testing.T) {
	theme := NewTheme("dark")

	theme.SetSize(10, 24)
	if got := theme.BubbleWidth(); got != 20 {
		t.Errorf("narrow BubbleWidth() = %d, want 20", got)
	}
	theme.SetSize(80, 24)
	if got := theme.BubbleWidth(); got != 60 {
		t.Errorf("medium BubbleWidth() = %d, want 60", got)
	}
	theme.SetSize(200, 24)
	if got := theme.BubbleWidth(); got != 80 {
		t.Errorf("wide BubbleWidth() = %d, want 80", got)
	}
}

func TestBubbleForRoles(t *testing.T) {
	theme := NewTheme("dark")
	for _, role := range []string{"user", "assistant", "developer", "system"} {
		if _, ok := RoleIndicators[role]; !ok {
			t.Errorf("no indicator for role %q", role)
		}
		if theme.BubbleFor(role).Render("x") == "" {
			t.Errorf("BubbleFor(%q) rendered nothing", role)
		}
	}
}

func TestSpinnerDuration(t *testing.T) {
	if got := DotsSpinner.Duration(); got != time.Second/6 {
		t.Errorf("DotsSpinner.Duration() = %v", got)
	}
	if got := (SpinnerConfig{}).Duration(); got != time.Second {
		t.Errorf("zero FPS Duration() = %v, want 1s", got)
	}
}
