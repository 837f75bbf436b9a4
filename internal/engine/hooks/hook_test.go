package hooks

import (
	"errors"
	"io/fs"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"
)

const hookPath = "/path/to/.git/hooks/name"

func TestNewHook_ReadsContent(t *testing.T) {
	fa := newMockFileAccess()
	fa.put(hookPath, 0o755, Template...)

	h, err := NewHook(fa, hookPath, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Template, h.Content()); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if !h.IsGuetHook() {
		t.Error("expected template content to be a guet hook")
	}
	if h.Path() != hookPath || h.Name() != "name" {
		t.Errorf("unexpected path/name: %q %q", h.Path(), h.Name())
	}
}

func TestNewHook_ForeignContent(t *testing.T) {
	fa := newMockFileAccess()
	fa.put(hookPath, 0o755, "Other", "Content")

	h, err := NewHook(fa, hookPath, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.IsGuetHook() {
		t.Error("expected foreign content not to be a guet hook")
	}
}

func TestNewHook_MissingWithoutCreate(t *testing.T) {
	_, err := NewHook(newMockFileAccess(), hookPath, false)
	if !errors.Is(err, ErrHookAbsent) {
		t.Fatalf("expected ErrHookAbsent, got %v", err)
	}
}

func TestNewHook_MissingWithCreate(t *testing.T) {
	fa := newMockFileAccess()

	h, err := NewHook(fa, hookPath, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(Template, h.Content()); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	if len(fa.writes) != 0 {
		t.Errorf("expected no writes before Save, got %v", fa.writes)
	}
}

func TestNewHook_CreateOverwritesExistingContent(t *testing.T) {
	fa := newMockFileAccess()
	fa.put(hookPath, 0o755, "Other", "Content")

	h, err := NewHook(fa, hookPath, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !h.IsGuetHook() {
		t.Error("expected create mode to replace content with the template")
	}
	if diff := cmp.Diff([]string{"Other", "Content"}, fa.files[hookPath]); diff != "" {
		t.Errorf("disk content changed before Save (-want +got):\n%s", diff)
	}
}

func TestNewHook_ReadErrorPropagates(t *testing.T) {
	fa := newMockFileAccess()
	denied := errors.New("permission denied")
	fa.readErrs[hookPath] = denied

	for _, create := range []bool{false, true} {
		_, err := NewHook(fa, hookPath, create)
		if !errors.Is(err, denied) {
			t.Errorf("create=%v: expected read error to propagate, got %v", create, err)
		}
	}
}

func TestHook_SaveWritesExecutableFile(t *testing.T) {
	fa := newMockFileAccess()

	h, err := NewHook(fa, hookPath, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(Template, fa.files[hookPath]); diff != "" {
		t.Errorf("written content mismatch (-want +got):\n%s", diff)
	}
	if got := fa.modes[hookPath]; got != 0o755 {
		t.Errorf("mode = %o, want 755", got)
	}
}

func TestHook_SaveKeepsPriorBits(t *testing.T) {
	fa := newMockFileAccess()
	fa.put(hookPath, 0o600, "Other")

	h, err := NewHook(fa, hookPath, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Save(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := fa.modes[hookPath]; got != 0o711 {
		t.Errorf("mode = %o, want 711", got)
	}
}

func TestHook_SaveWriteError(t *testing.T) {
	fa := newMockFileAccess()
	full := errors.New("disk full")
	fa.writeErrs[hookPath] = full

	h, err := NewHook(fa, hookPath, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Save(); !errors.Is(err, full) {
		t.Fatalf("expected write error, got %v", err)
	}
	if _, ok := fa.files[hookPath]; ok {
		t.Error("expected no file after failed write")
	}
}

func TestHook_IsGuetHook_ExactMatchOnly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		content := slices.Clone(Template)
		i := rapid.IntRange(0, len(content)-1).Draw(t, "line")
		suffix := rapid.SampledFrom([]string{" ", "\t", "\r", "x", " # edited"}).Draw(t, "suffix")
		content[i] += suffix

		fa := newMockFileAccess()
		fa.put(hookPath, 0o755, content...)
		h, err := NewHook(fa, hookPath, false)
		if err != nil {
			t.Fatal(err)
		}
		if h.IsGuetHook() {
			t.Fatalf("content %q classified as guet hook", content)
		}
	})
}

func TestHook_IsGuetHook_ExtraOrMissingLines(t *testing.T) {
	cases := map[string][]string{
		"empty":          {},
		"missing line":   Template[:1],
		"extra line":     append(slices.Clone(Template), "echo extra"),
		"reordered":      {Template[1], Template[0]},
		"trailing blank": append(slices.Clone(Template), ""),
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			fa := newMockFileAccess()
			fa.put(hookPath, fs.FileMode(0o755), content...)
			h, err := NewHook(fa, hookPath, false)
			if err != nil {
				t.Fatal(err)
			}
			if h.IsGuetHook() {
				t.Errorf("content %q classified as guet hook", content)
			}
		})
	}
}
