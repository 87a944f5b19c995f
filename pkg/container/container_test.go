package container

import (
	"archive/zip"
	"bytes"
	"sort"
	"testing"
)

// buildTestArchive uses the standard library's archive/zip writer purely as
// a test fixture generator — production parsing never imports it.
func buildTestArchive(t *testing.T, store bool, files map[string]string) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	// Write entries in sorted name order so archive order is deterministic.
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		content := files[name]
		method := zip.Deflate
		if store {
			method = zip.Store
		}
		fw, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: method})
		if err != nil {
			t.Fatalf("create header %s: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close zip writer: %v", err)
	}
	return buf.Bytes()
}

const sampleManifest = `{
  "active_animation_id": "intro",
  "animations": [{"id": "intro", "name": "Intro"}],
  "themes": [{"id": "dark"}],
  "state_machines": [{"id": "rating"}]
}`

func TestReadBasicContainer(t *testing.T) {
	for _, store := range []bool{true, false} {
		data := buildTestArchive(t, store, map[string]string{
			"manifest.json":              sampleManifest,
			"animations/intro.json":      `{"v":"5.5.0","fr":30,"op":60}`,
			"themes/dark.json":           `{"rules":[]}`,
			"state_machines/rating.json": `{"descriptor":{"id":"rating","initial":"star_0"},"states":[]}`,
			"images/bg.png":              "fake-png-bytes",
		})

		c, err := Read(data, nil)
		if err != nil {
			t.Fatalf("store=%v: Read failed: %v", store, err)
		}
		if c.Manifest.ActiveAnimationID != "intro" {
			t.Errorf("store=%v: expected active animation intro, got %s", store, c.Manifest.ActiveAnimationID)
		}

		anim, err := c.Animation("intro")
		if err != nil || anim == "" {
			t.Errorf("store=%v: expected animation json, got %q err=%v", store, anim, err)
		}

		theme, err := c.Theme("dark")
		if err != nil || theme != `{"rules":[]}` {
			t.Errorf("store=%v: unexpected theme text %q err=%v", store, theme, err)
		}

		sm, err := c.StateMachine("rating")
		if err != nil || sm == "" {
			t.Errorf("store=%v: expected state machine json, err=%v", store, err)
		}

		img, ok, err := c.Image("bg.png")
		if err != nil || !ok || img == "" {
			t.Errorf("store=%v: expected base64 image, got %q ok=%v err=%v", store, img, ok, err)
		}
	}
}

func TestReadLegacyStatesPrefix(t *testing.T) {
	data := buildTestArchive(t, true, map[string]string{
		"manifest.json":      sampleManifest,
		"states/rating.json": `{"descriptor":{"id":"rating","initial":"star_0"},"states":[]}`,
	})

	c, err := Read(data, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, err := c.StateMachine("rating"); err != nil {
		t.Errorf("expected legacy states/ prefix to route to state machine bucket: %v", err)
	}
}

func TestMissingManifestFails(t *testing.T) {
	data := buildTestArchive(t, true, map[string]string{
		"animations/intro.json": `{}`,
	})

	if _, err := Read(data, nil); err == nil {
		t.Error("expected error for missing manifest.json")
	}
}

func TestLookupMisses(t *testing.T) {
	data := buildTestArchive(t, true, map[string]string{
		"manifest.json": sampleManifest,
	})
	c, err := Read(data, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if _, err := c.Animation("missing"); err == nil {
		t.Error("expected AnimationNotFound")
	}
	if _, err := c.Theme("missing"); err == nil {
		t.Error("expected ThemeNotFound")
	}
	if _, err := c.StateMachine("missing"); err == nil {
		t.Error("expected StateMachineNotFound")
	}
}

func TestTruncatedBufferFails(t *testing.T) {
	data := buildTestArchive(t, true, map[string]string{
		"manifest.json": sampleManifest,
	})
	truncated := data[:len(data)-1]

	if _, err := Read(truncated, nil); err == nil {
		t.Error("expected error for truncated container")
	}
}

func TestInvalidUTF8EntryFails(t *testing.T) {
	data := buildTestArchive(t, true, map[string]string{
		"manifest.json":         sampleManifest,
		"animations/intro.json": string([]byte{0xff, 0xfe, 0x00}),
	})

	c, err := Read(data, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if _, err := c.Animation("intro"); err == nil {
		t.Error("expected invalid UTF-8 to fail decompression")
	}
}

func TestGetOrDecompressIdempotent(t *testing.T) {
	data := buildTestArchive(t, false, map[string]string{
		"manifest.json":         sampleManifest,
		"animations/intro.json": `{"ok":true}`,
	})
	c, err := Read(data, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	first, err := c.Animation("intro")
	if err != nil {
		t.Fatalf("first decompress: %v", err)
	}
	second, err := c.Animation("intro")
	if err != nil {
		t.Fatalf("second decompress: %v", err)
	}
	if first != second {
		t.Errorf("expected idempotent decompression, got %q then %q", first, second)
	}
}

func TestAnimationOrderPreserved(t *testing.T) {
	manifest := `{"animations":[{"id":"a"},{"id":"b"},{"id":"c"}]}`
	data := buildTestArchive(t, true, map[string]string{
		"manifest.json":     manifest,
		"animations/a.json": `{}`,
		"animations/b.json": `{}`,
		"animations/c.json": `{}`,
	})
	c, err := Read(data, nil)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	ids := c.AnimationIDs()
	want := []string{"a", "b", "c"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %v", len(want), ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("index %d: expected %s, got %s", i, want[i], ids[i])
		}
	}
}
