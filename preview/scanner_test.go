package preview

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeShip(t *testing.T, dir, fileName, shipName string, width, height int) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff})
		}
	}

	imageName := fileName + ".structural.png"
	f, err := os.Create(filepath.Join(dir, imageName))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	definition, err := json.Marshal(map[string]any{
		"structuralLayerImage": imageName,
		"shipName":             shipName,
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName+".json"), definition, 0o644))
}

func pollUntil(t *testing.T, s *Scanner, count int) []Result {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	var results []Result
	for time.Now().Before(deadline) {
		results = append(results, s.Poll()...)
		if len(results) >= count {
			return results
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("got %d results, want %d", len(results), count)
	return nil
}

func TestScanProducesResultPerShip(t *testing.T) {
	dir := t.TempDir()
	writeShip(t, dir, "alpha", "Alpha", 4, 2)
	writeShip(t, dir, "beta", "Beta", 2, 2)
	writeShip(t, dir, "gamma", "Gamma", 8, 4)

	s := NewScanner(zerolog.Nop())
	defer s.Exit()

	s.SetDirectory(dir)
	results := pollUntil(t, s, 3)
	require.Len(t, results, 3)

	// Directory order is file-name order
	assert.Equal(t, "Alpha", results[0].ShipName)
	assert.Equal(t, "Beta", results[1].ShipName)
	assert.Equal(t, "Gamma", results[2].ShipName)

	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.NotNil(t, r.Thumbnail)
	}
	assert.Equal(t, 4, results[0].Width)
	assert.Equal(t, 2, results[0].Height)
}

func TestPerShipErrorDoesNotStopScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))
	writeShip(t, dir, "sound", "Sound", 2, 2)

	s := NewScanner(zerolog.Nop())
	defer s.Exit()

	s.SetDirectory(dir)
	results := pollUntil(t, s, 2)
	require.Len(t, results, 2)

	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Path, "broken.json")

	assert.NoError(t, results[1].Err)
	assert.Equal(t, "Sound", results[1].ShipName)
}

func TestMissingLayerImageIsPerShipError(t *testing.T) {
	dir := t.TempDir()
	definition, err := json.Marshal(map[string]any{
		"structuralLayerImage": "nowhere.png",
		"shipName":             "Ghost",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ghost.json"), definition, 0o644))

	s := NewScanner(zerolog.Nop())
	defer s.Exit()

	s.SetDirectory(dir)
	results := pollUntil(t, s, 1)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "nowhere.png")
}

func TestThumbnailFitsPreviewBox(t *testing.T) {
	dir := t.TempDir()
	writeShip(t, dir, "liner", "Liner", 128, 32)

	s := NewScanner(zerolog.Nop())
	defer s.Exit()

	s.SetDirectory(dir)
	results := pollUntil(t, s, 1)
	require.NoError(t, results[0].Err)

	bounds := results[0].Thumbnail.Bounds()
	assert.Equal(t, 64, bounds.Dx())
	assert.Equal(t, 16, bounds.Dy())
}

func TestLatestDirectiveWins(t *testing.T) {
	dirA := t.TempDir()
	for _, name := range []string{"a1", "a2", "a3", "a4"} {
		writeShip(t, dirA, name, name, 2, 2)
	}
	dirB := t.TempDir()
	writeShip(t, dirB, "b1", "b1", 2, 2)
	writeShip(t, dirB, "b2", "b2", 2, 2)

	s := NewScanner(zerolog.Nop())
	defer s.Exit()

	s.SetDirectory(dirA)
	s.SetDirectory(dirB)

	// Whatever was abandoned from the first scan, the replacement directive
	// must be honoured in full
	deadline := time.Now().Add(5 * time.Second)
	seen := map[string]bool{}
	for time.Now().Before(deadline) && (!seen["b1"] || !seen["b2"]) {
		for _, r := range s.Poll() {
			require.NoError(t, r.Err)
			seen[r.ShipName] = true
		}
		time.Sleep(5 * time.Millisecond)
	}
	assert.True(t, seen["b1"])
	assert.True(t, seen["b2"])
}

func TestExitStopsScanner(t *testing.T) {
	s := NewScanner(zerolog.Nop())

	done := make(chan struct{})
	go func() {
		s.Exit()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Exit did not return")
	}

	// Posting after exit is a silent no-op
	s.SetDirectory(t.TempDir())
	assert.Empty(t, s.Poll())
}
