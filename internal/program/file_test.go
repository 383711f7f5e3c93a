package program

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbrokmeier/tagungsplan/internal/models"
)

func sampleProgram() *models.Program {
	return &models.Program{
		Days: []*models.Day{
			{
				Date:    "2026-02-18",
				Weekday: "Mittwoch",
				Sessions: []*models.Session{
					{
						ID:    "Mittwoch 1:3",
						Title: "Forschungsdatenstandards",
						Time:  "11:00–12:30",
						Presentations: []*models.Presentation{
							{Title: "Karten & Modelle", Abstract: "Ein Absatz über Daten."},
							{Title: "Metadaten in der Praxis"},
						},
					},
					{
						Title:    "Eröffnungskeynote",
						Abstract: "Begrüßung und Vortrag.",
					},
				},
			},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programm.json")
	p := sampleProgram()

	n, err := Save(path, p)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestMarshalKeepsTextVerbatim(t *testing.T) {
	data, err := Marshal(sampleProgram())
	require.NoError(t, err)

	// German text and ampersands must survive untouched for readable diffs.
	assert.Contains(t, string(data), "Begrüßung und Vortrag.")
	assert.Contains(t, string(data), "Karten & Modelle")
	assert.Contains(t, string(data), "11:00–12:30")
	assert.NotContains(t, string(data), `\u`)

	assert.Contains(t, string(data), "\n  \"days\"", "two-space indent")
	assert.Contains(t, string(data), `"session_id": "Mittwoch 1:3"`)
}

func TestMarshalIsStable(t *testing.T) {
	a, err := Marshal(sampleProgram())
	require.NoError(t, err)
	b, err := Marshal(sampleProgram())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarshalOmitsEmptyDerivedFields(t *testing.T) {
	data, err := Marshal(sampleProgram())
	require.NoError(t, err)

	assert.NotContains(t, string(data), `"chair"`)
	assert.NotContains(t, string(data), `"authors"`)
	assert.NotContains(t, string(data), `"affiliation"`)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCountAfterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programm.json")
	_, err := Save(path, sampleProgram())
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)

	counts := loaded.Count()
	assert.Equal(t, 2, counts.Sessions)
	assert.Equal(t, 2, counts.Presentations)
	assert.Equal(t, 1, counts.SessionAbstracts)
	assert.Equal(t, 1, counts.PresentationAbstracts)
	assert.Equal(t, 2, counts.Total())
}
