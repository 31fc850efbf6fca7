package persona

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "personas.json", `[
		{"name": "Jane Doe", "zip_code": "90210", "persona_traits": ["impatient"], "audio_file": "a.wav"},
		{"name": "Bob Smith", "zip_code": "10001", "audio_file": "b.wav"}
	]`)

	personas, err := Load(path)
	require.NoError(t, err)
	require.Len(t, personas, 2)
	require.Equal(t, "Jane Doe", personas[0].Name)
	require.Equal(t, []string{"impatient"}, personas[0].Traits)
	require.Equal(t, "b.wav", personas[1].AudioFile)
}

func TestLoadSkipsMalformedRecords(t *testing.T) {
	path := writeFile(t, "personas.json", `[
		{"name": "Jane Doe", "zip_code": "90210", "audio_file": "a.wav"},
		{"name": "", "zip_code": "10001", "audio_file": "b.wav"},
		{"name": "No Zip", "zip_code": "", "audio_file": "c.wav"},
		{"name": "No Audio", "zip_code": "33101", "audio_file": ""}
	]`)

	personas, err := Load(path)
	require.NoError(t, err)
	require.Len(t, personas, 1)
	require.Equal(t, "Jane Doe", personas[0].Name)
}

func TestLoadJSONMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadJSONMalformed(t *testing.T) {
	path := writeFile(t, "personas.json", `{"not": "an array"}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "personas.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"name", "zip_code", "persona_traits", "audio_file"},
		{"Jane Doe", "90210", "impatient, chatty", "a.wav"},
		{"Bob Smith", "10001", "", "b.wav"},
		{"", "", "", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	personas, err := Load(path)
	require.NoError(t, err)
	require.Len(t, personas, 2)
	require.Equal(t, "Jane Doe", personas[0].Name)
	require.Equal(t, "90210", personas[0].ZipCode)
	require.Equal(t, []string{"impatient", "chatty"}, personas[0].Traits)
	require.Equal(t, "a.wav", personas[0].AudioFile)
	require.Empty(t, personas[1].Traits)
}
