package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rgsstrans/internal/xlate"
)

const sampleMapJSON = `{
	"displayName": "冒険の村",
	"events": [
		null,
		{
			"id": 1,
			"name": "村人A",
			"pages": [
				{
					"list": [
						{"code": 401, "indent": 0, "parameters": ["いらっしゃい"]},
						{"code": 0, "indent": 0, "parameters": []}
					]
				}
			]
		}
	]
}`

func resetExtractFlags() {
	extractInput, extractOutput = "", ""
	extractOnlyUntranslated, extractMachine = false, false
	extractPluginConfig = ""
	extractJobs = 1
	extractQuiet = true
	extractRegistry = nil
}

func TestExtractSingleFile(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "Map001.json")
	require.NoError(t, os.WriteFile(mapPath, []byte(sampleMapJSON), 0o644))

	resetExtractFlags()
	extractInput = mapPath
	extractOutput = filepath.Join(dir, "Map001.translation.json")
	defer resetExtractFlags()

	require.NoError(t, runExtract(extractCmd, nil))

	data, err := os.ReadFile(extractOutput)
	require.NoError(t, err)

	var file xlate.TranslationFile
	require.NoError(t, json.Unmarshal(data, &file))
	require.Len(t, file.Units, 1)
	assert.Equal(t, "いらっしゃい", file.Units[0].Original)
	assert.Equal(t, "村人A", *file.Units[0].Context.EventName)
}

func TestExtractRejectsUnknownFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Actors.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))

	resetExtractFlags()
	extractInput = path
	extractOutput = filepath.Join(dir, "out.json")
	defer resetExtractFlags()

	err := runExtract(extractCmd, nil)
	assert.Error(t, err)
}

func resetInjectFlags() {
	injectTarget, injectInput = "", ""
	injectJobs = 1
	injectMaxWidth = 0
	injectQuiet = true
}

func TestInjectRoundTrip(t *testing.T) {
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "Map001.json")
	require.NoError(t, os.WriteFile(mapPath, []byte(sampleMapJSON), 0o644))

	resetExtractFlags()
	extractInput = mapPath
	translationPath := filepath.Join(dir, "Map001.translation.json")
	extractOutput = translationPath
	require.NoError(t, runExtract(extractCmd, nil))
	resetExtractFlags()

	// Fill in a translation for the single extracted unit.
	data, err := os.ReadFile(translationPath)
	require.NoError(t, err)
	var file xlate.TranslationFile
	require.NoError(t, json.Unmarshal(data, &file))
	require.Len(t, file.Units, 1)
	file.Units[0] = file.Units[0].WithTranslation("Welcome")
	rewritten, err := json.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(translationPath, rewritten, 0o644))

	resetInjectFlags()
	injectTarget = mapPath
	injectInput = translationPath
	defer resetInjectFlags()

	require.NoError(t, runInject(injectCmd, nil))

	injected, err := os.ReadFile(mapPath)
	require.NoError(t, err)
	assert.Contains(t, string(injected), "Welcome")
}
