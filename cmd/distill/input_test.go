package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/distill/core"
)

func TestLoadItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	data := `{
		"threads": [
			{
				"channel": "platform-help",
				"thread_id": "1700000000.000100",
				"messages": [
					{"text": "how do i rotate creds?", "author": "U1", "permalink": "https://chat.example.com/p1"},
					{"text": "run the rotate-creds job", "author": "U2"}
				]
			}
		],
		"sections": [
			{
				"document_id": "doc-42",
				"document_title": "Platform Runbook",
				"section_title": "Credentials",
				"content": ["Rotate credentials quarterly."]
			}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	items, err := loadItems(path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	thread, ok := items[0].(*core.Thread)
	require.True(t, ok)
	assert.Equal(t, "platform-help", thread.Channel)
	require.Len(t, thread.Messages, 2)
	assert.Equal(t, "U1", thread.Messages[0].Author)

	section, ok := items[1].(*core.DocumentSection)
	require.True(t, ok)
	assert.Equal(t, "doc-42", section.DocumentID)
	assert.Equal(t, []string{"Rotate credentials quarterly."}, section.Content)
}

func TestLoadItems_MissingFile(t *testing.T) {
	_, err := loadItems(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadItems_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := loadItems(path)
	assert.Error(t, err)
}
