package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/distill/core"
)

// inputFile is the JSON shape of a raw item batch.
type inputFile struct {
	Threads  []inputThread  `json:"threads"`
	Sections []inputSection `json:"sections"`
}

type inputThread struct {
	Channel  string         `json:"channel"`
	ThreadID string         `json:"thread_id"`
	Messages []inputMessage `json:"messages"`
}

type inputMessage struct {
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	Permalink string    `json:"permalink"`
}

type inputSection struct {
	DocumentID    string   `json:"document_id"`
	DocumentTitle string   `json:"document_title"`
	SectionTitle  string   `json:"section_title"`
	Content       []string `json:"content"`
}

// loadItems reads a raw item batch from a JSON file. Threads come before
// sections, each in file order.
func loadItems(path string) ([]core.RawItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	var file inputFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse input: %w", err)
	}

	items := make([]core.RawItem, 0, len(file.Threads)+len(file.Sections))
	for _, thread := range file.Threads {
		messages := make([]core.Message, 0, len(thread.Messages))
		for _, message := range thread.Messages {
			messages = append(messages, core.Message{
				Text:      message.Text,
				Author:    message.Author,
				Timestamp: message.Timestamp,
				Permalink: message.Permalink,
			})
		}
		items = append(items, &core.Thread{
			Channel:  thread.Channel,
			ThreadID: thread.ThreadID,
			Messages: messages,
		})
	}
	for _, section := range file.Sections {
		items = append(items, &core.DocumentSection{
			DocumentID:    section.DocumentID,
			DocumentTitle: section.DocumentTitle,
			SectionTitle:  section.SectionTitle,
			Content:       section.Content,
		})
	}
	return items, nil
}
