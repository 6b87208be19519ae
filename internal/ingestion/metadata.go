package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Metadata describes an ingested resume document
type Metadata struct {
	FileName   string `json:"file_name,omitempty"`
	MimeType   string `json:"mime_type"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the extracted text
	Characters int    `json:"characters"`
	Lines      int    `json:"lines"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(fileName, mimeType, text string) *Metadata {
	lines := 0
	if text != "" {
		lines = strings.Count(text, "\n") + 1
	}
	return &Metadata{
		FileName:   fileName,
		MimeType:   NormalizeMimeType(mimeType),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       ComputeHash(text),
		Characters: utf8.RuneCountInString(text),
		Lines:      lines,
	}
}

// ComputeHash computes SHA256 hash of content and returns hex string
func ComputeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
