package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-parser/internal/types"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults", 0, 0, DefaultListLimit, 0},
		{"negative", -5, -10, DefaultListLimit, 0},
		{"within bounds", 20, 40, 20, 40},
		{"capped", 10000, 3, MaxListLimit, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := clampPage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestEncodeDecodeResume(t *testing.T) {
	sections := types.NewSectionMap()
	sections.Append(types.HeaderSection, "Jane Doe")
	sections.Append("SKILLS", "Go")

	record := types.NewParsedResumeRecord()
	record.Name = "Jane Doe"
	record.Experiences = []types.ExperienceEntry{{ID: 1, Company: "Acme Inc"}}

	sectionsJSON, recordJSON, err := encodeResume(&ParsedResumeInput{Sections: sections, Record: record})
	require.NoError(t, err)

	var pr ParsedResume
	require.NoError(t, decodeResume(&pr, sectionsJSON, recordJSON))
	assert.Equal(t, record, pr.Record)
	assert.Equal(t, []string{types.HeaderSection, "SKILLS"}, pr.Sections.Titles())
}

func TestEncodeResume_NilSectionsStoreHeader(t *testing.T) {
	sectionsJSON, _, err := encodeResume(&ParsedResumeInput{Record: types.NewParsedResumeRecord()})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"title":"Header","body":""}]`, string(sectionsJSON))
}

func TestEncodeResume_RequiresRecord(t *testing.T) {
	_, _, err := encodeResume(&ParsedResumeInput{FileName: "cv.pdf"})
	assert.Error(t, err)

	_, _, err = encodeResume(nil)
	assert.Error(t, err)
}

func TestDecodeResume_NullArraysNormalized(t *testing.T) {
	var pr ParsedResume
	require.NoError(t, decodeResume(&pr, nil, []byte(`{"name":"Jane","experiences":null}`)))

	assert.Equal(t, "Jane", pr.Record.Name)
	assert.NotNil(t, pr.Record.Experiences)
	assert.NotNil(t, pr.Record.Education)
	assert.Nil(t, pr.Sections)
}

func TestDecodeResume_Malformed(t *testing.T) {
	var pr ParsedResume
	assert.Error(t, decodeResume(&pr, nil, []byte(`{`)))
	assert.Error(t, decodeResume(&pr, []byte(`{}`), []byte(`{}`)))
}
