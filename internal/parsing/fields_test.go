package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-parser/internal/types"
)

func TestExtractEmail(t *testing.T) {
	assert.Equal(t, "jane.doe+cv@mail.example.com", ExtractEmail("Contact: jane.doe+cv@mail.example.com, or call"))
	assert.Equal(t, "a@b.io", ExtractEmail("a@b.io and c@d.io"))
	assert.Equal(t, "", ExtractEmail("no address here @ all"))
}

func TestExtractPhone(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"parens", "john@x.io | (555) 123-4567", "(555) 123-4567"},
		{"dashes", "Call 555-123-4567 today", "555-123-4567"},
		{"country code dots", "Phone: +1 555.123.4567", "+1 555.123.4567"},
		{"digits only", "5551234567", "5551234567"},
		{"none", "no digits here", ""},
		{"too short", "Class of 2020", ""},
		{"leading digits not a country code", "Suite 12 555-123-4567", "555-123-4567"},
		{"country code parens", "+1 (555) 123-4567", "+1 (555) 123-4567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPhone(tt.text))
		})
	}
}

func TestExtractLinkedIn(t *testing.T) {
	assert.Equal(t, "linkedin.com/in/jsmith23",
		ExtractLinkedIn("...find me at linkedin.com/in/jsmith23 for more details..."))
	assert.Equal(t, "linkedin.com/in/jane-doe_1",
		ExtractLinkedIn("https://www.linkedin.com/in/jane-doe_1/"))
	assert.Equal(t, "", ExtractLinkedIn("linkedin.com/company/acme"))
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"first line", "John Smith\njohn@x.io", "John Smith"},
		{"skips blanks", "  \n\nJANE O'NEIL-DOE\n", "JANE O'NEIL-DOE"},
		{"skips lines with digits", "Resume 2024\njane@x.io\nJane Doe", "Jane Doe"},
		{"only first five lines", "1\n2\n3\n4\n5\nJane Doe", ""},
		{"too long", "Abcdefghij Abcdefghij Abcdefghij Abcdefghij Abcdefghij\n123", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractName(tt.text))
		})
	}
}

func TestExtractWebsite(t *testing.T) {
	assert.Equal(t, "https://janedoe.dev", ExtractWebsite("Portfolio: https://janedoe.dev | linkedin.com/in/jane"))
	assert.Equal(t, "www.jane.io", ExtractWebsite("https://www.linkedin.com/in/jane www.jane.io."))
	assert.Equal(t, "", ExtractWebsite("https://linkedin.com/in/jane"))
	assert.Equal(t, "", ExtractWebsite("jane@x.io"))
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"pipe separated", "Jane Doe\nSan Francisco, CA | jane@x.io | 555-123-4567", "San Francisco, CA"},
		{"city country", "Jane Doe\nBerlin, Germany", "Berlin, Germany"},
		{"bullet separated", "Jane Doe\njane@x.io • Austin, TX", "Austin, TX"},
		{"street address ignored", "Jane Doe\n12 Main St, Springfield", ""},
		{"none", "Jane Doe\njane@x.io", ""},
		{"section body ignored", "Jane Doe\njane@x.io\nSKILLS\nJava, Python", ""},
		{"contact block before section", "Jane Doe\nAustin, TX\nSKILLS\nJava, Python", "Austin, TX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocation(tt.text))
		})
	}
}

func TestGuessJobTitle(t *testing.T) {
	entries := []types.ExperienceEntry{{ID: 1, Position: "Staff Engineer"}, {ID: 2, Position: "Engineer"}}
	assert.Equal(t, "Staff Engineer", GuessJobTitle(entries, "Product Manager"))

	// the first entry wins even when its position is empty
	assert.Equal(t, "", GuessJobTitle([]types.ExperienceEntry{{ID: 1}}, "Product Manager"))

	assert.Equal(t, "Software Engineer", GuessJobTitle(nil, "I am a senior software engineer at Acme"))
	assert.Equal(t, "Data Scientist", GuessJobTitle(nil, "DATA SCIENTIST"))
	assert.Equal(t, "", GuessJobTitle(nil, "Chef"))
}

func TestExtractContactFields(t *testing.T) {
	text := "Jane Doe\nAustin, TX | jane@x.io | (555) 123-4567\nlinkedin.com/in/janedoe | https://jane.dev"

	fields := ExtractContactFields(text)

	assert.Equal(t, ContactFields{
		Name:     "Jane Doe",
		Email:    "jane@x.io",
		Phone:    "(555) 123-4567",
		LinkedIn: "linkedin.com/in/janedoe",
		Website:  "https://jane.dev",
		Location: "Austin, TX",
	}, fields)
}

// Extractors are deterministic: the same input always yields the same output.
func TestExtractors_Deterministic(t *testing.T) {
	inputs := []string{
		"",
		"John Smith\njohn.smith@email.com | (555) 123-4567\nlinkedin.com/in/jsmith23",
		"Berlin, Germany • www.example.org • +49 301 234 5678",
		"garbage \x00 \xff text",
	}
	extractors := map[string]func(string) string{
		"email":    ExtractEmail,
		"phone":    ExtractPhone,
		"linkedin": ExtractLinkedIn,
		"name":     ExtractName,
		"website":  ExtractWebsite,
		"location": ExtractLocation,
		"jobTitle": func(s string) string { return GuessJobTitle(nil, s) },
	}

	for name, extract := range extractors {
		for _, in := range inputs {
			first := extract(in)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, extract(in), "%s(%q)", name, in)
			}
		}
	}
}
