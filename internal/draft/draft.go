// Package draft reads expense drafts from YAML files.
//
// A draft lists amounts as decimal strings:
//
//	title: Dinner
//	total: "60.00"
//	mode: percentage
//	splits:
//	  - {id: alice, percentage: "50"}
//	  - {id: bob, percentage: "50"}
//	contributions:
//	  - {id: alice, amount: "60.00"}
package draft

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/fairshare/internal/expense"
	"github.com/mmynk/fairshare/internal/models"
)

// Draft is the file form of an unsaved expense.
type Draft struct {
	Title         string   `yaml:"title"`
	Total         string   `yaml:"total"`
	Mode          string   `yaml:"mode"`
	Participants  []Person `yaml:"participants"`
	Splits        []Entry  `yaml:"splits"`
	Contributions []Entry  `yaml:"contributions"`
}

type Person struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Entry is a split entry or contribution. Only the fields that apply are set.
type Entry struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Percentage string `yaml:"percentage"`
	Amount     string `yaml:"amount"`
}

// Expense is a decoded draft, ready for the calculator.
type Expense struct {
	Title string
	*expense.Input
}

// Load reads and parses the draft at path.
func Load(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	d, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a single YAML draft. Unknown keys are an error.
func Parse(r io.Reader) (*Draft, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Draft
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty draft")
		}
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return &d, nil
}

func (p Person) participant() models.Participant {
	return models.Participant{ID: p.ID, Name: p.Name}
}

func (e Entry) participant() models.Participant {
	return models.Participant{ID: e.ID, Name: e.Name}
}

// Expense converts amounts to cents. Percentage and custom drafts may omit
// participants; the split entries name them. An unknown mode is kept as
// written so validation can report it.
func (d *Draft) Expense() (*Expense, error) {
	raw := expense.Raw{Total: d.Total, Mode: d.Mode}
	for _, p := range d.Participants {
		raw.Participants = append(raw.Participants, p.participant())
	}
	for _, s := range d.Splits {
		raw.Splits = append(raw.Splits, expense.Entry{Participant: s.participant(), Percentage: s.Percentage, Amount: s.Amount})
	}
	for _, c := range d.Contributions {
		raw.Contributions = append(raw.Contributions, expense.Entry{Participant: c.participant(), Amount: c.Amount})
	}

	in, err := expense.Decode(raw)
	if err != nil {
		return nil, err
	}
	return &Expense{Title: d.Title, Input: in}, nil
}
