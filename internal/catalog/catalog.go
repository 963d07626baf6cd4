// Package catalog loads the ministry catalog used for matching.
//
// The catalog is a JSON document validated against an embedded JSON schema
// and then checked against the assessment question banks, so every DISC
// letter, gift and RIASEC letter a ministry recommends can actually appear
// among a member's traits. A catalog is immutable once loaded.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/forgo/shepherd/api/internal/model"
)

//go:embed ministries.json
var defaultDocument []byte

//go:embed schema.json
var schemaDocument []byte

var (
	ErrInvalidCatalog   = errors.New("invalid ministry catalog")
	ErrMinistryNotFound = errors.New("ministry not found")
)

type document struct {
	Ministries []model.Ministry `json:"ministries"`
}

// Catalog is a read-only set of ministries
type Catalog struct {
	ministries []model.Ministry
	byID       map[string]int
}

// Default returns the catalog compiled into the binary
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Load reads a catalog file, or the built-in catalog when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and decodes a catalog document
func Parse(data []byte) (*Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if problems := check(doc.Ministries); len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(problems, "; "))
	}

	c := &Catalog{
		ministries: doc.Ministries,
		byID:       make(map[string]int, len(doc.Ministries)),
	}
	for i, m := range doc.Ministries {
		c.byID[m.ID] = i
	}
	return c, nil
}

// New builds a catalog from ministries already in memory
func New(ministries []model.Ministry) (*Catalog, error) {
	data, err := json.Marshal(document{Ministries: ministries})
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return Parse(data)
}

func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaDocument)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return nil
}

// check catches what the schema cannot: duplicate ids and trait keys that
// no assessment produces
func check(ministries []model.Ministry) []string {
	var problems []string
	seen := make(map[string]bool, len(ministries))

	for _, m := range ministries {
		if seen[m.ID] {
			problems = append(problems, fmt.Sprintf("duplicate ministry id %q", m.ID))
		}
		seen[m.ID] = true

		if !m.CommitmentLevel.IsValid() {
			problems = append(problems, fmt.Sprintf("%s: unknown commitment level %q", m.ID, m.CommitmentLevel))
		}
		for _, l := range m.RecommendedTraits.PersonalityTypes {
			if !model.Contains(model.DISCLetters, l) {
				problems = append(problems, fmt.Sprintf("%s: unknown personality type %q", m.ID, l))
			}
		}
		for _, g := range m.RecommendedTraits.SpiritualGifts {
			if !model.Contains(model.GiftKeys, g) {
				problems = append(problems, fmt.Sprintf("%s: unknown spiritual gift %q", m.ID, g))
			}
		}
		for _, s := range m.RecommendedTraits.SkillTypes {
			if !model.Contains(model.SkillLetters, s) {
				problems = append(problems, fmt.Sprintf("%s: unknown skill type %q", m.ID, s))
			}
		}
		for _, e := range m.RecommendedTraits.RelevantExperiences {
			if !model.Contains(model.ExperienceEvents, e) {
				problems = append(problems, fmt.Sprintf("%s: unknown relevant experience %q", m.ID, e))
			}
		}
	}
	return problems
}

// All returns a copy of every ministry in catalog order
func (c *Catalog) All() []model.Ministry {
	out := make([]model.Ministry, len(c.ministries))
	for i, m := range c.ministries {
		out[i] = cloneMinistry(m)
	}
	return out
}

// Get returns one ministry by id
func (c *Catalog) Get(id string) (model.Ministry, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.Ministry{}, ErrMinistryNotFound
	}
	return cloneMinistry(c.ministries[i]), nil
}

// Len returns the number of ministries
func (c *Catalog) Len() int {
	return len(c.ministries)
}

func cloneMinistry(m model.Ministry) model.Ministry {
	m.Requirements = cloneStrings(m.Requirements)
	rt := &m.RecommendedTraits
	rt.PersonalityTypes = cloneStrings(rt.PersonalityTypes)
	rt.SpiritualGifts = cloneStrings(rt.SpiritualGifts)
	rt.SkillTypes = cloneStrings(rt.SkillTypes)
	rt.PassionGroups = cloneStrings(rt.PassionGroups)
	rt.RelevantExperiences = cloneStrings(rt.RelevantExperiences)
	return m
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}
