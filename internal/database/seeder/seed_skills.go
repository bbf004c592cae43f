package seeder

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"talentbridge/internal/database"
	"talentbridge/internal/domain/matching"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Categories []CatalogCategory `yaml:"categories"`
}

type CatalogCategory struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

type CatalogEntry struct {
	Name     string
	Category string
}

var builtinCatalog = Catalog{Categories: []CatalogCategory{
	{Name: "Programming Language", Skills: []string{"go", "javascript", "typescript", "python", "java"}},
	{Name: "Database", Skills: []string{"postgresql", "redis"}},
	{Name: "DevOps", Skills: []string{"docker", "kubernetes"}},
	{Name: "Cloud", Skills: []string{"aws", "gcp"}},
}}

// SkillsSeeder upserts the skill catalog: built-in defaults first, then the
// YAML file (a missing file is not an error). Later categories win.
type SkillsSeeder struct {
	File string
}

func (SkillsSeeder) Name() string { return "skills" }

func (s SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}

	catalogs := []Catalog{builtinCatalog}
	if strings.TrimSpace(s.File) != "" {
		c, err := LoadCatalogFile(s.File)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err == nil {
			catalogs = append(catalogs, c)
		}
	}
	entries := MergeCatalogs(catalogs...)

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, e := range entries {
			_, err := tx.Exec(
				ctx,
				`INSERT INTO skills (id, name, category) VALUES ($1, $2, $3)
				 ON CONFLICT (name) DO UPDATE SET category = EXCLUDED.category`,
				uuid.New(),
				e.Name,
				e.Category,
			)
			if err != nil {
				return fmt.Errorf("upsert skill %s: %w", e.Name, err)
			}
		}
		return nil
	})
}

func LoadCatalogFile(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return ParseCatalog(b)
}

func ParseCatalog(b []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Catalog{}, fmt.Errorf("parse skill catalog: %w", err)
	}
	return c, nil
}

// MergeCatalogs normalizes names, drops blanks and returns entries sorted by name.
func MergeCatalogs(catalogs ...Catalog) []CatalogEntry {
	byName := map[string]string{}
	for _, c := range catalogs {
		for _, cat := range c.Categories {
			category := strings.TrimSpace(cat.Name)
			for _, raw := range cat.Skills {
				n := matching.Normalize(raw)
				if n == "" {
					continue
				}
				byName[n] = category
			}
		}
	}

	out := make([]CatalogEntry, 0, len(byName))
	for n, cat := range byName {
		out = append(out, CatalogEntry{Name: n, Category: cat})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
