// Package i18n loads the label tables used to render calendar output.
//
// Each language is a YAML file under locales/, embedded at build time.
// Nested mappings are flattened into dotted keys, so
//
//	feast:
//	  christmas:
//	    name: Noël
//
// is looked up as "feast.christmas.name". A lookup falls back to the
// default language and then to the key itself, so rendering never fails
// on a missing label.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// DefaultLanguage is used when no other default is configured.
const DefaultLanguage = "fr"

// Language describes one loaded table.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Flag string `json:"flag"`
}

// Catalog holds the flattened tables for every loaded language.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	tables      map[string]map[string]string
	defaultLang string
	logger      *slog.Logger

	// codes lists the loaded languages, default first; matcher indexes
	// into it.
	codes   []string
	matcher language.Matcher
}

// Load reads the embedded locale tables. A table that fails to parse is
// logged and skipped; Load only fails when the default language itself is
// unavailable.
func Load(defaultLang string, logger *slog.Logger) (*Catalog, error) {
	return LoadFS(localeFS, "locales", defaultLang, logger)
}

// LoadFS reads every *.yaml file in dir of fsys. The file name without
// extension is the language code.
func LoadFS(fsys fs.FS, dir, defaultLang string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if defaultLang == "" {
		defaultLang = DefaultLanguage
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read locale directory: %w", err)
	}

	c := &Catalog{
		tables:      make(map[string]map[string]string),
		defaultLang: defaultLang,
		logger:      logger,
	}

	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		lang := strings.TrimSuffix(e.Name(), ".yaml")

		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			logger.Warn("skipping locale table", slog.String("lang", lang), slog.Any("error", err))
			continue
		}
		table, err := parseTable(data)
		if err != nil {
			logger.Warn("skipping locale table", slog.String("lang", lang), slog.Any("error", err))
			continue
		}
		c.tables[lang] = table
		logger.Debug("loaded locale table", slog.String("lang", lang), slog.Int("keys", len(table)))
	}

	if _, ok := c.tables[defaultLang]; !ok {
		return nil, fmt.Errorf("default language %q has no locale table", defaultLang)
	}
	c.codes = c.languageCodes()
	c.matcher = newMatcher(c.codes)

	return c, nil
}

// parseTable decodes a YAML document and flattens it into dotted keys.
func parseTable(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	table := make(map[string]string)
	flatten("", doc, table)
	return table, nil
}

func flatten(prefix string, v any, out map[string]string) {
	join := func(k string) string {
		if prefix == "" {
			return k
		}
		return prefix + "." + k
	}

	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			flatten(join(k), child, out)
		}
	case map[any]any:
		for k, child := range node {
			flatten(join(fmt.Sprint(k)), child, out)
		}
	case nil:
	default:
		out[prefix] = fmt.Sprint(node)
	}
}

// DefaultLang returns the fallback language code.
func (c *Catalog) DefaultLang() string {
	return c.defaultLang
}

// Has reports whether a table for lang is loaded.
func (c *Catalog) Has(lang string) bool {
	_, ok := c.tables[lang]
	return ok
}

// Languages lists the loaded languages, the default first and the rest by
// code.
func (c *Catalog) Languages() []Language {
	langs := make([]Language, 0, len(c.codes))
	for _, code := range c.codes {
		t := c.tables[code]
		name := t["meta.name"]
		if name == "" {
			name = code
		}
		langs = append(langs, Language{Code: code, Name: name, Flag: t["meta.flag"]})
	}
	return langs
}

func (c *Catalog) languageCodes() []string {
	codes := make([]string, 0, len(c.tables))
	for code := range c.tables {
		if code != c.defaultLang {
			codes = append(codes, code)
		}
	}
	slices.Sort(codes)
	return append([]string{c.defaultLang}, codes...)
}

// Translator returns a resolver for lang. Unknown languages resolve as the
// default language.
func (c *Catalog) Translator(lang string) Translator {
	if !c.Has(lang) {
		lang = c.defaultLang
	}
	return Translator{catalog: c, lang: lang}
}

// Translator resolves keys for one language.
type Translator struct {
	catalog *Catalog
	lang    string
}

// Lang returns the language the translator resolves in.
func (t Translator) Lang() string {
	return t.lang
}

// Resolve returns the label for key: the active table first, then the
// default language, then the key itself.
func (t Translator) Resolve(key string) string {
	if v, ok := t.catalog.tables[t.lang][key]; ok {
		return v
	}
	if v, ok := t.catalog.tables[t.catalog.defaultLang][key]; ok {
		return v
	}
	return key
}

// Format resolves key and substitutes vars into it.
func (t Translator) Format(key string, vars map[string]string) string {
	return Format(t.Resolve(key), vars)
}

// Format replaces each {name} placeholder in template with vars[name].
// Placeholders without a value are left as they are.
func Format(template string, vars map[string]string) string {
	if len(vars) == 0 {
		return template
	}
	pairs := make([]string, 0, 2*len(vars))
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
