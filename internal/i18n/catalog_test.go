package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/logger"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load("fr", logger.Discard())
	require.NoError(t, err)
	return c
}

func TestLoad_EmbeddedTables(t *testing.T) {
	c := testCatalog(t)

	assert.True(t, c.Has("fr"))
	assert.True(t, c.Has("en"))
	assert.True(t, c.Has("es"))
	assert.False(t, c.Has("ko"))
	assert.Equal(t, "fr", c.DefaultLang())
}

func TestLoad_EveryFeastHasADefaultLabel(t *testing.T) {
	c := testCatalog(t)
	fr := c.Translator("fr")
	en := c.Translator("en")

	for _, key := range calendar.FeastKeys() {
		for _, field := range []string{"name", "description"} {
			k := "feast." + key + "." + field
			assert.NotEqual(t, k, fr.Resolve(k), "fr missing %s", k)
			assert.NotEqual(t, k, en.Resolve(k), "en missing %s", k)
		}
	}
}

func TestTranslator_Fallback(t *testing.T) {
	c := testCatalog(t)
	es := c.Translator("es")

	// Present in the active table.
	assert.Equal(t, "Navidad", es.Resolve("feast.christmas.name"))
	// Missing from es, served by the default table.
	assert.Equal(t, "Ascension", es.Resolve("feast.ascension.name"))
	assert.Equal(t, "Solennité du Corps et du Sang du Christ.", es.Resolve("feast.corpus_christi.description"))
	// Missing everywhere.
	assert.Equal(t, "feast.unknown.name", es.Resolve("feast.unknown.name"))
}

func TestCatalog_TranslatorUnknownLanguageUsesDefault(t *testing.T) {
	c := testCatalog(t)

	tr := c.Translator("ko")
	assert.Equal(t, "fr", tr.Lang())
	assert.Equal(t, "Noël", tr.Resolve("feast.christmas.name"))
}

func TestCatalog_Languages(t *testing.T) {
	c := testCatalog(t)

	langs := c.Languages()
	require.Len(t, langs, 3)
	assert.Equal(t, Language{Code: "fr", Name: "Français", Flag: "🇫🇷"}, langs[0])
	assert.Equal(t, "en", langs[1].Code)
	assert.Equal(t, "es", langs[2].Code)
}

func TestTranslator_SatisfiesResolver(t *testing.T) {
	var r calendar.Resolver = testCatalog(t).Translator("en")

	info := calendar.Info(r, -10)
	assert.Equal(t, "Julian", info.Calendar)
	assert.Equal(t, "In 10 BC, the Julian calendar was in force. Introduced by Julius Caesar in 45 BC.", info.Description)

	hs := calendar.HolidaysForYear(r, 2024)
	for _, h := range hs {
		if h.Key == "easter" {
			assert.Equal(t, "Easter", h.Name)
		}
	}
}

func TestLoadFS_SkipsBrokenTable(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/fr.yaml":     {Data: []byte("feast:\n  christmas:\n    name: Noël\n")},
		"locales/de.yaml":     {Data: []byte("feast: [unterminated\n")},
		"locales/README.txt":  {Data: []byte("not a table")},
		"locales/nl.yaml":     {Data: []byte("feast:\n  christmas:\n    name: Kerstmis\n")},
		"locales/nested/x.md": {Data: []byte("ignored")},
	}

	c, err := LoadFS(fsys, "locales", "fr", logger.Discard())
	require.NoError(t, err)

	assert.True(t, c.Has("fr"))
	assert.True(t, c.Has("nl"))
	assert.False(t, c.Has("de"))
	assert.Equal(t, "Kerstmis", c.Translator("nl").Resolve("feast.christmas.name"))
}

func TestLoadFS_MissingDefault(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("a: b\n")},
	}

	_, err := LoadFS(fsys, "locales", "fr", logger.Discard())
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "+13 days", Format("+{days} days", map[string]string{"days": "13"}))
	assert.Equal(t, "{year} BC", Format("{year} BC", nil))
	assert.Equal(t, "44 BC in {place}", Format("{year} BC in {place}", map[string]string{"year": "44"}))

	tr := testCatalog(t).Translator("fr")
	assert.Equal(t, "+10 jours", tr.Format("easter.days_diff", map[string]string{"days": "10"}))
}

func TestNegotiate(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name     string
		explicit string
		header   string
		want     string
	}{
		{"explicit wins", "en", "es", "en"},
		{"explicit region tag", "en-US", "", "en"},
		{"unknown explicit falls to header", "ko", "es-ES,es;q=0.9", "es"},
		{"quality ordering", "", "de;q=0.9,en;q=0.5,es;q=0.7", "es"},
		{"zero quality dropped", "", "en;q=0,es;q=0.1", "es"},
		{"wildcard ignored", "", "*", "fr"},
		{"nothing matches", "", "ko,ja", "fr"},
		{"implicit quality beats low weight", "", "fr;q=0.1, en", "en"},
		{"uppercase weight", "", "fr;Q=0.1, en", "en"},
		{"region falls to base table", "", "en-GB", "en"},
		{"malformed weight", "", "en;q=abc", "fr"},
		{"empty", "", "", "fr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Negotiate(tt.explicit, tt.header))
		})
	}
}
