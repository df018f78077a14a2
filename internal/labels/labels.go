// Package labels maps table and chart keys to display text.
package labels

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Set is a key to display label mapping.
type Set map[string]string

const DefaultLanguage = "English"

var english = Set{
	"title":          "Stock Portfolio Dashboard",
	"s_no":           "S.No",
	"portfolio":      "Portfolio",
	"member":         "Member",
	"broker":         "Broker",
	"sector":         "Sector",
	"stock":          "Stock Code",
	"company_name":   "Company Name",
	"quantity":       "Quantity",
	"invested":       "Invested Amount",
	"current":        "Current Value",
	"gain_loss":      "Gain/Loss",
	"return_pct":     "Return (%)",
	"holding_days":   "Holding Period (days)",
	"metrics":        "Average Metrics",
	"count":          "Holdings",
	"summary":        "Portfolio Summary",
	"detail":         "Portfolio Details",
	"statistics":     "Portfolio Statistics",
	"top_performers": "Top Performing Stocks",
	"distribution":   "Current Value Distribution",
	"total":          "Total",
	"no_data":        "No data available for the selected filters.",
}

// Default returns a copy of the built-in English labels.
func Default() Set {
	s := make(Set, len(english))
	for k, v := range english {
		s[k] = v
	}
	return s
}

// Get returns the label for key, or key itself when unknown.
func (s Set) Get(key string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return key
}

// Load reads a JSON file of the form {"<language>": {"<key>": "<label>"}} and
// returns the default labels overridden by the entries of lang. A language
// missing from the file falls back to DefaultLanguage, then to the built-in set.
func Load(path, lang string) (Set, error) {
	all, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return merge(all, lang), nil
}

func readFile(path string) (map[string]Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var all map[string]Set
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("parse labels %s: %w", path, err)
	}
	return all, nil
}

func merge(all map[string]Set, lang string) Set {
	s := Default()
	over, ok := all[lang]
	if !ok {
		over = all[DefaultLanguage]
	}
	for k, v := range over {
		s[k] = v
	}
	return s
}

// Catalog holds the label sets of several languages. The file is read once;
// merged sets are cached per language and must not be modified by callers.
type Catalog struct {
	file map[string]Set

	mu    sync.Mutex
	cache map[string]Set
}

// NewCatalog reads the JSON labels file at path. An empty path serves the
// built-in labels for every language.
func NewCatalog(path string) (*Catalog, error) {
	c := &Catalog{cache: map[string]Set{}}
	if path == "" {
		return c, nil
	}
	all, err := readFile(path)
	if err != nil {
		return nil, err
	}
	c.file = all
	return c, nil
}

// Lookup returns the labels of lang.
func (c *Catalog) Lookup(lang string) Set {
	if c == nil {
		return Default()
	}
	if lang == "" {
		lang = DefaultLanguage
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.cache[lang]
	if !ok {
		s = merge(c.file, lang)
		c.cache[lang] = s
	}
	return s
}
