package clubs

import (
	"encoding/json"
	"log"
	"os"
	"strings"
)

// Club is a read-only entry in the club directory.
type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Banner      string `json:"banner"`
}

// defaultNames maps canonical club identifiers to display names. This is the
// reference deployment's fixed set, used when no clubs.json is present.
var defaultNames = map[string]string{
	"acm":          "ACM",
	"jci":          "JCI",
	"ieee":         "IEEE",
	"cine_radio":   "Cine Radio",
	"securinets":   "Securinets",
	"junior":       "Junior",
	"aerobotix":    "Aerobotix",
	"theatro":      "Theatro",
	"3zero":        "3ZERO",
	"android":      "Android Club",
	"genesis_labs": "Genesis Labs",
	"insat_press":  "INSAT Press",
}

// Directory resolves club display names to canonical identifiers.
type Directory struct {
	idToName map[string]string
	nameToID map[string]string
}

// NewDirectory builds a directory from an id→name table.
func NewDirectory(idToName map[string]string) *Directory {
	d := &Directory{
		idToName: make(map[string]string, len(idToName)),
		nameToID: make(map[string]string, len(idToName)),
	}
	for id, name := range idToName {
		d.idToName[id] = name
		d.nameToID[strings.ToLower(name)] = id
	}
	return d
}

// DefaultDirectory returns a directory over the fixed reference club set.
func DefaultDirectory() *Directory {
	return NewDirectory(defaultNames)
}

// LoadDirectory reads clubs.json from the data directory and builds a
// directory from it. A missing or malformed file falls back to the fixed
// default set.
func LoadDirectory(path string) *Directory {
	raw, err := os.ReadFile(path)
	if err != nil {
		return DefaultDirectory()
	}

	var entries []Club
	if err := json.Unmarshal(raw, &entries); err != nil || len(entries) == 0 {
		if err != nil {
			log.Printf("[WARN] ignoring malformed club directory %s: %v", path, err)
		}
		return DefaultDirectory()
	}

	idToName := make(map[string]string, len(entries))
	for _, c := range entries {
		if c.ID == "" || c.Name == "" {
			continue
		}
		idToName[c.ID] = c.Name
	}
	if len(idToName) == 0 {
		return DefaultDirectory()
	}
	return NewDirectory(idToName)
}

// Resolve maps a human-entered club name to its canonical identifier.
// Matching is case-insensitive and ignores surrounding whitespace. The second
// return value reports whether the name resolved.
func (d *Directory) Resolve(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", false
	}
	id, ok := d.nameToID[strings.ToLower(trimmed)]
	return id, ok
}

// DisplayName returns the display name for a canonical club identifier.
func (d *Directory) DisplayName(id string) (string, bool) {
	name, ok := d.idToName[id]
	return name, ok
}

// IDs returns every canonical club identifier in the directory.
func (d *Directory) IDs() []string {
	ids := make([]string, 0, len(d.idToName))
	for id := range d.idToName {
		ids = append(ids, id)
	}
	return ids
}
