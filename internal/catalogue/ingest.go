package catalogue

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"

	"github.com/yukimura/cfp-tracker/internal/conference"
	"github.com/yukimura/cfp-tracker/internal/logger"
)

// Column aliases: the source spreadsheets use Japanese headers; English
// equivalents are accepted too.
var columnAliases = map[string][]string{
	"name":       {"name", "正式名称"},
	"short_name": {"short_name", "略称"},
	"theme":      {"theme", "注力テーマ"},
	"rank":       {"rank", "ランク"},
	"category":   {"category", "分野小分類"},
}

// Encodings tried in order when reading the source CSV.
var csvEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8", nil},
	{"shift_jis", japanese.ShiftJIS}, // also covers cp932 exports
	{"iso-2022-jp", japanese.ISO2022JP},
}

// ReadCSV reads the catalogue source CSV, trying each known encoding until
// one decodes, parses as CSV, and yields a recognizable name column.
func ReadCSV(path string) ([]map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	var lastErr error
	for _, e := range csvEncodings {
		decoded := data
		if e.enc != nil {
			decoded, err = e.enc.NewDecoder().Bytes(data)
			if err != nil {
				lastErr = fmt.Errorf("%s: %w", e.name, err)
				continue
			}
		} else if !utf8.Valid(data) {
			lastErr = fmt.Errorf("%s: invalid byte sequence", e.name)
			continue
		}

		records, err := parseRecords(decoded)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", e.name, err)
			continue
		}

		logger.Debug("csv decoded", logger.Fields{
			"encoding": e.name,
			"rows":     len(records),
		})
		return records, nil
	}

	return nil, fmt.Errorf("decoding csv: %w", lastErr)
}

// parseRecords parses decoded CSV bytes into field-name keyed records.
func parseRecords(data []byte) ([]map[string]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty csv")
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	cols := resolveColumns(header)
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("no name column in header %v", header)
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]string, len(cols))
		for field, idx := range cols {
			if idx < len(row) {
				rec[field] = strings.TrimSpace(row[idx])
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

func resolveColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		for field, aliases := range columnAliases {
			for _, alias := range aliases {
				if strings.EqualFold(h, alias) {
					cols[field] = i
				}
			}
		}
	}
	return cols
}

// Themes arrive with a numeric sort prefix ("10. Security" -> "Security").
var themePrefix = regexp.MustCompile(`^\d+\.\s*`)

// FromRecords builds a catalogue from parsed CSV records. Rows naming the
// same conference (case-insensitive full name) merge: themes are unioned
// and the shortest abbreviation wins. First-seen order is preserved.
func FromRecords(records []map[string]string) *Catalogue {
	byName := make(map[string]*conference.Conference)
	var order []string
	themeSet := make(map[string]bool)

	for _, rec := range records {
		name := strings.TrimSpace(rec["name"])
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		theme := strings.TrimSpace(themePrefix.ReplaceAllString(rec["theme"], ""))

		conf, ok := byName[key]
		if !ok {
			conf = &conference.Conference{
				Name:        name,
				ShortName:   rec["short_name"],
				Themes:      []string{},
				Rank:        rec["rank"],
				Category:    rec["category"],
				Information: make(map[int]conference.YearRecord),
			}
			if theme != "" {
				conf.Themes = append(conf.Themes, theme)
			}
			byName[key] = conf
			order = append(order, key)
		} else {
			if theme != "" && !containsTheme(conf.Themes, theme) {
				conf.Themes = append(conf.Themes, theme)
			}
			if short := rec["short_name"]; short != "" &&
				(conf.ShortName == "" || len(short) < len(conf.ShortName)) {
				conf.ShortName = short
			}
		}

		if theme != "" {
			themeSet[theme] = true
		}
	}

	cat := &Catalogue{
		Conferences: make([]*conference.Conference, 0, len(order)),
		Themes:      make([]string, 0, len(themeSet)),
	}
	for _, key := range order {
		cat.Conferences = append(cat.Conferences, byName[key])
	}
	for theme := range themeSet {
		cat.Themes = append(cat.Themes, theme)
	}
	sort.Strings(cat.Themes)

	return cat
}

func containsTheme(themes []string, theme string) bool {
	for _, t := range themes {
		if t == theme {
			return true
		}
	}
	return false
}
