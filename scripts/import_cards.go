package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/magefree/deckopt-go/internal/game/card"
	"gopkg.in/yaml.v3"
)

// CSV columns of the card export.
const (
	colName      = 0
	colPower     = 4
	colToughness = 5
	colTypes     = 10
	colManaCosts = 13
	colRules     = 14
	colBlack     = 15
	colBlue      = 16
	colGreen     = 17
	colRed       = 18
	colWhite     = 19
	minColumns   = 20
)

var damagePattern = regexp.MustCompile(`deals (\d+) damage to (?:any target|target player|each opponent|target opponent)`)

// importStats counts what happened to each row.
type importStats struct {
	Rows     int
	Imported int
	Skipped  int
}

func main() {
	csvPath := "data/cards_export.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	outPath := "cards.yaml"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	fmt.Println("=== Card Catalog Import ===")
	fmt.Printf("CSV file: %s\n", csvPath)

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	catalog, stats, err := convert(file)
	if err != nil {
		log.Fatalf("Failed to convert cards: %v", err)
	}

	data, err := yaml.Marshal(catalog)
	if err != nil {
		log.Fatalf("Failed to encode catalog: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("Failed to write catalog: %v", err)
	}

	fmt.Println("\n=== Import Complete ===")
	fmt.Printf("✓ Imported: %d of %d cards\n", stats.Imported, stats.Rows)
	if stats.Skipped > 0 {
		fmt.Printf("✗ Skipped: %d cards the simulator cannot model\n", stats.Skipped)
	}
	fmt.Printf("Catalog written to %s\n", outPath)
}

// convert reads the CSV export and keeps the cards the simulator can model:
// basic mana lands, vanilla creatures and direct damage spells.
func convert(r io.Reader) (*card.CatalogFile, importStats, error) {
	var stats importStats

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, stats, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, stats, fmt.Errorf("CSV file is empty or has no data rows")
	}

	out := &card.CatalogFile{}
	seen := make(map[string]bool)
	for i, record := range records[1:] { // Skip header
		stats.Rows++
		if len(record) < minColumns {
			log.Printf("Warning: Skipping row %d - insufficient columns", i+2)
			stats.Skipped++
			continue
		}
		tmpl, ok := templateFromRecord(record)
		if !ok || seen[tmpl.Name] {
			stats.Skipped++
			continue
		}
		if err := tmpl.Validate(); err != nil {
			stats.Skipped++
			continue
		}
		seen[tmpl.Name] = true
		out.Cards = append(out.Cards, tmpl)
		stats.Imported++
	}
	return out, stats, nil
}

func templateFromRecord(record []string) (card.Template, bool) {
	types := record[colTypes]
	tmpl := card.Template{Name: strings.TrimSpace(record[colName])}
	if tmpl.Name == "" {
		return tmpl, false
	}

	switch {
	case strings.Contains(types, "Land"):
		tmpl.Types = []card.Type{card.TypeLand}
		tmpl.Produces = landColor(record)
	case strings.Contains(types, "Creature"):
		power, errP := strconv.Atoi(record[colPower])
		toughness, errT := strconv.Atoi(record[colToughness])
		if errP != nil || errT != nil {
			return tmpl, false
		}
		tmpl.Types = []card.Type{card.TypeCreature}
		tmpl.Cost = record[colManaCosts]
		tmpl.Power, tmpl.Toughness = &power, &toughness
	case strings.Contains(types, "Instant") || strings.Contains(types, "Sorcery"):
		m := damagePattern.FindStringSubmatch(record[colRules])
		if m == nil {
			return tmpl, false
		}
		tmpl.Damage, _ = strconv.Atoi(m[1])
		tmpl.Types = []card.Type{card.TypeSpell}
		tmpl.Cost = record[colManaCosts]
	default:
		return tmpl, false
	}
	return tmpl, true
}

// landColor picks the mana a land produces from its color identity flags.
func landColor(record []string) string {
	for _, c := range []struct {
		col    int
		symbol string
	}{
		{colGreen, "G"}, {colRed, "R"}, {colBlack, "B"}, {colBlue, "U"}, {colWhite, "W"},
	} {
		if parseBool(record[c.col]) {
			return c.symbol
		}
	}
	return "C"
}

func parseBool(s string) bool {
	return strings.ToLower(s) == "true" || s == "1"
}
