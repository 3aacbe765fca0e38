package cities

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

// DefaultMinPopulation is the population a city must exceed to be listed.
const DefaultMinPopulation = 100000

const primaryCapital = "primary"

var requiredColumns = []string{"city_ascii", "lat", "lng", "country", "population", "capital"}

// Directory is the in-memory, population-filtered world cities table.
type Directory struct {
	cities []domain.City
	names  []string
}

var _ ports.CityDirectory = (*Directory)(nil)

// LoadFile reads a worldcities.csv file.
func LoadFile(path string, minPopulation float64) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cities table: %w", err)
	}
	defer f.Close()

	return Load(f, minPopulation)
}

// Load parses the CSV table and keeps cities whose population exceeds minPopulation.
// Rows with an empty or malformed population are skipped.
func Load(r io.Reader, minPopulation float64) (*Directory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: cities table lacks column %q", domain.ErrConfiguration, col)
		}
	}

	field := func(record []string, col string) string {
		i := index[col]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	d := &Directory{}
	seen := map[string]bool{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		population, err := strconv.ParseFloat(field(record, "population"), 64)
		if err != nil || population <= minPopulation {
			continue
		}
		name := field(record, "city_ascii")
		if name == "" {
			continue
		}
		lat, _ := strconv.ParseFloat(field(record, "lat"), 64)
		lng, _ := strconv.ParseFloat(field(record, "lng"), 64)

		d.cities = append(d.cities, domain.City{
			Name:             name,
			Country:          field(record, "country"),
			Latitude:         lat,
			Longitude:        lng,
			Population:       population,
			IsPrimaryCapital: field(record, "capital") == primaryCapital,
		})
		if !seen[name] {
			seen[name] = true
			d.names = append(d.names, name)
		}
	}
	slices.Sort(d.names)

	return d, nil
}

// Names returns the unique city names in lexical order.
func (d *Directory) Names() []string {
	return slices.Clone(d.names)
}

// Has reports whether the city is listed.
func (d *Directory) Has(name string) bool {
	_, found := slices.BinarySearch(d.names, name)
	return found
}

// PrimaryCapitals returns up to limit primary capitals, most populous first.
func (d *Directory) PrimaryCapitals(limit int) []domain.City {
	var capitals []domain.City
	for _, c := range d.cities {
		if c.IsPrimaryCapital {
			capitals = append(capitals, c)
		}
	}
	slices.SortStableFunc(capitals, func(a, b domain.City) int {
		switch {
		case a.Population > b.Population:
			return -1
		case a.Population < b.Population:
			return 1
		default:
			return 0
		}
	})
	if limit >= 0 && len(capitals) > limit {
		capitals = capitals[:limit]
	}
	return capitals
}
