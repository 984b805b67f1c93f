package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
)

// Column positions inside the books dataset file.
const (
	csvColISBN = iota
	csvColTitle
	csvColAuthor
	csvColYear
	csvColPublisher
	csvColImageURL
)

// LoadCatalogCSV parses a semicolon separated books dataset file and builds
// ready to insert catalog books. The dataset only carries bibliographic
// columns (ISBN;Title;Author;Year;Publisher;ImageURL) so price, rating,
// genre, language and page count are generated to obtain a usable catalog.
func LoadCatalogCSV(path string, clock Clocker, ids UIDHandler) ([]Book, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv file %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv file %s holds no data rows", path)
	}

	books := make([]Book, 0, len(records)-1)
	now := clock.Now().UTC().String()
	for _, record := range records[1:] {
		if len(record) <= csvColImageURL {
			continue
		}
		title, author := record[csvColTitle], record[csvColAuthor]
		if title == "" || author == "" {
			continue
		}
		books = append(books, Book{
			ID:            ids.Generate(BookIDPrefix),
			Title:         title,
			Author:        author,
			Description:   fmt.Sprintf("%s by %s, published by %s.", title, author, record[csvColPublisher]),
			CoverImage:    record[csvColImageURL],
			Price:         float64(int((5+rand.Float64()*20)*100)) / 100,
			Rating:        float64(int((2+rand.Float64()*3)*10)) / 10,
			Genre:         "Fiction",
			Language:      "English",
			Publisher:     record[csvColPublisher],
			PublishedYear: record[csvColYear],
			PageCount:     100 + rand.Intn(501),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return books, nil
}
