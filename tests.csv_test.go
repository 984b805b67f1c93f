package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadCatalogCSV ensures the semicolon separated dataset turns into
// ready to insert books, with the rows missing required fields skipped.
func TestLoadCatalogCSV(t *testing.T) {
	content := "ISBN;Title;Author;Year;Publisher;ImageURL\n" +
		"0195153448;Classical Mythology;Mark P. O. Morford;2002;Oxford University Press;http://images.amazon.com/images/P/0195153448.jpg\n" +
		"0002005018;Clara Callan;Richard Bruce Wright;2001;HarperFlamingo Canada;http://images.amazon.com/images/P/0002005018.jpg\n" +
		"0060973129;;Carlo D'Este;1991;HarperPerennial;http://images.amazon.com/images/P/0060973129.jpg\n"

	f, err := os.CreateTemp("", "tmp.books.csv-")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	books, err := LoadCatalogCSV(f.Name(), NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(books)) // the row without title is skipped

	first := books[0]
	assert.Equal(t, "b:cb8f2136-fae4-4200-85d9-3533c7f8c70d", first.ID)
	assert.Equal(t, "Classical Mythology", first.Title)
	assert.Equal(t, "Mark P. O. Morford", first.Author)
	assert.Equal(t, "2002", first.PublishedYear)
	assert.Equal(t, "Oxford University Press", first.Publisher)
	assert.Equal(t, "http://images.amazon.com/images/P/0195153448.jpg", first.CoverImage)
	assert.NotEmpty(t, first.Description)
	assert.Equal(t, "Fiction", first.Genre)
	assert.Equal(t, "English", first.Language)
	assert.GreaterOrEqual(t, first.Price, 5.0)
	assert.LessOrEqual(t, first.Price, 25.0)
	assert.GreaterOrEqual(t, first.Rating, 2.0)
	assert.LessOrEqual(t, first.Rating, 5.0)
	assert.GreaterOrEqual(t, first.PageCount, 100)
	assert.LessOrEqual(t, first.PageCount, 600)
	assert.Equal(t, "2023-07-02 00:00:00 +0000 UTC", first.CreatedAt)
}

// TestLoadCatalogCSV_MissingFile ensures a bad path surfaces the error.
func TestLoadCatalogCSV_MissingFile(t *testing.T) {
	_, err := LoadCatalogCSV("./does-not-exist.csv", NewMockClocker(), NewMockUIDHandler("x", true))
	assert.Error(t, err)
}

// TestLoadCatalogCSV_NoDataRows ensures a header-only file is rejected.
func TestLoadCatalogCSV_NoDataRows(t *testing.T) {
	f, err := os.CreateTemp("", "tmp.books.csv-")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	_, err = f.WriteString("ISBN;Title;Author;Year;Publisher;ImageURL\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = LoadCatalogCSV(f.Name(), NewMockClocker(), NewMockUIDHandler("x", true))
	assert.Error(t, err)
}
