package csv_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/ariaghora/libdtree/dataset/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRead parses the header into column names and the body into an
// unlabeled dataset.
func TestRead(t *testing.T) {
	ds, columns, err := csv.Read(strings.NewReader("a,b\n1,2\n3.5,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, columns)
	assert.Equal(t, 2, ds.NRow)
	assert.Equal(t, 2, ds.NCol)
	assert.Equal(t, []float64{1, 2, 3.5, 4}, ds.X)
	assert.False(t, ds.Labeled())
}

// TestReadRejectsInvalidBody refuses streams whose body rows cannot be
// turned into samples.
func TestReadRejectsInvalidBody(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"missing value marker", "a,b\n1,?\n"},
		{"empty field", "a,b\n1,\n"},
		{"non-numeric field", "a,b\n1,setosa\n"},
		{"too many fields", "a,b\n1,2,3\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := csv.Read(strings.NewReader(tc.data))
			require.Error(t, err)
		})
	}
}

// TestReadLabeled parses a CSV stream and splits the named column off
// as the label vector, defaulting to the last column.
func TestReadLabeled(t *testing.T) {
	ds, features, err := csv.ReadLabeled(strings.NewReader("a,class,b\n1,0,2\n3,1,4\n"), "class")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, features)
	assert.Equal(t, []float64{1, 2, 3, 4}, ds.X)
	assert.Equal(t, []float64{0, 1}, ds.Y)

	ds, features, err = csv.ReadLabeled(strings.NewReader("a,b,class\n1,2,0\n"), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, features)
	assert.Equal(t, []float64{0}, ds.Y)

	_, _, err = csv.ReadLabeled(strings.NewReader("a,b\n1,2\n"), "missing")
	require.Error(t, err)
}

// TestReadFromFilePath reads a dataset from a CSV file and fails when
// the file cannot be opened.
func TestReadFromFilePath(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(fp, []byte("a,b\n1,2\n"), 0644))

	ds, columns, err := csv.ReadFromFilePath(fp)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, columns)
	assert.Equal(t, 1, ds.NRow)

	_, _, err = csv.ReadFromFilePath(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}

// TestReadLabeledFromFilePath reads a labeled dataset from a CSV file.
func TestReadLabeledFromFilePath(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "samples.csv")
	require.NoError(t, os.WriteFile(fp, []byte("a,b,class\n1,2,0\n3,4,1\n"), 0644))

	ds, features, err := csv.ReadLabeledFromFilePath(fp, "class")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, features)
	assert.Equal(t, []float64{0, 1}, ds.Y)

	_, _, err = csv.ReadLabeledFromFilePath(filepath.Join(t.TempDir(), "missing.csv"), "")
	require.Error(t, err)
}

// TestWriter writes the header on construction and one CSV row per
// sample, counting the samples written.
func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w, err := csv.NewWriter(&buf, []string{"a", "b"})
	require.NoError(t, err)
	assert.Zero(t, w.Count())

	require.NoError(t, w.Write([]float64{1, 2.5}))
	require.NoError(t, w.Write([]float64{3, 4}))
	require.NoError(t, w.Flush())

	assert.Equal(t, 2, w.Count())
	assert.Equal(t, "a,b\n1,2.5\n3,4\n", buf.String())
}

// TestWriterChecksShape rejects rows without one value per column.
func TestWriterChecksShape(t *testing.T) {
	w, err := csv.NewWriter(&bytes.Buffer{}, []string{"a", "b"})
	require.NoError(t, err)

	err = w.Write([]float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)
	assert.Zero(t, w.Count())
}

// TestWriteDataset dumps a dataset as CSV, appending the labels as the
// last column when one extra column name is given.
func TestWriteDataset(t *testing.T) {
	ds, err := dataset.NewLabeled([]float64{1.5, 2, 3, 4}, []float64{0, 1}, 2)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, csv.WriteDataset(&buf, ds, []string{"a", "b"}))
	assert.Equal(t, "a,b\n1.5,2\n3,4\n", buf.String())

	buf.Reset()
	require.NoError(t, csv.WriteDataset(&buf, ds, []string{"a", "b", "class"}))
	assert.Equal(t, "a,b,class\n1.5,2,0\n3,4,1\n", buf.String())

	err = csv.WriteDataset(&bytes.Buffer{}, ds, []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)
}
