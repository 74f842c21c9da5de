/*
Package mongodataset provides storage of datasets on a MongoDB
database.

Samples are kept as documents in a samples collection with one field
per dataset column, and the column names and their order are kept in a
metadata document, since the documents themselves do not preserve
field order.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/ariaghora/libdtree/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const (
	samplesCollectionName  = "samples"
	metadataCollectionName = "metadata"
	columnsDocID           = "columns"
)

/*
Set is a dataset stored on a MongoDB database, with named columns, to
which samples can be written and from which the whole dataset can be
read back.
*/
type Set struct {
	session *mgo.Session
	columns []string
}

type columnsDoc struct {
	ID      string   `bson:"_id"`
	Columns []string `bson:"columns"`
}

/*
Create takes a MongoDB database session and a slice of column names
and returns a Set that works on the default database for that session
or an error if it fails to set it up.

This function will ensure the samples collection is indexed by every
column and record the column names on the database.
*/
func Create(ctx context.Context, session *mgo.Session, columns []string) (*Set, error) {
	s := &Set{session, columns}
	err := s.ensureIndexes()
	if err != nil {
		return nil, err
	}
	_, err = s.metadataCollection().UpsertId(columnsDocID, &columnsDoc{ID: columnsDocID, Columns: columns})
	if err != nil {
		return nil, fmt.Errorf("recording dataset columns: %v", err)
	}
	return s, nil
}

/*
Open takes a MongoDB database session and returns a Set that works on
the default database for that session or an error if no dataset is
available through it.

This function expects the database to have been set up with Create,
and takes the column names from it.
*/
func Open(ctx context.Context, session *mgo.Session) (*Set, error) {
	var doc columnsDoc
	err := session.DB("").C(metadataCollectionName).FindId(columnsDocID).One(&doc)
	if err == mgo.ErrNotFound {
		return nil, fmt.Errorf("no dataset available: column metadata is missing")
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset columns: %v", err)
	}
	return &Set{session, doc.Columns}, nil
}

// Columns returns the names of the dataset columns in storage order.
func (s *Set) Columns() []string {
	return s.columns
}

// Count returns the number of samples in the set.
func (s *Set) Count(ctx context.Context) (int, error) {
	return s.samplesCollection().Find(nil).Count()
}

/*
Write stores every row of the given dataset as a document on the
samples collection and returns the number of samples actually written.
The dataset width must match the set columns or an error wrapping
dataset.ErrShapeMismatch is returned.
*/
func (s *Set) Write(ctx context.Context, ds *dataset.Dataset) (int, error) {
	if ds.NCol != len(s.columns) {
		return 0, fmt.Errorf("%w: %d columns for a set with %d", dataset.ErrShapeMismatch, ds.NCol, len(s.columns))
	}
	if ds.NRow == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, ds.NRow)
	for i := 0; i < ds.NRow; i++ {
		doc := make(bson.M)
		row := ds.Row(i)
		for j, c := range s.columns {
			doc[c] = row[j]
		}
		docs = append(docs, doc)
	}
	err := s.samplesCollection().Insert(docs...)
	if err != nil {
		return 0, err
	}
	return ds.NRow, nil
}

/*
Read materializes the whole set as an unlabeled dataset, with the
samples in the order they were written.
*/
func (s *Set) Read(ctx context.Context) (*dataset.Dataset, error) {
	iter := s.samplesCollection().Find(bson.M{}).Sort("_id").Iter()
	defer iter.Close()
	var x []float64
	var doc bson.M
	for n := 0; iter.Next(&doc); n++ {
		for _, c := range s.columns {
			v, ok := doc[c]
			if !ok {
				return nil, fmt.Errorf("sample %d has a missing value for column %s", n, c)
			}
			value, err := numericValue(v)
			if err != nil {
				return nil, fmt.Errorf("sample %d: column %s: %v", n, c, err)
			}
			x = append(x, value)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return dataset.New(x, len(s.columns))
}

// Close closes the session to the MongoDB database.
func (s *Set) Close() error {
	s.session.Close()
	return nil
}

func (s *Set) ensureIndexes() error {
	for _, c := range s.columns {
		if c == "_id" {
			return fmt.Errorf("invalid column name %q: reserved collection field", "_id")
		}
		if strings.ContainsAny(c, ".$") {
			return fmt.Errorf("invalid column name %q: contains reserved characters %q or %q", c, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{c},
			Background: true,
			Sparse:     true,
		}
		err := s.samplesCollection().EnsureIndex(index)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Set) samplesCollection() *mgo.Collection {
	return s.session.DB("").C(samplesCollectionName)
}

func (s *Set) metadataCollection() *mgo.Collection {
	return s.session.DB("").C(metadataCollectionName)
}

func numericValue(v interface{}) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case int:
		return float64(value), nil
	case int64:
		return float64(value), nil
	}
	return 0.0, fmt.Errorf("value %v of type %T is not numeric", v, v)
}
