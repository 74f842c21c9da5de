package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/ariaghora/libdtree/dataset/csv"
	"github.com/ariaghora/libdtree/dataset/mongodataset"
	"github.com/ariaghora/libdtree/dataset/npy"
	"github.com/ariaghora/libdtree/dataset/sqldataset"
	"github.com/ariaghora/libdtree/dataset/sqldataset/pgadapter"
	"github.com/ariaghora/libdtree/dataset/sqldataset/sqlite3adapter"
	"github.com/ariaghora/libdtree/tree"
	"github.com/ariaghora/libdtree/tree/json"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput   string
	dataInput   string
	labelsInput string
	label       string
	storeURL    string
	treeName    string
	ctx         context.Context
	cancelFunc  context.CancelFunc
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a labeled test data set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			t, err := readTree(config.Context(), config.treeInput, config.storeURL, config.treeName)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			testingSet, err := config.testingSet()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Testing tree against a set with %d samples...", testingSet.NRow)
			successRate, misses, err := t.Test(config.Context(), testingSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "testing tree: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
			fmt.Printf("%f success rate, mispredicted the class of %d samples\n", successRate, misses)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv), SQLite3 (.db) or numpy (.npy) file, or a PostgreSQL or MongoDB connection URL with the samples to test the tree against (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.labelsInput), "labels", "", "path to a numpy (.npy) file with the class labels, required when the input is a numpy file")
	cmd.PersistentFlags().StringVarP(&(config.label), "label", "l", "", "name of the column with the class labels (defaults to the last column)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required unless store is set)")
	cmd.PersistentFlags().StringVar(&(config.storeURL), "store", "", "redis URL of a tree store to load the tree from instead of the tree file")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name the tree is saved under on the tree store (required with store)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" && tcc.storeURL == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if tcc.storeURL != "" && tcc.treeName == "" {
		return fmt.Errorf("required name flag was not set for the tree store")
	}
	if strings.HasSuffix(tcc.dataInput, ".npy") && tcc.labelsInput == "" {
		return fmt.Errorf("required labels flag was not set for numpy input")
	}
	return nil
}

func (tcc *testCmdConfig) testingSet() (*dataset.Dataset, error) {
	if tcc.dataInput == "" {
		tcc.Logf("Reading testing set from STDIN...")
		ds, _, err := csv.ReadLabeledFromFilePath("", tcc.label)
		return ds, err
	}
	if strings.HasPrefix(tcc.dataInput, "postgresql://") {
		return tcc.PostgreSQLTestingSet()
	}
	if strings.HasPrefix(tcc.dataInput, "mongodb://") {
		return tcc.MongoDBTestingSet()
	}
	if strings.HasSuffix(tcc.dataInput, ".db") {
		return tcc.Sqlite3TestingSet()
	}
	if strings.HasSuffix(tcc.dataInput, ".npy") {
		tcc.Logf("Reading testing set from %s and labels from %s...", tcc.dataInput, tcc.labelsInput)
		return npy.ReadLabeledFromFilePaths(tcc.dataInput, tcc.labelsInput)
	}
	tcc.Logf("Opening %s to read testing set...", tcc.dataInput)
	ds, _, err := csv.ReadLabeledFromFilePath(tcc.dataInput, tcc.label)
	return ds, err
}

func (tcc *testCmdConfig) Sqlite3TestingSet() (*dataset.Dataset, error) {
	tcc.Logf("Creating SQLite3 adapter for file %s to read testing set...", tcc.dataInput)
	adapter, err := sqlite3adapter.New(tcc.dataInput)
	if err != nil {
		return nil, err
	}
	tcc.Logf("Opening set over SQLite3 adapter for file %s to read testing set...", tcc.dataInput)
	set, err := sqldataset.Open(tcc.Context(), adapter)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return labeledDataset(tcc.Context(), set, tcc.label)
}

func (tcc *testCmdConfig) PostgreSQLTestingSet() (*dataset.Dataset, error) {
	tcc.Logf("Creating PostgreSQL adapter for url %s to read testing set...", tcc.dataInput)
	adapter, err := pgadapter.New(tcc.dataInput)
	if err != nil {
		return nil, err
	}
	tcc.Logf("Opening set over PostgreSQL adapter for url %s to read testing set...", tcc.dataInput)
	set, err := sqldataset.Open(tcc.Context(), adapter)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return labeledDataset(tcc.Context(), set, tcc.label)
}

func (tcc *testCmdConfig) MongoDBTestingSet() (*dataset.Dataset, error) {
	tcc.Logf("Dialing MongoDB at %s to read testing set...", tcc.dataInput)
	session, err := mgo.Dial(tcc.dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", tcc.dataInput, err)
	}
	tcc.Logf("Opening set over MongoDB session for url %s to read testing set...", tcc.dataInput)
	set, err := mongodataset.Open(tcc.Context(), session)
	if err != nil {
		session.Close()
		return nil, err
	}
	defer set.Close()
	return labeledDataset(tcc.Context(), set, tcc.label)
}

func (tcc *testCmdConfig) Context() context.Context {
	tcc.setContextAndCancelFunc()
	return tcc.ctx
}

func (tcc *testCmdConfig) ContextCancelFunc() context.CancelFunc {
	tcc.setContextAndCancelFunc()
	return tcc.cancelFunc
}

func (tcc *testCmdConfig) setContextAndCancelFunc() {
	if tcc.ctx == nil {
		tcc.ctx, tcc.cancelFunc = context.WithCancel(context.Background())
	}
}

// readTree loads a tree from the tree store at storeURL if one is
// given, and from the JSON file at filepath otherwise.
func readTree(ctx context.Context, filepath, storeURL, name string) (*tree.Tree, error) {
	if storeURL != "" {
		return loadStoredTree(ctx, storeURL, name)
	}
	return loadTree(filepath)
}

func loadTree(filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", filepath, err)
	}
	return t, err
}

func loadStoredTree(ctx context.Context, storeURL, name string) (*tree.Tree, error) {
	store, err := treeStore(storeURL)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)
	t, err := store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading tree %q from the store: %v", name, err)
	}
	if t == nil {
		return nil, fmt.Errorf("no tree %q available on the store", name)
	}
	return t, nil
}
