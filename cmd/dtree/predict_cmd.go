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
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput  string
	dataInput  string
	output     string
	storeURL   string
	treeName   string
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the class of a set of samples",
		Long:  `Use a grown tree to predict the class of every sample on an unlabeled set of data`,
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
			predictionSet, err := config.predictionSet()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Predicting the class of %d samples...", predictionSet.NRow)
			predictions, err := t.PredictBatch(predictionSet)
			if err != nil {
				fmt.Fprintf(os.Stderr, "predicting classes: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
			err = config.writePredictions(predictions)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv), SQLite3 (.db) or numpy (.npy) file, or a PostgreSQL or MongoDB connection URL with the samples to predict classes for (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a CSV (.csv) or numpy (.npy) file to write the predicted classes to (defaults to STDOUT in CSV)")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required unless store is set)")
	cmd.PersistentFlags().StringVar(&(config.storeURL), "store", "", "redis URL of a tree store to load the tree from instead of the tree file")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name the tree is saved under on the tree store (required with store)")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" && pcc.storeURL == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if pcc.storeURL != "" && pcc.treeName == "" {
		return fmt.Errorf("required name flag was not set for the tree store")
	}
	return nil
}

func (pcc *predictCmdConfig) predictionSet() (*dataset.Dataset, error) {
	if pcc.dataInput == "" {
		pcc.Logf("Reading prediction set from STDIN...")
		ds, _, err := csv.ReadFromFilePath("")
		return ds, err
	}
	if strings.HasPrefix(pcc.dataInput, "postgresql://") {
		return pcc.PostgreSQLPredictionSet()
	}
	if strings.HasPrefix(pcc.dataInput, "mongodb://") {
		return pcc.MongoDBPredictionSet()
	}
	if strings.HasSuffix(pcc.dataInput, ".db") {
		return pcc.Sqlite3PredictionSet()
	}
	if strings.HasSuffix(pcc.dataInput, ".npy") {
		pcc.Logf("Reading prediction set from %s...", pcc.dataInput)
		return npy.ReadFromFilePath(pcc.dataInput)
	}
	pcc.Logf("Opening %s to read prediction set...", pcc.dataInput)
	ds, _, err := csv.ReadFromFilePath(pcc.dataInput)
	return ds, err
}

func (pcc *predictCmdConfig) Sqlite3PredictionSet() (*dataset.Dataset, error) {
	pcc.Logf("Creating SQLite3 adapter for file %s to read prediction set...", pcc.dataInput)
	adapter, err := sqlite3adapter.New(pcc.dataInput)
	if err != nil {
		return nil, err
	}
	pcc.Logf("Opening set over SQLite3 adapter for file %s to read prediction set...", pcc.dataInput)
	set, err := sqldataset.Open(pcc.Context(), adapter)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return set.Read(pcc.Context())
}

func (pcc *predictCmdConfig) PostgreSQLPredictionSet() (*dataset.Dataset, error) {
	pcc.Logf("Creating PostgreSQL adapter for url %s to read prediction set...", pcc.dataInput)
	adapter, err := pgadapter.New(pcc.dataInput)
	if err != nil {
		return nil, err
	}
	pcc.Logf("Opening set over PostgreSQL adapter for url %s to read prediction set...", pcc.dataInput)
	set, err := sqldataset.Open(pcc.Context(), adapter)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return set.Read(pcc.Context())
}

func (pcc *predictCmdConfig) MongoDBPredictionSet() (*dataset.Dataset, error) {
	pcc.Logf("Dialing MongoDB at %s to read prediction set...", pcc.dataInput)
	session, err := mgo.Dial(pcc.dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", pcc.dataInput, err)
	}
	pcc.Logf("Opening set over MongoDB session for url %s to read prediction set...", pcc.dataInput)
	set, err := mongodataset.Open(pcc.Context(), session)
	if err != nil {
		session.Close()
		return nil, err
	}
	defer set.Close()
	return set.Read(pcc.Context())
}

func (pcc *predictCmdConfig) writePredictions(predictions []float64) error {
	if strings.HasSuffix(pcc.output, ".npy") {
		pcc.Logf("Writing predicted classes to %s...", pcc.output)
		f, err := os.Create(pcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
		return npy.WriteLabels(f, predictions)
	}
	var f *os.File
	var err error
	if pcc.output == "" {
		pcc.Logf("Writing predicted classes to STDOUT...")
		f = os.Stdout
	} else {
		pcc.Logf("Writing predicted classes to %s...", pcc.output)
		f, err = os.Create(pcc.output)
		if err != nil {
			return err
		}
	}
	defer f.Close()
	w, err := csv.NewWriter(f, []string{"class"})
	if err != nil {
		return err
	}
	for _, p := range predictions {
		err = w.Write([]float64{p})
		if err != nil {
			return err
		}
	}
	return w.Flush()
}

func (pcc *predictCmdConfig) Context() context.Context {
	pcc.setContextAndCancelFunc()
	return pcc.ctx
}

func (pcc *predictCmdConfig) ContextCancelFunc() context.CancelFunc {
	pcc.setContextAndCancelFunc()
	return pcc.cancelFunc
}

func (pcc *predictCmdConfig) setContextAndCancelFunc() {
	if pcc.ctx == nil {
		pcc.ctx, pcc.cancelFunc = context.WithCancel(context.Background())
	}
}
