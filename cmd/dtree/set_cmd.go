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

type setCmdConfig struct {
	*rootCmdConfig
	setInput   string
	setOutput  string
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Copy sets of data between CSV, numpy, SQLite3, PostgreSQL and MongoDB backends`,
		Run: func(cmd *cobra.Command, args []string) {
			ds, columns, err := config.readInput()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Dumping set with %d samples and %d columns into output set...", ds.NRow, ds.NCol)
			err = config.writeSet(config.setOutput, ds, columns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", "path to an input CSV (.csv), SQLite3 (.db) or numpy (.npy) file, or a PostgreSQL or MongoDB connection URL with a set of data (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv), SQLite3 (.db) or numpy (.npy) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) readInput() (*dataset.Dataset, []string, error) {
	if scc.setInput == "" {
		scc.Logf("Reading input set from STDIN...")
		return csv.ReadFromFilePath("")
	}
	if strings.HasPrefix(scc.setInput, "postgresql://") {
		return scc.PostgreSQLInput()
	}
	if strings.HasPrefix(scc.setInput, "mongodb://") {
		return scc.MongoDBInput()
	}
	if strings.HasSuffix(scc.setInput, ".db") {
		return scc.Sqlite3Input()
	}
	if strings.HasSuffix(scc.setInput, ".npy") {
		scc.Logf("Reading input set from %s...", scc.setInput)
		ds, err := npy.ReadFromFilePath(scc.setInput)
		if err != nil {
			return nil, nil, err
		}
		columns := make([]string, ds.NCol)
		for j := range columns {
			columns[j] = fmt.Sprintf("x%d", j)
		}
		return ds, columns, nil
	}
	scc.Logf("Opening %s to read input set...", scc.setInput)
	return csv.ReadFromFilePath(scc.setInput)
}

func (scc *setCmdConfig) Sqlite3Input() (*dataset.Dataset, []string, error) {
	scc.Logf("Creating SQLite3 adapter for file %s to read input set...", scc.setInput)
	adapter, err := sqlite3adapter.New(scc.setInput)
	if err != nil {
		return nil, nil, err
	}
	scc.Logf("Opening set over SQLite3 adapter for file %s to read input set...", scc.setInput)
	set, err := sqldataset.Open(scc.Context(), adapter)
	if err != nil {
		return nil, nil, err
	}
	defer set.Close()
	ds, err := set.Read(scc.Context())
	if err != nil {
		return nil, nil, err
	}
	return ds, set.Columns(), nil
}

func (scc *setCmdConfig) PostgreSQLInput() (*dataset.Dataset, []string, error) {
	scc.Logf("Creating PostgreSQL adapter for url %s to read input set...", scc.setInput)
	adapter, err := pgadapter.New(scc.setInput)
	if err != nil {
		return nil, nil, err
	}
	scc.Logf("Opening set over PostgreSQL adapter for url %s to read input set...", scc.setInput)
	set, err := sqldataset.Open(scc.Context(), adapter)
	if err != nil {
		return nil, nil, err
	}
	defer set.Close()
	ds, err := set.Read(scc.Context())
	if err != nil {
		return nil, nil, err
	}
	return ds, set.Columns(), nil
}

func (scc *setCmdConfig) MongoDBInput() (*dataset.Dataset, []string, error) {
	scc.Logf("Dialing MongoDB at %s to read input set...", scc.setInput)
	session, err := mgo.Dial(scc.setInput)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to MongoDB at %s: %v", scc.setInput, err)
	}
	scc.Logf("Opening set over MongoDB session for url %s to read input set...", scc.setInput)
	set, err := mongodataset.Open(scc.Context(), session)
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	defer set.Close()
	ds, err := set.Read(scc.Context())
	if err != nil {
		return nil, nil, err
	}
	return ds, set.Columns(), nil
}

func (scc *setCmdConfig) writeSet(output string, ds *dataset.Dataset, columns []string) error {
	if strings.HasPrefix(output, "postgresql://") {
		return scc.PostgreSQLOutput(output, ds, columns)
	}
	if strings.HasPrefix(output, "mongodb://") {
		return scc.MongoDBOutput(output, ds, columns)
	}
	if strings.HasSuffix(output, ".db") {
		return scc.Sqlite3Output(output, ds, columns)
	}
	if strings.HasSuffix(output, ".npy") {
		scc.Logf("Creating %s to dump output set...", output)
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		return npy.Write(f, ds)
	}
	var f *os.File
	var err error
	if output == "" {
		scc.Logf("Using STDOUT to dump output set...")
		f = os.Stdout
	} else {
		scc.Logf("Creating %s to dump output set...", output)
		f, err = os.Create(output)
		if err != nil {
			return err
		}
	}
	defer f.Close()
	return csv.WriteDataset(f, ds, columns)
}

func (scc *setCmdConfig) Sqlite3Output(output string, ds *dataset.Dataset, columns []string) error {
	scc.Logf("Creating SQLite3 adapter for file %s to dump output set...", output)
	adapter, err := sqlite3adapter.New(output)
	if err != nil {
		return err
	}
	scc.Logf("Opening set over SQLite3 adapter for file %s to dump output set...", output)
	set, err := sqldataset.Create(scc.Context(), adapter, columns)
	if err != nil {
		return err
	}
	defer set.Close()
	_, err = set.Write(scc.Context(), ds)
	return err
}

func (scc *setCmdConfig) PostgreSQLOutput(output string, ds *dataset.Dataset, columns []string) error {
	scc.Logf("Creating PostgreSQL adapter for url %s to dump output set...", output)
	adapter, err := pgadapter.New(output)
	if err != nil {
		return err
	}
	scc.Logf("Opening set over PostgreSQL adapter for url %s to dump output set...", output)
	set, err := sqldataset.Create(scc.Context(), adapter, columns)
	if err != nil {
		return err
	}
	defer set.Close()
	_, err = set.Write(scc.Context(), ds)
	return err
}

func (scc *setCmdConfig) MongoDBOutput(output string, ds *dataset.Dataset, columns []string) error {
	scc.Logf("Dialing MongoDB at %s to dump output set...", output)
	session, err := mgo.Dial(output)
	if err != nil {
		return fmt.Errorf("connecting to MongoDB at %s: %v", output, err)
	}
	scc.Logf("Opening set over MongoDB session for url %s to dump output set...", output)
	set, err := mongodataset.Create(scc.Context(), session, columns)
	if err != nil {
		session.Close()
		return err
	}
	defer set.Close()
	_, err = set.Write(scc.Context(), ds)
	return err
}

func (scc *setCmdConfig) Context() context.Context {
	scc.setContextAndCancelFunc()
	return scc.ctx
}

func (scc *setCmdConfig) ContextCancelFunc() context.CancelFunc {
	scc.setContextAndCancelFunc()
	return scc.cancelFunc
}

func (scc *setCmdConfig) setContextAndCancelFunc() {
	if scc.ctx == nil {
		scc.ctx, scc.cancelFunc = context.WithCancel(context.Background())
	}
}
