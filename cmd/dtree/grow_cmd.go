package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	dtree "github.com/ariaghora/libdtree"
	"github.com/ariaghora/libdtree/dataset"
	"github.com/ariaghora/libdtree/dataset/csv"
	"github.com/ariaghora/libdtree/dataset/mongodataset"
	"github.com/ariaghora/libdtree/dataset/npy"
	"github.com/ariaghora/libdtree/dataset/sqldataset"
	"github.com/ariaghora/libdtree/dataset/sqldataset/pgadapter"
	"github.com/ariaghora/libdtree/dataset/sqldataset/sqlite3adapter"
	"github.com/ariaghora/libdtree/tree"
	"github.com/ariaghora/libdtree/tree/json"
	"github.com/ariaghora/libdtree/tree/redisstore"
	"github.com/davecheney/profile"
	"github.com/spf13/cobra"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/redis.v5"
)

// redisKeyPrefix is the prefix under which trees are saved on redis
// tree stores.
const redisKeyPrefix = "dtree"

type growCmdConfig struct {
	*rootCmdConfig
	dataInput      string
	labelsInput    string
	label          string
	output         string
	paramsInput    string
	maxDepth       int
	minSampleSplit int
	storeURL       string
	treeName       string
	cpuProfile     bool
	ctx            context.Context
	cancelFunc     context.CancelFunc
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a tree from a set of labeled data to predict the class of new samples.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if config.cpuProfile {
				defer profile.Start(profile.CPUProfile).Stop()
			}
			params, err := config.params()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			trainingSet, err := config.trainingSet()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Growing tree from a set with %d samples and %d features...", trainingSet.NRow, trainingSet.NCol)
			t, err := dtree.GrowWithParams(config.Context(), trainingSet, params)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
			config.Logf("%v", t)
			err = config.outputTree(t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", "path to an input CSV (.csv), SQLite3 (.db) or numpy (.npy) file, or a PostgreSQL or MongoDB connection URL with the samples to grow the tree from (defaults to STDIN, interpreted as CSV)")
	cmd.PersistentFlags().StringVar(&(config.labelsInput), "labels", "", "path to a numpy (.npy) file with the class labels, required when the input is a numpy file")
	cmd.PersistentFlags().StringVarP(&(config.label), "label", "l", "", "name of the column with the class labels (defaults to the last column)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the grown tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.paramsInput), "params", "p", "", "path to a YML file with the growing parameters, replacing the max-depth and min-sample-split flags")
	cmd.PersistentFlags().IntVar(&(config.maxDepth), "max-depth", dtree.DefaultParams().MaxDepth, "maximum depth the tree is allowed to reach, 0 grows a single leaf")
	cmd.PersistentFlags().IntVar(&(config.minSampleSplit), "min-sample-split", dtree.DefaultParams().MinSampleSplit, "minimum number of samples a group must have to be split further")
	cmd.PersistentFlags().StringVar(&(config.storeURL), "store", "", "redis URL (redis://[:password@]host:port[/db]) of a tree store to save the grown tree to instead of the output file")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name to save the grown tree under on the tree store (required with store)")
	cmd.PersistentFlags().BoolVar(&(config.cpuProfile), "profile", false, "write a CPU profile of the growing process")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if strings.HasSuffix(gcc.dataInput, ".npy") && gcc.labelsInput == "" {
		return fmt.Errorf("required labels flag was not set for numpy input")
	}
	if gcc.storeURL != "" && gcc.treeName == "" {
		return fmt.Errorf("required name flag was not set for the tree store")
	}
	if gcc.maxDepth < 0 {
		return fmt.Errorf("max-depth flag was set to an invalid value: it cannot be negative")
	}
	if gcc.minSampleSplit < 1 {
		return fmt.Errorf("min-sample-split flag was set to an invalid value: it must be at least 1")
	}
	return nil
}

func (gcc *growCmdConfig) params() (dtree.Params, error) {
	if gcc.paramsInput != "" {
		gcc.Logf("Reading growing parameters from %s...", gcc.paramsInput)
		return dtree.ReadParamsFromFile(gcc.paramsInput)
	}
	return dtree.Params{MaxDepth: gcc.maxDepth, MinSampleSplit: gcc.minSampleSplit}, nil
}

func (gcc *growCmdConfig) trainingSet() (*dataset.Dataset, error) {
	if gcc.dataInput == "" {
		gcc.Logf("Reading training set from STDIN...")
		ds, _, err := csv.ReadLabeledFromFilePath("", gcc.label)
		return ds, err
	}
	if strings.HasPrefix(gcc.dataInput, "postgresql://") {
		return gcc.PostgreSQLTrainingSet()
	}
	if strings.HasPrefix(gcc.dataInput, "mongodb://") {
		return gcc.MongoDBTrainingSet()
	}
	if strings.HasSuffix(gcc.dataInput, ".db") {
		return gcc.Sqlite3TrainingSet()
	}
	if strings.HasSuffix(gcc.dataInput, ".npy") {
		gcc.Logf("Reading training set from %s and labels from %s...", gcc.dataInput, gcc.labelsInput)
		return npy.ReadLabeledFromFilePaths(gcc.dataInput, gcc.labelsInput)
	}
	gcc.Logf("Opening %s to read training set...", gcc.dataInput)
	ds, _, err := csv.ReadLabeledFromFilePath(gcc.dataInput, gcc.label)
	return ds, err
}

func (gcc *growCmdConfig) Sqlite3TrainingSet() (*dataset.Dataset, error) {
	gcc.Logf("Creating SQLite3 adapter for file %s to read training set...", gcc.dataInput)
	adapter, err := sqlite3adapter.New(gcc.dataInput)
	if err != nil {
		return nil, err
	}
	gcc.Logf("Opening set over SQLite3 adapter for file %s to read training set...", gcc.dataInput)
	set, err := sqldataset.Open(gcc.Context(), adapter)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return labeledDataset(gcc.Context(), set, gcc.label)
}

func (gcc *growCmdConfig) PostgreSQLTrainingSet() (*dataset.Dataset, error) {
	gcc.Logf("Creating PostgreSQL adapter for url %s to read training set...", gcc.dataInput)
	adapter, err := pgadapter.New(gcc.dataInput)
	if err != nil {
		return nil, err
	}
	gcc.Logf("Opening set over PostgreSQL adapter for url %s to read training set...", gcc.dataInput)
	set, err := sqldataset.Open(gcc.Context(), adapter)
	if err != nil {
		return nil, err
	}
	defer set.Close()
	return labeledDataset(gcc.Context(), set, gcc.label)
}

func (gcc *growCmdConfig) MongoDBTrainingSet() (*dataset.Dataset, error) {
	gcc.Logf("Dialing MongoDB at %s to read training set...", gcc.dataInput)
	session, err := mgo.Dial(gcc.dataInput)
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB at %s: %v", gcc.dataInput, err)
	}
	gcc.Logf("Opening set over MongoDB session for url %s to read training set...", gcc.dataInput)
	set, err := mongodataset.Open(gcc.Context(), session)
	if err != nil {
		session.Close()
		return nil, err
	}
	defer set.Close()
	return labeledDataset(gcc.Context(), set, gcc.label)
}

func (gcc *growCmdConfig) outputTree(t *tree.Tree) error {
	if gcc.storeURL != "" {
		return gcc.storeTree(t)
	}
	var f *os.File
	var err error
	if gcc.output == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(gcc.output)
		if err != nil {
			return err
		}
	}
	defer f.Close()
	return json.WriteJSONTree(t, f)
}

func (gcc *growCmdConfig) storeTree(t *tree.Tree) error {
	gcc.Logf("Connecting to tree store at %s...", gcc.storeURL)
	store, err := treeStore(gcc.storeURL)
	if err != nil {
		return err
	}
	defer store.Close(gcc.Context())
	gcc.Logf("Saving tree as %q...", gcc.treeName)
	err = store.Save(gcc.Context(), gcc.treeName, t)
	if err != nil {
		return fmt.Errorf("saving tree %q on the store: %v", gcc.treeName, err)
	}
	return nil
}

func (gcc *growCmdConfig) Context() context.Context {
	gcc.setContextAndCancelFunc()
	return gcc.ctx
}

func (gcc *growCmdConfig) ContextCancelFunc() context.CancelFunc {
	gcc.setContextAndCancelFunc()
	return gcc.cancelFunc
}

func (gcc *growCmdConfig) setContextAndCancelFunc() {
	if gcc.ctx == nil {
		gcc.ctx, gcc.cancelFunc = context.WithCancel(context.Background())
	}
}

// datasetReader is the part of a stored dataset needed to load it in
// memory with its column names.
type datasetReader interface {
	Columns() []string
	Read(context.Context) (*dataset.Dataset, error)
}

func labeledDataset(ctx context.Context, set datasetReader, label string) (*dataset.Dataset, error) {
	ds, err := set.Read(ctx)
	if err != nil {
		return nil, err
	}
	ds, _, err = dataset.SplitLabel(ds, set.Columns(), label)
	return ds, err
}

func treeStore(rawurl string) (tree.Store, error) {
	rc, err := redisClient(rawurl)
	if err != nil {
		return nil, err
	}
	return redisstore.New(rc, redisKeyPrefix, json.Codec{}), nil
}

func redisClient(rawurl string) (*redis.Client, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL %s: %v", rawurl, err)
	}
	if u.Scheme != "redis" {
		return nil, fmt.Errorf("unsupported scheme %q in redis URL %s", u.Scheme, rawurl)
	}
	options := &redis.Options{Addr: u.Host}
	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			options.Password = password
		}
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		options.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("parsing db number in redis URL %s: %v", rawurl, err)
		}
	}
	return redis.NewClient(options), nil
}
