package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/ariaghora/libdtree/dataset"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput      string
	splitProbability int
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, assigning every sample at random`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ds, columns, err := config.readInput()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			outputSet, splitSet := config.split(ds)
			config.Logf("Dumping output set with %d samples...", outputSet.NRow)
			err = config.writeSet(config.setOutput, outputSet, columns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Dumping split set with %d samples...", splitSet.NRow)
			err = config.writeSet(config.splitOutput, splitSet, columns)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
			config.Logf("Input set with %d samples was split into sets with %d and %d samples", ds.NRow, outputSet.NRow, splitSet.NRow)
		},
	}
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a sample of the set will be assigned to the split set")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a CSV (.csv), SQLite3 (.db) or numpy (.npy) file, or a PostgreSQL or MongoDB connection URL to dump the split set (required)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag was set to an invalid value: it must be set to an integer between 1 and 100")
	}
	return nil
}

func (scc *splitCmdConfig) split(ds *dataset.Dataset) (*dataset.Dataset, *dataset.Dataset) {
	randomizer := rand.New(rand.NewSource(time.Now().UnixNano()))
	var x, splitX []float64
	for i := 0; i < ds.NRow; i++ {
		row := ds.Row(i)
		if (100 * randomizer.Float32()) > float32(scc.splitProbability) {
			x = append(x, row...)
		} else {
			splitX = append(splitX, row...)
		}
	}
	outputSet := &dataset.Dataset{X: x, NRow: len(x) / ds.NCol, NCol: ds.NCol}
	splitSet := &dataset.Dataset{X: splitX, NRow: len(splitX) / ds.NCol, NCol: ds.NCol}
	return outputSet, splitSet
}
