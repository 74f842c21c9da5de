package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ariaghora/libdtree/tree"
	"github.com/ariaghora/libdtree/tree/dot"
	"github.com/spf13/cobra"
)

type renderCmdConfig struct {
	*rootCmdConfig
	treeInput  string
	output     string
	storeURL   string
	treeName   string
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func renderCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &renderCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a tree with graphviz",
		Long:  `Render a grown tree as an image or DOT document`,
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
			err = config.render(t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree will be read and parsed as JSON (required unless store is set)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a PNG (.png), SVG (.svg), JPG (.jpg) or DOT (.dot) file to render the tree to (defaults to STDOUT in DOT)")
	cmd.PersistentFlags().StringVar(&(config.storeURL), "store", "", "redis URL of a tree store to load the tree from instead of the tree file")
	cmd.PersistentFlags().StringVar(&(config.treeName), "name", "", "name the tree is saved under on the tree store (required with store)")
	return cmd
}

func (rcc *renderCmdConfig) Validate() error {
	if rcc.treeInput == "" && rcc.storeURL == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	if rcc.storeURL != "" && rcc.treeName == "" {
		return fmt.Errorf("required name flag was not set for the tree store")
	}
	return nil
}

func (rcc *renderCmdConfig) render(t *tree.Tree) error {
	if rcc.output == "" {
		rcc.Logf("Rendering tree as DOT to STDOUT...")
		return dot.Render(t, dot.Formats["dot"], os.Stdout)
	}
	rcc.Logf("Rendering tree to %s...", rcc.output)
	return dot.RenderFile(t, rcc.output)
}

func (rcc *renderCmdConfig) Context() context.Context {
	rcc.setContextAndCancelFunc()
	return rcc.ctx
}

func (rcc *renderCmdConfig) ContextCancelFunc() context.CancelFunc {
	rcc.setContextAndCancelFunc()
	return rcc.cancelFunc
}

func (rcc *renderCmdConfig) setContextAndCancelFunc() {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = context.WithCancel(context.Background())
	}
}
