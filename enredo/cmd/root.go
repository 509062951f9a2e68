// Copyright © 2018 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"

	"github.com/jherrero/enredo"
)

// VERSION is the enredo release version.
const VERSION = "0.1.0"

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "enredo",
	Short: "reconstruct syntenic blocks from genomic anchor hits",
	Long: fmt.Sprintf(`enredo - syntenic block reconstruction

A graph-rewriting engine that reads a stream of pairwise genomic anchor
hits, builds a multigraph of anchors and links, and simplifies it down
to a set of multi-species syntenic blocks.

Version: %s

Documents: https://github.com/jherrero/enredo

`, VERSION),
	Run: func(cmd *cobra.Command, args []string) {
		runEnredo(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(); it only needs to happen
// once to RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}

func init() {
	RootCmd.Flags().StringP("output-file", "o", "-", `out file ("-" for stdout, suffix .gz for gzipped output)`)
	RootCmd.Flags().BoolP("verbose", "", false, "print verbose information")

	RootCmd.Flags().IntP("max-gap-length", "", 100000, "max allowed gap between consecutive hits on the same chromosome before the run is split")
	RootCmd.Flags().Float64P("min-score", "", 0.0, "minimum hit score, hits scoring lower are dropped")

	RootCmd.Flags().IntP("min-anchors", "", 3, "minimum anchor-path length for a block to be considered valid")
	RootCmd.Flags().IntP("min-regions", "", 2, "minimum number of tagged regions for a block to be considered valid")
	RootCmd.Flags().IntP("min-length", "", 100000, "minimum length of a block's shortest region")

	RootCmd.Flags().IntP("max-path-dissimilarity", "", 0, "merge-alternative-paths budget D: rounds with budgets 1..D run (none for 0); level 3 adds one round with budget D and level 7 adds rounds with no limit, where a budget of 0 means no limit")
	RootCmd.Flags().IntP("simplify-graph", "", 0, "simplification level to apply, 0-7")
	RootCmd.Flags().Float64P("max-ratio", "", 1, "drop tags shorter than longest/max-ratio per species (1 disables)")
	RootCmd.Flags().IntP("max-insertion-length", "", 1000, "longest region that assimilate-small-insertions will fold into a neighbour")

	RootCmd.Flags().BoolP("all", "", false, "print every link, ignoring the validity thresholds")
	RootCmd.Flags().StringP("debug-anchor", "", "", `anchor id (or "ALL") stored in the config; no pass reads it, so it adds no logging`)
	RootCmd.Flags().StringP("config", "", "", "path to a defaults file whose presence is logged; its contents are not read (default: ~/.enredorc)")
}

// configFilePath resolves the --config flag, falling back to
// ~/.enredorc, matching the teacher's home-dir expansion idiom.
func configFilePath(cmd *cobra.Command) string {
	if p := getFlagString(cmd, "config"); p != "" {
		return p
	}
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return home + string(os.PathSeparator) + ".enredorc"
}

func runEnredo(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		checkError(fmt.Errorf("enredo: an input anchor-hits file is required (use \"-\" for stdin)"))
	}

	if rc := configFilePath(cmd); rc != "" {
		if ok, _ := pathutil.Exists(rc); ok {
			log.Infof("found defaults file %s (not read; settings come from command-line flags)", rc)
		}
	}

	cfg := &enredo.Config{
		MaxGapLength:         getFlagInt(cmd, "max-gap-length"),
		MinScore:             getFlagFloat64(cmd, "min-score"),
		MinAnchors:           getFlagInt(cmd, "min-anchors"),
		MinRegions:           getFlagInt(cmd, "min-regions"),
		MinLength:            getFlagInt(cmd, "min-length"),
		MaxPathDissimilarity: getFlagInt(cmd, "max-path-dissimilarity"),
		SimplificationLevel:  getFlagInt(cmd, "simplify-graph"),
		MaxRatio:             getFlagFloat64(cmd, "max-ratio"),
		MaxInsertionLength:   getFlagInt(cmd, "max-insertion-length"),
		PrintAll:             getFlagBool(cmd, "all"),
		DebugAnchor:          getFlagString(cmd, "debug-anchor"),
	}
	checkError(cfg.Validate())

	checkFiles("", args...)

	graph := enredo.NewGraph()
	for _, file := range args {
		br, r, err := inStream(file)
		checkError(err)
		checkError(enredo.LoadAnchorHits(graph, br, cfg))
		r.Close()
	}
	log.Infof("loaded %d anchors", graph.NumAnchors())

	checkError(graph.RunPipeline(cfg))

	outFile := getFlagString(cmd, "output-file")
	gzipped := outFile != "-" && len(outFile) > 3 && outFile[len(outFile)-3:] == ".gz"
	outfh, gw, w, err := outStream(outFile, gzipped)
	checkError(err)
	defer func() {
		outfh.Flush()
		if gw != nil {
			gw.Close()
		}
		w.Close()
	}()

	_, err = enredo.WriteBlocks(graph, outfh, cfg)
	checkError(err)
}
