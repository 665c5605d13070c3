package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/elreasoner/internal/obo"
	"github.com/gitrdm/elreasoner/internal/parallel"
	"github.com/gitrdm/elreasoner/pkg/elreasoner"
)

type classifyOptions struct {
	debugSuperSets bool
	format         string
	workers        int
}

func newClassifyCmd() *cobra.Command {
	opts := &classifyOptions{format: "text"}

	cmd := &cobra.Command{
		Use:   "classify <input.obo>",
		Short: "Parse, saturate, and reduce an OBO-like ontology file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.debugSuperSets, "debug-supersets", false, "also emit the per-concept super-set artifact")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format for emitted artifacts: text or json")
	cmd.Flags().IntVar(&opts.workers, "workers", parallel.DefaultWorkers(), "concurrency bound for taxonomy reduction")

	return cmd
}

func runClassify(inputPath string, opts *classifyOptions) error {
	logger, err := newDriverLogger()
	if err != nil {
		return fmt.Errorf("elreasoner: constructing logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("elreasoner: opening input: %w", err)
	}
	defer f.Close()

	log := logger.With(zap.String("run_id", uuid.NewString()), zap.String("input", inputPath))
	return classify(f, os.Stdout, opts, log)
}

// classify runs the parse -> build -> saturate -> reduce -> emit
// pipeline against an already-open input stream, writing the
// classification artifacts to w and timing diagnostics to log. It is
// the pipeline runClassify drives against a real file and tests drive
// against an in-memory reader.
func classify(input io.Reader, w io.Writer, opts *classifyOptions, log *zap.Logger) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("elreasoner: unsupported --format %q, want text or json", opts.format)
	}

	parseStart := time.Now()
	doc, err := obo.Parse(input)
	if err != nil {
		log.Error("parse failed", zap.Error(err))
		return err
	}
	parseElapsed := time.Since(parseStart)
	log.Info("parsed ontology",
		zap.Int("concepts", doc.Arena.NumConcepts()),
		zap.Int("roles", doc.Arena.NumRoles()),
		zap.Duration("elapsed", parseElapsed),
	)

	buildStart := time.Now()
	store, err := doc.BuildStore()
	if err != nil {
		log.Error("building axiom store failed", zap.Error(err))
		return err
	}
	buildElapsed := time.Since(buildStart)
	log.Info("built axiom store", zap.Duration("elapsed", buildElapsed))

	contexts, stats := elreasoner.Saturate(store, doc.Arena.NumConcepts(), doc.Arena.NumRoles())
	log.Info("saturation complete", zap.Duration("elapsed", stats.SaturationElapsed))

	direct, taxElapsed := elreasoner.BuildTaxonomyWithWorkers(contexts, opts.workers)
	log.Info("taxonomy built", zap.Duration("elapsed", taxElapsed))

	total := parseElapsed + buildElapsed + stats.SaturationElapsed + taxElapsed
	summary := elreasoner.Summarize(stats)

	log.Info("classification stats",
		zap.Int("concepts", summary.Concepts),
		zap.Int("roles", summary.Roles),
		zap.Int("inferred_subsumptions", summary.InferredSubsumptions),
		zap.Duration("parse_time", parseElapsed),
		zap.Duration("build_time", buildElapsed),
		zap.Duration("saturation_time", stats.SaturationElapsed),
		zap.Duration("reduction_time", taxElapsed),
		zap.Duration("total_time", total),
	)

	return emitResult(w, opts, doc.Arena, contexts, direct)
}

func newDriverLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

// classificationResult is the serialized shape of the classification
// artifacts: per-concept super-sets (debug only) and the per-concept
// direct-parent map.
type classificationResult struct {
	DirectParents map[string][]string `json:"direct_parents"`
	SuperSets     map[string][]string `json:"super_sets,omitempty"`
}

func emitResult(w io.Writer, opts *classifyOptions, arena *elreasoner.Arena, contexts []*elreasoner.Context, direct [][]elreasoner.ConceptId) error {
	result := classificationResult{DirectParents: map[string][]string{}}

	for c := 2; c < len(direct); c++ {
		name := arena.ConceptName(elreasoner.ConceptId(c))
		parents := make([]string, 0, len(direct[c]))
		for _, p := range direct[c] {
			parents = append(parents, arena.ConceptName(p))
		}
		result.DirectParents[name] = parents
	}

	if opts.debugSuperSets {
		result.SuperSets = map[string][]string{}
		for _, ctx := range contexts {
			name := arena.ConceptName(ctx.ID())
			members := make([]string, 0, ctx.SuperSetSize())
			for _, m := range ctx.SuperSet() {
				members = append(members, arena.ConceptName(m))
			}
			result.SuperSets[name] = members
		}
	}

	if opts.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for name, parents := range result.DirectParents {
		fmt.Fprintf(w, "%s: %v\n", name, parents)
	}
	if result.SuperSets != nil {
		fmt.Fprintln(w, "--- super-sets ---")
		for name, members := range result.SuperSets {
			fmt.Fprintf(w, "%s: %v\n", name, members)
		}
	}
	return nil
}
