// Command vecmap maps source embeddings into the target embedding space:
// it reads two embedding files and a seed dictionary, runs the iterative
// mapping/induction loop, and writes the mapped embeddings.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gonum.org/v1/gonum/mat"

	"github.com/aitorormazabal/latent-variable-vecmap/backend"
	"github.com/aitorormazabal/latent-variable-vecmap/config"
	"github.com/aitorormazabal/latent-variable-vecmap/dictionary"
	"github.com/aitorormazabal/latent-variable-vecmap/embedding"
	"github.com/aitorormazabal/latent-variable-vecmap/similarity"
	"github.com/aitorormazabal/latent-variable-vecmap/train"
)

func main() {
	_ = godotenv.Load()

	cfg, err := parseArgs()
	if err != nil {
		log.Fatalf("vecmap: %v", err)
	}
	if err = cfg.Validate(); err != nil {
		log.Fatalf("vecmap: %v", err)
	}
	if err = run(cfg); err != nil {
		if errors.Is(err, train.ErrNoProgressGuard) {
			fmt.Fprintf(os.Stderr, "WARNING: %v\n", err)
			return
		}
		log.Fatalf("vecmap: %v", err)
	}
}

// parseArgs layers command-line flags over an optional YAML config file.
func parseArgs() (config.Config, error) {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "optional YAML config file")

	def := config.Default()
	cfg := def
	flag.StringVar(&cfg.Encoding, "encoding", def.Encoding, "input/output character encoding")
	flag.StringVar(&cfg.Precision, "precision", def.Precision, "floating-point precision: fp16, fp32, fp64")
	flag.BoolVar(&cfg.Accel, "accel", false, "use the accelerated backend")
	flag.IntVar(&cfg.NumWords, "num-words", 0, "use only the top n most frequent words")
	flag.StringVar(&cfg.Dictionary, "dictionary", "", "training dictionary file (defaults to stdin)")
	flag.StringVar(&cfg.TestDict, "test-dict", "", "test dictionary file")
	normalize := flag.String("normalize", "", "comma-separated normalization actions")
	flag.BoolVar(&cfg.Orthogonal, "orthogonal", false, "use orthogonal constrained mapping")
	flag.BoolVar(&cfg.Unconstrained, "unconstrained", false, "use unconstrained mapping")
	flag.BoolVar(&cfg.SelfLearning, "self-learning", false, "enable self-learning")
	flag.StringVar(&cfg.Direction, "direction", def.Direction, "induction direction: forward, backward, union")
	flag.BoolVar(&cfg.Numerals, "numerals", false, "use numeric strings as the seed dictionary")
	flag.BoolVar(&cfg.Identical, "identical", false, "use identical words as the seed dictionary")
	flag.Float64Var(&cfg.Threshold, "threshold", def.Threshold, "convergence threshold")
	flag.IntVar(&cfg.MaxIterations, "max-iterations", 0, "iteration cap, 0 = unlimited")
	flag.StringVar(&cfg.Validation, "validation", "", "validation dictionary file")
	flag.StringVar(&cfg.LogFile, "log", "", "iteration log file (TSV)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "report each iteration to stderr")
	flag.BoolVar(&cfg.Lapmod, "lapmod", false, "use sparse-assignment induction")
	flag.IntVar(&cfg.LapChunkSize, "lapmod-chunk-size", def.LapChunkSize, "assignment chunk size")
	flag.IntVar(&cfg.LapRepeats, "lap-repeats", def.LapRepeats, "assignment replica count")
	flag.StringVar(&cfg.LapProportion, "lap-prop", def.LapProportion, "assignment proportion: 1:1, 1:2, 2:1")
	flag.IntVar(&cfg.LapRank, "lap-rank", 0, "match only the top n most frequent words")
	flag.IntVar(&cfg.LapCandidates, "lap-candidates", def.LapCandidates, "similar targets kept per row")
	flag.BoolVar(&cfg.Whiten, "whiten", false, "whiten the embeddings")
	flag.Float64Var(&cfg.SrcReweight, "src-reweight", 0, "source re-weighting exponent")
	flag.Float64Var(&cfg.TrgReweight, "trg-reweight", 0, "target re-weighting exponent")
	flag.StringVar(&cfg.SrcDewhiten, "src-dewhiten", "", "de-whiten the source side: src or trg")
	flag.StringVar(&cfg.TrgDewhiten, "trg-dewhiten", "", "de-whiten the target side: src or trg")
	flag.IntVar(&cfg.DimReduction, "dim-reduction", 0, "reduce to the leading n dimensions")
	flag.Parse()

	if cfgPath != "" {
		fileCfg, err := config.Load(cfgPath)
		if err != nil {
			return config.Config{}, err
		}
		// Flags win over the file: re-apply any flag the user set.
		base := fileCfg
		flag.Visit(func(f *flag.Flag) { applyFlag(&base, &cfg, f.Name) })
		cfg = base
	}

	if *normalize != "" {
		cfg.Normalize = strings.Split(*normalize, ",")
	}

	args := flag.Args()
	if len(args) != 4 {
		return config.Config{}, fmt.Errorf("usage: vecmap [flags] src_input trg_input src_output trg_output")
	}
	cfg.SrcInput, cfg.TrgInput, cfg.SrcOutput, cfg.TrgOutput = args[0], args[1], args[2], args[3]

	return cfg, nil
}

// run wires the components and executes the loop.
func run(cfg config.Config) error {
	prec, err := cfg.StoragePrecision()
	if err != nil {
		return err
	}
	bk, err := backend.New(cfg.Device())
	if err != nil {
		return err
	}

	srcWords, x, err := readEmbeddings(cfg.SrcInput, prec)
	if err != nil {
		return err
	}
	trgWords, z, err := readEmbeddings(cfg.TrgInput, prec)
	if err != nil {
		return err
	}

	if cfg.NumWords > 0 {
		srcWords, x = truncate(srcWords, x, cfg.NumWords)
		trgWords, z = truncate(trgWords, z, cfg.NumWords)
	}
	// The source side never exceeds the target side.
	if zr, _ := z.Dims(); len(srcWords) > zr {
		fmt.Fprintf(os.Stderr, "Restricting source embeddings to %d rows.\n", zr)
		srcWords, x = truncate(srcWords, x, zr)
	}

	srcVocab := embedding.NewVocabulary(srcWords)
	trgVocab := embedding.NewVocabulary(trgWords)

	seed, err := buildSeed(cfg, srcVocab, trgVocab)
	if err != nil {
		return err
	}

	opts := train.Options{
		SelfLearning:  cfg.SelfLearning,
		Threshold:     cfg.Threshold,
		MaxIterations: cfg.MaxIterations,
		UseAssignment: cfg.Lapmod,
	}
	if opts.Mapping, err = cfg.MappingOptions(); err != nil {
		return err
	}
	if opts.Direction, err = cfg.TrainDirection(); err != nil {
		return err
	}
	if opts.Assignment, err = cfg.AssignmentOptions(); err != nil {
		return err
	}
	if cfg.Verbose {
		opts.Verbose = os.Stderr
	}
	if cfg.Validation != "" {
		if opts.Validation, err = readGrouped(cfg.Validation, srcVocab, trgVocab); err != nil {
			return err
		}
	}
	if cfg.TestDict != "" {
		if opts.Test, err = readGrouped(cfg.TestDict, srcVocab, trgVocab); err != nil {
			return err
		}
		opts.Report = os.Stdout
		// Persist intermediate embeddings for external inspection each
		// iteration, as test-evaluation runs historically did.
		opts.OnIteration = func(_ int, xw, zw *mat.Dense) error {
			if werr := writeEmbeddings(cfg.SrcOutput, srcWords, xw, prec); werr != nil {
				return werr
			}

			return writeEmbeddings(cfg.TrgOutput, trgWords, zw, prec)
		}
	}
	if cfg.LogFile != "" {
		logFile, ferr := os.Create(cfg.LogFile)
		if ferr != nil {
			return ferr
		}
		defer logFile.Close()
		opts.Log = train.NewIterationLog(logFile)
	}

	actions, err := cfg.Actions()
	if err != nil {
		return err
	}
	if err = embedding.Normalize(actions, x, z); err != nil {
		return err
	}

	eng := similarity.NewEngine(bk)
	res, runErr := train.Run(bk, eng, x, z, seed, opts)
	if runErr != nil && !errors.Is(runErr, train.ErrNoProgressGuard) {
		return runErr
	}

	if res.XW != nil {
		if err = writeEmbeddings(cfg.SrcOutput, srcWords, res.XW, prec); err != nil {
			return err
		}
		if err = writeEmbeddings(cfg.TrgOutput, trgWords, res.ZW, prec); err != nil {
			return err
		}
	}

	return runErr
}

// buildSeed selects the seed dictionary source: numerals, identical
// spellings, a file, or stdin.
func buildSeed(cfg config.Config, srcVocab, trgVocab *embedding.Vocabulary) (dictionary.Dictionary, error) {
	switch {
	case cfg.Numerals:
		if cfg.Dictionary != "" {
			fmt.Fprintln(os.Stderr, "WARNING: using numerals instead of the training dictionary")
		}

		return dictionary.Numerals(srcVocab, trgVocab), nil
	case cfg.Identical:
		seed := dictionary.Identical(srcVocab, trgVocab)
		fmt.Fprintf(os.Stderr, "Using %d identical strings as the seed dictionary.\n", seed.Len())

		return seed, nil
	case cfg.Dictionary != "":
		f, err := os.Open(cfg.Dictionary)
		if err != nil {
			return dictionary.Dictionary{}, err
		}
		defer f.Close()

		return dictionary.Load(f, srcVocab, trgVocab, os.Stderr)
	default:
		return dictionary.Load(os.Stdin, srcVocab, trgVocab, os.Stderr)
	}
}

func readEmbeddings(path string, prec backend.Precision) ([]string, *mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return embedding.Read(f, prec, config.DefaultReadLimit)
}

func writeEmbeddings(path string, words []string, m *mat.Dense, prec backend.Precision) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = embedding.Write(f, words, m, prec); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

func readGrouped(path string, srcVocab, trgVocab *embedding.Vocabulary) (*dictionary.Grouped, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return dictionary.LoadGrouped(f, srcVocab, trgVocab)
}

func truncate(words []string, m *mat.Dense, n int) ([]string, *mat.Dense) {
	if n >= len(words) {
		return words, m
	}
	_, cols := m.Dims()

	return words[:n], m.Slice(0, n, 0, cols).(*mat.Dense)
}

// applyFlag copies one explicitly-set flag value from the parsed flag set
// into the file-loaded config, so flags win over the file.
func applyFlag(dst, src *config.Config, name string) {
	switch name {
	case "encoding":
		dst.Encoding = src.Encoding
	case "precision":
		dst.Precision = src.Precision
	case "accel":
		dst.Accel = src.Accel
	case "num-words":
		dst.NumWords = src.NumWords
	case "dictionary":
		dst.Dictionary = src.Dictionary
	case "test-dict":
		dst.TestDict = src.TestDict
	case "orthogonal":
		dst.Orthogonal = src.Orthogonal
	case "unconstrained":
		dst.Unconstrained = src.Unconstrained
	case "self-learning":
		dst.SelfLearning = src.SelfLearning
	case "direction":
		dst.Direction = src.Direction
	case "numerals":
		dst.Numerals = src.Numerals
	case "identical":
		dst.Identical = src.Identical
	case "threshold":
		dst.Threshold = src.Threshold
	case "max-iterations":
		dst.MaxIterations = src.MaxIterations
	case "validation":
		dst.Validation = src.Validation
	case "log":
		dst.LogFile = src.LogFile
	case "verbose":
		dst.Verbose = src.Verbose
	case "lapmod":
		dst.Lapmod = src.Lapmod
	case "lapmod-chunk-size":
		dst.LapChunkSize = src.LapChunkSize
	case "lap-repeats":
		dst.LapRepeats = src.LapRepeats
	case "lap-prop":
		dst.LapProportion = src.LapProportion
	case "lap-rank":
		dst.LapRank = src.LapRank
	case "lap-candidates":
		dst.LapCandidates = src.LapCandidates
	case "whiten":
		dst.Whiten = src.Whiten
	case "src-reweight":
		dst.SrcReweight = src.SrcReweight
	case "trg-reweight":
		dst.TrgReweight = src.TrgReweight
	case "src-dewhiten":
		dst.SrcDewhiten = src.SrcDewhiten
	case "trg-dewhiten":
		dst.TrgDewhiten = src.TrgDewhiten
	case "dim-reduction":
		dst.DimReduction = src.DimReduction
	}
}
