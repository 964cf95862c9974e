// pmxtool is a CLI utility for inspecting PMX model files.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/AcrylicShrimp/r3d/internal/config"
	"github.com/AcrylicShrimp/r3d/internal/logger"
	"github.com/AcrylicShrimp/r3d/pkg/pmx"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "dump":
		cmdDump(args)
	case "validate", "check":
		cmdValidate(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pmxtool - PMX model file utility

Usage:
  pmxtool <command> [options] <file.pmx>

Commands:
  info <file.pmx>                 Show model information
  dump [-s section] [-n limit] <file.pmx>
                                  Dump section records
  validate [-all] <file.pmx>...   Check cross-section references; -all
                                  reports every dangling reference

Common options:
  -config <path>                  Config file (default: pmxtool.yaml)
  -debug                          Enable debug logging
  -log-file <path>                Also write logs to a rotating file
  -validation <mode>              Reference validation for info/dump:
                                  first (default), all or skip

Examples:
  pmxtool info miku.pmx
  pmxtool dump -s bone -n 50 miku.pmx
  pmxtool validate miku.pmx`)
}

type commonFlags struct {
	configPath *string
	debug      *bool
	logFile    *string
	validation *string
}

func addCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		configPath: fs.String("config", "", "Path to config file"),
		debug:      fs.Bool("debug", false, "Enable debug logging"),
		logFile:    fs.String("log-file", "", "Write logs to a rotating file"),
		validation: fs.String("validation", "", "Reference validation mode: first, all or skip"),
	}
}

// setup layers the command line over the config file and wires the logger.
func setup(cf commonFlags, extra config.Overrides) *config.Config {
	extra.Debug = *cf.debug
	extra.LogFile = *cf.logFile
	extra.Validation = *cf.validation

	cfg, err := config.Load(*cf.configPath, extra)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func validationMode(name string) pmx.ValidationMode {
	switch name {
	case "all":
		return pmx.ValidateAll
	case "skip":
		return pmx.ValidateSkip
	default:
		return pmx.ValidateFirst
	}
}

func loadModel(path string, mode pmx.ValidationMode) *pmx.Document {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("parsing model",
		zap.String("path", path),
		zap.Int("bytes", len(data)))

	doc, err := pmx.ParseWithOptions(data, pmx.Options{Validation: mode})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("parsed model", zap.Stringer("summary", doc))
	return doc
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cf := addCommonFlags(fs)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pmxtool info <file.pmx>")
		os.Exit(1)
	}
	cfg := setup(cf, config.Overrides{})
	defer logger.Sync()

	doc := loadModel(fs.Arg(0), validationMode(cfg.Parse.Validation))

	fmt.Printf("Model:    %s\n", doc.Header.NameLocal)
	if doc.Header.NameUniversal != "" {
		fmt.Printf("          %s\n", doc.Header.NameUniversal)
	}
	fmt.Printf("Version:  %.1f\n", doc.Header.Version)
	fmt.Printf("Encoding: %s\n", doc.Header.Encoding)
	if doc.Header.AdditionalUVs > 0 {
		fmt.Printf("Add. UVs: %d\n", doc.Header.AdditionalUVs)
	}
	fmt.Printf("Widths:   vertex=%d texture=%d material=%d bone=%d morph=%d rigidbody=%d\n",
		doc.Header.VertexIndexWidth, doc.Header.TextureIndexWidth,
		doc.Header.MaterialIndexWidth, doc.Header.BoneIndexWidth,
		doc.Header.MorphIndexWidth, doc.Header.RigidBodyIndexWidth)
	fmt.Println()
	fmt.Printf("Vertices:       %d\n", len(doc.Vertices))
	fmt.Printf("Surfaces:       %d\n", len(doc.Surfaces))
	fmt.Printf("Textures:       %d\n", len(doc.Textures))
	fmt.Printf("Materials:      %d\n", len(doc.Materials))
	fmt.Printf("Bones:          %d\n", len(doc.Bones))
	fmt.Printf("Morphs:         %d\n", len(doc.Morphs))
	fmt.Printf("Display frames: %d\n", len(doc.DisplayFrames))
	fmt.Printf("Rigid bodies:   %d\n", len(doc.RigidBodies))
	fmt.Printf("Joints:         %d\n", len(doc.Joints))
	if len(doc.SoftBodies) > 0 {
		fmt.Printf("Soft bodies:    %d\n", len(doc.SoftBodies))
	}

	if doc.HasPhysics() {
		fmt.Println("\nPhysics: yes")
	}
	if comment := strings.TrimSpace(doc.Header.CommentLocal); comment != "" {
		fmt.Println()
		fmt.Println(firstLine(comment))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[:i], "\r")
	}
	return s
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	cf := addCommonFlags(fs)
	section := fs.String("s", "", "Section to dump (texture, material, bone, morph, display, rigidbody, joint, softbody)")
	limit := fs.Int("n", 0, "Limit records per section (0 = config default)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pmxtool dump [-s section] [-n limit] <file.pmx>")
		os.Exit(1)
	}
	cfg := setup(cf, config.Overrides{Limit: *limit})
	defer logger.Sync()

	doc := loadModel(fs.Arg(0), validationMode(cfg.Parse.Validation))

	want := cfg.Dump.Section
	if *section != "" {
		want = *section
	}

	dumped := false
	dump := func(name string, count int, print func(max int)) {
		if want != "" && want != name {
			return
		}
		if dumped {
			fmt.Println()
		}
		dumped = true
		fmt.Printf("%s (%d)\n", name, count)
		max := count
		if cfg.Dump.Limit > 0 && cfg.Dump.Limit < max {
			max = cfg.Dump.Limit
		}
		print(max)
		if max < count {
			fmt.Printf("  ... %d more (use -n 0 for all)\n", count-max)
		}
	}

	dump("texture", len(doc.Textures), func(max int) {
		for i := 0; i < max; i++ {
			fmt.Printf("  [%d] %s\n", i, doc.Textures[i].Path)
		}
	})
	dump("material", len(doc.Materials), func(max int) {
		for i := 0; i < max; i++ {
			m := &doc.Materials[i]
			start, end := doc.MaterialSurfaceSpan(i)
			fmt.Printf("  [%d] %-24s surfaces %d..%d texture=%d\n",
				i, m.NameLocal, start, end, m.TextureIndex)
		}
	})
	dump("bone", len(doc.Bones), func(max int) {
		for i := 0; i < max; i++ {
			b := &doc.Bones[i]
			fmt.Printf("  [%d] %-24s parent=%d %s\n", i, b.NameLocal, b.Parent, boneTraits(b))
		}
	})
	dump("morph", len(doc.Morphs), func(max int) {
		for i := 0; i < max; i++ {
			m := &doc.Morphs[i]
			fmt.Printf("  [%d] %-24s kind=%s offsets=%d\n", i, m.NameLocal, m.Kind, len(m.Offsets))
		}
	})
	dump("display", len(doc.DisplayFrames), func(max int) {
		for i := 0; i < max; i++ {
			f := &doc.DisplayFrames[i]
			special := ""
			if f.Special {
				special = " special"
			}
			fmt.Printf("  [%d] %-24s items=%d%s\n", i, f.NameLocal, len(f.Items), special)
		}
	})
	dump("rigidbody", len(doc.RigidBodies), func(max int) {
		for i := 0; i < max; i++ {
			b := &doc.RigidBodies[i]
			fmt.Printf("  [%d] %-24s bone=%d shape=%s mass=%g\n",
				i, b.NameLocal, b.Bone, b.Shape.Kind, b.Mass)
		}
	})
	dump("joint", len(doc.Joints), func(max int) {
		for i := 0; i < max; i++ {
			j := &doc.Joints[i]
			fmt.Printf("  [%d] %-24s kind=%s bodies=%d,%d\n",
				i, j.NameLocal, j.Kind, j.RigidBodies[0], j.RigidBodies[1])
		}
	})
	dump("softbody", len(doc.SoftBodies), func(max int) {
		for i := 0; i < max; i++ {
			sb := &doc.SoftBodies[i]
			fmt.Printf("  [%d] %-24s material=%d anchors=%d pins=%d\n",
				i, sb.NameLocal, sb.Material, len(sb.Anchors), len(sb.PinVertices))
		}
	})

	if !dumped {
		fmt.Fprintf(os.Stderr, "Unknown section: %s\n", want)
		os.Exit(1)
	}
}

func boneTraits(b *pmx.Bone) string {
	var traits []string
	if b.Flags.Has(pmx.BoneRotatable) {
		traits = append(traits, "rot")
	}
	if b.Flags.Has(pmx.BoneTranslatable) {
		traits = append(traits, "move")
	}
	if b.IK != nil {
		traits = append(traits, fmt.Sprintf("ik(target=%d links=%d)", b.IK.Target, len(b.IK.Links)))
	}
	if b.Inherit != nil {
		traits = append(traits, fmt.Sprintf("inherit(%d)", b.Inherit.Bone))
	}
	if b.Flags.Has(pmx.BonePhysicsAfterDeform) {
		traits = append(traits, "physics")
	}
	return strings.Join(traits, ",")
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	cf := addCommonFlags(fs)
	all := fs.Bool("all", false, "Report every dangling reference instead of stopping at the first")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pmxtool validate [-all] <file.pmx>...")
		os.Exit(1)
	}
	setup(cf, config.Overrides{})
	defer logger.Sync()

	mode := pmx.ValidateFirst
	if *all {
		mode = pmx.ValidateAll
	}

	problems := 0
	for _, path := range fs.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			problems++
			continue
		}

		doc, err := pmx.ParseWithOptions(data, pmx.Options{Validation: mode})
		if err != nil {
			violations := []error{err}
			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				violations = joined.Unwrap()
			}
			for _, v := range violations {
				fmt.Printf("%s: INVALID: %v\n", path, v)
			}
			problems += len(violations)
			continue
		}

		fmt.Printf("%s: OK: %s\n", path, doc)
	}

	if problems > 0 {
		fmt.Printf("\n%d problem(s) found\n", problems)
		os.Exit(1)
	}
}
