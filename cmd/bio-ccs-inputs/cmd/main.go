package cmd

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/file/s3file"
	"github.com/grailbio/base/vcontext"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/cmdline"
)

func newCmdFlatten() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "flatten",
		Short:    "Expand BAM and FOFN references into a list of BAM files",
		ArgsName: "ref...",
		Long: `
Each ref is either a BAM file or a FOFN (file of file names) listing one ref
per line. FOFNs are expanded recursively, in order. The resolved BAM paths are
printed one per line.`,
	}
	opts := flattenOpts{}
	cmd.Flags.BoolVar(&opts.abs, "abs", false, "Print canonical absolute paths")
	cmd.Flags.BoolVar(&opts.checkExists, "check-exists", false, "Fail if a resolved BAM file does not exist")
	cmd.Flags.StringVar(&opts.out, "o", "", "Output path. Defaults to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return env.UsageErrorf("flatten takes at least one ref")
		}
		ctx := vcontext.Background()
		return withOutput(ctx, opts.out, env.Stdout, func(w io.Writer) error {
			return flatten(ctx, opts, argv, w)
		})
	})
	return cmd
}

func newCmdCheckChemistry() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "check-chemistry",
		Short:    "Check that the resolved BAM files carry the base features their chemistry needs",
		ArgsName: "ref...",
		Long: `
Prints one line per read group: path, read group ID, chemistry, and whether
the IPD and PulseWidth base features are present. Exits with an error if a
read group of a non-exempt chemistry lacks either feature.`,
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return env.UsageErrorf("check-chemistry takes at least one ref")
		}
		return checkChemistry(vcontext.Background(), argv, env.Stdout)
	})
	return cmd
}

func newCmdTranscribe() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "transcribe",
		Short:    "Render a recursion matrix dump as log probabilities",
		ArgsName: "matrix.tsv",
		Long: `
The input has a header line followed by one "col row value logscale" line per
cell. It may be gzip or zstd compressed.`,
	}
	opts := transcribeOpts{}
	cmd.Flags.IntVar(&opts.offset, "offset", 0, "Template position of column 0, passed to the scale undo")
	cmd.Flags.BoolVar(&opts.reversed, "reversed", false, "List columns last to first (backward recursions)")
	cmd.Flags.Float64Var(&opts.counterWeight, "counter-weight", 1, "Per-emission counter weight applied by the recursion")
	cmd.Flags.StringVar(&opts.out, "o", "", "Output path. A .gz suffix gzips the output. Defaults to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) != 1 {
			return env.UsageErrorf("transcribe takes one matrix path, but got %v", argv)
		}
		if opts.counterWeight <= 0 {
			return env.UsageErrorf("-counter-weight must be positive, got %v", opts.counterWeight)
		}
		ctx := vcontext.Background()
		return withOutput(ctx, opts.out, env.Stdout, func(w io.Writer) error {
			return transcribe(ctx, opts, argv[0], w)
		})
	})
	return cmd
}

// withOutput calls fn with a writer for path, or stdout if path is empty.
// Paths ending in .gz are gzip compressed.
func withOutput(ctx context.Context, path string, stdout io.Writer, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(stdout)
	}
	out, err := file.Create(ctx, path)
	if err != nil {
		return err
	}
	defer file.CloseAndReport(ctx, out, &err)
	if !strings.HasSuffix(path, ".gz") {
		return fn(out.Writer(ctx))
	}
	gz := gzip.NewWriter(out.Writer(ctx))
	if err = fn(gz); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

func registerS3() {
	file.RegisterImplementation("s3", func() file.Implementation {
		return s3file.NewImplementation(s3file.NewDefaultProvider(session.Options{}), s3file.Options{})
	})
}

// Run runs the bio-ccs-inputs command.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	registerS3()
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(
		&cmdline.Command{
			Name:     "bio-ccs-inputs",
			Short:    "Tools for preparing and debugging circular consensus inputs",
			LookPath: false,
			Children: []*cmdline.Command{
				newCmdFlatten(),
				newCmdCheckChemistry(),
				newCmdTranscribe(),
			},
		})
}
