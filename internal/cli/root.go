package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"Anchora/internal/calc/anchors"
	"Anchora/internal/logger"
	"Anchora/internal/project"

	"github.com/spf13/cobra"
)

// ErrInvalid is returned after a configuration that does not fit has been
// reported. cmd/anchorcalc maps it to exit status 2.
var ErrInvalid = errors.New("configuration does not fit")

type app struct {
	logLevel string
	noColor  bool
	log      *slog.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{log: slog.Default()}
	root := &cobra.Command{
		Use:   "anchorcalc",
		Short: "Anchor fit and capacity calculator",
		Long: `anchorcalc checks that an anchor fits a concrete block and estimates its
tension and shear capacity. Inputs come from flags, a saved project file
(--file, JSON or YAML), or both; flags override the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = logger.Init(cmd.ErrOrStderr(), a.logLevel, a.noColor)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored log output")

	root.AddCommand(
		newCalcCmd(a),
		newValidateCmd(a),
		newGradeCmd(),
		newClampCmd(a),
		newDefaultsCmd(),
		newInitCmd(a),
	)
	return root
}

type numericFlag struct {
	name, usage string
	field       func(*anchors.Input) *float64
}

var numericFlags = []numericFlag{
	{"concrete-width", "Concrete block width (mm)", func(in *anchors.Input) *float64 { return &in.ConcreteDimensions.Width }},
	{"concrete-height", "Concrete block height (mm)", func(in *anchors.Input) *float64 { return &in.ConcreteDimensions.Height }},
	{"concrete-depth", "Concrete block depth (mm)", func(in *anchors.Input) *float64 { return &in.ConcreteDimensions.Depth }},
	{"thickness", "Slab thickness (mm)", func(in *anchors.Input) *float64 { return &in.ConcreteDimensions.Thickness }},
	{"covering", "Concrete cover (mm)", func(in *anchors.Input) *float64 { return &in.ConcreteProperties.Covering }},
	{"anchor-width", "Anchor width (mm)", func(in *anchors.Input) *float64 { return &in.AnchorDimensions.Width }},
	{"anchor-height", "Anchor height above the surface (mm)", func(in *anchors.Input) *float64 { return &in.AnchorDimensions.Height }},
	{"anchor-depth", "Anchor depth (mm)", func(in *anchors.Input) *float64 { return &in.AnchorDimensions.Depth }},
	{"embed-depth", "Embedment depth h_ef (mm)", func(in *anchors.Input) *float64 { return &in.AnchorDimensions.EmbedDepth }},
}

// inputFlags collects a configuration from --file and the per-field flags.
type inputFlags struct {
	file  string
	json  bool
	flags anchors.Input
}

func addInputFlags(cmd *cobra.Command, o *inputFlags) {
	o.flags = anchors.DefaultInput()
	defaults := anchors.DefaultInput()

	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Project file to start from (.json, .yaml)")
	cmd.Flags().BoolVar(&o.json, "json", false, "Print JSON instead of a table")
	for _, nf := range numericFlags {
		cmd.Flags().Float64Var(nf.field(&o.flags), nf.name, *nf.field(&defaults), nf.usage)
	}
	cmd.Flags().StringVarP((*string)(&o.flags.ConcreteProperties.Quality), "quality", "q",
		string(defaults.ConcreteProperties.Quality), "Concrete grade, e.g. C30/37")
	cmd.Flags().StringVar((*string)(&o.flags.ConcreteProperties.BaseMaterial), "base-material",
		string(defaults.ConcreteProperties.BaseMaterial), "Base material (Cracked, Non-cracked)")
}

func (o *inputFlags) resolve(cmd *cobra.Command, log *slog.Logger) (anchors.Input, error) {
	if o.file == "" {
		return o.flags, nil
	}
	f, err := project.Load(o.file)
	if err != nil {
		return anchors.Input{}, fmt.Errorf("load %s: %w", o.file, err)
	}
	log.Debug("project loaded", "path", o.file, "id", f.ID, "name", f.Name)

	in := f.Input
	for _, nf := range numericFlags {
		if cmd.Flags().Changed(nf.name) {
			*nf.field(&in) = *nf.field(&o.flags)
		}
	}
	if cmd.Flags().Changed("quality") {
		in.ConcreteProperties.Quality = o.flags.ConcreteProperties.Quality
	}
	if cmd.Flags().Changed("base-material") {
		in.ConcreteProperties.BaseMaterial = o.flags.ConcreteProperties.BaseMaterial
	}
	return in, nil
}
