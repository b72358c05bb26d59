package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"Anchora/internal/calc/anchors"
	"Anchora/internal/project"

	"github.com/spf13/cobra"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printViolations(w io.Writer, v anchors.ValidationResult) {
	fmt.Fprintln(w, "Configuration does not fit:")
	for _, msg := range v.Errors {
		fmt.Fprintf(w, "  - %s\n", msg)
	}
}

func newCalcCmd(a *app) *cobra.Command {
	o := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Validate the fit and compute tension and shear capacity",
		Example: `  anchorcalc calc --quality C30/37 --embed-depth 120
  anchorcalc calc -f pier.yaml --base-material Non-cracked --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := o.resolve(cmd, a.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ev := anchors.Evaluate(in)
			a.log.Debug("evaluated", "valid", ev.Validation.IsValid)

			if o.json {
				if err := printJSON(out, ev); err != nil {
					return err
				}
				if ev.Result == nil {
					return ErrInvalid
				}
				return nil
			}
			if ev.Result == nil {
				printViolations(out, ev.Validation)
				return ErrInvalid
			}

			res := ev.Result
			e := res.EdgeDistances
			s := res.StrengthValues
			edge := "no"
			if res.IsEdgeAnchor {
				edge = "yes"
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Tension capacity:\t%d kN\n", res.TensionCapacity)
			fmt.Fprintf(tw, "Shear capacity:\t%d kN\n", res.ShearCapacity)
			fmt.Fprintf(tw, "Edge anchor:\t%s\n", edge)
			fmt.Fprintf(tw, "Edge distances c1,1 / c1,2:\t%s / %s mm\n", num(e.C1_1), num(e.C1_2))
			fmt.Fprintf(tw, "Edge distances c2,1 / c2,2:\t%s / %s mm\n", num(e.C2_1), num(e.C2_2))
			fmt.Fprintf(tw, "fck / fck,cube:\t%d / %d MPa\n", s.CylindricalStrength, s.CubicStrength)
			fmt.Fprintf(tw, "fctm:\t%.2f MPa\n", s.TensileStrength)
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s\n", anchors.Disclaimer)
			return nil
		},
	}
	addInputFlags(cmd, o)
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	o := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that the anchor fits the concrete block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := o.resolve(cmd, a.log)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			v := anchors.ValidateFit(in.ConcreteDimensions, in.AnchorDimensions)
			if o.json {
				if err := printJSON(out, v); err != nil {
					return err
				}
			} else if v.IsValid {
				fmt.Fprintln(out, "OK: anchor fits")
			} else {
				printViolations(out, v)
			}
			if !v.IsValid {
				return ErrInvalid
			}
			return nil
		},
	}
	addInputFlags(cmd, o)
	return cmd
}

func newGradeCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "grade <designation>",
		Short:   "Show the strength values of a concrete grade",
		Example: "  anchorcalc grade C30/37",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := anchors.ParseGrade(anchors.Grade(args[0]))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, s)
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "Cylinder strength fck:\t%d MPa\n", s.CylindricalStrength)
			fmt.Fprintf(tw, "Cube strength fck,cube:\t%d MPa\n", s.CubicStrength)
			fmt.Fprintf(tw, "Tensile strength fctm:\t%.2f MPa\n", s.TensileStrength)
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newClampCmd(a *app) *cobra.Command {
	o := &inputFlags{}
	cmd := &cobra.Command{
		Use:   "clamp <category> <field> <value>",
		Short: "Apply one field edit the way the editor does",
		Long: `clamp applies a single edit to the configuration given by the other flags
and prints the stored value and any dependent field it forces. Categories
are concrete, anchor and properties.`,
		Example: `  anchorcalc clamp concrete thickness 150 --embed-depth 200
  anchorcalc clamp properties quality C35/45`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := o.resolve(cmd, a.log)
			if err != nil {
				return err
			}
			cat, field, raw := anchors.Category(args[0]), args[1], args[2]
			out := cmd.OutOrStdout()

			if cat == anchors.CategoryProperties && (field == anchors.FieldQuality || field == anchors.FieldBaseMaterial) {
				in.ConcreteProperties, _ = anchors.SetProperty(in.ConcreteProperties, field, raw)
				if o.json {
					return printJSON(out, in)
				}
				fmt.Fprintf(out, "%s.%s = %s\n", cat, field, raw)
				return nil
			}
			if _, ok := anchors.Lookup(cat, field); !ok {
				return fmt.Errorf("unknown field %s.%s", cat, field)
			}

			u, ok := anchors.Clamp(cat, field, raw, in.ConcreteDimensions, in.AnchorDimensions)
			if !ok {
				fmt.Fprintf(out, "%q is not a number; %s.%s unchanged\n", raw, cat, field)
				return nil
			}
			if o.json {
				return printJSON(out, u)
			}
			fmt.Fprintf(out, "%s.%s = %d\n", u.Category, u.Field, u.Value)
			for _, se := range u.SideEffects {
				fmt.Fprintf(out, "%s.%s = %d (adjusted)\n", se.Category, se.Field, se.Value)
			}
			return nil
		},
	}
	addInputFlags(cmd, o)
	return cmd
}

func newDefaultsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the constraint table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, anchors.Constraints())
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tFIELD\tMIN\tMAX\tDEFAULT")
			for _, c := range anchors.Constraints() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\n", c.Category, c.Field, c.Min, c.Max, c.Default)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nSafety margin: %d mm\n", anchors.SafetyMargin)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	o := &inputFlags{}
	var name string
	cmd := &cobra.Command{
		Use:     "init <path>",
		Short:   "Write a new project file from the given flags",
		Example: "  anchorcalc init pier.yaml --quality C30/37 --thickness 250",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := o.resolve(cmd, a.log)
			if err != nil {
				return err
			}
			f, err := project.New(name, anchors.Normalize(in), project.DefaultSettings(), time.Now())
			if err != nil {
				return err
			}
			if err := project.Save(args[0], f); err != nil {
				return err
			}
			a.log.Info("project written", "path", args[0], "id", f.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "%s written (%s)\n", args[0], f.ID)
			return nil
		},
	}
	addInputFlags(cmd, o)
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	return cmd
}
