package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sigmaport/prodmon-ui/internal/bootstrap"
	"github.com/sigmaport/prodmon-ui/internal/domain/model"
	"github.com/sigmaport/prodmon-ui/internal/service"
)

func runUnits(cc *commandContext, args []string) error {
	fs := flag.NewFlagSet("units", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withSession(cc, func(c *bootstrap.SessionContainer) error {
		if _, ok := c.Session.CurrentUser(cc.Ctx); !ok {
			return errNotSignedIn
		}
		units, err := c.Dashboard.Units(cc.Ctx)
		if err != nil {
			return backendError(cc, c, err)
		}
		return printUnits(cc.Stdout, units)
	})
}

func printUnits(out io.Writer, units []service.UnitView) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if err := writeln(w, "ID\tUnit\tGroup\tManage"); err != nil {
		return fmt.Errorf("write units header: %w", err)
	}
	for _, u := range units {
		manage := "no"
		if u.CanManage {
			manage = "yes"
		}
		if err := writef(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Group, manage); err != nil {
			return fmt.Errorf("write unit %d: %w", u.ID, err)
		}
	}
	return w.Flush()
}

type rilisOptions struct {
	Module string
	Year   int
}

func runRilis(cc *commandContext, args []string) error {
	fs := flag.NewFlagSet("rilis", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := rilisOptions{Module: string(model.ModuleProduksi), Year: time.Now().Year()}
	fs.StringVar(&opts.Module, "module", opts.Module, "Module: produksi, penjumboan, pemuatan or packing-plant")
	fs.IntVar(&opts.Year, "year", opts.Year, "Year to report")
	if err := fs.Parse(args); err != nil {
		return err
	}
	module, err := model.ParseModule(opts.Module)
	if err != nil {
		return err
	}

	return withSession(cc, func(c *bootstrap.SessionContainer) error {
		if _, ok := c.Session.CurrentUser(cc.Ctx); !ok {
			return errNotSignedIn
		}
		chart, err := c.Dashboard.Release(cc.Ctx, module, opts.Year)
		if err != nil {
			return backendError(cc, c, err)
		}
		return printReleaseChart(cc.Stdout, chart)
	})
}

func printReleaseChart(out io.Writer, chart *service.ReleaseChart) error {
	if chart == nil {
		return errors.New("no release chart")
	}
	if err := writef(out, "Rilis %s %d\n\n", chart.ModuleLabel, chart.Year); err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	header := []string{"Bulan"}
	for _, s := range chart.Series {
		header = append(header, s.Name)
	}
	header = append(header, "Total", "Target", "Capaian")
	if err := writeln(w, strings.Join(header, "\t")+"\t"); err != nil {
		return fmt.Errorf("write release header: %w", err)
	}

	sums := make([]float64, len(chart.Series))
	for m, label := range chart.Labels {
		row := []string{label}
		for i, s := range chart.Series {
			row = append(row, tons(s.Values[m]))
			sums[i] += s.Values[m]
		}
		row = append(row, tons(chart.Totals[m]), tons(chart.Targets[m]), pct(chart.Achievement[m]))
		if err := writeln(w, strings.Join(row, "\t")+"\t"); err != nil {
			return fmt.Errorf("write release row %s: %w", label, err)
		}
	}

	row := []string{"Total"}
	for _, v := range sums {
		row = append(row, tons(v))
	}
	row = append(row, tons(chart.YearTotal), tons(chart.YearTarget), pct(chart.YearAchievement))
	if err := writeln(w, strings.Join(row, "\t")+"\t"); err != nil {
		return fmt.Errorf("write release totals: %w", err)
	}
	return w.Flush()
}

func tons(v float64) string { return fmt.Sprintf("%.2f", v) }

func pct(v float64) string { return fmt.Sprintf("%.1f%%", v) }
