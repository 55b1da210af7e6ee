// Command analyze prints board economics for the rule sets in the configs
// directory: what each color group costs to buy and build out, what it
// earns, and how many landings pay it back. Stations and utilities are
// summarized with the rule set's rent tables.
//
//	go run ./cmd/analyze [--dir configs] [rule set ...]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/banco-imobiliario/game/config"
	"github.com/wricardo/banco-imobiliario/game/engine"
)

// averageRoll is the expected total of two dice
const averageRoll = 7

// GroupReport summarizes one color group
type GroupReport struct {
	Group        string
	Titles       int
	Cost         int // buying every deed
	BuildCost    int // four houses and a hotel on every deed
	MonopolyRent int // all deeds, unimproved, group complete
	HotelRent    int // all deeds with a hotel
	Payback      float64
}

// KindReport summarizes stations or utilities
type KindReport struct {
	Titles   int
	Cost     int
	FullRent int // one landing with every title of the kind owned
}

// Report is the analysis of one rule set
type Report struct {
	Rules           string
	StartingBalance int
	PassStartBonus  int
	Groups          []GroupReport
	Stations        KindReport
	Utilities       KindReport
	// Affordable lists groups a player can buy outright with the starting balance.
	Affordable []string
}

func analyze(rules *engine.Rules) (*Report, error) {
	bank, err := engine.NewBank()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Rules:           rules.Name,
		StartingBalance: rules.StartingBalance,
		PassStartBonus:  rules.PassStartBonus,
	}

	for _, group := range bank.Groups() {
		g := GroupReport{Group: group}
		for _, inst := range bank.GroupMembers(group) {
			terms := inst.Terms()
			g.Titles++
			g.Cost += inst.Price()
			g.BuildCost += engine.MaxHouses*terms.HouseCost + terms.HotelCost
			g.MonopolyRent += engine.DeedRent(inst, true)
			g.HotelRent += inst.Rent(engine.HotelLevel)
		}
		if g.HotelRent > 0 {
			g.Payback = float64(g.Cost+g.BuildCost) / float64(g.HotelRent) * float64(g.Titles)
		}
		if g.Cost <= rules.StartingBalance {
			report.Affordable = append(report.Affordable, group)
		}
		report.Groups = append(report.Groups, g)
	}

	var stations, utilities int
	for _, inst := range bank.Instruments() {
		switch inst.Kind() {
		case engine.KindStation:
			stations++
			report.Stations.Titles++
			report.Stations.Cost += inst.Price()
		case engine.KindUtility:
			utilities++
			report.Utilities.Titles++
			report.Utilities.Cost += inst.Price()
		}
	}
	report.Stations.FullRent = engine.StationRent(rules.StationRent, stations)
	report.Utilities.FullRent = engine.UtilityRent(rules.UtilityMultipliers, utilities, averageRoll)

	return report, nil
}

func printReport(w io.Writer, r *Report) {
	fmt.Fprintf(w, "\n=== %s ===\n", r.Rules)
	fmt.Fprintf(w, "Starting balance: %d, pass-start bonus: %d\n\n", r.StartingBalance, r.PassStartBonus)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "group\ttitles\tcost\tbuild\tmonopoly rent\thotel rent\tpayback\t")
	for _, g := range r.Groups {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%.1f\t\n",
			g.Group, g.Titles, g.Cost, g.BuildCost, g.MonopolyRent, g.HotelRent, g.Payback)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nStations: %d titles for %d, %d per landing with all owned\n",
		r.Stations.Titles, r.Stations.Cost, r.Stations.FullRent)
	fmt.Fprintf(w, "Utilities: %d titles for %d, %d per landing on an average roll with all owned\n",
		r.Utilities.Titles, r.Utilities.Cost, r.Utilities.FullRent)

	if len(r.Affordable) == 0 {
		fmt.Fprintf(w, "No color group fits in the starting balance\n")
	} else {
		fmt.Fprintf(w, "Groups affordable from the start: %v\n", r.Affordable)
	}
}

func run(w io.Writer, dir string, names []string) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		infos, err := manager.ListRules()
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.ConfigID)
		}
	}
	if len(names) == 0 {
		names = []string{manager.GetDefault().Name}
	}

	for _, name := range names {
		rules, err := manager.LoadRules(name)
		if err != nil {
			// built-in fallback when the directory is empty
			if def := manager.GetDefault(); def.Name == name {
				rules = def
			} else {
				return fmt.Errorf("load %s: %w", name, err)
			}
		}
		report, err := analyze(rules)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", name, err)
		}
		printReport(w, report)
	}
	return nil
}

func newCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "print board economics for rule sets",
		ArgsUsage: "[rule set ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "configs", Usage: "rule set directory"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(w, cmd.String("dir"), cmd.Args().Slice())
		},
	}
}

func main() {
	if err := newCommand(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}
