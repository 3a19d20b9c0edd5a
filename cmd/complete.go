package cmd

import (
	"flag"
	"strings"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors suggest values for flags by name.
var flagPredictors = map[string]complete.Predictor{
	"p":        predict.Set{"day", "week", "month", "quarter", "year"},
	"sort":     predict.Set{"date-desc", "date-asc", "amount-desc", "amount-asc", "name", "priority"},
	"priority": predict.Set{"low", "medium", "high"},
	"theme":    predict.Set{"light", "dark"},
	"storage":  predict.Set{"dir", "sqlite", "memory"},
	"icon":     predict.Files("*"),
	"picture":  predict.Files("*"),
	"photo":    predict.Files("*"),
	"config":   predict.Files("*.toml"),
	"data":     predict.Dirs("*"),
	"o":        predict.Files("*.json"),
}

// Completion describes the commands registered in c for shell completion.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: predictors(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		sub := &complete.Command{Flags: predictors(f)}
		switch cmd.Name() {
		case "topic":
			if topics, err := docs.GetAllTopics(); err == nil {
				sub.Args = predict.Set(topics)
			}
		case "import":
			sub.Args = predict.Files("*.json")
		case "settings":
			sub.Flags["currency"] = currencies()
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func predictors(f *flag.FlagSet) map[string]complete.Predictor {
	m := map[string]complete.Predictor{}
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := flagPredictors[fl.Name]; ok {
			m[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			m[fl.Name] = predict.Nothing
			return
		}
		m[fl.Name] = predict.Something
	})
	return m
}

func currencies() predict.Set {
	var s predict.Set
	for _, c := range tracker.Currencies {
		s = append(s, strings.ToLower(string(c)))
	}
	return s
}
