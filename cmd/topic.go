package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/tracker/docs"
	"github.com/google/subcommands"
)

type topicCmd struct {
	list bool
}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `mtk topic [-list] [<topic>...]

  Shows documentation topics, the readme by default, all of them with '*'.
`
}

func (c *topicCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "List the available topics.")
}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		topics, err := docs.GetAllTopics()
		if err != nil {
			return fail(err)
		}
		var b strings.Builder
		b.WriteString("# Topics\n\n")
		for _, t := range topics {
			title, err := docs.Title(t)
			if err != nil {
				return fail(err)
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", t, title)
		}
		printMarkdown(b.String(), "auto")
		return subcommands.ExitSuccess
	}

	topics := f.Args()
	if len(topics) == 0 {
		topics = []string{"readme"}
	}
	doc, err := docs.GetTopics(topics...)
	if err != nil {
		return fail(err)
	}
	printMarkdown(doc, "auto")
	return subcommands.ExitSuccess
}
