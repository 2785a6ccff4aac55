package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urandom/newsroom/config"
	"github.com/urandom/newsroom/content"
)

var (
	listCategory string
	listLimit    int
	listOffset   int
)

const listTitleWidth = 60

func runList(config config.Config, args []string) error {
	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	o := []content.QueryOpt{content.Paging(listLimit, listOffset)}
	if listCategory != "" {
		c, err := content.ParseCategory(listCategory)
		if err != nil {
			return errors.WithMessage(err, "parsing category")
		}

		o = append(o, content.ForCategory(c))
	}

	articles, err := service.ArticleRepo().All(context.Background(), o...)
	if err != nil {
		return errors.WithMessage(err, "getting articles")
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Published", "Category", "Title", "URL"})
	table.SetAutoWrapText(false)

	for _, a := range articles {
		table.Append([]string{
			strconv.FormatInt(int64(a.ID), 10),
			a.PubDate.Format("2006-01-02 15:04"),
			string(a.Category),
			runewidth.Truncate(a.Title, listTitleWidth, "…"),
			a.URL,
		})
	}

	table.Render()

	return nil
}

func init() {
	flags := flag.NewFlagSet("list", flag.ExitOnError)
	flags.StringVar(&listCategory, "category", "", "only list articles of the given category")
	flags.IntVar(&listLimit, "limit", 20, "maximum number of articles")
	flags.IntVar(&listOffset, "offset", 0, "number of articles to skip")

	commands = append(commands, Command{
		Name:  "list",
		Desc:  "prints the latest stored articles",
		Flags: flags,
		Run:   runList,
	})
}
