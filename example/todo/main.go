// Command todo is a small console walk-through of domref: it instantiates
// list rows from a registered template, wires their buttons to a handler
// and drives them with synthetic events.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/a-h/templ"

	"github.com/pthm/domref"
	"github.com/pthm/domref/lib/dom"
)

const page = `<html><body>
<template id="row">
	<li ref="row"><span ref="label"></span><button ref="done" on="click:complete">done</button></li>
</template>
<section id="app"></section>
</body></html>`

func header(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<header ref="header"><h1 ref="title">`+templ.EscapeString(title)+`</h1><ul ref="list"></ul><button ref="clear" on="click:clearDone">clear</button></header>`)
		return err
	})
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	doc, err := dom.ParseString(page)
	if err != nil {
		logger.Error("parse page", "error", err)
		os.Exit(1)
	}

	reg := domref.NewRegistry(doc, domref.WithLogger(logger))
	reg.MustRegister("row", domref.Parse("#row"))

	app := &App{reg: reg}
	if _, err := reg.Bind(domref.Component(context.Background(), header("Todo")), app, domref.AssignSelf); err != nil {
		logger.Error("bind header", "error", err)
		os.Exit(1)
	}

	for _, title := range []string{"write code", "write tests", "ship"} {
		if err := app.Add(title); err != nil {
			logger.Error("add item", "error", err)
			os.Exit(1)
		}
	}

	// Complete the second item, then clear completed items.
	if err := domref.Fire(app.items[1].Get("done"), "click"); err != nil {
		logger.Error("complete", "error", err)
	}
	if err := domref.Fire(app.Get("clear"), "click"); err != nil {
		logger.Error("clear", "error", err)
	}

	fmt.Println(app.Get("header").OuterHTML())
}
