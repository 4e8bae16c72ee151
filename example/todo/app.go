package main

import (
	"github.com/pthm/domref"
	"github.com/pthm/domref/lib/dom"
)

// App owns the list header; its references are assigned to the embedded
// Refs.
//
//domref:handler
type App struct {
	domref.Refs

	reg   *domref.Registry
	items []*Item
}

// Add instantiates a row for title and appends it to the list.
func (a *App) Add(title string) error {
	root, err := a.reg.Clone("row")
	if err != nil {
		return err
	}
	item := &Item{}
	if _, err := a.reg.Bind(domref.Element(root), item, domref.AssignSelf); err != nil {
		return err
	}
	item.Get("label").AppendChild(dom.NewText(title))
	a.items = append(a.items, item)
	a.Get("list").AppendChild(root)
	return nil
}

func (a *App) clearDone() {
	kept := a.items[:0]
	for _, item := range a.items {
		if item.done {
			a.Get("list").RemoveChild(item.Get("row"))
			continue
		}
		kept = append(kept, item)
	}
	a.items = kept
}

// Item is one row of the list.
//
//domref:handler
type Item struct {
	domref.Refs

	done bool
}

func (i *Item) complete(ev *dom.Event) {
	i.done = true
	i.Get("row").SetAttribute("class", "done")
	ev.StopPropagation()
}
