package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/go-pkgz/lgr"

	"taskboard/pkg/client"
	"taskboard/pkg/task"
)

var theme *material.Theme

var (
	colorMuted   = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	colorDanger  = color.NRGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF}
	colorError   = color.NRGBA{R: 0xFF, G: 0x60, B: 0x60, A: 0xFF}
	colorPending = color.NRGBA{R: 0xFF, G: 0xA0, B: 0x00, A: 0xFF}
	colorWorking = color.NRGBA{R: 0x00, G: 0xA0, B: 0xFF, A: 0xFF}
	colorDone    = color.NRGBA{R: 0x00, G: 0xC0, B: 0x00, A: 0xFF}
)

type UI struct {
	store *client.Store
	win   *app.Window

	page int

	// Toolbar
	searchEditor widget.Editor
	newBtn       widget.Clickable
	prevBtn      widget.Clickable
	nextBtn      widget.Clickable

	// List
	taskList  widget.List
	viewBtn   []widget.Clickable
	editBtn   []widget.Clickable
	deleteBtn []widget.Clickable

	// Create/edit form
	formOpen    bool
	editingID   string
	titleEditor widget.Editor
	descEditor  widget.Editor
	statusEnum  widget.Enum
	saveBtn     widget.Clickable
	cancelBtn   widget.Clickable
	formErrs    client.FormErrors

	// Details
	detailsOpen bool
	closeBtn    widget.Clickable

	// Delete confirmation
	confirmDel client.DeleteConfirm
	confirmBtn widget.Clickable
	keepBtn    widget.Clickable
}

func main() {
	base := flag.String("api", envOrDefault("TASKS_API_BASE", client.DefaultBaseURL), "base URL of the /tasks API")
	flag.Parse()
	lgr.Setup(lgr.Msec, lgr.LevelBraces)

	theme = material.NewTheme()
	theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	theme.Palette.Bg = color.NRGBA{R: 0x12, G: 0x12, B: 0x12, A: 0xFF}
	theme.Palette.Fg = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	theme.Palette.ContrastBg = color.NRGBA{R: 0x30, G: 0x60, B: 0xA0, A: 0xFF}
	theme.Palette.ContrastFg = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}

	ui := &UI{
		store: client.NewStore(client.New(*base, nil)),
		win:   new(app.Window),
		page:  1,
	}
	ui.taskList.Axis = layout.Vertical
	ui.searchEditor.SingleLine = true
	ui.titleEditor.SingleLine = true
	ui.store.Subscribe(func(client.State) { ui.win.Invalidate() })

	go ui.fetchPage(ui.page)

	go func() {
		ui.win.Option(app.Title("Task Manager"))
		ui.win.Option(app.Size(unit.Dp(1000), unit.Dp(760)))
		if err := ui.run(ui.win); err != nil {
			lgr.Fatalf("[ERROR] %v", err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func (ui *UI) run(w *app.Window) error {
	var ops op.Ops
	for {
		switch e := w.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			st := ui.store.State()
			visible := client.FilterByTitle(st.Tasks(), ui.searchEditor.Text())
			ui.handleClicks(gtx, visible)
			ui.layout(gtx, st, visible)
			e.Frame(gtx.Ops)
		}
	}
}

func (ui *UI) handleClicks(gtx layout.Context, visible []task.Task) {
	if ui.newBtn.Clicked(gtx) {
		ui.openForm(nil)
	}
	if ui.prevBtn.Clicked(gtx) && ui.page > 1 {
		ui.page = client.PrevPage(ui.page)
		go ui.fetchPage(ui.page)
	}
	if ui.nextBtn.Clicked(gtx) && client.HasNextPage(len(visible), client.PageSize) {
		ui.page++
		go ui.fetchPage(ui.page)
	}

	for i := range visible {
		if i >= len(ui.viewBtn) {
			break
		}
		t := visible[i]
		if ui.viewBtn[i].Clicked(gtx) {
			ui.detailsOpen = true
			go ui.fetchDetails(t.ID)
		}
		if ui.editBtn[i].Clicked(gtx) {
			ui.openForm(&t)
		}
		if ui.deleteBtn[i].Clicked(gtx) {
			ui.confirmDel.Request(t)
		}
	}

	if ui.cancelBtn.Clicked(gtx) {
		ui.formOpen = false
	}
	if ui.saveBtn.Clicked(gtx) {
		ui.submitForm()
	}
	if ui.closeBtn.Clicked(gtx) {
		ui.detailsOpen = false
	}
	if ui.keepBtn.Clicked(gtx) {
		ui.confirmDel.Cancel()
	}
	if ui.confirmBtn.Clicked(gtx) {
		if id, ok := ui.confirmDel.Confirm(); ok {
			go ui.deleteTask(id, ui.page)
		}
	}
}

func (ui *UI) openForm(t *task.Task) {
	form := client.Form{Status: task.StatusPending}
	ui.editingID = ""
	if t != nil {
		form = client.FormFromTask(*t)
		ui.editingID = t.ID
	}
	ui.titleEditor.SetText(form.Title)
	ui.descEditor.SetText(form.Description)
	ui.statusEnum.Value = string(form.Status)
	ui.formErrs = nil
	ui.formOpen = true
}

func (ui *UI) submitForm() {
	form := client.Form{
		Title:       ui.titleEditor.Text(),
		Description: ui.descEditor.Text(),
		Status:      task.Status(ui.statusEnum.Value),
	}
	if errs := form.Validate(); len(errs) > 0 {
		ui.formErrs = errs
		return
	}
	ui.formOpen = false
	if ui.editingID == "" {
		go ui.createTask(form.Fields(), ui.page)
	} else {
		go ui.updateTask(ui.editingID, form.Patch(), ui.page)
	}
}

func (ui *UI) layout(gtx layout.Context, st client.State, visible []task.Task) layout.Dimensions {
	for len(ui.viewBtn) < len(visible) {
		ui.viewBtn = append(ui.viewBtn, widget.Clickable{})
		ui.editBtn = append(ui.editBtn, widget.Clickable{})
		ui.deleteBtn = append(ui.deleteBtn, widget.Clickable{})
	}

	return layout.Inset{Top: unit.Dp(16), Right: unit.Dp(16), Bottom: unit.Dp(16), Left: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return ui.layoutTasks(gtx, st, visible)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				switch {
				case ui.confirmDel.Pending():
					return ui.layoutSide(gtx, ui.layoutConfirmDelete)
				case ui.formOpen:
					return ui.layoutSide(gtx, ui.layoutForm)
				case ui.detailsOpen:
					return ui.layoutSide(gtx, func(gtx layout.Context) layout.Dimensions {
						return ui.layoutDetails(gtx, st)
					})
				}
				return layout.Dimensions{}
			}),
		)
	})
}

func (ui *UI) layoutTasks(gtx layout.Context, st client.State, visible []task.Task) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
				layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
					return material.H5(theme, "Task Manager").Layout(gtx)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return material.Button(theme, &ui.newBtn, "Create Task").Layout(gtx)
				}),
			)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Editor(theme, &ui.searchEditor, "Search tasks by title...").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			switch {
			case st.Error != "":
				label := material.Body2(theme, st.Error)
				label.Color = colorError
				return label.Layout(gtx)
			case st.Loading:
				label := material.Body2(theme, "Loading...")
				label.Color = colorMuted
				return label.Layout(gtx)
			}
			return layout.Dimensions{}
		}),
		layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			if len(visible) == 0 && !st.Loading {
				label := material.Body1(theme, "No tasks found")
				label.Color = colorMuted
				return label.Layout(gtx)
			}
			return material.List(theme, &ui.taskList).Layout(gtx, len(visible), func(gtx layout.Context, i int) layout.Dimensions {
				return ui.layoutRow(gtx, i, visible[i])
			})
		}),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return ui.layoutPager(gtx, len(visible))
		}),
	)
}

func (ui *UI) layoutRow(gtx layout.Context, i int, t task.Task) layout.Dimensions {
	return layout.Inset{Bottom: unit.Dp(6)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := material.Body2(theme, t.Title)
						label.Font.Weight = font.Bold
						return label.Layout(gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						label := material.Caption(theme, fmt.Sprintf("[%s] %s", t.Status, shortID(t.ID)))
						label.Color = statusColor(t.Status)
						return label.Layout(gtx)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Button(theme, &ui.viewBtn[i], "View").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Button(theme, &ui.editBtn[i], "Edit").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				btn := material.Button(theme, &ui.deleteBtn[i], "Delete")
				btn.Background = colorDanger
				return btn.Layout(gtx)
			}),
		)
	})
}

func (ui *UI) layoutPager(gtx layout.Context, shown int) layout.Dimensions {
	return layout.Inset{Top: unit.Dp(8)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if ui.page <= 1 {
					gtx = gtx.Disabled()
				}
				return material.Button(theme, &ui.prevBtn, "Previous").Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return material.Body1(theme, fmt.Sprintf("Page %d", ui.page)).Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				if !client.HasNextPage(shown, client.PageSize) {
					gtx = gtx.Disabled()
				}
				return material.Button(theme, &ui.nextBtn, "Next").Layout(gtx)
			}),
		)
	})
}

func (ui *UI) layoutSide(gtx layout.Context, w layout.Widget) layout.Dimensions {
	return layout.Inset{Left: unit.Dp(16)}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Min.X = gtx.Dp(unit.Dp(340))
		gtx.Constraints.Max.X = gtx.Dp(unit.Dp(340))
		return w(gtx)
	})
}

func (ui *UI) layoutForm(gtx layout.Context) layout.Dimensions {
	heading := "Create Task"
	if ui.editingID != "" {
		heading = "Edit Task"
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.H6(theme, heading).Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Editor(theme, &ui.titleEditor, "Title").Layout(gtx)
		}),
		layout.Rigid(ui.fieldError("title")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Editor(theme, &ui.descEditor, "Description").Layout(gtx)
		}),
		layout.Rigid(ui.fieldError("description")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			children := make([]layout.FlexChild, 0, len(task.Statuses))
			for _, s := range task.Statuses {
				children = append(children, layout.Rigid(
					material.RadioButton(theme, &ui.statusEnum, string(s), string(s)).Layout,
				))
			}
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
		}),
		layout.Rigid(ui.fieldError("status")),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return material.Button(theme, &ui.saveBtn, "Save").Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					btn := material.Button(theme, &ui.cancelBtn, "Cancel")
					btn.Background = colorMuted
					return btn.Layout(gtx)
				}),
			)
		}),
	)
}

func (ui *UI) layoutConfirmDelete(gtx layout.Context) layout.Dimensions {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.H6(theme, "Delete Task").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Body2(theme, ui.confirmDel.Prompt()).Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					btn := material.Button(theme, &ui.confirmBtn, "Delete")
					btn.Background = colorDanger
					return btn.Layout(gtx)
				}),
				layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					btn := material.Button(theme, &ui.keepBtn, "Cancel")
					btn.Background = colorMuted
					return btn.Layout(gtx)
				}),
			)
		}),
	)
}

func (ui *UI) fieldError(field string) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		msg := ui.formErrs[field]
		if msg == "" {
			return layout.Dimensions{}
		}
		label := material.Caption(theme, msg)
		label.Color = colorError
		return label.Layout(gtx)
	}
}

func (ui *UI) layoutDetails(gtx layout.Context, st client.State) layout.Dimensions {
	t := st.Task
	line := func(s string) layout.FlexChild {
		return layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Body2(theme, s).Layout(gtx)
		})
	}

	children := []layout.FlexChild{
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.H6(theme, "Task Details").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
	}
	if t == nil {
		children = append(children, line("Loading..."))
	} else {
		desc := "(no description)"
		if t.Description != nil {
			desc = *t.Description
		}
		children = append(children,
			line("Title: "+t.Title),
			line("Description: "+desc),
			line("Status: "+string(t.Status)),
			line("Created: "+t.CreatedAt.Local().Format(time.DateTime)),
			line("Updated: "+t.UpdatedAt.Local().Format(time.DateTime)),
		)
	}
	children = append(children,
		layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			return material.Button(theme, &ui.closeBtn, "Close").Layout(gtx)
		}),
	)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func statusColor(s task.Status) color.NRGBA {
	switch s {
	case task.StatusPending:
		return colorPending
	case task.StatusInProgress:
		return colorWorking
	case task.StatusCompleted:
		return colorDone
	}
	return colorMuted
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

// Data fetching. Every call runs on its own goroutine; the store
// invalidates the window when state changes.

func opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), client.DefaultTimeout)
}

func (ui *UI) fetchPage(page int) {
	ctx, cancel := opContext()
	defer cancel()
	if err := ui.store.FetchTasks(ctx, page, client.PageSize); err != nil {
		lgr.Printf("[WARN] fetch tasks: %v", err)
	}
}

func (ui *UI) fetchDetails(id string) {
	ctx, cancel := opContext()
	defer cancel()
	if _, err := ui.store.FetchTaskByID(ctx, id); err != nil {
		lgr.Printf("[WARN] fetch task %s: %v", id, err)
	}
}

func (ui *UI) createTask(f task.Fields, page int) {
	ctx, cancel := opContext()
	defer cancel()
	if _, err := ui.store.CreateTask(ctx, f); err != nil {
		lgr.Printf("[WARN] create task: %v", err)
		return
	}
	ui.fetchPage(page)
}

func (ui *UI) updateTask(id string, p task.Patch, page int) {
	ctx, cancel := opContext()
	defer cancel()
	if _, err := ui.store.UpdateTask(ctx, id, p); err != nil {
		lgr.Printf("[WARN] update task %s: %v", id, err)
		return
	}
	ui.fetchPage(page)
}

func (ui *UI) deleteTask(id string, page int) {
	ctx, cancel := opContext()
	defer cancel()
	if err := ui.store.DeleteTask(ctx, id); err != nil {
		lgr.Printf("[WARN] delete task %s: %v", id, err)
		return
	}
	ui.fetchPage(page)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
