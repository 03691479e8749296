package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/blockedby/applio/internal/collection"
	"github.com/blockedby/applio/internal/models"
	"github.com/blockedby/applio/internal/store"
)

func registerCommands(ctx context.Context, r *CommandRegistry, a *app) {
	r.Register(&Command{Name: "list", Description: "List applications", Usage: "applio list [-status S] [-search Q] [-offline]"})
	r.Register(&Command{Name: "summary", Description: "Show counts per status", Usage: "applio summary"})
	r.Register(&Command{Name: "show", Description: "Show one application", Usage: "applio show ID"})
	r.Register(&Command{Name: "add-link", Description: "Create an application from a job posting URL", Usage: "applio add-link [-status S] URL"})
	r.Register(&Command{Name: "add", Description: "Create an application from a YAML file", Usage: "applio add -file job.yaml"})
	r.Register(&Command{Name: "status", Description: "Change an application's status", Usage: "applio status ID STATUS"})
	r.Register(&Command{Name: "note", Description: "Add, edit or remove notes", Usage: "applio note add ID TEXT | edit ID NOTE_ID TEXT | rm ID NOTE_ID"})
	r.Register(&Command{Name: "delete", Description: "Delete an application", Usage: "applio delete ID"})
	r.Register(&Command{Name: "cover", Description: "Generate, save or copy the cover letter", Usage: "applio cover generate ID | save ID -file letter.txt | copy ID"})
	r.Register(&Command{Name: "cv", Description: "Generate, edit, save or export the tailored CV", Usage: "applio cv generate ID | save ID [-file cv.json] [-headline H] [-summary S] | export ID [-dir D]"})
	r.Register(&Command{Name: "profile", Description: "Show or edit your profile", Usage: "applio profile show | save [flags] | use-cv FILE"})

	handlers := map[string]func(context.Context, *Command, []string) error{
		"list":     a.listCmd,
		"summary":  a.summaryCmd,
		"show":     a.showCmd,
		"add-link": a.addLinkCmd,
		"add":      a.addCmd,
		"status":   a.statusCmd,
		"note":     a.noteCmd,
		"delete":   a.deleteCmd,
		"cover":    a.coverCmd,
		"cv":       a.cvCmd,
		"profile":  a.profileCmd,
	}
	for name, h := range handlers {
		cmd, h := r.commands[name], h
		cmd.Run = func(args []string) error { return h(ctx, cmd, args) }
	}
}

func (a *app) listCmd(ctx context.Context, cmd *Command, args []string) error {
	fs := cmd.NewFlagSet(a.out)
	statusFilter := fs.String("status", models.StatusAll, "only show this status")
	search := fs.String("search", "", "match title or company")
	offline := fs.Bool("offline", false, "read the last fetched list from the local cache")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var src collection.Source
	if *offline {
		db, err := a.cache()
		if err != nil {
			return err
		}
		records, fetchedAt, err := db.Load()
		if err != nil {
			return err
		}
		src = collection.Source{Records: records}
		if !fetchedAt.IsZero() {
			fmt.Fprintf(a.out, "cached %s\n", fetchedAt.Local().Format("2006-01-02 15:04"))
		}
	} else {
		// the view filters locally, so fetch everything
		if err := a.store.Refresh(ctx, ""); err != nil {
			return err
		}
		snap := a.store.Collection()
		a.saveCache(snap.Records)
		src = collection.FromStore(snap)
	}

	filter := *statusFilter
	if st, ok := models.ParseStatus(filter); ok {
		filter = string(st)
	}
	view := collection.Project(src, *search, filter)
	switch view.Phase {
	case collection.PhaseFailed:
		return view.Err
	case collection.PhaseEmpty:
		fmt.Fprintln(a.out, "No applications found.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCOMPANY\tSTATUS")
	for _, rec := range view.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.ID, rec.DisplayTitle(), rec.DisplayCompany(), rec.DisplayStatus().Label())
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d of %d\n", len(view.Records), view.Total)
	return nil
}

// saveCache refreshes the offline snapshot. Failures only cost offline reads.
func (a *app) saveCache(records []models.JobApplication) {
	db, err := a.cache()
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to open local cache")
		return
	}
	if err := db.Save(records); err != nil {
		a.log.Warn().Err(err).Msg("failed to update local cache")
	}
}

func (a *app) summaryCmd(ctx context.Context, _ *Command, _ []string) error {
	sum, err := a.client.GetSummary(ctx)
	if err != nil {
		return err
	}
	for _, st := range models.Statuses() {
		fmt.Fprintf(a.out, "%-14s %d\n", st.Label(), sum.ByStatus[st])
	}
	fmt.Fprintf(a.out, "%-14s %d\n", "Total", sum.Total)
	return nil
}

func (a *app) showCmd(ctx context.Context, cmd *Command, args []string) error {
	if len(args) != 1 {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("application id required")
	}
	rec, err := a.store.Load(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s @ %s [%s]\n", rec.DisplayTitle(), rec.DisplayCompany(), rec.DisplayStatus().Label())
	for _, kv := range [][2]string{
		{"Location", rec.Location},
		{"Type", rec.EmploymentType},
		{"Seniority", rec.SeniorityLevel},
		{"Salary", rec.SalaryInfo},
		{"Link", rec.JobURL},
	} {
		if kv[1] != "" {
			fmt.Fprintf(a.out, "%s: %s\n", kv[0], kv[1])
		}
	}
	if rec.Summary != "" {
		fmt.Fprintf(a.out, "\n%s\n", rec.Summary)
	}
	printList(a, "Responsibilities", rec.Responsibilities)
	printList(a, "Requirements", rec.Requirements)
	printList(a, "Nice to have", rec.NiceToHave)
	printList(a, "Perks", rec.PerksAndBenefits)

	if notes := rec.NotesNewestFirst(); len(notes) > 0 {
		fmt.Fprintln(a.out, "\nNotes:")
		for _, n := range notes {
			fmt.Fprintf(a.out, "  [%s] %s  (%s)\n", n.ID, n.Text, n.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	}

	fmt.Fprintf(a.out, "\nCover letter: %s\n", presence(rec.CoverLetter != ""))
	fmt.Fprintf(a.out, "AI CV: %s\n", presence(rec.AiCvData != nil))
	return nil
}

func printList(a *app, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(a.out, "\n%s:\n", title)
	for _, it := range items {
		fmt.Fprintf(a.out, "  - %s\n", it)
	}
}

func presence(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func (a *app) addLinkCmd(ctx context.Context, cmd *Command, args []string) error {
	fs := cmd.NewFlagSet(a.out)
	st := fs.String("status", "", "initial status (default Idea)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("job URL required")
	}

	res, err := a.store.CreateFromLink(ctx, fs.Arg(0), models.Status(*st))
	if err != nil {
		if res != nil && res.OpenManual {
			fmt.Fprintln(a.out, "Could not import the posting. Describe it in a YAML file and run: applio add -file job.yaml")
		}
		return err
	}
	fmt.Fprintf(a.out, "Created %s (%s @ %s)\n", res.Record.ID, res.Record.DisplayTitle(), res.Record.DisplayCompany())
	return nil
}

// parseManualForm reads the manual entry form. List fields are multi-line
// strings with one item per line.
func parseManualForm(data []byte) (store.ManualForm, error) {
	var form store.ManualForm
	if err := yaml.Unmarshal(data, &form); err != nil {
		return store.ManualForm{}, fmt.Errorf("parse job yaml: %w", err)
	}
	return form, nil
}

func (a *app) addCmd(ctx context.Context, cmd *Command, args []string) error {
	fs := cmd.NewFlagSet(a.out)
	file := fs.String("file", "", "YAML file with the posting (- for stdin)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		fs.Usage()
		return fmt.Errorf("-file required")
	}

	data, err := readFile(*file)
	if err != nil {
		return err
	}
	form, err := parseManualForm(data)
	if err != nil {
		return err
	}

	rec, err := a.store.CreateManual(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created %s (%s @ %s)\n", rec.ID, rec.DisplayTitle(), rec.DisplayCompany())
	return nil
}

func (a *app) statusCmd(ctx context.Context, cmd *Command, args []string) error {
	if len(args) != 2 {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("application id and status required")
	}
	if _, err := a.store.Load(ctx, args[0]); err != nil {
		return err
	}

	res, err := a.statusMachine().SetStatus(ctx, models.Status(args[1]))
	if err != nil {
		return err
	}
	if !res.Changed {
		fmt.Fprintf(a.out, "Already %s\n", res.To.Label())
		return nil
	}
	fmt.Fprintf(a.out, "%s -> %s\n", res.From.Label(), res.To.Label())
	return nil
}

func (a *app) noteCmd(ctx context.Context, cmd *Command, args []string) error {
	usage := func(msg string) error {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("%s", msg)
	}
	if len(args) < 2 {
		return usage("note action and application id required")
	}
	action, id, rest := args[0], args[1], args[2:]

	if _, err := a.store.Load(ctx, id); err != nil {
		return err
	}

	var (
		rec *models.JobApplication
		err error
	)
	switch action {
	case "add":
		if len(rest) < 1 {
			return usage("note text required")
		}
		rec, err = a.store.AddNote(ctx, strings.Join(rest, " "))
	case "edit":
		if len(rest) < 2 {
			return usage("note id and text required")
		}
		rec, err = a.store.UpdateNote(ctx, rest[0], strings.Join(rest[1:], " "))
	case "rm":
		if len(rest) != 1 {
			return usage("note id required")
		}
		rec, err = a.store.DeleteNote(ctx, rest[0])
	default:
		return usage("unknown note action: " + action)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d note(s)\n", len(rec.Notes))
	for _, n := range rec.NotesNewestFirst() {
		fmt.Fprintf(a.out, "  [%s] %s\n", n.ID, n.Text)
	}
	return nil
}

func (a *app) deleteCmd(ctx context.Context, cmd *Command, args []string) error {
	if len(args) != 1 {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("application id required")
	}
	if _, err := a.store.Load(ctx, args[0]); err != nil {
		return err
	}

	toast, err := a.store.Delete(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, toast)
	return nil
}
