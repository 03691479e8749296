package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/models"
)

func (a *app) coverCmd(ctx context.Context, cmd *Command, args []string) error {
	if len(args) < 2 {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("action and application id required")
	}
	action, id := args[0], args[1]

	rec, err := a.store.Load(ctx, id)
	if err != nil {
		return err
	}
	cl := a.coverLetter(rec)
	defer cl.Close()

	switch action {
	case "generate":
		if err := cl.Generate(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, cl.Text())

	case "save":
		fs := cmd.NewFlagSet(a.out)
		file := fs.String("file", "", "text file with the letter (- for stdin)")
		if err := fs.Parse(args[2:]); err != nil {
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
		cl.SetText(string(data))
		if err := cl.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Cover letter saved.")

	case "copy":
		if cl.Text() == "" {
			fmt.Fprintln(a.out, "No cover letter yet. Run: applio cover generate "+id)
			return nil
		}
		if err := cl.Copy(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Copied!")

	default:
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("unknown cover action: %s", action)
	}
	return nil
}

func (a *app) cvCmd(ctx context.Context, cmd *Command, args []string) error {
	if len(args) < 2 {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("action and application id required")
	}
	action, id := args[0], args[1]

	fs := cmd.NewFlagSet(a.out)
	file := fs.String("file", "", "JSON file with the full CV (- for stdin)")
	headline := fs.String("headline", "", "replace the headline")
	summary := fs.String("summary", "", "replace the summary")
	dir := fs.String("dir", "", "download directory (default APPLIO_DOWNLOAD_DIR)")
	if err := fs.Parse(args[2:]); err != nil {
		return err
	}

	rec, err := a.store.Load(ctx, id)
	if err != nil {
		return err
	}
	cv := a.aiCv(rec, *dir)
	defer cv.Close()

	switch action {
	case "generate":
		if err := cv.Generate(ctx); err != nil {
			return err
		}
		return a.printJSON(cv.Data())

	case "save":
		if *file != "" {
			data, err := readFile(*file)
			if err != nil {
				return err
			}
			var next models.AiCvData
			if err := json.Unmarshal(data, &next); err != nil {
				return fmt.Errorf("parse cv json: %w", err)
			}
			cv.Edit(func(v **models.AiCvData) { *v = &next })
		}

		var edits []editor.CVEdit
		if *headline != "" {
			edits = append(edits, editor.SetCVScalar(models.FieldHeadline, *headline))
		}
		if *summary != "" {
			edits = append(edits, editor.SetCVScalar(models.FieldSummary, *summary))
		}
		if len(edits) > 0 {
			if err := cv.Apply(edits...); err != nil {
				return err
			}
		}

		if err := cv.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "CV saved.")

	case "export":
		path, err := cv.ExportPDF(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Saved %s\n", path)

	default:
		fs.Usage()
		return fmt.Errorf("unknown cv action: %s", action)
	}
	return nil
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, strings.TrimSpace(string(data)))
	return nil
}
