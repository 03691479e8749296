package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blockedby/applio/internal/editor"
	"github.com/blockedby/applio/internal/models"
)

func (a *app) profileCmd(ctx context.Context, cmd *Command, args []string) error {
	if len(args) < 1 {
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("profile action required")
	}

	svc := a.profile()
	if _, err := svc.Load(ctx); err != nil {
		return err
	}

	switch args[0] {
	case "show":
		if !svc.Exists() {
			fmt.Fprintln(a.out, "No profile yet. Run: applio profile save -name ... or applio profile use-cv FILE")
			return nil
		}
		return a.printJSON(svc.Draft())

	case "save":
		fs := cmd.NewFlagSet(a.out)
		name := fs.String("name", "", "full name")
		headline := fs.String("headline", "", "headline")
		location := fs.String("location", "", "location")
		summary := fs.String("summary", "", "summary")
		skills := fs.String("skills", "", "primary skills, comma separated")
		interests := fs.String("interests", "", "interests, one per line")
		years := fs.String("years", "", "years of experience")
		linkedin := fs.String("linkedin", "", "LinkedIn URL")
		github := fs.String("github", "", "GitHub URL")
		portfolio := fs.String("portfolio", "", "portfolio URL")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		var edits []editor.ProfileEdit
		set := func(field, value string) {
			if value != "" {
				edits = append(edits, editor.SetProfileField(field, value))
			}
		}
		set(models.FieldFullName, *name)
		set(models.FieldHeadline, *headline)
		set(editor.FieldProfileLocation, *location)
		set(models.FieldSummary, *summary)
		set(editor.FieldLinkedIn, *linkedin)
		set(editor.FieldGitHub, *github)
		set(editor.FieldPortfolio, *portfolio)
		if *skills != "" {
			edits = append(edits, editor.SetPrimarySkills(*skills))
		}
		if *interests != "" {
			edits = append(edits, editor.SetProfileInterests(*interests))
		}
		svc.Apply(edits...)

		if *years != "" {
			if err := svc.SetYearsOfExperience(*years); err != nil {
				return err
			}
		}

		if _, err := svc.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile saved.")

	case "use-cv":
		if len(args) != 2 {
			cmd.NewFlagSet(a.out).Usage()
			return fmt.Errorf("CV file required")
		}
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := svc.UseCV(ctx, filepath.Base(args[1]), f); err != nil {
			return err
		}
		if _, err := svc.Save(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Profile filled from CV and saved.")
		return a.printJSON(svc.Draft())

	default:
		cmd.NewFlagSet(a.out).Usage()
		return fmt.Errorf("unknown profile action: %s", args[0])
	}
	return nil
}
