package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"briefy/internal/documents"
	"briefy/internal/events"
	"briefy/internal/export"
	"briefy/internal/models"
	"briefy/internal/utils"
)

type generateOptions struct {
	projectID string
	patterns  []string
	listFile  string
	root      string
	notes     string
	only      []string
	preview   bool
	format    string
}

func generateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate PR, flowchart and tasks from local documents",
		Example: `  briefy generate --project 3f2a... --docs 'briefing/**/*.md' --notes "foco em mobile"
  briefy generate --preview --list docs.txt --format md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.preview && opts.projectID == "" {
				return errors.New("--project is required unless --preview is set")
			}
			if err := checkFormat(opts.format, opts.preview); err != nil {
				return err
			}
			saveOpts, err := parseKinds(opts.only)
			if err != nil {
				return err
			}
			patterns, err := opts.globs()
			if err != nil {
				return err
			}

			app, err := newApp(root.configFile)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := app.startup(ctx, true); err != nil {
				return err
			}
			defer app.shutdown(context.Background())

			loader := documents.NewLoader(opts.root)
			docs, skipped, err := loader.Load(ctx, patterns...)
			if err != nil {
				return err
			}
			for _, s := range skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", s.Path, s.Reason)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d document(s) loaded\n", len(docs))

			ctx = events.WithSink(ctx, printEvents(cmd.ErrOrStderr()))
			out := cmd.OutOrStdout()
			if opts.preview {
				scope := app.svc.Generation.ProcessDocuments(ctx, docs, opts.notes, opts.projectID, saveOpts)
				return writeBundle(out, export.FromScope(scope), opts.format)
			}

			res, err := app.svc.Generation.ProcessAndSave(ctx, opts.projectID, docs, opts.notes, saveOpts)
			if err != nil {
				return err
			}
			if opts.format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printSummary(out, &res.SaveResult)
			if !res.Success {
				return fmt.Errorf("%d step(s) failed", len(res.Errors))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.projectID, "project", "p", "", "project id to save into")
	f.StringSliceVarP(&opts.patterns, "docs", "d", nil, "document globs, ** allowed (repeatable)")
	f.StringVar(&opts.listFile, "list", "", "file with one document glob per line")
	f.StringVar(&opts.root, "root", ".", "directory the globs are relative to")
	f.StringVarP(&opts.notes, "notes", "n", "", "additional notes for the model")
	f.StringSliceVar(&opts.only, "only", nil, "kinds to generate: pr, flowchart, tasks (default all)")
	f.BoolVar(&opts.preview, "preview", false, "generate without saving and print the result")
	f.StringVarP(&opts.format, "format", "f", "text", "output: text or json; --preview also takes md and yaml")
	return cmd
}

func (o *generateOptions) globs() ([]string, error) {
	patterns := append([]string{}, o.patterns...)
	if o.listFile != "" {
		listed, err := utils.ReadListFile(o.listFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", o.listFile, err)
		}
		patterns = append(patterns, listed...)
	}
	if len(patterns) == 0 {
		return nil, errors.New("no documents: pass --docs or --list")
	}
	return patterns, nil
}

// checkFormat rejects output formats the chosen mode cannot produce. Saving
// prints a step summary (text) or the full result (json); previews render
// the bundle.
func checkFormat(format string, preview bool) error {
	switch format {
	case "text", "json":
		return nil
	case "md", "yaml":
		if preview {
			return nil
		}
		return fmt.Errorf("--format %s needs --preview", format)
	}
	return fmt.Errorf("unknown format %q (want text, json, md or yaml)", format)
}

func parseKinds(only []string) (models.SaveOptions, error) {
	if len(only) == 0 {
		return models.SaveAll(), nil
	}
	var opts models.SaveOptions
	for _, raw := range only {
		switch models.ContentType(strings.ToLower(strings.TrimSpace(raw))) {
		case models.ContentPR:
			opts.SavePR = true
		case models.ContentFlowchart:
			opts.SaveFlowchart = true
		case models.ContentTasks:
			opts.SaveTasks = true
		default:
			return opts, fmt.Errorf("unknown kind %q (want pr, flowchart or tasks)", raw)
		}
	}
	return opts, nil
}

func printEvents(w io.Writer) events.Sink {
	return func(_ string, evt events.ProgressEvent) {
		fmt.Fprintf(w, "[%s] %s\n", evt.Stage, evt.Message)
	}
}

func printSummary(w io.Writer, res *models.SaveResult) {
	for _, step := range res.Steps {
		line := fmt.Sprintf("%-10s %s", step.Kind, step.Status)
		if step.Error != "" {
			line += ": " + step.Error
		}
		fmt.Fprintln(w, line)
	}
	if res.PR != nil {
		fmt.Fprintf(w, "PR:         %s (%s)\n", res.PR.Title, res.PR.ID)
	}
	if res.Flowchart != nil {
		fmt.Fprintf(w, "Fluxograma: %s (%d nós)\n", res.Flowchart.Title, len(res.Flowchart.Nodes))
	}
	if len(res.Epics) > 0 || len(res.Tasks) > 0 {
		fmt.Fprintf(w, "Épicos:     %d, Tasks: %d\n", len(res.Epics), len(res.Tasks))
	}
}

func writeBundle(w io.Writer, b *export.Bundle, format string) error {
	var (
		raw []byte
		err error
	)
	switch format {
	case "json":
		raw, err = export.JSON(b)
	case "yaml":
		raw, err = export.YAML(b)
	case "md", "text", "":
		raw = []byte(export.Markdown(b))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}
