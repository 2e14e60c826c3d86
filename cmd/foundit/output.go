package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/xyz-asif/foundit/internal/features/feed"
	"github.com/xyz-asif/foundit/internal/features/reports"
	apperrors "github.com/xyz-asif/foundit/pkg/errors"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
)

func printReport(w io.Writer, r *reports.Report) {
	fmt.Fprintf(w, "%s %s\n", green("Reported"), bold(r.ItemName))
	fmt.Fprintf(w, "  id:        %s\n", r.ID.Hex())
	fmt.Fprintf(w, "  found at:  %s\n", r.FoundLocation)
	fmt.Fprintf(w, "  pick up:   %s\n", r.RetrieveLocation)
	if r.Details != "" {
		fmt.Fprintf(w, "  details:   %s\n", r.Details)
	}
	if r.ImageURL != "" {
		fmt.Fprintf(w, "  image:     %s\n", cyan(r.ImageURL))
	}
	fmt.Fprintf(w, "  by:        %s %s\n", r.ReporterName, gray(r.CreatedAt.Local().Format(time.RFC822)))
}

func printFeed(w io.Writer, snapshot *feed.Snapshot, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	if snapshot.Count == 0 {
		fmt.Fprintln(w, gray("No items reported since "+snapshot.Since.Local().Format(time.RFC822)))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, bold("WHEN")+"\t"+bold("ITEM")+"\t"+bold("FOUND AT")+"\t"+bold("PICK UP")+"\t"+bold("BY"))
	for _, r := range snapshot.Items {
		item := r.ItemName
		if r.ImageURL != "" {
			item += " " + cyan("[photo]")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			gray(r.CreatedAt.Local().Format("Jan 02 15:04")),
			item,
			r.FoundLocation,
			r.RetrieveLocation,
			r.ReporterName)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d item(s) since %s\n", snapshot.Count, snapshot.Since.Local().Format(time.RFC822))
	return nil
}

// describeError turns typed failures into one line a person can act on
func describeError(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindValidation:
		flags := make([]string, 0, len(apperrors.MissingFields(err)))
		for _, f := range apperrors.MissingFields(err) {
			flags = append(flags, "--"+flagForField(f))
		}
		return "missing required " + strings.Join(flags, ", ")
	case apperrors.KindUnauthenticated:
		return "not signed in: pass --token or set FOUNDIT_TOKEN"
	case apperrors.KindUpload:
		return "image upload failed, nothing was saved: " + cause(err)
	case apperrors.KindPersist:
		return "report was not saved (the image may already be uploaded): " + cause(err)
	case apperrors.KindFetch:
		return "could not load the feed: " + cause(err)
	default:
		return err.Error()
	}
}

func cause(err error) string {
	var e *apperrors.Error
	if errors.As(err, &e) && e.Err != nil {
		return e.Err.Error()
	}
	return err.Error()
}

func flagForField(field string) string {
	switch field {
	case "itemName":
		return "item"
	case "foundLocation":
		return "found"
	case "retrieveLocation":
		return "retrieve"
	default:
		return field
	}
}
