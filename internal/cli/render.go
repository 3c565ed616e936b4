package cli

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"lokalize/internal/extract"
	"lokalize/internal/locales"
	"lokalize/internal/validate"
)

const maxCellText = 60

func renderFound(cmd *cobra.Command, found []extract.FoundString) {
	if len(found) == 0 {
		cmd.Println("No translatable strings found.")
		return
	}

	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"File", "Line", "Key", "Text", "Type"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, f := range found {
		table.Append([]string{
			f.File,
			fmt.Sprintf("%d", f.Line),
			f.Key,
			clip(f.Text),
			string(f.Kind),
		})
	}

	table.SetFooter([]string{"", "", "", "Total", fmt.Sprintf("%d", len(found))})
	table.Render()

	cmd.Println(buf.String())
}

func renderUnresolved(cmd *cobra.Command, unresolved []validate.Unresolved) {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Key", "File", "Line"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, u := range unresolved {
		table.Append([]string{u.Key, u.File, fmt.Sprintf("%d", u.Line)})
	}

	table.Render()
	cmd.Println(buf.String())
}

func renderSummary(cmd *cobra.Command, s extract.Summary) {
	cmd.Printf("Processed %d files (%d modified, %d skipped, %d warnings)\n",
		s.FilesProcessed, s.FilesModified, s.FilesSkipped, s.Warnings)
}

func renderSync(cmd *cobra.Command, stats []locales.SyncStats, dryRun bool) {
	if len(stats) == 0 {
		cmd.Println("No target languages to sync.")
		return
	}

	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Language", "Added", "Removed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, s := range stats {
		table.Append([]string{s.Language, fmt.Sprintf("%d", s.Added), fmt.Sprintf("%d", s.Removed)})
	}

	table.Render()
	cmd.Println(buf.String())

	if dryRun {
		cmd.Println("Dry run, no files were written.")
	}
}

func renderStats(cmd *cobra.Command, stats []locales.LangStats) {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Language", "Keys", "Missing", "Untranslated"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, s := range stats {
		table.Append([]string{
			s.Language,
			fmt.Sprintf("%d", s.Keys),
			fmt.Sprintf("%d", s.Missing),
			fmt.Sprintf("%d", s.Untranslated),
		})
	}

	table.Render()
	cmd.Println(buf.String())
}

func clip(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	if len(text) > maxCellText {
		return text[:maxCellText-3] + "..."
	}
	return text
}
