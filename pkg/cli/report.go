package cli

import (
	"github.com/jedib0t/go-pretty/v6/table"
	runctx "github.com/superpicky/releaser/pkg/context"
)

// summaryTable renders the final report: the produced bundle, the disk
// image, and whether the image is notarized.
func summaryTable(ctx *runctx.Context) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	tw.AppendHeader(table.Row{"Artifact", "Path"})
	tw.AppendRow(table.Row{"Bundle", ctx.Artifacts.AppPath})
	tw.AppendRow(table.Row{"Disk image", ctx.Artifacts.ImagePath})

	notarized := "no"
	if ctx.Artifacts.Notarized {
		notarized = "yes"
	}
	tw.AppendRow(table.Row{"Notarized", notarized})

	return tw.Render()
}
