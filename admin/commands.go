// Package admin holds the commands served on the admin unix socket
package admin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/zeptools/invoicer/document"
	"github.com/zeptools/invoicer/invoice"
	"github.com/zeptools/invoicer/store"
	"github.com/zeptools/invoicer/styles"
	"github.com/zeptools/invoicer/templates"
	"github.com/zeptools/invoicer/uds"
)

var ErrUsage = errors.New("admin: wrong number of arguments")

func Commands(st store.Store) map[string]uds.CmdHnd {
	return map[string]uds.CmdHnd{
		"templates": {
			Desc:  "list the invoice templates",
			Usage: "templates",
			Fn:    listTemplates,
		},
		"saved": {
			Desc:  "list quick-saved invoices",
			Usage: "saved",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				return listSaved(ctx, st, w)
			},
		},
		"export": {
			Desc:  "render a saved invoice to a PDF file",
			Usage: "export <number> <path>",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				if len(args) != 2 {
					return ErrUsage
				}
				return exportSaved(ctx, st, args[0], args[1], w)
			},
		},
		"delete": {
			Desc:  "delete a quick-saved invoice",
			Usage: "delete <number>",
			Fn: func(ctx context.Context, args []string, w io.Writer) error {
				if len(args) != 1 {
					return ErrUsage
				}
				if err := st.Delete(ctx, args[0]); err != nil {
					return err
				}
				_, err := fmt.Fprintf(w, "deleted %s\n", args[0])
				return err
			},
		},
	}
}

func listTemplates(_ context.Context, _ []string, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tPRIMARY\tACCENT\tBACKGROUND")
	for _, t := range templates.All() {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Colors.Primary, t.Colors.Accent, t.Colors.Background)
	}
	return tw.Flush()
}

func listSaved(ctx context.Context, st store.Store, w io.Writer) error {
	list, err := st.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NUMBER\tDATE\tCLIENT\tITEMS\tTOTAL")
	for _, rec := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			rec.InvoiceNumber, rec.Date, rec.ClientName, len(rec.LineItems),
			invoice.FormatMoney(invoice.SymbolFor(rec.Currency), rec.Total))
	}
	_, _ = fmt.Fprintf(tw, "%d saved\n", len(list))
	return tw.Flush()
}

func exportSaved(ctx context.Context, st store.Store, number, path string, w io.Writer) error {
	rec, err := st.Get(ctx, number)
	if err != nil {
		return err
	}
	art, err := document.Render(ctx, rec, styles.ForRecord(rec), invoice.SymbolFor(rec.Currency))
	if err != nil {
		return err
	}
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		path = filepath.Join(path, art.FileName)
	}
	if err = os.WriteFile(path, art.Bytes, 0o600); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "wrote %s (%d pages, %d bytes)\n", path, art.Pages, len(art.Bytes))
	return err
}
