package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/example/resy-client/internal/domain/reservation"
	"github.com/example/resy-client/internal/domain/user"
)

func printJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// newTable returns a borderless table; config tokens and slot types are
// never wrapped so they can be copied verbatim.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetBorder(false)
	t.SetHeaderLine(false)
	t.SetColumnSeparator("")
	t.SetCenterSeparator("")
	t.SetRowSeparator("")
	t.SetTablePadding("  ")
	t.SetNoWhiteSpace(true)
	return t
}

func printSlots(w io.Writer, slots []reservation.Slot) error {
	if len(slots) == 0 {
		_, err := fmt.Fprintln(w, "no slots")
		return err
	}
	t := newTable(w, "START", "END", "TYPE", "CONFIG_ID")
	for _, s := range slots {
		t.Append([]string{s.Start, s.End, s.Type, s.ConfigToken})
	}
	t.Render()
	return nil
}

func printProfiles(w io.Writer, ps []user.Profile) error {
	if len(ps) == 0 {
		_, err := fmt.Fprintln(w, "no profiles")
		return err
	}
	t := newTable(w, "NAME", "UPDATED")
	for _, p := range ps {
		t.Append([]string{p.Name, p.UpdatedAt.Format("2006-01-02 15:04")})
	}
	t.Render()
	return nil
}
