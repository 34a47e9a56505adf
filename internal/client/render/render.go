// Package render formats user secrets for terminal output. It enforces
// the field-visibility contract: only the fields applicable to a
// record's category are shown, sensitive values are masked unless
// explicitly revealed, and absent values print as a dash.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/akazakov/keepsafe/internal/models"
)

// Mask replaces sensitive values in output until the caller asks to
// reveal them.
const Mask = "********************"

// absent marks a field with no stored value.
const absent = "-"

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgYellow)
	maskColor   = color.New(color.FgHiBlack)
)

// fieldText resolves the printable value of one field: masked when
// sensitive and not revealed, dash when absent.
func fieldText(sec *models.UserSecret, spec models.FieldSpec, reveal bool) string {
	val := sec.FieldValue(spec.Key)
	if val == nil {
		return absent
	}
	if spec.Sensitive && !reveal {
		return Mask
	}
	return *val
}

// List writes a table of secrets to w: id, type, name and creation
// time. totalCount is the full collection size, of which the given page
// is a slice.
func List(w io.Writer, secrets []models.UserSecret, totalCount int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	headerColor.Fprintln(tw, "ID\tTYPE\tNAME\tCREATED")
	for i := range secrets {
		sec := &secrets[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			sec.ID,
			models.ParseSecretType(sec.SecretType).Label(),
			sec.SecretName,
			sec.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nShowing %d of %d secrets\n", len(secrets), totalCount)
}

// Detail writes one secret with every field applicable to its category.
// Sensitive fields stay masked unless reveal is set.
func Detail(w io.Writer, sec *models.UserSecret, reveal bool) {
	secretType := models.ParseSecretType(sec.SecretType)

	headerColor.Fprintf(w, "%s (%s)\n", sec.SecretName, secretType.Label())
	labelColor.Fprint(w, "ID: ")
	fmt.Fprintln(w, sec.ID)

	for _, spec := range models.VisibleFields(secretType) {
		labelColor.Fprintf(w, "%s: ", spec.Label)
		text := fieldText(sec, spec, reveal)
		if text == Mask {
			maskColor.Fprintln(w, text)
		} else {
			fmt.Fprintln(w, text)
		}
	}

	labelColor.Fprint(w, "Created: ")
	fmt.Fprintln(w, sec.CreatedAt.Format("2006-01-02 15:04:05"))
	labelColor.Fprint(w, "Updated: ")
	fmt.Fprintln(w, sec.UpdatedAt.Format("2006-01-02 15:04:05"))
}
