// Package prompt collects secret fields interactively, asking only for
// the fields that apply to the chosen category.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/akazakov/keepsafe/internal/client/api"
	"github.com/akazakov/keepsafe/internal/models"
)

// Prompter reads interactive answers from in and writes questions to out.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// New returns a Prompter bound to the given streams.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{scanner: bufio.NewScanner(in), out: out}
}

// ask prints the label and returns the trimmed answer.
func (p *Prompter) ask(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	p.scanner.Scan()
	return strings.TrimSpace(p.scanner.Text())
}

// askOptional returns nil when the answer is empty.
func (p *Prompter) askOptional(label string) *string {
	answer := p.ask(label + " (optional)")
	if answer == "" {
		return nil
	}
	return &answer
}

// ForCreate asks for the name and the category fields of a new secret
// of the given type. The title of a secure note is derived server-side,
// so it is never asked for.
func (p *Prompter) ForCreate(secretType models.SecretType) api.CreateSecretPayload {
	payload := api.CreateSecretPayload{
		SecretType: string(secretType),
		SecretName: p.ask("Name"),
	}
	for _, spec := range models.VisibleFields(secretType) {
		if spec.Key == "title" {
			continue
		}
		payload.SetField(spec.Key, p.askOptional(spec.Label))
	}
	return payload
}

// ForUpdate asks for replacement values of the category fields. An
// empty answer leaves the field unchanged.
func (p *Prompter) ForUpdate(secretType models.SecretType) models.UserSecretUpdate {
	fmt.Fprintln(p.out, "Leave a field empty to keep its current value.")
	var update models.UserSecretUpdate
	if name := p.askOptional("Name"); name != nil {
		update.SecretName = name
	}
	for _, spec := range models.VisibleFields(secretType) {
		if spec.Key == "title" {
			continue
		}
		update.SetField(spec.Key, p.askOptional(spec.Label))
	}
	return update
}
