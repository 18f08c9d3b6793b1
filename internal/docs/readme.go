package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/bwmarrin/discordgo"

	"github.com/keshon/hive-resources/internal/command"
	"github.com/keshon/hive-resources/internal/version"
	"github.com/keshon/hive-resources/pkg/cmd"
)

// DefaultTemplate is used when no README.md.tmpl exists.
const DefaultTemplate = `# {{.AppName}}

{{.Description}}

## Commands

{{.CommandSections}}
## Configuration

Settings are read from the environment or a ` + "`.env`" + ` file. See ` + "`internal/config`" + `.
`

// CommandSections renders one markdown block per slash command, in registry order.
func CommandSections(registry *cmd.Registry) string {
	var buf bytes.Buffer
	for _, c := range registry.GetAll() {
		sp, ok := cmd.Root(c).(command.SlashProvider)
		if !ok {
			continue
		}
		def := sp.SlashDefinition()
		if def == nil {
			continue
		}
		fmt.Fprintf(&buf, "- **/%s** %s\n", def.Name, def.Description)
		for _, o := range def.Options {
			fmt.Fprintf(&buf, "  - `%s`%s %s\n", o.Name, optionFlags(o), o.Description)
		}
	}
	return buf.String()
}

func optionFlags(o *discordgo.ApplicationCommandOption) string {
	switch {
	case o.Required && o.Autocomplete:
		return " (required, autocomplete)"
	case o.Required:
		return " (required)"
	case o.Autocomplete:
		return " (autocomplete)"
	}
	return ""
}

// Render executes tmpl with the command sections and app metadata.
func Render(w io.Writer, tmpl *template.Template, registry *cmd.Registry) error {
	data := struct {
		AppName         string
		Description     string
		CommandSections string
	}{
		AppName:         version.AppName,
		Description:     version.AppDescription,
		CommandSections: CommandSections(registry),
	}
	return tmpl.Execute(w, data)
}

// UpdateReadme renders tmplPath (or DefaultTemplate when it does not exist)
// into outPath.
func UpdateReadme(registry *cmd.Registry, tmplPath, outPath string) error {
	text := DefaultTemplate
	if data, err := os.ReadFile(tmplPath); err == nil {
		text = string(data)
	} else if !os.IsNotExist(err) {
		return err
	}

	tmpl, err := template.New("readme").Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := Render(&buf, tmpl, registry); err != nil {
		return err
	}
	return os.WriteFile(outPath, buf.Bytes(), 0644)
}
