package command

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/keshon/hive-resources/internal/resolver"
	"github.com/keshon/hive-resources/internal/version"
)

const EmbedColor = 0x00afff

// BuildEmbed renders a resolved entry.
func BuildEmbed(e *resolver.Entry) *discordgo.MessageEmbed {
	var b strings.Builder
	fmt.Fprintf(&b, "**gamemode:** `%s`\n", e.Category)
	fmt.Fprintf(&b, "**%s:** `%s`\n", e.Kind, e.Name)
	if e.ViewerURL != "" {
		fmt.Fprintf(&b, "**3d preview:** [open viewer](%s)\n", e.ViewerURL)
	}
	fmt.Fprintf(&b, "**download:** [click here](%s)", e.DownloadURL)
	if e.Format != "" {
		fmt.Fprintf(&b, "\n**format:** `%s`", e.Format)
	}

	embed := &discordgo.MessageEmbed{
		Color:       EmbedColor,
		Description: b.String(),
		Footer:      &discordgo.MessageEmbedFooter{Text: version.AppFooter},
	}
	if e.ImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
	}
	return embed
}

func toDiscordChoices(choices []resolver.Choice) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(choices))
	for _, c := range choices {
		out = append(out, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: c.Value})
	}
	return out
}
