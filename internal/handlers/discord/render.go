package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dicetray/internal/models"
	"github.com/KirkDiggler/dicetray/internal/services/messaging"
	"github.com/KirkDiggler/dicetray/internal/services/session"
	"github.com/bwmarrin/discordgo"
)

// Component custom IDs
const (
	ButtonRoll         = "dice_roll"
	ButtonHistory      = "dice_history"
	ButtonClearHistory = "dice_clear"

	// ButtonRerollPrefix is followed by the zero based die index
	ButtonRerollPrefix = "dice_reroll:"
)

const (
	colorTable    = 0x37355C
	colorCritical = 0xECC093
	colorFumble   = 0x6A6AD8
	colorError    = 0xFF0000

	// maxButtonsPerRow is Discord's limit on components in an action row
	maxButtonsPerRow = 5

	// historyPageSize caps the entries shown in one history embed
	historyPageSize = 20
)

// rerollButtonID returns the custom ID of the reroll button for a die
func rerollButtonID(index int) string {
	return ButtonRerollPrefix + strconv.Itoa(index)
}

// parseRerollButtonID extracts the die index from a reroll button ID
func parseRerollButtonID(customID string) (int, bool) {
	raw, ok := strings.CutPrefix(customID, ButtonRerollPrefix)
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

// renderTable renders a dice table. commentary and notice are optional.
func renderTable(table session.Table, commentary *messaging.GetRollCommentaryOutput, notice string) *discordgo.InteractionResponseData {
	sess := table.Session
	cfg := sess.Config

	title := "Dice Tray"
	color := colorTable
	var description []string

	if commentary != nil {
		title = commentary.Title
		switch commentary.Outcome {
		case messaging.RollOutcomeCritical:
			color = colorCritical
		case messaging.RollOutcomeFumble:
			color = colorFumble
		}
		description = append(description, commentary.Message)
	}

	if table.Message != "" {
		description = append(description, fmt.Sprintf("**%s**", table.Message))
	} else {
		description = append(description, "No dice on the table yet. Press **Roll** to start.")
	}

	if notice != "" {
		description = append(description, "_"+notice+"_")
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Dice",
			Value:  formatDice(sess.Result.Dice),
			Inline: false,
		},
		{
			Name:   "Total",
			Value:  strconv.Itoa(table.Total),
			Inline: true,
		},
		{
			Name:   "Modifier",
			Value:  fmt.Sprintf("+%d", cfg.Modifier),
			Inline: true,
		},
		{
			Name:   "Final Total",
			Value:  strconv.Itoa(table.FinalTotal),
			Inline: true,
		},
		{
			Name:   "Next Roll",
			Value:  fmt.Sprintf("%d × d%d", cfg.PendingDiceCount, cfg.DiceType),
			Inline: true,
		},
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.Join(description, "\n"),
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d %s in history", len(sess.History), plural(len(sess.History), "roll", "rolls")),
		},
	}

	return &discordgo.InteractionResponseData{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: tableComponents(sess.Result.Dice),
	}
}

// tableComponents builds one reroll button per die plus the table controls
func tableComponents(dice []models.Die) []discordgo.MessageComponent {
	var rows []discordgo.MessageComponent

	var buttons []discordgo.MessageComponent
	for idx, d := range dice {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("%d: %d (d%d)", idx+1, d.Value, d.Sides),
			Style:    discordgo.SecondaryButton,
			CustomID: rerollButtonID(idx),
		})
		if len(buttons) == maxButtonsPerRow {
			rows = append(rows, discordgo.ActionsRow{Components: buttons})
			buttons = nil
		}
	}
	if len(buttons) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
	}

	rows = append(rows, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Roll",
				Style:    discordgo.PrimaryButton,
				CustomID: ButtonRoll,
				Emoji: &discordgo.ComponentEmoji{
					Name: "🎲",
				},
			},
			discordgo.Button{
				Label:    "History",
				Style:    discordgo.SecondaryButton,
				CustomID: ButtonHistory,
			},
			discordgo.Button{
				Label:    "Clear History",
				Style:    discordgo.DangerButton,
				CustomID: ButtonClearHistory,
			},
		},
	})

	return rows
}

// renderHistory lists the most recent history entries, newest first
func renderHistory(history []models.HistoryEntry) *discordgo.InteractionResponseData {
	embed := &discordgo.MessageEmbed{
		Title: "Roll History",
		Color: colorTable,
	}

	if len(history) == 0 {
		embed.Description = "No rolls yet."
		return &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		}
	}

	var lines []string
	for idx := len(history) - 1; idx >= 0 && len(lines) < historyPageSize; idx-- {
		entry := history[idx]
		lines = append(lines, fmt.Sprintf("`%s` %s", entry.Timestamp, entry.Message))
	}
	embed.Description = strings.Join(lines, "\n")

	if hidden := len(history) - len(lines); hidden > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d older %s not shown", hidden, plural(hidden, "roll", "rolls")),
		}
	}

	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Clear History",
						Style:    discordgo.DangerButton,
						CustomID: ButtonClearHistory,
					},
				},
			},
		},
	}
}

// renderError renders an error embed
func renderError(message string) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{
			{
				Title:       "Error",
				Description: message,
				Color:       colorError,
			},
		},
	}
}

// renderEnded confirms a session was discarded
func renderEnded() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content: "Your dice table has been cleared away. Use `/dice roll` to start a new one.",
	}
}

func formatDice(dice []models.Die) string {
	if len(dice) == 0 {
		return "-"
	}
	parts := make([]string, len(dice))
	for idx, d := range dice {
		parts[idx] = fmt.Sprintf("🎲 **%d** (d%d)", d.Value, d.Sides)
	}
	return strings.Join(parts, "  ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
