package discord

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/dicetray/internal/models"
	"github.com/KirkDiggler/dicetray/internal/services/messaging"
	"github.com/KirkDiggler/dicetray/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable(values ...int) session.Table {
	sess := models.NewSession("id", "key", time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC))
	total := 0
	for _, v := range values {
		sess.Result.Dice = append(sess.Result.Dice, models.Die{Sides: models.D6, Value: v})
		total += v
	}
	sess.Config.DiceCount = len(values)
	sess.Config.Modifier = 2

	message := ""
	if len(values) > 0 {
		message = sess.Result.Message()
	}
	return session.Table{
		Session:    sess,
		Total:      total,
		FinalTotal: total + 2,
		Message:    message,
	}
}

func fieldValue(t *testing.T, embed *discordgo.MessageEmbed, name string) string {
	t.Helper()
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	t.Fatalf("field %q not found", name)
	return ""
}

func TestRenderTable(t *testing.T) {
	data := renderTable(testTable(3, 5), nil, "Die 2 rolled a 5.")

	require.Len(t, data.Embeds, 1)
	embed := data.Embeds[0]
	assert.Equal(t, "Dice Tray", embed.Title)
	assert.Contains(t, embed.Description, "You rolled: 3, 5")
	assert.Contains(t, embed.Description, "Die 2 rolled a 5.")
	assert.Equal(t, "8", fieldValue(t, embed, "Total"))
	assert.Equal(t, "+2", fieldValue(t, embed, "Modifier"))
	assert.Equal(t, "10", fieldValue(t, embed, "Final Total"))
	assert.Equal(t, "1 × d6", fieldValue(t, embed, "Next Roll"))
	assert.Equal(t, "0 rolls in history", embed.Footer.Text)

	// one row of die buttons plus the controls
	require.Len(t, data.Components, 2)
	dieRow := data.Components[0].(discordgo.ActionsRow)
	require.Len(t, dieRow.Components, 2)
	assert.Equal(t, "dice_reroll:1", dieRow.Components[1].(discordgo.Button).CustomID)
	assert.Equal(t, "2: 5 (d6)", dieRow.Components[1].(discordgo.Button).Label)
}

func TestRenderTableEmpty(t *testing.T) {
	data := renderTable(testTable(), nil, "")

	embed := data.Embeds[0]
	assert.Contains(t, embed.Description, "No dice on the table yet")
	assert.Equal(t, "-", fieldValue(t, embed, "Dice"))
	require.Len(t, data.Components, 1, "only the controls row")
}

func TestRenderTableSplitsButtonRows(t *testing.T) {
	data := renderTable(testTable(1, 2, 3, 4, 5, 6), nil, "")

	require.Len(t, data.Components, 3)
	assert.Len(t, data.Components[0].(discordgo.ActionsRow).Components, 5)
	assert.Len(t, data.Components[1].(discordgo.ActionsRow).Components, 1)
}

func TestRenderTableCommentary(t *testing.T) {
	data := renderTable(testTable(6), &messaging.GetRollCommentaryOutput{
		Outcome: messaging.RollOutcomeCritical,
		Title:   "CRIT!",
		Message: "The dice gods favor you today!",
	}, "")

	embed := data.Embeds[0]
	assert.Equal(t, "CRIT!", embed.Title)
	assert.Equal(t, colorCritical, embed.Color)
	assert.Contains(t, embed.Description, "The dice gods favor you today!")
}

func TestRenderHistory(t *testing.T) {
	var history []models.HistoryEntry
	for i := 1; i <= 25; i++ {
		history = append(history, models.HistoryEntry{
			Message:   fmt.Sprintf("You rolled: %d", i),
			Timestamp: "03:04 PM, 04/19/2025",
		})
	}

	data := renderHistory(history)
	embed := data.Embeds[0]

	assert.Equal(t, "Roll History", embed.Title)
	lines := strings.Split(embed.Description, "\n")
	require.Len(t, lines, historyPageSize)
	assert.Equal(t, "`03:04 PM, 04/19/2025` You rolled: 25", lines[0])
	assert.Equal(t, "`03:04 PM, 04/19/2025` You rolled: 6", lines[len(lines)-1])
	assert.Equal(t, "5 older rolls not shown", embed.Footer.Text)
}

func TestRenderHistoryEmpty(t *testing.T) {
	data := renderHistory(nil)

	assert.Equal(t, "No rolls yet.", data.Embeds[0].Description)
	assert.Empty(t, data.Components)
}

func TestRerollButtonID(t *testing.T) {
	index, ok := parseRerollButtonID(rerollButtonID(4))
	assert.True(t, ok)
	assert.Equal(t, 4, index)

	for _, bad := range []string{"dice_roll", "dice_reroll:", "dice_reroll:x", "dice_reroll:-1"} {
		_, ok := parseRerollButtonID(bad)
		assert.False(t, ok, bad)
	}
}
