package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/dicetray/internal/engine"
	"github.com/KirkDiggler/dicetray/internal/models"
	"github.com/KirkDiggler/dicetray/internal/services/messaging"
	"github.com/KirkDiggler/dicetray/internal/services/session"
	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Subcommand and option names
const (
	subcommandRoll    = "roll"
	subcommandSet     = "set"
	subcommandReroll  = "reroll"
	subcommandEdit    = "edit"
	subcommandDelete  = "delete"
	subcommandShow    = "show"
	subcommandHistory = "history"
	subcommandClear   = "clear"
	subcommandEnd     = "end"

	optionType     = "type"
	optionCount    = "count"
	optionModifier = "modifier"
	optionDie      = "die"
)

// DiceCommand handles the /dice command and the buttons on its messages
type DiceCommand struct {
	BaseCommand
	sessionService   session.Service
	messagingService messaging.Service
	logger           *zap.Logger
}

// NewDiceCommand creates a new dice command handler
func NewDiceCommand(sessionService session.Service, messagingService messaging.Service, logger *zap.Logger) *DiceCommand {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DiceCommand{
		BaseCommand: BaseCommand{
			Name:        "dice",
			Description: "Roll dice and keep a history of your rolls",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandRoll,
					Description: "Roll a fresh set of dice",
					Options:     configOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandSet,
					Description: "Change dice type, count or modifier without rolling",
					Options:     configOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandReroll,
					Description: "Roll one die again",
					Options:     []*discordgo.ApplicationCommandOption{dieOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandEdit,
					Description: "Switch one die to a different dice type",
					Options: []*discordgo.ApplicationCommandOption{
						dieOption(),
						diceTypeOption(true),
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandDelete,
					Description: "Take one die off the table",
					Options:     []*discordgo.ApplicationCommandOption{dieOption()},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandShow,
					Description: "Show your dice table",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandHistory,
					Description: "Show your roll history",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandClear,
					Description: "Clear your roll history",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        subcommandEnd,
					Description: "Put your dice away and forget this table",
				},
			},
		},
		sessionService:   sessionService,
		messagingService: messagingService,
		logger:           logger.Named("dice_command"),
	}
}

func diceTypeOption(required bool) *discordgo.ApplicationCommandOption {
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, dt := range models.DiceTypes() {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("d%d", dt),
			Value: dt.Sides(),
		})
	}

	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        optionType,
		Description: "Dice type",
		Required:    required,
		Choices:     choices,
	}
}

func configOptions() []*discordgo.ApplicationCommandOption {
	minCount := float64(models.MinDiceCount)
	return []*discordgo.ApplicationCommandOption{
		diceTypeOption(false),
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        optionCount,
			Description: "Number of dice",
			MinValue:    &minCount,
			MaxValue:    models.MaxDiceCount,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        optionModifier,
			Description: "Flat modifier added to the total, up to 4 digits",
			MaxLength:   8,
		},
	}
}

func dieOption() *discordgo.ApplicationCommandOption {
	minDie := float64(1)
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        optionDie,
		Description: "Position of the die on the table, starting at 1",
		Required:    true,
		MinValue:    &minDie,
		MaxValue:    models.MaxDiceCount,
	}
}

// Handle processes a Discord interaction for the dice command
func (c *DiceCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	userID, name := interactionUser(i)
	key := sessionKey(i.ChannelID, userID)

	resp, err := c.dispatch(context.Background(), key, name, data)
	if err != nil {
		return RespondWithError(s, i, c.errorMessage(key, err))
	}

	return RespondWithEphemeralData(s, i, resp)
}

// OwnsComponent reports whether customID is one of the dice buttons
func (c *DiceCommand) OwnsComponent(customID string) bool {
	switch customID {
	case ButtonRoll, ButtonHistory, ButtonClearHistory:
		return true
	}
	return strings.HasPrefix(customID, ButtonRerollPrefix)
}

// HandleComponent processes a click on one of the dice buttons
func (c *DiceCommand) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	userID, name := interactionUser(i)
	key := sessionKey(i.ChannelID, userID)
	customID := i.MessageComponentData().CustomID

	resp, update, err := c.dispatchComponent(context.Background(), key, name, customID)
	if err != nil {
		return RespondWithError(s, i, c.errorMessage(key, err))
	}

	if update {
		return UpdateWithData(s, i, resp)
	}
	return RespondWithEphemeralData(s, i, resp)
}

// dispatch runs a subcommand against the player's table. name is the
// player's display name, used in roll commentary.
func (c *DiceCommand) dispatch(ctx context.Context, key, name string, data discordgo.ApplicationCommandInteractionData) (*discordgo.InteractionResponseData, error) {
	if len(data.Options) == 0 {
		return nil, errors.New("missing subcommand")
	}

	sub := data.Options[0]
	opts := optionMap(sub.Options)

	switch sub.Name {
	case subcommandRoll:
		notice, err := c.configure(ctx, key, opts, false)
		if err != nil {
			return nil, err
		}
		return c.roll(ctx, key, name, notice)

	case subcommandSet:
		notice, err := c.configure(ctx, key, opts, true)
		if err != nil {
			return nil, err
		}
		output, err := c.sessionService.GetSession(ctx, &session.GetSessionInput{Key: key})
		if err != nil {
			return nil, err
		}
		return renderTable(output.Table, nil, notice), nil

	case subcommandReroll:
		return c.reroll(ctx, key, dieIndex(opts))

	case subcommandEdit:
		output, err := c.sessionService.EditDie(ctx, &session.EditDieInput{
			Key:      key,
			Index:    dieIndex(opts),
			DiceType: models.DiceType(intOption(opts, optionType)),
		})
		if err != nil {
			return nil, err
		}
		notice := fmt.Sprintf("Die %d is now a d%d.", dieIndex(opts)+1, output.Die.Sides)
		return renderTable(output.Table, nil, notice), nil

	case subcommandDelete:
		output, err := c.sessionService.DeleteDie(ctx, &session.DeleteDieInput{
			Key:   key,
			Index: dieIndex(opts),
		})
		if err != nil {
			return nil, err
		}
		notice := fmt.Sprintf("Removed a %d (d%d).", output.Removed.Value, output.Removed.Sides)
		return renderTable(output.Table, nil, notice), nil

	case subcommandShow:
		output, err := c.sessionService.GetSession(ctx, &session.GetSessionInput{Key: key})
		if err != nil {
			return nil, err
		}
		return renderTable(output.Table, nil, ""), nil

	case subcommandHistory:
		output, err := c.sessionService.GetSession(ctx, &session.GetSessionInput{Key: key})
		if err != nil {
			return nil, err
		}
		return renderHistory(output.Session.History), nil

	case subcommandClear:
		return c.clearHistory(ctx, key)

	case subcommandEnd:
		if _, err := c.sessionService.EndSession(ctx, &session.EndSessionInput{Key: key}); err != nil {
			return nil, err
		}
		return renderEnded(), nil

	default:
		return nil, fmt.Errorf("unknown subcommand %q", sub.Name)
	}
}

// dispatchComponent runs a button click. update reports whether the
// response replaces the message that carried the button.
func (c *DiceCommand) dispatchComponent(ctx context.Context, key, name, customID string) (*discordgo.InteractionResponseData, bool, error) {
	switch customID {
	case ButtonRoll:
		resp, err := c.roll(ctx, key, name, "")
		return resp, true, err

	case ButtonHistory:
		output, err := c.sessionService.GetSession(ctx, &session.GetSessionInput{Key: key})
		if err != nil {
			return nil, false, err
		}
		return renderHistory(output.Session.History), false, nil

	case ButtonClearHistory:
		resp, err := c.clearHistory(ctx, key)
		return resp, true, err
	}

	if index, ok := parseRerollButtonID(customID); ok {
		resp, err := c.reroll(ctx, key, index)
		return resp, true, err
	}

	return nil, false, fmt.Errorf("unknown button %q", customID)
}

// configure applies any type, count and modifier options. It returns a
// notice when the modifier was refused.
func (c *DiceCommand) configure(ctx context.Context, key string, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, required bool) (string, error) {
	input := &session.ConfigureInput{Key: key}

	if opt, ok := opts[optionType]; ok {
		dt := models.DiceType(opt.IntValue())
		input.DiceType = &dt
	}
	if opt, ok := opts[optionCount]; ok {
		count := int(opt.IntValue())
		input.DiceCount = &count
	}
	if opt, ok := opts[optionModifier]; ok {
		raw := opt.StringValue()
		input.Modifier = &raw
	}

	if input.DiceType == nil && input.DiceCount == nil && input.Modifier == nil {
		if required {
			return "", session.ErrNothingToConfigure
		}
		return "", nil
	}

	output, err := c.sessionService.Configure(ctx, input)
	if err != nil {
		return "", err
	}

	if !output.ModifierAccepted {
		msg, err := c.messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
			ErrorType: messaging.ErrorTypeModifierRefused,
		})
		if err != nil {
			return "", err
		}
		return msg.Message, nil
	}
	return "", nil
}

func (c *DiceCommand) roll(ctx context.Context, key, name, notice string) (*discordgo.InteractionResponseData, error) {
	output, err := c.sessionService.Roll(ctx, &session.RollInput{Key: key})
	if err != nil {
		return nil, err
	}

	commentary, err := c.messagingService.GetRollCommentary(ctx, &messaging.GetRollCommentaryInput{
		Dice:          output.Result.Dice,
		PlayerName:    name,
		PreferredTone: messaging.ToneFunny,
	})
	if err != nil {
		return nil, err
	}

	return renderTable(output.Table, commentary, notice), nil
}

func (c *DiceCommand) reroll(ctx context.Context, key string, index int) (*discordgo.InteractionResponseData, error) {
	output, err := c.sessionService.RerollDie(ctx, &session.RerollDieInput{
		Key:   key,
		Index: index,
	})
	if err != nil {
		return nil, err
	}

	notice := fmt.Sprintf("Die %d rolled a %d.", index+1, output.Die.Value)
	return renderTable(output.Table, nil, notice), nil
}

func (c *DiceCommand) clearHistory(ctx context.Context, key string) (*discordgo.InteractionResponseData, error) {
	output, err := c.sessionService.ClearHistory(ctx, &session.ClearHistoryInput{Key: key})
	if err != nil {
		return nil, err
	}

	notice := fmt.Sprintf("Cleared %d %s from history.", output.Cleared, plural(output.Cleared, "roll", "rolls"))
	return renderTable(output.Table, nil, notice), nil
}

// errorMessage turns a service error into text for the player
func (c *DiceCommand) errorMessage(key string, err error) string {
	errorType := messaging.ErrorTypeUnknown
	switch {
	case errors.Is(err, engine.ErrIndexOutOfRange):
		errorType = messaging.ErrorTypeNoSuchDie
	case errors.Is(err, engine.ErrInvalidConfiguration):
		errorType = messaging.ErrorTypeInvalidDiceType
	case errors.Is(err, session.ErrNothingToConfigure):
		errorType = messaging.ErrorTypeNothingToChange
	default:
		c.logger.Error("dice command failed", zap.String("session_key", key), zap.Error(err))
	}

	msg, msgErr := c.messagingService.GetErrorMessage(context.Background(), &messaging.GetErrorMessageInput{
		ErrorType: errorType,
	})
	if msgErr != nil {
		return "Something went wrong! Try again later."
	}
	return msg.Message
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		out[opt.Name] = opt
	}
	return out
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return 0
}

// dieIndex converts the 1 based die option to a table index
func dieIndex(opts map[string]*discordgo.ApplicationCommandInteractionDataOption) int {
	return intOption(opts, optionDie) - 1
}
