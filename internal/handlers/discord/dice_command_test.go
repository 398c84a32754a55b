package discord

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/KirkDiggler/dicetray/internal/engine"
	"github.com/KirkDiggler/dicetray/internal/models"
	"github.com/KirkDiggler/dicetray/internal/services/messaging"
	"github.com/KirkDiggler/dicetray/internal/services/session"
	sessionMocks "github.com/KirkDiggler/dicetray/internal/services/session/mocks"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DiceCommandTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockSessionService *sessionMocks.MockService
	command            *DiceCommand
	ctx                context.Context

	testKey  string
	testName string
}

func (s *DiceCommandTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionService = sessionMocks.NewMockService(s.mockCtrl)

	messagingService, err := messaging.NewService(&messaging.ServiceConfig{Seed: 1})
	s.Require().NoError(err)

	s.command = NewDiceCommand(s.mockSessionService, messagingService, nil)
	s.ctx = context.Background()
	s.testKey = sessionKey("test-channel-id", "test-user-id")
	s.testName = "Nick"
}

func TestDiceCommandTestSuite(t *testing.T) {
	suite.Run(t, new(DiceCommandTestSuite))
}

// commandData builds the interaction data of /dice <sub> with options
func commandData(sub string, options ...*discordgo.ApplicationCommandInteractionDataOption) discordgo.ApplicationCommandInteractionData {
	return discordgo.ApplicationCommandInteractionData{
		Name: "dice",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{
				Name:    sub,
				Type:    discordgo.ApplicationCommandOptionSubCommand,
				Options: options,
			},
		},
	}
}

func intOpt(name string, v int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: float64(v),
	}
}

func stringOpt(name, v string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: v,
	}
}

func (s *DiceCommandTestSuite) TestCommandDefinition() {
	cmd := s.command.GetCommand()

	s.Equal("dice", cmd.Name)
	var names []string
	for _, opt := range cmd.Options {
		names = append(names, opt.Name)
	}
	s.Equal([]string{"roll", "set", "reroll", "edit", "delete", "show", "history", "clear", "end"}, names)

	typeOpt := cmd.Options[0].Options[0]
	s.Len(typeOpt.Choices, len(models.DiceTypes()))
}

func (s *DiceCommandTestSuite) TestRollWithoutOptions() {
	table := testTable(3, 5)
	s.mockSessionService.EXPECT().
		Roll(gomock.Any(), &session.RollInput{Key: s.testKey}).
		Return(&session.RollOutput{Table: table, Result: table.Session.Result}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("roll"))
	s.Require().NoError(err)

	s.Contains(data.Embeds[0].Description, "You rolled: 3, 5")
}

func (s *DiceCommandTestSuite) TestRollCommentaryNamesPlayer() {
	table := testTable(6, 6)
	s.mockSessionService.EXPECT().
		Roll(gomock.Any(), &session.RollInput{Key: s.testKey}).
		Return(&session.RollOutput{Table: table, Result: table.Session.Result}, nil).
		Times(30)

	named := false
	for i := 0; i < 30; i++ {
		data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("roll"))
		s.Require().NoError(err)
		if strings.Contains(data.Embeds[0].Description, s.testName) {
			named = true
		}
	}
	s.True(named, "expected commentary naming the player")
}

func (s *DiceCommandTestSuite) TestRollWithOptions() {
	diceType := models.D20
	count := 2
	modifier := "4"
	table := testTable(3, 5)

	gomock.InOrder(
		s.mockSessionService.EXPECT().
			Configure(gomock.Any(), &session.ConfigureInput{
				Key:       s.testKey,
				DiceType:  &diceType,
				DiceCount: &count,
				Modifier:  &modifier,
			}).
			Return(&session.ConfigureOutput{Table: table, ModifierAccepted: true}, nil),
		s.mockSessionService.EXPECT().
			Roll(gomock.Any(), &session.RollInput{Key: s.testKey}).
			Return(&session.RollOutput{Table: table, Result: table.Session.Result}, nil),
	)

	_, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("roll",
		intOpt(optionType, 20),
		intOpt(optionCount, 2),
		stringOpt(optionModifier, "4"),
	))
	s.Require().NoError(err)
}

func (s *DiceCommandTestSuite) TestSetRefusedModifierShowsNotice() {
	modifier := "123456"
	table := testTable(1)

	s.mockSessionService.EXPECT().
		Configure(gomock.Any(), &session.ConfigureInput{Key: s.testKey, Modifier: &modifier}).
		Return(&session.ConfigureOutput{Table: table, ModifierAccepted: false}, nil)
	s.mockSessionService.EXPECT().
		GetSession(gomock.Any(), &session.GetSessionInput{Key: s.testKey}).
		Return(&session.GetSessionOutput{Table: table}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("set", stringOpt(optionModifier, modifier)))
	s.Require().NoError(err)

	s.Contains(strings.ToLower(data.Embeds[0].Description), "four digits")
}

func (s *DiceCommandTestSuite) TestSetRequiresSomething() {
	_, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("set"))
	s.ErrorIs(err, session.ErrNothingToConfigure)
}

func (s *DiceCommandTestSuite) TestRerollConvertsToZeroBasedIndex() {
	table := testTable(3, 1)
	s.mockSessionService.EXPECT().
		RerollDie(gomock.Any(), &session.RerollDieInput{Key: s.testKey, Index: 1}).
		Return(&session.RerollDieOutput{Table: table, Die: models.Die{Sides: models.D6, Value: 1}}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("reroll", intOpt(optionDie, 2)))
	s.Require().NoError(err)

	s.Contains(data.Embeds[0].Description, "Die 2 rolled a 1.")
}

func (s *DiceCommandTestSuite) TestEdit() {
	table := testTable(18, 4)
	s.mockSessionService.EXPECT().
		EditDie(gomock.Any(), &session.EditDieInput{Key: s.testKey, Index: 0, DiceType: models.D20}).
		Return(&session.EditDieOutput{Table: table, Die: models.Die{Sides: models.D20, Value: 18}}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("edit",
		intOpt(optionDie, 1),
		intOpt(optionType, 20),
	))
	s.Require().NoError(err)

	s.Contains(data.Embeds[0].Description, "Die 1 is now a d20.")
}

func (s *DiceCommandTestSuite) TestDelete() {
	table := testTable(2, 6)
	s.mockSessionService.EXPECT().
		DeleteDie(gomock.Any(), &session.DeleteDieInput{Key: s.testKey, Index: 1}).
		Return(&session.DeleteDieOutput{Table: table, Removed: models.Die{Sides: models.D6, Value: 4}}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("delete", intOpt(optionDie, 2)))
	s.Require().NoError(err)

	s.Contains(data.Embeds[0].Description, "Removed a 4 (d6).")
	s.Contains(data.Embeds[0].Description, "You rolled: 2, 6")
}

func (s *DiceCommandTestSuite) TestHistory() {
	table := testTable(5)
	table.Session.History = []models.HistoryEntry{
		{Message: "You rolled: 5", Timestamp: "12:00 PM, 04/19/2025"},
	}
	s.mockSessionService.EXPECT().
		GetSession(gomock.Any(), &session.GetSessionInput{Key: s.testKey}).
		Return(&session.GetSessionOutput{Table: table}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("history"))
	s.Require().NoError(err)

	s.Equal("`12:00 PM, 04/19/2025` You rolled: 5", data.Embeds[0].Description)
}

func (s *DiceCommandTestSuite) TestClear() {
	s.mockSessionService.EXPECT().
		ClearHistory(gomock.Any(), &session.ClearHistoryInput{Key: s.testKey}).
		Return(&session.ClearHistoryOutput{Table: testTable(5), Cleared: 3}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("clear"))
	s.Require().NoError(err)

	s.Contains(data.Embeds[0].Description, "Cleared 3 rolls from history.")
}

func (s *DiceCommandTestSuite) TestEnd() {
	s.mockSessionService.EXPECT().
		EndSession(gomock.Any(), &session.EndSessionInput{Key: s.testKey}).
		Return(&session.EndSessionOutput{Success: true}, nil)

	data, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("end"))
	s.Require().NoError(err)

	s.Contains(data.Content, "/dice roll")
}

func (s *DiceCommandTestSuite) TestUnknownSubcommand() {
	_, err := s.command.dispatch(s.ctx, s.testKey, s.testName, commandData("explode"))
	s.Error(err)

	_, err = s.command.dispatch(s.ctx, s.testKey, s.testName, discordgo.ApplicationCommandInteractionData{Name: "dice"})
	s.Error(err)
}

func (s *DiceCommandTestSuite) TestComponents() {
	table := testTable(4, 4)

	s.mockSessionService.EXPECT().
		Roll(gomock.Any(), &session.RollInput{Key: s.testKey}).
		Return(&session.RollOutput{Table: table, Result: table.Session.Result}, nil)
	_, update, err := s.command.dispatchComponent(s.ctx, s.testKey, s.testName, ButtonRoll)
	s.Require().NoError(err)
	s.True(update)

	s.mockSessionService.EXPECT().
		RerollDie(gomock.Any(), &session.RerollDieInput{Key: s.testKey, Index: 0}).
		Return(&session.RerollDieOutput{Table: table, Die: models.Die{Sides: models.D6, Value: 4}}, nil)
	_, update, err = s.command.dispatchComponent(s.ctx, s.testKey, s.testName, rerollButtonID(0))
	s.Require().NoError(err)
	s.True(update)

	s.mockSessionService.EXPECT().
		GetSession(gomock.Any(), &session.GetSessionInput{Key: s.testKey}).
		Return(&session.GetSessionOutput{Table: table}, nil)
	_, update, err = s.command.dispatchComponent(s.ctx, s.testKey, s.testName, ButtonHistory)
	s.Require().NoError(err)
	s.False(update, "history opens a new message")

	_, _, err = s.command.dispatchComponent(s.ctx, s.testKey, s.testName, "nope")
	s.Error(err)
}

func (s *DiceCommandTestSuite) TestOwnsComponent() {
	s.True(s.command.OwnsComponent(ButtonRoll))
	s.True(s.command.OwnsComponent(ButtonHistory))
	s.True(s.command.OwnsComponent(ButtonClearHistory))
	s.True(s.command.OwnsComponent(rerollButtonID(3)))
	s.False(s.command.OwnsComponent("join_game"))
}

func (s *DiceCommandTestSuite) TestErrorMessages() {
	tests := []struct {
		err  error
		want []string
	}{
		{
			err:  fmt.Errorf("%w: index 9 with 2 dice", engine.ErrIndexOutOfRange),
			want: []string{"There's no die in that spot. Count again!", "That die rolled off the table. Pick one that's there.", "No die at that position. Check the table first."},
		},
		{
			err:  engine.ErrInvalidConfiguration,
			want: []string{"That's not a die we carry. Try d4, d6, d8, d10, d12 or d20.", "We only stock d4, d6, d8, d10, d12 and d20."},
		},
	}

	for _, tt := range tests {
		s.Contains(tt.want, s.command.errorMessage(s.testKey, tt.err))
	}
}

func TestInteractionUser(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Nick: "Nick", User: &discordgo.User{ID: "u1", Username: "user"}},
	}}
	id, name := interactionUser(guild)
	if id != "u1" || name != "Nick" {
		t.Fatalf("got %q %q", id, name)
	}

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "u2", Username: "dm-user"},
	}}
	id, name = interactionUser(dm)
	if id != "u2" || name != "dm-user" {
		t.Fatalf("got %q %q", id, name)
	}
}

func TestNewBotValidation(t *testing.T) {
	_, err := New(nil)
	if err == nil {
		t.Fatal("expected error for nil config")
	}

	_, err = New(&Config{Token: "token"})
	if err == nil {
		t.Fatal("expected error for missing services")
	}
}
