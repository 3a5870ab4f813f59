package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/trav563/dynasty-analysis/internal/service"
)

type Handler struct {
	historyService *service.HistoryService
}

func NewHandler(historyService *service.HistoryService) *Handler {
	return &Handler{historyService: historyService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := update.Message.CommandArguments()
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to DynastyBot! Use /help to see available commands."
	case "help":
		msg.Text = "Available commands:\n/standings [year] - League standings for a season\n/trending - Teams trending up or down\n/history <player> - A player's full transaction history\n/team <team> - Team record, win rate, and scoring\n/seasons - The league's year-by-year lineage"
	case "standings":
		h.handleStandings(ctx, &msg, args)
	case "trending":
		h.handleTrending(ctx, &msg)
	case "history":
		h.handleHistory(ctx, &msg, args)
	case "team":
		h.handleTeam(ctx, &msg, args)
	case "seasons":
		h.handleSeasons(ctx, &msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleStandings(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	standings, err := h.historyService.GetStandings(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handleTrending(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.historyService.GetTrendingTeams(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching trending teams: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleHistory(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /history <player name>"
		return
	}
	report, err := h.historyService.GetPlayerHistory(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building player history: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleTeam(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /team <team name>"
		return
	}
	report, err := h.historyService.GetTeamSummary(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching team summary: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleSeasons(ctx context.Context, msg *tgbotapi.MessageConfig) {
	report, err := h.historyService.GetSeasons(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching league history: %v", err)
	} else {
		msg.Text = report
	}
}
