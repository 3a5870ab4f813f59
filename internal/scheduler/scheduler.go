package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/trav563/dynasty-analysis/internal/service"
)

type Scheduler struct {
	s              gocron.Scheduler
	historyService *service.HistoryService
	sendMessage    func(string) error
}

func NewScheduler(historyService *service.HistoryService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation("America/Chicago") // CDT
	if err != nil {
		slog.Error("Failed to load location", "error", err)
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		historyService: historyService,
		sendMessage:    sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	var err error

	// Trending teams - Tuesday 7:30 CDT, once the week's scores settle
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Tuesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendTrending),
	)
	if err != nil {
		return fmt.Errorf("failed to create trending job: %w", err)
	}

	// Current standings - Wednesday 7:30 CDT
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Wednesday), gocron.NewAtTimes(gocron.NewAtTime(7, 30, 0))),
		gocron.NewTask(s.sendStandings),
	)
	if err != nil {
		return fmt.Errorf("failed to create standings job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendTrending() {
	report, err := s.historyService.GetTrendingTeams(context.Background())
	if err != nil {
		slog.Error("Failed to get trending teams", "error", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendStandings() {
	standings, err := s.historyService.GetStandings(context.Background(), "")
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	s.sendMessage(standings)
}
