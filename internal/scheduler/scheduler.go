package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/AkshayMandhan17/flexiplan/internal/agent"
	"github.com/AkshayMandhan17/flexiplan/internal/db"
	"github.com/AkshayMandhan17/flexiplan/internal/planner"
	"github.com/robfig/cron/v3"
)

// Scheduler drives the morning routine: when the cron expression fires
// it regenerates an off day if the user asked for one, then sends the
// day's agenda.
type Scheduler struct {
	cron       *cron.Cron
	webhookURL string
	db         *db.DB
	agent      *agent.Agent
	planner    *planner.Planner
	userID     int64
	dmSend     func(discordUserID, content string) error
}

func New(database *db.DB, ag *agent.Agent, p *planner.Planner, userID int64, webhookURL string, dmSend func(discordUserID, content string) error) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		webhookURL: webhookURL,
		db:         database,
		agent:      ag,
		planner:    p,
		userID:     userID,
		dmSend:     dmSend,
	}
}

// Start registers the morning job and starts the cron loop.
func (s *Scheduler) Start(cronExpr string) error {
	if _, err := s.cron.AddFunc(cronExpr, s.runMorning); err != nil {
		return fmt.Errorf("invalid agenda cron %q: %w", cronExpr, err)
	}
	s.cron.Start()
	log.Printf("scheduler started, agenda cron %q", cronExpr)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runMorning() {
	settings, err := s.db.GetSettings(s.userID)
	if err != nil {
		log.Printf("scheduler: loading settings: %v", err)
		return
	}

	if settings.OffDayToggle {
		// One-shot: the toggle requests a single off day, then clears.
		if _, _, err := s.planner.RegenerateOffDay(context.Background(), s.userID); err != nil {
			log.Printf("scheduler: off-day regeneration: %v", err)
			if !errors.Is(err, planner.ErrNoPrimaryRoutine) {
				return
			}
		}
		if err := s.db.SetOffDayToggle(s.userID, false); err != nil {
			log.Printf("scheduler: clearing off-day toggle: %v", err)
		}
	}

	if !settings.NotificationsEnabled {
		log.Printf("scheduler: notifications disabled, skipping agenda")
		return
	}

	prompt, err := agent.BuildAgendaPrompt(s.planner, s.userID, time.Now())
	if err != nil {
		log.Printf("scheduler: building agenda prompt: %v", err)
		return
	}

	reply, _, err := s.agent.Run(context.Background(), nil, prompt)
	if err != nil {
		log.Printf("scheduler: agent error: %v", err)
		return
	}

	s.deliver(reply)
	log.Printf("scheduler: morning agenda sent")
}

func (s *Scheduler) deliver(content string) {
	// Try DM first
	if s.dmSend != nil {
		target, err := s.db.GetState(db.StateDiscordUser)
		if err == nil && target != "" {
			if err := s.dmSend(target, content); err != nil {
				log.Printf("scheduler: DM send failed: %v", err)
			} else {
				return
			}
		}
	}
	// Fall back to webhook
	if s.webhookURL != "" {
		if err := postWebhook(s.webhookURL, content); err != nil {
			log.Printf("scheduler: webhook failed: %v", err)
		}
		return
	}
	log.Printf("scheduler: no delivery method available (no DM user and no webhook)")
}

func postWebhook(url, content string) error {
	payload := map[string]string{"content": content}
	body, _ := json.Marshal(payload)
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("posting webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
