package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AkshayMandhan17/flexiplan/config"
	"github.com/AkshayMandhan17/flexiplan/internal/agent"
	"github.com/AkshayMandhan17/flexiplan/internal/db"
	"github.com/AkshayMandhan17/flexiplan/internal/discord"
	"github.com/AkshayMandhan17/flexiplan/internal/llm"
	"github.com/AkshayMandhan17/flexiplan/internal/planner"
	"github.com/AkshayMandhan17/flexiplan/internal/routine"
	"github.com/AkshayMandhan17/flexiplan/internal/scheduler"
)

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	client, err := llm.NewClient(llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.LLMModel,
		BaseURL:  cfg.OllamaBaseURL,
	})
	if err != nil {
		log.Fatalf("failed to create LLM client: %v", err)
	}

	user, err := database.EnsureUser(cfg.DefaultUser)
	if err != nil {
		log.Fatalf("failed to set up user %q: %v", cfg.DefaultUser, err)
	}

	p := planner.New(database, client, cfg.GenerationTimeout)
	ag := agent.New(database, client, p, user.ID)

	if len(os.Args) > 1 {
		runCommand(os.Args[1], os.Args[2:], database, p, user.ID)
		return
	}

	// If Discord token is set, run as bot
	if cfg.DiscordToken != "" {
		runBot(cfg, database, ag, p, user.ID)
		return
	}

	// Otherwise, CLI chat mode
	runChat(ag)
}

func runCommand(name string, args []string, database *db.DB, p *planner.Planner, userID int64) {
	ctx := context.Background()

	switch name {
	case "generate":
		r, err := p.GenerateWeek(ctx, userID)
		if err != nil {
			fatal(err)
		}
		fmt.Println(planner.Describe(r))

	case "offday":
		r, day, err := p.RegenerateOffDay(ctx, userID)
		if err != nil {
			fatal(err)
		}
		fmt.Print(routine.RenderDay(day, r.Schedule[day]))

	case "show":
		fs := flag.NewFlagSet("show", flag.ExitOnError)
		day := fs.String("day", "", "show a single weekday")
		fs.Parse(args)
		r, err := p.PrimaryRoutine(userID)
		if err != nil {
			fatal(err)
		}
		if *day != "" {
			fmt.Print(routine.RenderDay(*day, r.Schedule[*day]))
		} else {
			fmt.Println(planner.Describe(r))
		}

	case "complete":
		fs := flag.NewFlagSet("complete", flag.ExitOnError)
		day := fs.String("day", "", "weekday name")
		activity := fs.String("activity", "", "activity name as it appears in the routine")
		kind := fs.String("type", "task", "activity type: task or hobby")
		undo := fs.Bool("undo", false, "clear the completion flag instead")
		fs.Parse(args)
		if *day == "" || *activity == "" {
			fatal(errors.New("complete requires -day and -activity"))
		}
		if err := p.SetCompletion(userID, *day, *activity, *kind, !*undo); err != nil {
			fatal(err)
		}

	case "task":
		runTaskCommand(args, database, userID)

	case "hobby":
		runHobbyCommand(args, database, userID)

	case "settings":
		runSettingsCommand(args, database, userID)

	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}
}

func runTaskCommand(args []string, database *db.DB, userID int64) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		tasks, err := database.ListTasks(userID)
		if err != nil {
			fatal(err)
		}
		for _, t := range tasks {
			fixed := ""
			if t.IsFixedTime {
				fixed = " at " + t.FixedTimeSlot
			}
			fmt.Printf("%3d  %-20s %s%s  %s  %s\n", t.ID, t.Name, t.TimeRequired, fixed, t.Priority, strings.Join(t.DaysAssociated, ","))
		}

	case "add":
		fs := flag.NewFlagSet("task add", flag.ExitOnError)
		name := fs.String("name", "", "task name")
		desc := fs.String("desc", "", "description")
		duration := fs.String("duration", "", "daily time needed, HH:MM:SS")
		days := fs.String("days", "", "comma-separated weekday names")
		priority := fs.String("priority", routine.PriorityMedium, "High, Medium, or Low")
		slot := fs.String("at", "", "fixed start time HH:MM:SS (makes the task fixed-time)")
		fs.Parse(args[1:])

		spec := routine.TaskSpec{
			Name:          *name,
			Description:   *desc,
			TimeRequired:  *duration,
			Priority:      *priority,
			IsFixedTime:   *slot != "",
			FixedTimeSlot: *slot,
		}
		for _, d := range strings.Split(*days, ",") {
			if d = strings.TrimSpace(d); d != "" {
				spec.DaysAssociated = append(spec.DaysAssociated, d)
			}
		}
		id, err := database.CreateTask(userID, spec)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("created task %d\n", id)

	case "rm":
		fs := flag.NewFlagSet("task rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "task ID")
		fs.Parse(args[1:])
		if err := database.DeleteTask(userID, *id); err != nil {
			fatal(err)
		}

	default:
		fatal(fmt.Errorf("unknown task subcommand %q", args[0]))
	}
}

func runHobbyCommand(args []string, database *db.DB, userID int64) {
	if len(args) == 0 {
		args = []string{"list"}
	}
	switch args[0] {
	case "list":
		hobbies, err := database.ListUserHobbies(userID)
		if err != nil {
			fatal(err)
		}
		for _, h := range hobbies {
			fmt.Printf("%3d  %-20s %s\n", h.ID, h.Name, h.Category)
		}

	case "add":
		fs := flag.NewFlagSet("hobby add", flag.ExitOnError)
		name := fs.String("name", "", "hobby name")
		category := fs.String("category", "", "hobby category")
		fs.Parse(args[1:])
		id, err := database.AddHobby(routine.HobbySpec{Name: *name, Category: *category})
		if err == nil {
			err = database.AttachHobby(userID, id)
		}
		if err != nil {
			fatal(err)
		}
		fmt.Printf("added hobby %d\n", id)

	case "rm":
		fs := flag.NewFlagSet("hobby rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "hobby ID")
		fs.Parse(args[1:])
		if err := database.DetachHobby(userID, *id); err != nil {
			fatal(err)
		}

	default:
		fatal(fmt.Errorf("unknown hobby subcommand %q", args[0]))
	}
}

func runSettingsCommand(args []string, database *db.DB, userID int64) {
	s, err := database.GetSettings(userID)
	if err != nil {
		fatal(err)
	}

	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	start := fs.String("start", s.DayStart, "day start, HH:MM:SS")
	end := fs.String("end", s.DayEnd, "day end, HH:MM:SS")
	offDay := fs.Bool("offday", s.OffDayToggle, "plan tomorrow as an off day")
	notify := fs.Bool("notify", s.NotificationsEnabled, "enable the morning agenda")
	fs.Parse(args)

	if len(args) == 0 {
		fmt.Printf("day window: %s - %s\noff-day toggle: %v\nnotifications: %v\n", s.DayStart, s.DayEnd, s.OffDayToggle, s.NotificationsEnabled)
		return
	}

	s.DayStart, s.DayEnd = *start, *end
	s.OffDayToggle, s.NotificationsEnabled = *offDay, *notify
	if err := database.SaveSettings(userID, s); err != nil {
		fatal(err)
	}
}

func runChat(ag *agent.Agent) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	// Check if stdin is a pipe (non-interactive)
	stat, _ := os.Stdin.Stat()
	isPipe := (stat.Mode() & os.ModeCharDevice) == 0

	if !isPipe {
		fmt.Print("flexiplan> ")
	}

	var history []llm.Message

	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			if !isPipe {
				fmt.Print("flexiplan> ")
			}
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		reply, newHistory, err := ag.Run(ctx, history, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			fmt.Println(reply)
			history = newHistory
		}

		if isPipe {
			break // single exchange in pipe mode
		}
		fmt.Print("flexiplan> ")
	}
}

func runBot(cfg *config.Config, database *db.DB, ag *agent.Agent, p *planner.Planner, userID int64) {
	bot, err := discord.NewBot(cfg.DiscordToken, ag, database)
	if err != nil {
		log.Fatalf("failed to start Discord bot: %v", err)
	}
	defer bot.Close()

	sched := scheduler.New(database, ag, p, userID, cfg.DiscordWebhook, bot.SendDM)
	if err := sched.Start(cfg.AgendaCron); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	log.Println("bot is running. Press Ctrl+C to exit.")
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down.")
}

// fatal prints the error and exits. Parse failures print the raw model
// text too, since seeing what the model actually returned is the only
// way to debug them.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)

	var parseErr *planner.ParseError
	var dayErr *planner.DayNotProducedError
	switch {
	case errors.As(err, &parseErr):
		fmt.Fprintf(os.Stderr, "\n--- raw model output ---\n%s\n", parseErr.RawText)
	case errors.As(err, &dayErr):
		fmt.Fprintf(os.Stderr, "\n--- raw model output ---\n%s\n", dayErr.RawText)
	}
	os.Exit(1)
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: flexiplan [command]

With no command, starts a chat session (or the Discord bot when
DISCORD_BOT_TOKEN is set).

commands:
  generate              generate a fresh weekly routine
  offday                regenerate today as a hobbies-only off day
  show [-day NAME]      print the current routine with completion marks
  complete -day D -activity A [-type T] [-undo]
                        mark an activity done (or not)
  task [list|add|rm]    manage tasks
  hobby [list|add|rm]   manage hobbies
  settings [flags]      view or change planning preferences
`)
}
