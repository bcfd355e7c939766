package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/AkshayMandhan17/flexiplan/internal/db"
	"github.com/AkshayMandhan17/flexiplan/internal/llm"
	"github.com/AkshayMandhan17/flexiplan/internal/planner"
	"github.com/AkshayMandhan17/flexiplan/internal/routine"
)

const maxToolRounds = 10

type Agent struct {
	db      *db.DB
	client  llm.Client
	planner *planner.Planner
	userID  int64
}

func New(database *db.DB, client llm.Client, p *planner.Planner, userID int64) *Agent {
	return &Agent{db: database, client: client, planner: p, userID: userID}
}

// Run takes a user message, runs the tool-calling loop, and returns the final text response.
func (a *Agent) Run(ctx context.Context, history []llm.Message, userMessage string) (string, []llm.Message, error) {
	messages := make([]llm.Message, len(history))
	copy(messages, history)
	messages = append(messages, llm.Message{Role: "user", Content: userMessage})

	for i := 0; i < maxToolRounds; i++ {
		resp, err := a.client.Chat(ctx, llm.SystemPrompt, messages, llm.AgentTools)
		if err != nil {
			return "", nil, fmt.Errorf("llm chat: %w", err)
		}

		// No tool calls — we have a final answer
		if len(resp.ToolCalls) == 0 {
			messages = append(messages, llm.Message{Role: "assistant", Content: resp.Content})
			return resp.Content, messages, nil
		}

		// Append assistant message with tool calls
		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		// Execute each tool call and append results
		for _, tc := range resp.ToolCalls {
			result := a.executeTool(ctx, tc.Name, tc.Params)
			log.Printf("tool %s → %s", tc.Name, truncate(result, 200))
			messages = append(messages, llm.Message{
				Role:       "user",
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}

	return "I hit the maximum number of tool calls. Here's what I have so far.", messages, nil
}

func (a *Agent) executeTool(ctx context.Context, name string, params map[string]any) string {
	var result any
	var err error

	switch name {
	case "list_tasks":
		result, err = a.db.ListTasks(a.userID)

	case "create_task":
		spec := routine.TaskSpec{Priority: routine.PriorityMedium}
		spec.Name, _ = getString(params, "task_name")
		spec.Description, _ = getString(params, "description")
		spec.TimeRequired, _ = getString(params, "time_required")
		spec.DaysAssociated = getStrings(params, "days_associated")
		if v, ok := getString(params, "priority"); ok {
			spec.Priority = v
		}
		spec.IsFixedTime, _ = getBool(params, "is_fixed_time")
		spec.FixedTimeSlot, _ = getString(params, "fixed_time_slot")
		id, e := a.db.CreateTask(a.userID, spec)
		if e != nil {
			err = e
		} else {
			result = map[string]any{"id": id, "status": "created"}
		}

	case "update_task":
		id, _ := getInt(params, "id")
		fields := make(map[string]any)
		for _, k := range []string{"task_name", "description", "time_required", "priority", "fixed_time_slot"} {
			if v, ok := params[k]; ok {
				fields[k] = v
			}
		}
		if _, ok := params["days_associated"]; ok {
			fields["days_associated"] = getStrings(params, "days_associated")
		}
		err = a.db.UpdateTask(id, fields)
		if err == nil {
			result = map[string]any{"status": "updated"}
		}

	case "delete_task":
		id, _ := getInt(params, "id")
		err = a.db.DeleteTask(a.userID, id)
		if err == nil {
			result = map[string]any{"status": "deleted"}
		}

	case "list_hobbies":
		result, err = a.db.ListHobbies()

	case "list_my_hobbies":
		result, err = a.db.ListUserHobbies(a.userID)

	case "add_hobby":
		spec := routine.HobbySpec{}
		spec.Name, _ = getString(params, "name")
		spec.Category, _ = getString(params, "category")
		id, e := a.db.AddHobby(spec)
		if e == nil {
			e = a.db.AttachHobby(a.userID, id)
		}
		if e != nil {
			err = e
		} else {
			result = map[string]any{"id": id, "status": "added"}
		}

	case "drop_hobby":
		id, _ := getInt(params, "id")
		err = a.db.DetachHobby(a.userID, id)
		if err == nil {
			result = map[string]any{"status": "dropped"}
		}

	case "get_settings":
		result, err = a.db.GetSettings(a.userID)

	case "update_settings":
		s, e := a.db.GetSettings(a.userID)
		if e != nil {
			err = e
			break
		}
		if v, ok := getString(params, "day_start_time"); ok {
			s.DayStart = v
		}
		if v, ok := getString(params, "day_end_time"); ok {
			s.DayEnd = v
		}
		if v, ok := getBool(params, "off_day_toggle"); ok {
			s.OffDayToggle = v
		}
		if v, ok := getBool(params, "notifications_enabled"); ok {
			s.NotificationsEnabled = v
		}
		err = a.db.SaveSettings(a.userID, s)
		if err == nil {
			result = s
		}

	case "generate_week":
		r, e := a.planner.GenerateWeek(ctx, a.userID)
		if e != nil {
			err = e
		} else {
			result = map[string]any{"routine_id": r.ID, "start_date": r.StartDate, "end_date": r.EndDate, "routine": routine.Render(r.Schedule)}
		}

	case "regenerate_today":
		r, day, e := a.planner.RegenerateOffDay(ctx, a.userID)
		if e != nil {
			err = e
		} else {
			result = map[string]any{"routine_id": r.ID, "today": routine.RenderDay(day, r.Schedule[day])}
		}

	case "get_routine":
		r, e := a.planner.PrimaryRoutine(a.userID)
		if e != nil {
			err = e
			break
		}
		if day, ok := getString(params, "day"); ok && day != "" {
			result = map[string]any{"routine_id": r.ID, "day": day, "entries": r.Schedule[day]}
		} else {
			result = r
		}

	case "mark_activity":
		day, _ := getString(params, "day")
		activity, _ := getString(params, "activity")
		kind, _ := getString(params, "type")
		done, _ := getBool(params, "done")
		err = a.planner.SetCompletion(a.userID, day, activity, kind, done)
		if err == nil {
			result = map[string]any{"status": "marked", "done": done}
		}

	case "get_time":
		now := time.Now()
		result = map[string]any{
			"local": now.Format(time.RFC3339),
			"utc":   now.UTC().Format(time.RFC3339),
			"date":  now.Format("2006-01-02"),
			"day":   now.Weekday().String(),
		}

	default:
		result = map[string]any{"error": "unknown tool: " + name}
	}

	if err != nil {
		result = map[string]any{"error": err.Error()}
	}

	b, _ := json.Marshal(result) // result is always a simple map, struct, or slice; marshal cannot fail
	return string(b)
}

// Param extraction helpers — LLMs send numbers as float64 in JSON.
func getInt(params map[string]any, key string) (int64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}
	return 0, false
}

func getString(params map[string]any, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func getBool(params map[string]any, key string) (bool, bool) {
	v, ok := params[key]
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func getStrings(params map[string]any, key string) []string {
	var out []string
	if v, ok := params[key]; ok {
		if arr, ok := v.([]any); ok {
			for _, item := range arr {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
